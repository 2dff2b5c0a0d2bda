package terrain

import (
	"testing"

	"github.com/tidemill/tilestream/grid"
)

func TestClassifierDeterminism(t *testing.T) {
	conf := Config{Seed: 42, ChunkSize: 8}
	a, err := NewClassifier(conf)
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	b, err := NewClassifier(conf)
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	for y := int32(-40); y <= 40; y += 7 {
		for x := int32(-40); x <= 40; x += 7 {
			first, second := a.TileAt(x, y), b.TileAt(x, y)
			if first != second {
				t.Fatalf("TileAt(%v, %v) not deterministic: %v vs %v", x, y, first, second)
			}
			if repeat := a.TileAt(x, y); repeat != first {
				t.Fatalf("TileAt(%v, %v) not pure: %v then %v", x, y, first, repeat)
			}
		}
	}
}

func TestClassifierOutputInBounds(t *testing.T) {
	c, err := NewClassifier(Config{Seed: 7})
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	p := c.Palette()
	for y := int32(-100); y <= 100; y += 13 {
		for x := int32(-100); x <= 100; x += 13 {
			tile := c.TileAt(x, y)
			if tile.Class < 0 || tile.Class >= p.ClassCount() {
				t.Fatalf("class %v at (%v, %v) out of bounds", tile.Class, x, y)
			}
			if n := len(p.Class(tile.Class).Variants); tile.Variant < 0 || tile.Variant >= n {
				t.Fatalf("variant %v at (%v, %v) out of bounds (%v variants)", tile.Variant, x, y, n)
			}
		}
	}
}

func TestGenerateChunk(t *testing.T) {
	c, err := NewClassifier(Config{Seed: 3, ChunkSize: 8})
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	pos := grid.ChunkPos{-2, 3}
	d, err := c.GenerateChunk(pos)
	if err != nil {
		t.Fatalf("GenerateChunk: %v", err)
	}
	if d.Pos != pos {
		t.Errorf("Pos = %v, want %v", d.Pos, pos)
	}
	if d.Origin != (grid.TilePos{-16, 24}) {
		t.Errorf("Origin = %v, want (-16, 24)", d.Origin)
	}
	if d.Width != 8 || d.Height != 8 {
		t.Errorf("dimensions %vx%v, want 8x8", d.Width, d.Height)
	}
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			want := c.TileAt(d.Origin.X()+int32(x), d.Origin.Y()+int32(y))
			if got := d.At(x, y); got != want {
				t.Fatalf("tile (%v, %v) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestNewClassifierRejectsInvalidConfig(t *testing.T) {
	if _, err := NewClassifier(Config{Lacunarity: -1}); err == nil {
		t.Errorf("negative lacunarity accepted")
	}
	if _, err := NewClassifier(Config{Gain: -0.5}); err == nil {
		t.Errorf("negative gain accepted")
	}
	if _, err := NewClassifier(Config{ChunkSize: -4}); err == nil {
		t.Errorf("negative chunk size accepted")
	}
}
