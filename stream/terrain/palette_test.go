package terrain

import (
	"testing"
)

func oneClass() []Class {
	return []Class{{Name: "only", Variants: []Color{{R: 1, G: 2, B: 3}}}}
}

func twoClasses() []Class {
	return append(oneClass(), Class{Name: "other", Variants: []Color{{R: 4, G: 5, B: 6}}, Solid: true})
}

func TestNewPaletteRejectsInvalidTables(t *testing.T) {
	for _, c := range []struct {
		name    string
		classes []Class
		ranges  []Range
	}{
		{"no classes", nil, []Range{{First: -1, Last: 1, Class: 0}}},
		{"no ranges", oneClass(), nil},
		{"no variants", []Class{{Name: "bare"}}, []Range{{First: -1, Last: 1, Class: 0}}},
		{"inverted range", oneClass(), []Range{{First: 1, Last: -1, Class: 0}}},
		{"class out of bounds", oneClass(), []Range{{First: -1, Last: 1, Class: 1}}},
		{"overlapping", twoClasses(), []Range{{First: -2, Last: 0, Class: 0}, {First: 0, Last: 2, Class: 1}}},
		{"unsorted", twoClasses(), []Range{{First: 1, Last: 2, Class: 0}, {First: -2, Last: -1, Class: 1}}},
		{"asymmetric", twoClasses(), []Range{{First: -1, Last: 1, Class: 0}, {First: 2, Last: 3, Class: 1}}},
	} {
		if _, err := NewPalette(c.classes, c.ranges); err == nil {
			t.Errorf("%v: NewPalette accepted an invalid table", c.name)
		}
	}
}

func TestNewPaletteDefaultValid(t *testing.T) {
	p, err := NewPalette(DefaultClasses(), DefaultRanges())
	if err != nil {
		t.Fatalf("default palette rejected: %v", err)
	}
	if p.Extremum() != 10 {
		t.Errorf("Extremum = %v, want 10", p.Extremum())
	}
	if p.ClassCount() != 4 {
		t.Errorf("ClassCount = %v, want 4", p.ClassCount())
	}
}

func TestClassIndexLookup(t *testing.T) {
	p := DefaultPalette()
	for _, c := range []struct {
		v, want int
	}{
		{-10, 0}, {-3, 0},
		{-2, 1}, {0, 1},
		{1, 2}, {6, 2},
		{7, 3}, {10, 3},
	} {
		if got := p.ClassIndex(c.v); got != c.want {
			t.Errorf("ClassIndex(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestClassIndexGapSnapsToNearest(t *testing.T) {
	p, err := NewPalette(twoClasses(), []Range{
		{First: -3, Last: -2, Class: 0},
		{First: 2, Last: 3, Class: 1},
	})
	if err != nil {
		t.Fatalf("NewPalette: %v", err)
	}
	if got := p.ClassIndex(1); got != 1 {
		t.Errorf("ClassIndex(1) = %v, want 1 (nearest range [2, 3])", got)
	}
	if got := p.ClassIndex(-1); got != 0 {
		t.Errorf("ClassIndex(-1) = %v, want 0 (nearest range [-3, -2])", got)
	}
}
