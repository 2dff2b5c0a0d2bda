package terrain

import (
	"fmt"

	"github.com/brentp/intintmap"
)

// Color is an 8-bit RGB colour used for tile variants.
type Color struct {
	R, G, B uint8
}

// Class is a terrain category that tiles are classified into. Classes are
// fully static: they are never mutated once a Palette is built from them.
type Class struct {
	// Name identifies the class in logs and configuration.
	Name string
	// Variants is the ordered list of colour variants of the class. Every
	// class must have at least one variant.
	Variants []Color
	// Solid specifies if tiles of this class should have collision
	// registered by the renderer.
	Solid bool
}

// Range maps the closed integer interval [First, Last] of scaled noise
// values to the terrain class at index Class.
type Range struct {
	First, Last int
	Class       int
}

// Palette couples a class table to an ordered range table and precomputes
// the integer value to class lookup used during classification. A Palette
// is immutable and safe for concurrent use.
type Palette struct {
	classes  []Class
	ranges   []Range
	lookup   *intintmap.Map
	extremum int
}

// NewPalette validates the class and range tables passed and builds the
// flattened lookup table. The scheduler must not be started with an invalid
// palette; hosts treat a returned error as fatal.
func NewPalette(classes []Class, ranges []Range) (*Palette, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("palette: no terrain classes")
	}
	if len(ranges) == 0 {
		return nil, fmt.Errorf("palette: no generation ranges")
	}
	for i, c := range classes {
		if len(c.Variants) == 0 {
			return nil, fmt.Errorf("palette: class %v (%q): no colour variants", i, c.Name)
		}
	}
	for i, r := range ranges {
		if r.First > r.Last {
			return nil, fmt.Errorf("palette: range %v: first %v exceeds last %v", i, r.First, r.Last)
		}
		if r.Class < 0 || r.Class >= len(classes) {
			return nil, fmt.Errorf("palette: range %v: class index %v out of bounds (%v classes)", i, r.Class, len(classes))
		}
		if i > 0 && ranges[i-1].Last >= r.First {
			return nil, fmt.Errorf("palette: range %v: [%v, %v] overlaps or is unsorted after [%v, %v]", i, r.First, r.Last, ranges[i-1].First, ranges[i-1].Last)
		}
	}
	min, max := ranges[0].First, ranges[len(ranges)-1].Last
	if min != -max {
		return nil, fmt.Errorf("palette: ranges not symmetric around zero: min %v, max %v", min, max)
	}

	size := 0
	for _, r := range ranges {
		size += r.Last - r.First + 1
	}
	lookup := intintmap.New(size*2, 0.6)
	for _, r := range ranges {
		for v := r.First; v <= r.Last; v++ {
			lookup.Put(int64(v), int64(r.Class))
		}
	}

	p := &Palette{
		classes:  append([]Class(nil), classes...),
		ranges:   append([]Range(nil), ranges...),
		lookup:   lookup,
		extremum: max,
	}
	return p, nil
}

// Extremum returns the maximum of the union of the range table. The
// symmetry invariant makes -Extremum() its minimum. Noise samples in
// [-1, 1] are scaled by this value before lookup.
func (p *Palette) Extremum() int {
	return p.extremum
}

// ClassCount returns the amount of terrain classes in the palette.
func (p *Palette) ClassCount() int {
	return len(p.classes)
}

// Class returns the terrain class at the index passed.
func (p *Palette) Class(i int) Class {
	return p.classes[i]
}

// ClassIndex returns the class index mapped to the scaled noise value
// passed. Values that fall in a gap between ranges resolve to the class of
// the nearest range.
func (p *Palette) ClassIndex(v int) int {
	if c, ok := p.lookup.Get(int64(v)); ok {
		return int(c)
	}
	// Gaps between ranges are legal; snap to the closest interval.
	best, bestDist := p.ranges[0].Class, -1
	for _, r := range p.ranges {
		d := r.First - v
		if v > r.Last {
			d = v - r.Last
		}
		if d < 0 {
			d = -d
		}
		if bestDist == -1 || d < bestDist {
			best, bestDist = r.Class, d
		}
	}
	return best
}
