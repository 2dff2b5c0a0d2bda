package terrain

// DefaultClasses returns the built-in four-class table: deep water, sand,
// grass and rock. Water and rock are solid.
func DefaultClasses() []Class {
	return []Class{
		{Name: "water", Solid: true, Variants: []Color{
			{R: 48, G: 86, B: 166},
			{R: 58, G: 102, B: 186},
			{R: 70, G: 118, B: 202},
		}},
		{Name: "sand", Variants: []Color{
			{R: 216, G: 200, B: 148},
			{R: 204, G: 186, B: 132},
		}},
		{Name: "grass", Variants: []Color{
			{R: 96, G: 148, B: 74},
			{R: 84, G: 136, B: 66},
			{R: 108, G: 160, B: 84},
			{R: 90, G: 142, B: 70},
		}},
		{Name: "rock", Solid: true, Variants: []Color{
			{R: 126, G: 124, B: 120},
			{R: 110, G: 108, B: 104},
			{R: 142, G: 140, B: 136},
		}},
	}
}

// DefaultRanges returns the built-in range table matching DefaultClasses,
// symmetric around zero with extremum 10.
func DefaultRanges() []Range {
	return []Range{
		{First: -10, Last: -3, Class: 0},
		{First: -2, Last: 0, Class: 1},
		{First: 1, Last: 6, Class: 2},
		{First: 7, Last: 10, Class: 3},
	}
}

// DefaultPalette returns the palette built from DefaultClasses and
// DefaultRanges.
func DefaultPalette() *Palette {
	p, err := NewPalette(DefaultClasses(), DefaultRanges())
	if err != nil {
		panic("terrain: default palette invalid: " + err.Error())
	}
	return p
}
