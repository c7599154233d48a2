package forestfire

import "forestfire/internal/core"

var firePalette = []core.Color{
	Untouched: {R: 34, G: 139, B: 34, A: 255},
	Burning:   {R: 220, G: 40, B: 30, A: 255},
	Scorched:  {R: 235, G: 205, B: 50, A: 255},
}

// Palette maps display values (a cell's State) to colors: green, red, yellow.
func Palette() []core.Color {
	out := make([]core.Color, len(firePalette))
	copy(out, firePalette)
	return out
}

// Glyphs maps display values to the runes used by text renderers.
var Glyphs = []rune{
	Untouched: '♣',
	Burning:   '▲',
	Scorched:  '·',
}

func (s *Sim) rebuildDisplay() {
	s.forest.Values(s.display.Cells())
}
