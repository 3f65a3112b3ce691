package render

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// DefaultColors is the color cycle used by NewPalette when given no colors.
var DefaultColors = []color.RGBA{
	colornames.Red,
	colornames.Orange,
	colornames.Yellow,
	colornames.Lime,
	colornames.Cyan,
	colornames.Dodgerblue,
	colornames.Blueviolet,
	colornames.Magenta,
	colornames.Hotpink,
	colornames.Coral,
	colornames.Gold,
	colornames.Springgreen,
	colornames.Turquoise,
	colornames.Royalblue,
	colornames.Orchid,
	colornames.Tomato,
	colornames.Chartreuse,
	colornames.Deepskyblue,
	colornames.Slateblue,
	colornames.Khaki,
}

// Palette hands out colors from a fixed list, cycling forever. Its position
// persists between frames. A Palette is not safe for concurrent use.
type Palette struct {
	colors []color.RGBA
	next   int
}

// NewPalette returns a Palette cycling through colors. If colors is empty
// DefaultColors is used.
func NewPalette(colors ...color.RGBA) *Palette {
	if len(colors) == 0 {
		colors = DefaultColors
	}
	c := make([]color.RGBA, len(colors))
	copy(c, colors)
	return &Palette{colors: c}
}

// Next returns the next color of the cycle.
func (p *Palette) Next() color.RGBA {
	c := p.colors[p.next]
	p.next = (p.next + 1) % len(p.colors)
	return c
}

// Len returns the length of the cycle.
func (p *Palette) Len() int { return len(p.colors) }
