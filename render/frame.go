package render

import (
	"image"
	"image/color"

	"github.com/soypat/painter"
	"github.com/soypat/painter/depth"
	"github.com/soypat/painter/project"
)

// Item is a triangle ready to be painted.
type Item struct {
	Triangle painter.Triangle
	Color    color.RGBA
	Points   [3]image.Point
}

// Frame is the list of items of one frame in drawing order, back to front.
type Frame struct {
	Items []Item
}

// BuildFrame depth sorts tris for the projector's camera, projects them
// and assigns each the next color of pal.
func BuildFrame(p *project.Projector, tris []painter.Triangle, pal *Palette) Frame {
	sorted := depth.Sort(p.Camera(), tris)
	items := make([]Item, len(sorted))
	for i, t := range sorted {
		items[i] = Item{
			Triangle: t,
			Color:    pal.Next(),
			Points:   p.Triangle(t),
		}
	}
	return Frame{Items: items}
}
