package surface

import (
	"image"
	"image/color"
	"sync"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const (
	captionX      = 2
	captionY      = 11 // baseline
	captionHeight = 15
)

// Display paints on a TinyGo display driver. Primitives are rasterized on
// an Image and only the pixels changed since the previous Flush are sent
// to the device. An optional caption is drawn over the top left corner.
type Display struct {
	dev drivers.Displayer
	img *Image

	mu           sync.Mutex
	caption      string
	captionColor color.RGBA
	// captionBox is the area covered by the last drawn caption.
	captionBox image.Rectangle
}

// NewDisplay returns a square surface the size of the shorter side of dev.
func NewDisplay(dev drivers.Displayer) (*Display, error) {
	w, h := dev.Size()
	img, err := NewImage(int(min(w, h)))
	if err != nil {
		return nil, err
	}
	return &Display{dev: dev, img: img, captionColor: color.RGBA{R: 255, G: 255, B: 255, A: 255}}, nil
}

// SetCaption sets the text drawn on the next Flush. An empty string
// removes the caption.
func (d *Display) SetCaption(s string, c color.RGBA) {
	d.mu.Lock()
	d.caption = s
	d.captionColor = c
	d.mu.Unlock()
}

func (d *Display) Clear(c color.Color) error { return d.img.Clear(c) }

func (d *Display) FillCircle(center image.Point, radius float64, c color.Color) error {
	return d.img.FillCircle(center, radius, c)
}

func (d *Display) FillTriangle(p0, p1, p2 image.Point, c color.Color) error {
	return d.img.FillTriangle(p0, p1, p2, c)
}

// Flush sends changed pixels and the caption to the device and calls its
// Display method.
func (d *Display) Flush() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	dirty := d.img.flush()
	// Restore pixels under the previous caption.
	dirty = dirty.Union(d.captionBox)
	d.blit(dirty)
	d.captionBox = image.Rectangle{}
	if d.caption != "" {
		_, width := tinyfont.LineWidth(&proggy.TinySZ8pt7b, d.caption)
		tinyfont.WriteLine(d.dev, &proggy.TinySZ8pt7b, captionX, captionY, d.caption, d.captionColor)
		d.captionBox = image.Rect(0, 0, captionX+int(width)+2, captionHeight).Intersect(d.img.Bounds())
	}
	return d.dev.Display()
}

// Image returns a copy of the surface as of the last Flush, without caption.
func (d *Display) Image() *image.RGBA { return d.img.Image() }

func (d *Display) blit(r image.Rectangle) {
	front := d.img.front
	d.img.mu.Lock()
	defer d.img.mu.Unlock()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			d.dev.SetPixel(int16(x), int16(y), front.RGBAAt(x, y))
		}
	}
}
