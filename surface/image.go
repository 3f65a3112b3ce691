// Package surface provides raster targets for render.Surface: an in-memory
// image, a fauxgl rasterizer and an adapter for TinyGo displays.
package surface

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
)

var (
	ErrSize   = errors.New("surface size must be positive")
	ErrRadius = errors.New("circle radius must be positive and finite")
)

// Image is a square in-memory surface. Drawing happens on a back buffer
// which is copied to the front buffer on Flush. Image is safe for concurrent
// use so the front buffer can be read while drawing.
type Image struct {
	mu    sync.Mutex
	back  *image.RGBA
	front *image.RGBA
	gc    *draw2dimg.GraphicContext
	// dirty is the back buffer area changed since the last Flush.
	dirty image.Rectangle
}

// NewImage returns an Image of size by size pixels.
func NewImage(size int) (*Image, error) {
	if size <= 0 {
		return nil, ErrSize
	}
	r := image.Rect(0, 0, size, size)
	back := image.NewRGBA(r)
	return &Image{
		back:  back,
		front: image.NewRGBA(r),
		gc:    draw2dimg.NewGraphicContext(back),
	}, nil
}

// Bounds returns the bounds of the surface.
func (s *Image) Bounds() image.Rectangle { return s.back.Bounds() }

func (s *Image) Clear(c color.Color) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	draw.Draw(s.back, s.back.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	s.dirty = s.back.Bounds()
	return nil
}

func (s *Image) FillCircle(center image.Point, radius float64, c color.Color) error {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return fmt.Errorf("%w: got %g", ErrRadius, radius)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	gc := s.gc
	gc.SetFillColor(c)
	gc.BeginPath()
	draw2dkit.Circle(gc, float64(center.X), float64(center.Y), radius)
	gc.Fill()
	r := int(math.Ceil(radius)) + 1
	s.markDirty(image.Rect(center.X-r, center.Y-r, center.X+r, center.Y+r))
	return nil
}

func (s *Image) FillTriangle(p0, p1, p2 image.Point, c color.Color) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	gc := s.gc
	gc.SetFillColor(c)
	gc.BeginPath()
	gc.MoveTo(float64(p0.X), float64(p0.Y))
	gc.LineTo(float64(p1.X), float64(p1.Y))
	gc.LineTo(float64(p2.X), float64(p2.Y))
	gc.Close()
	gc.Fill()
	s.markDirty(triangleBounds(p0, p1, p2))
	return nil
}

// Flush publishes the back buffer.
func (s *Image) Flush() error {
	s.flush()
	return nil
}

func (s *Image) flush() image.Rectangle {
	s.mu.Lock()
	defer s.mu.Unlock()
	dirty := s.dirty
	draw.Draw(s.front, dirty, s.back, dirty.Min, draw.Src)
	s.dirty = image.Rectangle{}
	return dirty
}

// Image returns a copy of the surface as of the last Flush.
func (s *Image) Image() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	img := image.NewRGBA(s.front.Bounds())
	copy(img.Pix, s.front.Pix)
	return img
}

// SavePNG writes the flushed surface to a PNG file.
func (s *Image) SavePNG(path string) error {
	return draw2dimg.SaveToPngFile(path, s.Image())
}

func (s *Image) markDirty(r image.Rectangle) {
	s.dirty = s.dirty.Union(r.Intersect(s.back.Bounds()))
}

// triangleBounds returns the pixel rectangle covering the triangle with a one
// pixel margin for antialiased edges.
func triangleBounds(p0, p1, p2 image.Point) image.Rectangle {
	r := image.Rectangle{Min: p0, Max: p0}
	for _, p := range []image.Point{p1, p2} {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	return r.Inset(-1)
}
