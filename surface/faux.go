package surface

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
)

// circleSegments is the number of triangles used to approximate a circle.
const circleSegments = 24

// Faux is a surface rasterized by fauxgl. Drawing happens at Supersample
// times the output resolution and is downsampled on Flush. Depth testing and
// face culling are disabled so triangles are painted in call order.
type Faux struct {
	size   int
	scale  int
	ctx    *fauxgl.Context
	mu     sync.Mutex
	output image.Image
}

// NewFaux returns a size by size fauxgl surface. supersample below 1 is
// treated as 1.
func NewFaux(size, supersample int) (*Faux, error) {
	if size <= 0 {
		return nil, ErrSize
	}
	if supersample < 1 {
		supersample = 1
	}
	ctx := fauxgl.NewContext(size*supersample, size*supersample)
	ctx.Cull = fauxgl.CullNone
	ctx.ReadDepth = false
	ctx.WriteDepth = false
	f := &Faux{size: size, scale: supersample, ctx: ctx}
	f.output = f.downsample()
	return f, nil
}

func (f *Faux) Clear(c color.Color) error {
	f.ctx.ClearColorBufferWith(fauxgl.MakeColor(c))
	return nil
}

func (f *Faux) FillTriangle(p0, p1, p2 image.Point, c color.Color) error {
	f.ctx.Shader = fauxgl.NewSolidColorShader(fauxgl.Identity(), fauxgl.MakeColor(c))
	f.ctx.DrawTriangle(fauxgl.NewTriangleForPoints(f.ndc(p0), f.ndc(p1), f.ndc(p2)))
	return nil
}

func (f *Faux) FillCircle(center image.Point, radius float64, c color.Color) error {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return fmt.Errorf("%w: got %g", ErrRadius, radius)
	}
	f.ctx.Shader = fauxgl.NewSolidColorShader(fauxgl.Identity(), fauxgl.MakeColor(c))
	mid := f.ndc(center)
	// Radius in normalized device units.
	r := 2 * radius / float64(f.size)
	prev := fauxgl.V(mid.X+r, mid.Y, 0)
	for i := 1; i <= circleSegments; i++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / circleSegments)
		next := fauxgl.V(mid.X+r*cos, mid.Y+r*sin, 0)
		f.ctx.DrawTriangle(fauxgl.NewTriangleForPoints(mid, prev, next))
		prev = next
	}
	return nil
}

// Flush downsamples the rendered buffer into the output image.
func (f *Faux) Flush() error {
	img := f.downsample()
	f.mu.Lock()
	f.output = img
	f.mu.Unlock()
	return nil
}

// Image returns the output image as of the last Flush.
func (f *Faux) Image() image.Image {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.output
}

// SavePNG writes the flushed output to a PNG file.
func (f *Faux) SavePNG(path string) error {
	return fauxgl.SavePNG(path, f.Image())
}

func (f *Faux) downsample() image.Image {
	img := f.ctx.Image()
	if f.scale == 1 {
		// The context image is its live color buffer.
		out := image.NewRGBA(img.Bounds())
		draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
		return out
	}
	return resize.Resize(uint(f.size), uint(f.size), img, resize.Bilinear)
}

// ndc converts output pixel coordinates to fauxgl normalized device
// coordinates, where y grows upwards.
func (f *Faux) ndc(p image.Point) fauxgl.Vector {
	s := float64(f.size)
	return fauxgl.V(2*float64(p.X)/s-1, 1-2*float64(p.Y)/s, 0)
}
