package surface_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/soypat/painter/render"
	"github.com/soypat/painter/surface"
	"gonum.org/v1/plot/cmpimg"
)

var (
	black = color.RGBA{A: 255}
	red   = color.RGBA{R: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
)

// Compile time check.
var (
	_ render.Surface = (*surface.Image)(nil)
	_ render.Surface = (*surface.Faux)(nil)
	_ render.Surface = (*surface.Display)(nil)
)

// snapshotter is a surface with a way to read back what was flushed.
type snapshotter struct {
	render.Surface
	Image func() image.Image
}

func surfaces(t *testing.T, size int) map[string]snapshotter {
	img, err := surface.NewImage(size)
	if err != nil {
		t.Fatal(err)
	}
	faux, err := surface.NewFaux(size, 1)
	if err != nil {
		t.Fatal(err)
	}
	faux4, err := surface.NewFaux(size, 4)
	if err != nil {
		t.Fatal(err)
	}
	disp, err := surface.NewDisplay(newFakeDisplay(size, size))
	if err != nil {
		t.Fatal(err)
	}
	return map[string]snapshotter{
		"image":   {img, func() image.Image { return img.Image() }},
		"faux":    {faux, faux.Image},
		"faux4":   {faux4, faux4.Image},
		"display": {disp, func() image.Image { return disp.Image() }},
	}
}

func TestSurfacePrimitives(t *testing.T) {
	const size = 100
	for name, s := range surfaces(t, size) {
		if err := s.Clear(black); err != nil {
			t.Fatal(err)
		}
		if err := s.FillTriangle(image.Pt(10, 10), image.Pt(90, 10), image.Pt(10, 90), red); err != nil {
			t.Fatal(err)
		}
		if err := s.FillCircle(image.Pt(75, 75), 10, blue); err != nil {
			t.Fatal(err)
		}
		if err := s.Flush(); err != nil {
			t.Fatal(err)
		}
		img := s.Image()
		for _, test := range []struct {
			p    image.Point
			want color.RGBA
		}{
			{image.Pt(25, 25), red},
			{image.Pt(75, 75), blue},
			{image.Pt(95, 5), black},
			{image.Pt(5, 95), black},
		} {
			if got := rgba(img.At(test.p.X, test.p.Y)); got != test.want {
				t.Errorf("%s: pixel %v is %v, want %v", name, test.p, got, test.want)
			}
		}
	}
}

func TestSurfaceDrawOrder(t *testing.T) {
	for name, s := range surfaces(t, 64) {
		s.Clear(black)
		s.FillTriangle(image.Pt(0, 0), image.Pt(64, 0), image.Pt(0, 64), red)
		// Later triangles paint over earlier ones regardless of winding.
		s.FillTriangle(image.Pt(10, 10), image.Pt(10, 40), image.Pt(40, 10), blue)
		s.Flush()
		if got := rgba(s.Image().At(15, 15)); got != blue {
			t.Errorf("%s: overlapping pixel is %v, want %v", name, got, blue)
		}
	}
}

func TestSurfaceUnclipped(t *testing.T) {
	for name, s := range surfaces(t, 32) {
		s.Clear(black)
		if err := s.FillTriangle(image.Pt(-100, -100), image.Pt(200, -100), image.Pt(-100, 200), red); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if err := s.FillCircle(image.Pt(-50, 16), 3, blue); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		s.Flush()
		if got := rgba(s.Image().At(16, 16)); got != red {
			t.Errorf("%s: got %v, want %v", name, got, red)
		}
	}
}

func TestSurfaceBadRadius(t *testing.T) {
	for name, s := range surfaces(t, 10) {
		for _, r := range []float64{0, -1} {
			if err := s.FillCircle(image.Pt(5, 5), r, red); !errors.Is(err, surface.ErrRadius) {
				t.Errorf("%s: radius %g got %v", name, r, err)
			}
		}
	}
}

func TestNewSurfaceSize(t *testing.T) {
	if _, err := surface.NewImage(0); !errors.Is(err, surface.ErrSize) {
		t.Error(err)
	}
	if _, err := surface.NewFaux(-1, 1); !errors.Is(err, surface.ErrSize) {
		t.Error(err)
	}
	if _, err := surface.NewDisplay(newFakeDisplay(0, 10)); !errors.Is(err, surface.ErrSize) {
		t.Error(err)
	}
}

func TestImageFlushPublishes(t *testing.T) {
	s, _ := surface.NewImage(16)
	s.Clear(red)
	if got := rgba(s.Image().At(8, 8)); got == red {
		t.Fatal("drawing visible before Flush")
	}
	s.Flush()
	if got := rgba(s.Image().At(8, 8)); got != red {
		t.Fatalf("got %v after Flush, want %v", got, red)
	}
	snap := s.Image()
	s.Clear(blue)
	s.Flush()
	if rgba(snap.At(8, 8)) != red {
		t.Error("Image must return a copy")
	}
}

func TestDisplayMatchesImage(t *testing.T) {
	const size = 48
	dev := newFakeDisplay(size, size+20)
	disp, err := surface.NewDisplay(dev)
	if err != nil {
		t.Fatal(err)
	}
	img, _ := surface.NewImage(size)
	for _, s := range []render.Surface{disp, img} {
		s.Clear(black)
		s.FillTriangle(image.Pt(3, 3), image.Pt(40, 8), image.Pt(20, 44), red)
		s.Flush()
		s.FillCircle(image.Pt(30, 30), 6, blue)
		s.Flush()
	}
	if dev.displays != 2 {
		t.Errorf("device Display called %d times, want 2", dev.displays)
	}
	got := dev.img.SubImage(image.Rect(0, 0, size, size))
	if !equalPNG(t, got, img.Image()) {
		t.Error("device contents differ from image surface")
	}
	// Second flush only sends the circle area.
	if dev.lastFlushPixels >= size*size {
		t.Errorf("second flush sent %d pixels, expected only the changed area", dev.lastFlushPixels)
	}
}

func TestDisplayCaption(t *testing.T) {
	const size = 64
	dev := newFakeDisplay(size, size)
	disp, _ := surface.NewDisplay(dev)
	disp.Clear(black)
	disp.SetCaption("frame 1", red)
	disp.Flush()
	if !hasColor(dev.img, image.Rect(0, 0, size, 16), red) {
		t.Fatal("caption not drawn")
	}
	disp.SetCaption("", red)
	disp.Flush()
	if hasColor(dev.img, dev.img.Bounds(), red) {
		t.Error("caption not removed")
	}
	if hasColor(disp.Image(), disp.Image().Bounds(), red) {
		t.Error("caption leaked into surface image")
	}
}

func rgba(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

func hasColor(img image.Image, r image.Rectangle, c color.RGBA) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if rgba(img.At(x, y)) == c {
				return true
			}
		}
	}
	return false
}

func equalPNG(t *testing.T, a, b image.Image) bool {
	var ba, bb bytes.Buffer
	if err := png.Encode(&ba, a); err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(&bb, b); err != nil {
		t.Fatal(err)
	}
	equal, err := cmpimg.EqualApprox("png", ba.Bytes(), bb.Bytes(), 0)
	if err != nil {
		t.Fatal(err)
	}
	return equal
}

// fakeDisplay is an in-memory drivers.Displayer.
type fakeDisplay struct {
	img             *image.RGBA
	pixels          int
	displays        int
	lastFlushPixels int
}

func newFakeDisplay(w, h int) *fakeDisplay {
	return &fakeDisplay{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (d *fakeDisplay) Size() (x, y int16) {
	b := d.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (d *fakeDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.pixels++
	d.img.SetRGBA(int(x), int(y), c)
}

func (d *fakeDisplay) Display() error {
	d.displays++
	d.lastFlushPixels = d.pixels
	d.pixels = 0
	return nil
}
