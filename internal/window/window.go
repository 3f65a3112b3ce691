// Package window shows a square framebuffer in a desktop window. The
// framebuffer is a drivers.Displayer so surface.Display can paint on it.
package window

import (
	"context"
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// Window is a framebuffer shown by ebiten. SetPixel writes to a back buffer
// and Display publishes it to the window.
type Window struct {
	size  int
	back  *image.RGBA
	mu    sync.Mutex
	front *image.RGBA
	fbImg *ebiten.Image
	ctx   context.Context
}

// New returns a Window of size by size pixels.
func New(size int) *Window {
	r := image.Rect(0, 0, size, size)
	return &Window{
		size:  size,
		back:  image.NewRGBA(r),
		front: image.NewRGBA(r),
	}
}

func (w *Window) Size() (x, y int16) { return int16(w.size), int16(w.size) }

func (w *Window) SetPixel(x, y int16, c color.RGBA) {
	w.back.SetRGBA(int(x), int(y), c)
}

// Display publishes the back buffer to the window.
func (w *Window) Display() error {
	w.mu.Lock()
	copy(w.front.Pix, w.back.Pix)
	w.mu.Unlock()
	return nil
}

// Run opens the window and blocks until it is closed or ctx is done. It
// must be called from the main goroutine.
func (w *Window) Run(ctx context.Context, title string) error {
	w.ctx = ctx
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w.size, w.size)
	ebiten.SetTPS(30)
	return ebiten.RunGame(w)
}

func (w *Window) Update() error {
	if w.ctx != nil && w.ctx.Err() != nil {
		return ebiten.Termination
	}
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	if w.fbImg == nil {
		w.fbImg = ebiten.NewImage(w.size, w.size)
	}
	w.mu.Lock()
	w.fbImg.WritePixels(w.front.Pix)
	w.mu.Unlock()
	screen.DrawImage(w.fbImg, nil)
}

func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.size, w.size
}
