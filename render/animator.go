package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/soypat/painter"
	"github.com/soypat/painter/project"
)

// ErrNilArgument is returned by NewAnimator when the source or surface is nil.
var ErrNilArgument = errors.New("animator needs a scene source and a surface")

// Source returns the triangles of the scene. It is called once per frame.
type Source func() ([]painter.Triangle, error)

// FromRenderer returns a Source that reads a fresh Renderer every frame.
func FromRenderer(newRenderer func() Renderer) Source {
	return func() ([]painter.Triangle, error) {
		return RenderAll(newRenderer())
	}
}

// Animator repeatedly builds frames from a Source and paints them
// incrementally on a Surface.
type Animator struct {
	cfg  Config
	proj *project.Projector
	src  Source
	surf Surface
	pal  *Palette
	// OnFrame, if set, is called after each frame is painted and before
	// the frame pause.
	OnFrame func(n int, f Frame)
}

// NewAnimator returns an Animator for the camera. A nil pal uses
// NewPalette().
func NewAnimator(cam painter.Camera, src Source, surf Surface, pal *Palette, cfg Config) (*Animator, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("animator config: %w", err)
	}
	if src == nil || surf == nil {
		return nil, ErrNilArgument
	}
	proj, err := project.New(cam, cfg.Size)
	if err != nil {
		return nil, err
	}
	if pal == nil {
		pal = NewPalette()
	}
	return &Animator{cfg: cfg, proj: proj, src: src, surf: surf, pal: pal}, nil
}

// Run paints frames until the frame limit is reached, ctx is cancelled or
// an error occurs. No pause follows the last frame of a limited run.
// Surface failures are returned as *SurfaceError.
func (a *Animator) Run(ctx context.Context) error {
	for n := 0; a.cfg.Frames == 0 || n < a.cfg.Frames; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		tris, err := a.src()
		if err != nil {
			return fmt.Errorf("frame %d scene: %w", n, err)
		}
		frame := BuildFrame(a.proj, tris, a.pal)
		if err := a.Paint(ctx, frame); err != nil {
			return err
		}
		if a.OnFrame != nil {
			a.OnFrame(n, frame)
		}
		if n+1 == a.cfg.Frames {
			break
		}
		if err := pause(ctx, a.cfg.Pacing.Frame); err != nil {
			return err
		}
	}
	return nil
}

// Paint clears the surface, draws the crosshair and then every item in
// order: its vertex markers one at a time followed by the filled triangle,
// flushing and pausing after each.
func (a *Animator) Paint(ctx context.Context, f Frame) error {
	s := a.surf
	if err := s.Clear(a.cfg.Background); err != nil {
		return surfaceErr("clear", err)
	}
	if err := a.crosshair(); err != nil {
		return err
	}
	if err := s.Flush(); err != nil {
		return surfaceErr("flush", err)
	}
	for _, item := range f.Items {
		if a.cfg.VertexRadius > 0 {
			for _, p := range item.Points {
				if err := s.FillCircle(p, a.cfg.VertexRadius, item.Color); err != nil {
					return surfaceErr("fill circle", err)
				}
				if err := s.Flush(); err != nil {
					return surfaceErr("flush", err)
				}
				if err := pause(ctx, a.cfg.Pacing.Vertex); err != nil {
					return err
				}
			}
		}
		pts := item.Points
		if err := s.FillTriangle(pts[0], pts[1], pts[2], item.Color); err != nil {
			return surfaceErr("fill triangle", err)
		}
		if err := s.Flush(); err != nil {
			return surfaceErr("flush", err)
		}
		if err := pause(ctx, a.cfg.Pacing.Triangle); err != nil {
			return err
		}
	}
	return nil
}

func (a *Animator) crosshair() error {
	ch := a.cfg.Crosshair
	if ch == nil || ch.Thickness == 0 || ch.Length == 0 {
		return nil
	}
	c := a.cfg.Size / 2
	center := image.Pt(c, c)
	for _, r := range []image.Rectangle{
		centeredRect(center, ch.Thickness, ch.Length), // vertical
		centeredRect(center, ch.Length, ch.Thickness), // horizontal
	} {
		p0, p1 := r.Min, image.Pt(r.Max.X, r.Min.Y)
		p2, p3 := r.Max, image.Pt(r.Min.X, r.Max.Y)
		if err := a.surf.FillTriangle(p0, p1, p2, ch.Color); err != nil {
			return surfaceErr("fill crosshair", err)
		}
		if err := a.surf.FillTriangle(p0, p2, p3, ch.Color); err != nil {
			return surfaceErr("fill crosshair", err)
		}
	}
	return nil
}

// centeredRect returns a w by h rectangle whose center pixel is center.
func centeredRect(center image.Point, w, h int) image.Rectangle {
	tl := center.Sub(image.Pt((w-1)/2, (h-1)/2))
	return image.Rectangle{Min: tl, Max: tl.Add(image.Pt(w, h))}
}

// pause blocks for d or until ctx is done.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
