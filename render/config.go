package render

import (
	"errors"
	"image/color"
	"time"

	"golang.org/x/image/colornames"
)

// Pacing sets the pauses of incremental drawing. A zero duration does not
// pause.
type Pacing struct {
	// Vertex is the pause after each vertex marker.
	Vertex time.Duration
	// Triangle is the pause after each filled triangle.
	Triangle time.Duration
	// Frame is the pause after a complete frame.
	Frame time.Duration
}

// DefaultPacing returns 300ms per vertex, 600ms per triangle and 10s per frame.
func DefaultPacing() Pacing {
	return Pacing{
		Vertex:   300 * time.Millisecond,
		Triangle: 600 * time.Millisecond,
		Frame:    10 * time.Second,
	}
}

// Crosshair is a cross drawn at the screen center after every clear.
type Crosshair struct {
	Color     color.RGBA
	Thickness int
	Length    int
}

// Config controls how the Animator paints frames.
type Config struct {
	// Size is the side of the square screen in pixels.
	Size int
	// VertexRadius is the radius of the marker drawn on each vertex.
	// Zero disables vertex markers.
	VertexRadius float64
	Background   color.RGBA
	// Crosshair is not drawn when nil.
	Crosshair *Crosshair
	Pacing    Pacing
	// Frames limits the number of frames rendered. Zero renders until
	// the context is cancelled.
	Frames int
}

// DefaultConfig returns an 800 pixel screen with a black background, a gray
// crosshair and default pacing.
func DefaultConfig() Config {
	return Config{
		Size:         800,
		VertexRadius: 2.5,
		Background:   color.RGBA{A: 255},
		Crosshair: &Crosshair{
			Color:     colornames.Gray,
			Thickness: 5,
			Length:    50,
		},
		Pacing: DefaultPacing(),
	}
}

var (
	ErrScreenSize   = errors.New("screen size must be positive")
	ErrVertexRadius = errors.New("negative vertex radius")
	ErrFrameLimit   = errors.New("negative frame limit")
	ErrPause        = errors.New("negative pause")
	ErrCrosshair    = errors.New("negative crosshair dimensions")
)

func (c Config) validate() error {
	switch {
	case c.Size <= 0:
		return ErrScreenSize
	case c.VertexRadius < 0:
		return ErrVertexRadius
	case c.Frames < 0:
		return ErrFrameLimit
	case c.Pacing.Vertex < 0 || c.Pacing.Triangle < 0 || c.Pacing.Frame < 0:
		return ErrPause
	case c.Crosshair != nil && (c.Crosshair.Thickness < 0 || c.Crosshair.Length < 0):
		return ErrCrosshair
	}
	return nil
}
