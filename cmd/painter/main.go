// Command painter draws a scene of prisms back to front, one vertex and one
// triangle at a time.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"

	"github.com/fogleman/fauxgl"
	"github.com/joho/godotenv"
	"github.com/soypat/painter"
	"github.com/soypat/painter/internal/window"
	"github.com/soypat/painter/publish"
	"github.com/soypat/painter/render"
	"github.com/soypat/painter/scene"
	"github.com/soypat/painter/surface"
	"golang.org/x/image/colornames"
)

type flags struct {
	cfg       render.Config
	fov       float64
	backend   string
	pngPath   string
	refPath   string
	stlPath   string
	scenePath string
	bucket    string
	key       string
	supersamp int
}

func main() {
	log.SetFlags(log.Ltime)
	log.SetPrefix("painter: ")
	_ = godotenv.Load()

	var f flags
	f.cfg = render.DefaultConfig()
	flag.IntVar(&f.cfg.Size, "size", f.cfg.Size, "Side of the square screen in pixels.")
	flag.Float64Var(&f.fov, "fov", painter.DefaultCamera().FOV, "Camera field of view in degrees.")
	flag.IntVar(&f.cfg.Frames, "frames", 0, "Stop after N frames (0 = run forever).")
	flag.DurationVar(&f.cfg.Pacing.Vertex, "vertex-pause", f.cfg.Pacing.Vertex, "Pause after each vertex marker.")
	flag.DurationVar(&f.cfg.Pacing.Triangle, "triangle-pause", f.cfg.Pacing.Triangle, "Pause after each triangle.")
	flag.DurationVar(&f.cfg.Pacing.Frame, "frame-pause", f.cfg.Pacing.Frame, "Pause after each frame.")
	flag.StringVar(&f.backend, "backend", "window", "Surface to paint on: image, faux or window.")
	flag.IntVar(&f.supersamp, "supersample", 2, "Supersampling factor of the faux backend.")
	flag.StringVar(&f.pngPath, "png", "", "Write the last painted frame to a PNG file.")
	flag.StringVar(&f.refPath, "reference", "", "Write a depth buffered rendering of the last frame to a PNG file.")
	flag.StringVar(&f.stlPath, "stl", "", "Write the scene to a binary STL file.")
	flag.StringVar(&f.scenePath, "scene", "", "Read the scene from a binary STL file instead of the built-in prisms.")
	flag.StringVar(&f.bucket, "s3-bucket", "", "Upload the last frame as PNG to this bucket (overrides S3_BUCKET).")
	flag.StringVar(&f.key, "s3-key", "painter/frame.png", "Object key of the uploaded frame.")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err := run(ctx, f)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}

func run(ctx context.Context, f flags) error {
	cam := painter.DefaultCamera()
	cam.FOV = f.fov
	src, err := source(f.scenePath)
	if err != nil {
		return err
	}
	if f.stlPath != "" {
		tris, err := src()
		if err != nil {
			return err
		}
		if err := render.CreateSTL(f.stlPath, render.NewSliceRenderer(tris)); err != nil {
			return fmt.Errorf("writing scene STL: %w", err)
		}
		log.Printf("wrote %d triangles to %s", len(tris), f.stlPath)
	}

	var (
		surf     render.Surface
		snapshot func() image.Image
		win      *window.Window
		onFrame  func(n int)
	)
	switch f.backend {
	case "image":
		s, err := surface.NewImage(f.cfg.Size)
		if err != nil {
			return err
		}
		surf, snapshot = s, func() image.Image { return s.Image() }
	case "faux":
		s, err := surface.NewFaux(f.cfg.Size, f.supersamp)
		if err != nil {
			return err
		}
		surf, snapshot = s, s.Image
	case "window":
		win = window.New(f.cfg.Size)
		s, err := surface.NewDisplay(win)
		if err != nil {
			return err
		}
		surf, snapshot = s, func() image.Image { return s.Image() }
		onFrame = func(n int) {
			s.SetCaption(fmt.Sprintf("frame %d", n+1), colornames.Lightgray)
			if err := s.Flush(); err != nil {
				log.Printf("caption: %v", err)
			}
		}
	default:
		return fmt.Errorf("unknown backend %q", f.backend)
	}

	anim, err := render.NewAnimator(cam, src, surf, nil, f.cfg)
	if err != nil {
		return err
	}
	var last render.Frame
	anim.OnFrame = func(n int, frame render.Frame) {
		last = frame
		log.Printf("frame %d: painted %d triangles", n+1, len(frame.Items))
		if onFrame != nil {
			onFrame(n)
		}
	}

	if win != nil {
		// ebiten must own the main goroutine.
		err = runWindowed(ctx, anim.Run, func(ctx context.Context) error {
			return win.Run(ctx, "painter")
		})
	} else {
		err = anim.Run(ctx)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if f.refPath != "" {
		ref, err := surface.Reference(cam, last, f.cfg.Size, 2, f.cfg.Background)
		if err != nil {
			return err
		}
		if err := savePNG(f.refPath, ref); err != nil {
			return err
		}
		log.Printf("wrote reference %s", f.refPath)
	}
	return output(ctx, f, snapshot())
}

// source returns the built-in scene or one read from an STL file.
func source(path string) (render.Source, error) {
	if path == "" {
		return render.FromRenderer(func() render.Renderer {
			return scene.NewReader(scene.Default())
		}), nil
	}
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	tris, err := render.ReadSTL(fp)
	if errors.Is(err, render.ErrNormalMismatch) {
		log.Printf("%s: %v", path, err)
	} else if err != nil {
		return nil, fmt.Errorf("reading scene %s: %w", path, err)
	}
	log.Printf("read %d triangles from %s", len(tris), path)
	return render.FromRenderer(func() render.Renderer {
		return render.NewSliceRenderer(tris)
	}), nil
}

func output(ctx context.Context, f flags, img image.Image) error {
	if f.pngPath != "" {
		if err := savePNG(f.pngPath, img); err != nil {
			return err
		}
		log.Printf("wrote %s", f.pngPath)
	}
	cfg := publish.S3ConfigFromEnv()
	if f.bucket != "" {
		cfg.Bucket = f.bucket
	}
	if cfg.Bucket == "" {
		return nil
	}
	up, err := publish.NewS3(cfg)
	if err != nil {
		return err
	}
	// Upload even after Ctrl-C stopped painting.
	n, err := up.PutPNG(context.WithoutCancel(ctx), f.key, img)
	if err != nil {
		return err
	}
	log.Printf("uploaded %s to %s (%d bytes)", f.key, cfg.Bucket, n)
	return nil
}

func savePNG(path string, img image.Image) error {
	if err := fauxgl.SavePNG(path, img); err != nil {
		return fmt.Errorf("saving frame: %w", err)
	}
	return nil
}

// runWindowed calls show on the calling goroutine while paint runs on
// another. Closing the window stops painting and the window is closed once
// paint returns, so a frame limited run exits after its last frame.
func runWindowed(ctx context.Context, paint, show func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	done := make(chan error, 1)
	go func() {
		err := paint(ctx)
		cancel()
		done <- err
	}()
	serr := show(ctx)
	cancel()
	err := <-done
	if serr != nil {
		return serr
	}
	return err
}
