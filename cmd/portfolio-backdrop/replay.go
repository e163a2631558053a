package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gdamore/tcell/v2"

	"portfolio-backdrop/internal/config"
	"portfolio-backdrop/internal/engine3D/particle"
	"portfolio-backdrop/internal/engine3D/terminal"
	"portfolio-backdrop/internal/record"
)

// summariseRecording prints one line per recorded frame and a total.
func summariseRecording(out io.Writer, path string) error {
	r, err := record.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	fmt.Fprintf(out, "%s: %d particles per frame\n", path, r.Count())

	frames := 0
	var first, last record.Frame
	for {
		f, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if frames == 0 {
			first = f
		}
		last = f
		frames++

		lo, hi := f.Bounds()
		fmt.Fprintf(out, "  seq %6d  t=%8.3fs  rot=%.4f  min=%7.3f  max=%7.3f\n",
			f.Seq, f.Elapsed.Seconds(), f.RotationY, lo, hi)
	}

	if frames == 0 {
		fmt.Fprintln(out, "no frames")
		return nil
	}
	fmt.Fprintf(out, "%d frames, seq %d..%d, %.3fs\n",
		frames, first.Seq, last.Seq, (last.Elapsed - first.Elapsed).Seconds())
	return nil
}

// playRecording draws a recording into the terminal at fps.
func playRecording(ctx context.Context, path string, fps int) error {
	r, err := record.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	return playInto(ctx, r, screen, fps)
}

func playInto(ctx context.Context, r *record.Reader, screen tcell.Screen, fps int) error {
	if fps <= 0 {
		fps = 60
	}
	cfg := settings
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	view := terminal.New(screen, cfg, particle.NewPointer(0, 0))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	quit := make(chan error, 1)
	go func() { quit <- view.Run(ctx) }()
	defer func() {
		cancel()
		<-quit
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		f, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		view.RenderFrame(particle.Frame{
			Positions: f.Positions,
			Count:     f.Count(),
			Seq:       f.Seq,
			Elapsed:   f.Elapsed,
			RotationY: f.RotationY,
		})

		select {
		case <-ctx.Done():
			return nil
		case err := <-quit:
			quit <- err
			return nil
		case <-ticker.C:
		}
	}
}
