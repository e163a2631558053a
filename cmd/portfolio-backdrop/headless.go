package main

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"portfolio-backdrop/internal/engine3D"
	"portfolio-backdrop/internal/engine3D/particle"
	"portfolio-backdrop/internal/utils"
)

// runHeadless steps the field on a ticker with no display. frames <= 0
// runs until ctx is done.
func runHeadless(ctx context.Context, a *app, frames int) error {
	cfg := a.Config()

	g, ctx := errgroup.WithContext(ctx)
	a.startServices(ctx, g)

	clock := engine3D.NewTickerClock(cfg.Window.FPS)
	if frames > 0 {
		clock.StopAfter(uint64(frames))
	}

	// There is nothing to draw, but the step only runs with a renderer
	// attached; the discard renderer keeps it running.
	discard := particle.RendererFunc(func(particle.Frame) {})
	a.sim.Attach(clock, a.renderers(discard))
	utils.Info("Headless: %d particles at %d fps", cfg.Field.Count, cfg.Window.FPS)

	g.Go(func() error {
		err := clock.Run(ctx)
		a.sim.Detach()
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		if err == nil && frames > 0 {
			// frame budget reached: stop the services too
			return errFramesDone
		}
		return err
	})

	err := g.Wait()
	if errors.Is(err, errFramesDone) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

var errFramesDone = errors.New("frame budget reached")
