package main

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"portfolio-backdrop/internal/config"
	"portfolio-backdrop/internal/engine3D"
	"portfolio-backdrop/internal/engine3D/particle"
	"portfolio-backdrop/internal/engine3D/terminal"
	"portfolio-backdrop/internal/utils"
)

func runTerminal(ctx context.Context) error {
	a, err := newApp(settings, settingsPath)
	if err != nil {
		return err
	}
	defer a.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	return driveTerminal(ctx, a, screen)
}

// driveTerminal runs the simulation into an initialised screen until the
// user quits or ctx is done.
func driveTerminal(ctx context.Context, a *app, screen tcell.Screen) error {
	cfg := a.Config()

	// Mouse events only steer the field when the window is the source.
	events := a.pointer
	if cfg.Pointer.Source != config.PointerWindow {
		events = particle.NewPointer(0, 0)
	}
	r := terminal.New(screen, cfg, events)

	g, ctx := errgroup.WithContext(ctx)
	a.startServices(ctx, g)

	clock := engine3D.NewTickerClock(cfg.Window.FPS)
	a.sim.Attach(clock, a.renderers(r))

	g.Go(func() error {
		defer a.sim.Detach()
		return clock.Run(ctx)
	})
	g.Go(func() error {
		return r.Run(ctx)
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case c := <-a.reloads:
				r.Apply(c)
			}
		}
	})

	err := g.Wait()
	utils.Debug("Terminal: drew %d frames", r.Frames())
	if errors.Is(err, terminal.ErrQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
