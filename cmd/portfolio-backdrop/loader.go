package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"portfolio-backdrop/internal/config"
	"portfolio-backdrop/internal/engine3D/particle"
	"portfolio-backdrop/internal/inspect"
	"portfolio-backdrop/internal/record"
	"portfolio-backdrop/internal/utils"
)

// loadSettings resolves the configuration for every subcommand: .env, then
// the YAML file, then BACKDROP_* variables, then command-line flags.
func loadSettings(cmd *cobra.Command, args []string) error {
	if debugFlag {
		utils.SetLevel(utils.LevelDebug)
		utils.ShowDebugUI = true
	}

	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}

	settingsPath = utils.ResolveConfigPath(configPath)
	cfg, err := config.Load(settingsPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}

	if inspectAddr != "" {
		cfg.Inspector.Addr = inspectAddr
	}
	if recordPath != "" {
		cfg.Recorder.Path = recordPath
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if !debugFlag {
		level, err := utils.ParseLogLevel(cfg.Logging.Level)
		if err != nil {
			return err
		}
		utils.SetLevel(level)
	}

	if settingsPath != "" {
		utils.Info("Config loaded from %s", settingsPath)
	} else {
		utils.Debug("No config file found, using defaults")
	}
	settings = cfg
	return nil
}

// app is the simulator plus the outputs shared by every display mode.
type app struct {
	cfgMu sync.RWMutex
	cfg   *config.Config
	path  string

	pointer  *particle.Pointer
	sim      *particle.Simulator
	snap     *inspect.Snapshotter
	server   *inspect.Server
	recorder *record.Writer

	// reloads carries live config edits to the thread that owns the display.
	reloads chan *config.Config
}

func newApp(cfg *config.Config, path string) (*app, error) {
	pointer := particle.NewPointer(0, 0)
	a := &app{
		cfg:     cfg,
		path:    path,
		pointer: pointer,
		sim:     particle.NewSimulator(cfg.ParticleOptions(), pointer),
		reloads: make(chan *config.Config, 1),
	}

	if cfg.Inspector.Addr != "" {
		a.snap = inspect.NewSnapshotter(cfg.Inspector.SnapshotEvery, cfg.Field.HalfExtent, pointer)
		a.server = inspect.NewServer(a.snap, a.Config)
	}

	if cfg.Recorder.Path != "" {
		w, err := record.Create(cfg.Recorder.Path, cfg.Field.Count, cfg.Recorder.Every)
		if err != nil {
			return nil, fmt.Errorf("open recording: %w", err)
		}
		a.recorder = w
		utils.Info("Recording frames to %s", cfg.Recorder.Path)
	}

	return a, nil
}

// Config returns the live configuration.
func (a *app) Config() *config.Config {
	a.cfgMu.RLock()
	defer a.cfgMu.RUnlock()
	return a.cfg
}

// renderers fans frames out to primary and the optional outputs.
func (a *app) renderers(primary particle.Renderer) particle.Renderers {
	rs := particle.Renderers{primary}
	if a.snap != nil {
		rs = append(rs, a.snap)
	}
	if a.recorder != nil {
		rs = append(rs, a.recorder)
	}
	return rs
}

// startServices launches the inspector, the desktop pointer poller and the
// config watcher under g. They all stop when ctx is done.
func (a *app) startServices(ctx context.Context, g *errgroup.Group) {
	cfg := a.Config()

	if a.server != nil {
		addr := cfg.Inspector.Addr
		g.Go(func() error {
			return a.server.Serve(ctx, addr)
		})
	}

	if cfg.Pointer.Source == config.PointerDesktop {
		interval := cfg.PointerPollInterval()
		g.Go(func() error {
			pollDesktopPointer(ctx, a.pointer, interval)
			return nil
		})
	}

	if a.path != "" {
		w, err := config.NewWatcher(a.path, a.onConfigChange)
		if err != nil {
			utils.Warn("Live reload disabled: %v", err)
			return
		}
		if err := w.Start(ctx); err != nil {
			utils.Warn("Live reload disabled: %v", err)
			w.Stop()
			return
		}
		g.Go(func() error {
			<-ctx.Done()
			w.Stop()
			return nil
		})
	}
}

func (a *app) onConfigChange(cfg *config.Config) {
	old := a.Config()
	if old.Field != cfg.Field || old.Pointer != cfg.Pointer {
		utils.Warn("Field and pointer settings take effect on restart")
	}
	if old.Appearance.RotationRate != cfg.Appearance.RotationRate {
		a.sim.SetRotationRate(cfg.Appearance.RotationRate)
	}

	a.cfgMu.Lock()
	a.cfg = cfg
	a.cfgMu.Unlock()

	// keep only the newest edit
	select {
	case <-a.reloads:
	default:
	}
	a.reloads <- cfg
}

// Close stops the simulation and flushes the recording.
func (a *app) Close() {
	a.sim.Detach()
	if a.recorder != nil {
		if err := a.recorder.Close(); err != nil {
			utils.Error("Recorder: %v", err)
		} else {
			utils.Info("Recorded %d frames", a.recorder.Written())
		}
	}
}

func pollDesktopPointer(ctx context.Context, pointer *particle.Pointer, interval time.Duration) {
	desktop, err := utils.NewDesktopPointer()
	if err != nil {
		utils.Warn("Desktop pointer unavailable, pointer parked at centre: %v", err)
		return
	}
	defer desktop.Close()

	w, h := desktop.ScreenSize()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			x, y, err := desktop.Position()
			if err != nil {
				utils.Debug("Desktop pointer: %v", err)
				continue
			}
			pointer.StorePixels(float64(x), float64(y), w, h)
		}
	}
}
