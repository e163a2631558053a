package main

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"portfolio-backdrop/internal/config"
	"portfolio-backdrop/internal/engine3D"
	"portfolio-backdrop/internal/engine3D/scene"
	"portfolio-backdrop/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Window struct {
	app           *app
	scene         *scene.Scene
	clock         *engine3D.LoopClock
	pointerSource string
	lastFrameTime time.Time
}

func NewWindow(a *app) *Window {
	cfg := a.Config()
	window := &Window{
		app:           a,
		scene:         scene.NewScene(cfg, a.sim.Options()),
		clock:         engine3D.NewLoopClock(),
		pointerSource: cfg.Pointer.Source,
		lastFrameTime: time.Now(),
	}

	a.sim.Attach(window.clock, a.renderers(window.scene))
	return window
}

func (window *Window) Run(ctx context.Context) {
	for !rl.WindowShouldClose() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		window.Update()

		rl.BeginDrawing()
		x, y := window.app.pointer.Load()
		window.scene.Draw(x, y)
		rl.EndDrawing()
	}
}

func (window *Window) Update() {
	currentTime := time.Now()
	deltaTime := currentTime.Sub(window.lastFrameTime).Seconds()
	window.lastFrameTime = currentTime

	select {
	case cfg := <-window.app.reloads:
		window.scene.Apply(cfg)
		rl.SetTargetFPS(int32(cfg.Window.FPS))
	default:
	}

	// Update Mouse using Raylib's built-in function
	mPos := rl.GetMousePosition()
	mouseX, mouseY := float64(mPos.X), float64(mPos.Y)
	screenWidth := rl.GetScreenWidth()
	screenHeight := rl.GetScreenHeight()
	inside := rl.IsCursorOnScreen()

	if window.pointerSource == config.PointerWindow && inside {
		window.app.pointer.StorePixels(mouseX, mouseY, screenWidth, screenHeight)
	}

	window.scene.Update(deltaTime, mouseX, mouseY, inside)

	// one simulation step per displayed frame
	window.clock.AdvanceTo(currentTime)
}

// runWindow opens the raylib window. When no window can be created it
// falls back to headless mode so recording and the inspector keep working.
func runWindow(ctx context.Context) error {
	cfg := settings

	a, err := newApp(cfg, settingsPath)
	if err != nil {
		return err
	}
	defer a.Close()

	rl.SetTraceLogCallback(utils.RaylibLogCallback)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	if !rl.IsWindowReady() {
		utils.Warn("No window could be created, running headless")
		return runHeadless(ctx, a, 0)
	}
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Window.FPS))
	if cfg.Cursor.Enabled {
		rl.HideCursor()
	}

	sctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(sctx)
	a.startServices(gctx, g)

	window := NewWindow(a)
	utils.Info("Window: %dx%d, %d particles", cfg.Window.Width, cfg.Window.Height, cfg.Field.Count)
	window.Run(gctx)

	a.sim.Detach()
	cancel()
	return g.Wait()
}
