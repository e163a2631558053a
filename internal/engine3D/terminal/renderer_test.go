package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backdrop/internal/config"
	"portfolio-backdrop/internal/engine3D/particle"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func plainConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Cube.Enabled = false
	return cfg
}

func cellRune(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func TestRenderFrame_ProjectsCentre(t *testing.T) {
	screen := newScreen(t)
	r := New(screen, plainConfig(), particle.NewPointer(0, 0))

	r.RenderFrame(particle.Frame{
		Positions: []float32{
			0, 0, 0, // centre of the field
			0, 0, 20, // behind the camera
		},
		Count: 2,
		Seq:   1,
	})

	assert.Equal(t, '+', cellRune(screen, 40, 12))
	assert.Equal(t, uint64(1), r.Frames())

	drawn := 0
	for y := 0; y < 24; y++ {
		for x := 0; x < 80; x++ {
			if cellRune(screen, x, y) != ' ' {
				drawn++
			}
		}
	}
	assert.Equal(t, 1, drawn)
}

func TestApply_KeepsDepthBands(t *testing.T) {
	screen := newScreen(t)
	cfg := plainConfig()
	r := New(screen, cfg, particle.NewPointer(0, 0))
	near, far := r.nearDepth, r.farDepth

	next := *cfg
	next.Field.HalfExtent = cfg.Field.HalfExtent * 4
	r.Apply(&next)

	assert.Equal(t, near, r.nearDepth)
	assert.Equal(t, far, r.farDepth)
}

func TestRenderFrame_RotationMovesPoints(t *testing.T) {
	screen := newScreen(t)
	r := New(screen, plainConfig(), particle.NewPointer(0, 0))

	// a point on +X swings toward the camera side under a quarter turn
	frame := particle.Frame{Positions: []float32{5, 0, 0}, Count: 1}
	r.RenderFrame(frame)
	assert.Equal(t, ' ', cellRune(screen, 40, 12))

	frame.RotationY = -1.5707964
	r.RenderFrame(frame)
	// now at (0, 0, 5): on the centre line and nearer the camera
	assert.Equal(t, '*', cellRune(screen, 40, 12))
}

func TestRenderFrame_Cube(t *testing.T) {
	screen := newScreen(t)
	r := New(screen, config.DefaultConfig(), particle.NewPointer(0, 0))

	r.RenderFrame(particle.Frame{})

	found := false
	for y := 0; y < 24 && !found; y++ {
		for x := 0; x < 80; x++ {
			if cellRune(screen, x, y) == '·' {
				found = true
				break
			}
		}
	}
	assert.True(t, found, "cube edges not drawn")
}

func TestHandleEvent(t *testing.T) {
	screen := newScreen(t)
	pointer := particle.NewPointer(0, 0)
	r := New(screen, plainConfig(), pointer)

	assert.False(t, r.HandleEvent(tcell.NewEventMouse(79, 0, tcell.ButtonNone, tcell.ModNone)))
	x, y := pointer.Load()
	assert.InDelta(t, 0.9875, x, 1e-6)
	assert.InDelta(t, 1-1.0/24, y, 1e-6)

	assert.False(t, r.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone)))
	assert.True(t, r.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.True(t, r.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestHandleEvent_Resize(t *testing.T) {
	screen := newScreen(t)
	r := New(screen, plainConfig(), particle.NewPointer(0, 0))

	screen.SetSize(40, 10)
	r.HandleEvent(tcell.NewEventResize(40, 10))

	r.RenderFrame(particle.Frame{Positions: []float32{0, 0, 0}, Count: 1})
	assert.Equal(t, '+', cellRune(screen, 20, 5))
}

func TestRun_QuitKey(t *testing.T) {
	screen := newScreen(t)
	r := New(screen, plainConfig(), particle.NewPointer(0, 0))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.NoError(t, screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.ErrorIs(t, <-done, ErrQuit)
}

func TestRun_ContextCancel(t *testing.T) {
	screen := newScreen(t)
	r := New(screen, plainConfig(), particle.NewPointer(0, 0))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
