package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backdrop/internal/config"
	"portfolio-backdrop/internal/record"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Field.Count = 50
	cfg.Window.FPS = 1000
	cfg.Recorder.Path = filepath.Join(t.TempDir(), "field.pfr")
	return cfg
}

func TestRunHeadless_RecordsFrames(t *testing.T) {
	cfg := testConfig(t)
	a, err := newApp(cfg, "")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, runHeadless(ctx, a, 20))
	a.Close()
	assert.False(t, a.sim.Attached())

	var out bytes.Buffer
	require.NoError(t, summariseRecording(&out, cfg.Recorder.Path))
	assert.Contains(t, out.String(), "50 particles per frame")
	assert.Contains(t, out.String(), "20 frames, seq 1..20")
}

func TestRunHeadless_Cancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Recorder.Path = ""
	a, err := newApp(cfg, "")
	require.NoError(t, err)
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runHeadless(ctx, a, 0) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("headless run did not stop")
	}
}

func TestSummariseRecording_Errors(t *testing.T) {
	dir := t.TempDir()

	var out bytes.Buffer
	assert.Error(t, summariseRecording(&out, filepath.Join(dir, "missing.pfr")))

	junk := filepath.Join(dir, "junk.pfr")
	require.NoError(t, os.WriteFile(junk, []byte("definitely not frames"), 0644))
	assert.ErrorIs(t, summariseRecording(&out, junk), record.ErrBadMagic)
}

func simScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func TestDriveTerminal_PointerAndQuit(t *testing.T) {
	cfg := testConfig(t)
	cfg.Recorder.Path = ""
	a, err := newApp(cfg, "")
	require.NoError(t, err)
	defer a.Close()

	screen := simScreen(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- driveTerminal(ctx, a, screen) }()

	require.Eventually(t, func() bool {
		f := a.sim.Field()
		return f != nil
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, screen.PostEvent(tcell.NewEventMouse(0, 23, tcell.ButtonNone, tcell.ModNone)))
	require.NoError(t, screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("terminal run did not stop on q")
	}

	x, y := a.pointer.Load()
	assert.Less(t, x, float32(-0.9))
	assert.Less(t, y, float32(-0.9))
	assert.False(t, a.sim.Attached())
}

func TestPlayInto(t *testing.T) {
	cfg := testConfig(t)
	a, err := newApp(cfg, "")
	require.NoError(t, err)
	require.NoError(t, runHeadless(context.Background(), a, 5))
	a.Close()

	r, err := record.Open(cfg.Recorder.Path)
	require.NoError(t, err)
	defer r.Close()

	screen := simScreen(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	assert.NoError(t, playInto(ctx, r, screen, 1000))
}

func TestLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backdrop.yaml")
	require.NoError(t, os.WriteFile(path, []byte("field:\n  count: 99\n"), 0644))

	configPath, inspectAddr = path, "127.0.0.1:9999"
	defer func() {
		configPath, inspectAddr = "", ""
		settings, settingsPath = nil, ""
	}()

	require.NoError(t, loadSettings(rootCmd, nil))
	assert.Equal(t, path, settingsPath)
	assert.Equal(t, 99, settings.Field.Count)
	assert.Equal(t, "127.0.0.1:9999", settings.Inspector.Addr)
}

func TestLoadSettings_InvalidFlag(t *testing.T) {
	logLevel = "shouty"
	defer func() {
		logLevel = ""
		settings, settingsPath = nil, ""
	}()

	assert.ErrorIs(t, loadSettings(rootCmd, nil), config.ErrInvalid)
}

func TestOnConfigChange_RotationRateLive(t *testing.T) {
	cfg := testConfig(t)
	cfg.Recorder.Path = ""
	a, err := newApp(cfg, "")
	require.NoError(t, err)
	defer a.Close()

	next := *cfg
	next.Appearance.RotationRate = 0.3
	a.onConfigChange(&next)

	assert.Equal(t, float32(0.3), a.sim.Options().RotationRate)
	assert.Same(t, &next, a.Config())
	select {
	case got := <-a.reloads:
		assert.Same(t, &next, got)
	default:
		t.Fatal("reload was not queued")
	}
}
