package inspect

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backdrop/internal/config"
	"portfolio-backdrop/internal/engine3D/particle"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func frame(seq uint64, positions ...float32) particle.Frame {
	return particle.Frame{
		Positions: positions,
		Count:     len(positions) / 3,
		Seq:       seq,
		Elapsed:   time.Duration(seq) * time.Second,
		RotationY: float32(seq) * 0.02,
		Dirty:     true,
	}
}

func TestSnapshotter_Stats(t *testing.T) {
	pointer := particle.NewPointer(0.5, -0.25)
	snap := NewSnapshotter(1, 25, pointer)

	_, ok := snap.Stats()
	assert.False(t, ok)

	buf := []float32{1, -30, 2, 24, 3, 26}
	f := frame(3, buf...)
	f.Wraps = 7
	snap.RenderFrame(f)

	st, ok := snap.Stats()
	require.True(t, ok)
	assert.Equal(t, uint64(3), st.Seq)
	assert.Equal(t, 2, st.Count)
	assert.Equal(t, int64(3000), st.ElapsedMS)
	assert.Equal(t, float32(-30), st.Min)
	assert.Equal(t, float32(26), st.Max)
	assert.Equal(t, 2, st.OutOfBounds)
	assert.Equal(t, uint64(7), st.Wraps)
	assert.Equal(t, float32(0.5), st.PointerX)
	assert.Equal(t, float32(-0.25), st.PointerY)

	// the snapshot is a copy
	buf[0] = 99
	assert.Equal(t, float32(1), snap.Positions()[0])
}

func TestSnapshotter_EveryAndFPS(t *testing.T) {
	snap := NewSnapshotter(2, 25, nil)
	clock := time.Unix(0, 0)
	snap.now = func() time.Time { return clock }

	for seq := uint64(1); seq <= 5; seq++ {
		clock = clock.Add(time.Second / 10)
		snap.RenderFrame(frame(seq, float32(seq), 0, 0))
	}

	st, ok := snap.Stats()
	require.True(t, ok)
	assert.Equal(t, uint64(5), st.Seq)
	assert.Equal(t, []float32{5, 0, 0}, snap.Positions())
	// two frames per 0.2s between kept snapshots
	assert.InDelta(t, 10.0, st.FPS, 1e-9)
}

func TestSnapshotter_SnapshotMatchesFrame(t *testing.T) {
	snap := NewSnapshotter(1, 25, nil)
	_, _, ok := snap.Snapshot()
	assert.False(t, ok)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for seq := uint64(1); seq <= 2000; seq++ {
			v := float32(seq)
			snap.RenderFrame(frame(seq, v, v, v))
		}
	}()

	for i := 0; i < 2000; i++ {
		st, positions, ok := snap.Snapshot()
		if !ok {
			continue
		}
		require.Len(t, positions, 3)
		require.Equal(t, float32(st.Seq), positions[0])
	}
	wg.Wait()
}

func get(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	h.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestServer_Routes(t *testing.T) {
	snap := NewSnapshotter(1, 25, nil)
	cfg := config.DefaultConfig()
	srv := NewServer(snap, func() *config.Config { return cfg })
	require.NotEmpty(t, srv.RunID)

	w, body := get(t, srv.Handler(), "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, srv.RunID, body["run_id"])

	w, _ = get(t, srv.Handler(), "/api/field")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	snap.RenderFrame(frame(12, 1, 2, 3, 4, 5, 6))

	w, body = get(t, srv.Handler(), "/api/field")
	assert.Equal(t, http.StatusOK, w.Code)
	stats := body["stats"].(map[string]any)
	assert.Equal(t, float64(12), stats["seq"])
	assert.Equal(t, float64(2), stats["count"])

	w, body = get(t, srv.Handler(), "/api/field/positions")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{1.0, 2.0, 3.0, 4.0, 5.0, 6.0}, body["positions"])

	w, body = get(t, srv.Handler(), "/api/config")
	assert.Equal(t, http.StatusOK, w.Code)
	field := body["field"].(map[string]any)
	assert.Equal(t, float64(particle.DefaultCount), field["count"])
}

func TestServer_ServeShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := NewServer(NewSnapshotter(1, 25, nil), nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ServeListener(ctx, ln) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = client.Get("http://" + ln.Addr().String() + "/api/config")
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}
