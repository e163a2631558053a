// Package inspect exposes a running particle field over HTTP for debugging.
package inspect

import (
	"sync"
	"time"

	"portfolio-backdrop/internal/engine3D/particle"
)

// Stats summarises one published frame.
type Stats struct {
	Seq         uint64  `json:"seq"`
	Count       int     `json:"count"`
	ElapsedMS   int64   `json:"elapsed_ms"`
	RotationY   float32 `json:"rotation_y"`
	PointerX    float32 `json:"pointer_x"`
	PointerY    float32 `json:"pointer_y"`
	Min         float32 `json:"min"`
	Max         float32 `json:"max"`
	OutOfBounds int     `json:"out_of_bounds"`
	Wraps       uint64  `json:"wraps"`
	FPS         float64 `json:"fps"`
}

// Snapshotter is a particle.Renderer that keeps a copy of every Nth frame
// for the HTTP handlers. It never holds on to the simulator's buffer.
type Snapshotter struct {
	every      uint64
	halfExtent float32
	pointer    *particle.Pointer

	mu        sync.RWMutex
	frames    uint64
	stats     Stats
	positions []float32
	lastAt    time.Time
	lastSeq   uint64
	now       func() time.Time
}

// NewSnapshotter keeps one frame in every. pointer, when set, fills the
// pointer fields of Stats.
func NewSnapshotter(every int, halfExtent float32, pointer *particle.Pointer) *Snapshotter {
	if every < 1 {
		every = 1
	}
	return &Snapshotter{
		every:      uint64(every),
		halfExtent: halfExtent,
		pointer:    pointer,
		now:        time.Now,
	}
}

func (s *Snapshotter) RenderFrame(f particle.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frames++
	if (s.frames-1)%s.every != 0 {
		return
	}

	n := f.Count * 3
	if n > len(f.Positions) {
		n = len(f.Positions)
	}
	if cap(s.positions) < n {
		s.positions = make([]float32, n)
	}
	s.positions = s.positions[:n]
	copy(s.positions, f.Positions[:n])

	st := Stats{
		Seq:       f.Seq,
		Count:     f.Count,
		ElapsedMS: f.Elapsed.Milliseconds(),
		RotationY: f.RotationY,
		Wraps:     f.Wraps,
	}
	if n > 0 {
		st.Min, st.Max = s.positions[0], s.positions[0]
	}
	for _, v := range s.positions {
		if v < st.Min {
			st.Min = v
		}
		if v > st.Max {
			st.Max = v
		}
		if v < -s.halfExtent || v > s.halfExtent {
			st.OutOfBounds++
		}
	}
	if s.pointer != nil {
		st.PointerX, st.PointerY = s.pointer.Load()
	}

	now := s.now()
	if !s.lastAt.IsZero() && f.Seq > s.lastSeq {
		if dt := now.Sub(s.lastAt).Seconds(); dt > 0 {
			st.FPS = float64(f.Seq-s.lastSeq) / dt
		}
	}
	s.lastAt = now
	s.lastSeq = f.Seq

	s.stats = st
}

// Stats returns the latest snapshot and whether one exists yet.
func (s *Snapshotter) Stats() (Stats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats, s.frames > 0
}

// Positions returns a copy of the latest snapshot's positions.
func (s *Snapshotter) Positions() []float32 {
	_, positions, _ := s.Snapshot()
	return positions
}

// Snapshot returns the latest stats together with a copy of the positions
// of the same frame.
func (s *Snapshotter) Snapshot() (Stats, []float32, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats, append([]float32(nil), s.positions...), s.frames > 0
}
