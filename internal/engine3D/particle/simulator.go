package particle

import (
	"sync"

	"portfolio-backdrop/internal/engine3D"
)

// Simulator owns a particle field for the lifetime of one mount: Attach
// builds the field and subscribes it to a frame clock, Detach unsubscribes
// and releases it. Each attach starts from a fresh random field.
type Simulator struct {
	opts    Options
	pointer *Pointer

	// mu serialises the tick with Attach/Detach/SetRenderer, which may come
	// from a different goroutine than the clock.
	mu       sync.Mutex
	field    *Field
	renderer Renderer
	clock    engine3D.FrameClock
	sub      engine3D.Subscription
	seq      uint64
}

// NewSimulator returns a detached simulator reading pointer. A nil pointer
// is replaced by one fixed at the viewport centre.
func NewSimulator(opts Options, pointer *Pointer) *Simulator {
	if pointer == nil {
		pointer = &Pointer{}
	}
	return &Simulator{opts: opts, pointer: pointer}
}

func (s *Simulator) Pointer() *Pointer { return s.pointer }

// Options returns the options new fields are built with.
func (s *Simulator) Options() Options {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts
}

// SetRotationRate changes the spin of published frames. It takes effect on
// the next tick without touching the field.
func (s *Simulator) SetRotationRate(rate float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.RotationRate = rate
}

// Attach creates a random field and starts stepping it on every tick of
// clock, publishing to r.
func (s *Simulator) Attach(clock engine3D.FrameClock, r Renderer) {
	s.AttachField(clock, r, NewField(s.Options()))
}

// AttachField is Attach with a caller-built field.
func (s *Simulator) AttachField(clock engine3D.FrameClock, r Renderer, field *Field) {
	s.Detach()

	s.mu.Lock()
	s.field = field
	s.renderer = r
	s.clock = clock
	s.seq = 0
	s.mu.Unlock()

	sub := clock.Subscribe(s.onTick)

	s.mu.Lock()
	s.sub = sub
	s.mu.Unlock()
}

// Detach stops the frame loop and drops the field. Once it returns no
// further step runs. Detaching a detached simulator is a no-op.
func (s *Simulator) Detach() {
	s.mu.Lock()
	clock, sub := s.clock, s.sub
	s.clock, s.sub = nil, 0
	s.field = nil
	s.renderer = nil
	s.mu.Unlock()

	if clock != nil {
		clock.Unsubscribe(sub)
	}
}

func (s *Simulator) Attached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.field != nil
}

// SetRenderer swaps the renderer. With a nil renderer frames are skipped
// entirely: the field does not advance until a renderer is back.
func (s *Simulator) SetRenderer(r Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.field != nil {
		s.renderer = r
	}
}

// Field exposes the attached field, nil when detached. Callers must not
// use it concurrently with a running clock.
func (s *Simulator) Field() *Field {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.field
}

func (s *Simulator) onTick(t engine3D.Tick) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.field == nil || s.renderer == nil {
		return
	}

	x, y := s.pointer.Load()
	s.field.Step(x, y)
	s.seq++

	s.renderer.RenderFrame(Frame{
		Positions: s.field.positions,
		Count:     s.field.Len(),
		Seq:       s.seq,
		Elapsed:   t.Elapsed,
		RotationY: float32(t.Elapsed.Seconds()) * s.opts.RotationRate,
		Dirty:     true,
		Wraps:     s.field.wraps,
	})
}
