package engine3D

import (
	"context"
	"sync"
	"time"
)

// Tick describes one display refresh.
type Tick struct {
	Frame   uint64
	Elapsed time.Duration // since the clock started
	Delta   time.Duration // since the previous tick
}

type TickFunc func(Tick)

// Subscription identifies a registered TickFunc. The zero value never
// identifies a live subscription.
type Subscription uint64

// FrameClock is the per-refresh callback scheduler visual components attach
// to. Components subscribe when they mount and must unsubscribe when they
// are torn down.
type FrameClock interface {
	Subscribe(fn TickFunc) Subscription
	Unsubscribe(sub Subscription)
}

type subscriber struct {
	id Subscription
	fn TickFunc
}

// subscriberSet is the registration bookkeeping shared by the clocks.
type subscriberSet struct {
	mu     sync.Mutex
	nextID Subscription
	subs   []subscriber
	buf    []subscriber
}

func (s *subscriberSet) Subscribe(fn TickFunc) Subscription {
	if fn == nil {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	s.subs = append(s.subs, subscriber{id: s.nextID, fn: fn})
	return s.nextID
}

func (s *subscriberSet) Unsubscribe(sub Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.subs {
		if s.subs[i].id == sub {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

// Len returns the number of live subscriptions.
func (s *subscriberSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// dispatch calls every subscriber registered at the start of the tick.
// Callbacks run without the lock held so they may unsubscribe themselves.
func (s *subscriberSet) dispatch(t Tick) {
	s.mu.Lock()
	s.buf = append(s.buf[:0], s.subs...)
	pending := s.buf
	s.mu.Unlock()

	for _, sub := range pending {
		if s.live(sub.id) {
			sub.fn(t)
		}
	}
}

func (s *subscriberSet) live(id Subscription) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.subs {
		if sub.id == id {
			return true
		}
	}
	return false
}

// LoopClock is advanced by a host render loop, once per drawn frame, and
// runs subscribers on the caller's goroutine.
type LoopClock struct {
	subscriberSet

	started bool
	start   time.Time
	last    time.Time
	frame   uint64
}

func NewLoopClock() *LoopClock {
	return &LoopClock{}
}

// Advance ticks the clock at the current wall-clock time.
func (c *LoopClock) Advance() Tick {
	return c.AdvanceTo(time.Now())
}

// AdvanceTo ticks the clock as if the current time were now.
func (c *LoopClock) AdvanceTo(now time.Time) Tick {
	if !c.started {
		c.started = true
		c.start = now
		c.last = now
	}

	c.frame++
	t := Tick{
		Frame:   c.frame,
		Elapsed: now.Sub(c.start),
		Delta:   now.Sub(c.last),
	}
	c.last = now

	c.dispatch(t)
	return t
}

// TickerClock drives subscribers from its own goroutine at a fixed rate.
type TickerClock struct {
	subscriberSet

	interval time.Duration
	frames   uint64
}

// NewTickerClock returns a clock ticking fps times per second.
func NewTickerClock(fps int) *TickerClock {
	if fps <= 0 {
		fps = 60
	}
	return &TickerClock{interval: time.Second / time.Duration(fps)}
}

func (c *TickerClock) Interval() time.Duration {
	return c.interval
}

// StopAfter makes Run return after n ticks. Zero means run until cancelled.
func (c *TickerClock) StopAfter(n uint64) {
	c.frames = n
}

// Run ticks until ctx is cancelled or the StopAfter budget is spent.
func (c *TickerClock) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	start := time.Now()
	last := start
	var frame uint64

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			frame++
			c.dispatch(Tick{
				Frame:   frame,
				Elapsed: now.Sub(start),
				Delta:   now.Sub(last),
			})
			last = now

			if c.frames > 0 && frame >= c.frames {
				return nil
			}
		}
	}
}
