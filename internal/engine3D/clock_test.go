package engine3D

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLoopClock_TickTiming(t *testing.T) {
	c := NewLoopClock()
	var ticks []Tick
	c.Subscribe(func(t Tick) { ticks = append(ticks, t) })

	start := time.Unix(50, 0)
	c.AdvanceTo(start)
	c.AdvanceTo(start.Add(16 * time.Millisecond))
	c.AdvanceTo(start.Add(50 * time.Millisecond))

	require.Len(t, ticks, 3)
	assert.Equal(t, Tick{Frame: 1}, ticks[0])
	assert.Equal(t, Tick{Frame: 2, Elapsed: 16 * time.Millisecond, Delta: 16 * time.Millisecond}, ticks[1])
	assert.Equal(t, Tick{Frame: 3, Elapsed: 50 * time.Millisecond, Delta: 34 * time.Millisecond}, ticks[2])
}

func TestLoopClock_SubscribeUnsubscribe(t *testing.T) {
	c := NewLoopClock()
	var a, b int

	subA := c.Subscribe(func(Tick) { a++ })
	subB := c.Subscribe(func(Tick) { b++ })
	assert.NotEqual(t, subA, subB)
	assert.Equal(t, 2, c.Len())

	c.Advance()
	c.Unsubscribe(subA)
	c.Advance()

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)

	c.Unsubscribe(subA)
	c.Unsubscribe(Subscription(999))
	assert.Equal(t, 1, c.Len())

	assert.Equal(t, Subscription(0), c.Subscribe(nil))
	assert.Equal(t, 1, c.Len())
}

func TestLoopClock_UnsubscribeDuringDispatch(t *testing.T) {
	c := NewLoopClock()
	var first, second int
	var subSecond Subscription

	var subFirst Subscription
	subFirst = c.Subscribe(func(Tick) {
		first++
		c.Unsubscribe(subFirst)
		c.Unsubscribe(subSecond)
	})
	subSecond = c.Subscribe(func(Tick) { second++ })

	c.Advance()
	c.Advance()

	assert.Equal(t, 1, first)
	assert.Equal(t, 0, second, "a subscriber removed earlier in the same tick must not run")
	assert.Equal(t, 0, c.Len())
}

func TestTickerClock_StopAfter(t *testing.T) {
	c := NewTickerClock(1000)
	assert.Equal(t, time.Millisecond, c.Interval())

	var count atomic.Int64
	var lastFrame atomic.Uint64
	c.Subscribe(func(t Tick) {
		count.Add(1)
		lastFrame.Store(t.Frame)
	})
	c.StopAfter(5)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, c.Run(ctx))
	assert.Equal(t, int64(5), count.Load())
	assert.Equal(t, uint64(5), lastFrame.Load())
}

func TestTickerClock_Cancel(t *testing.T) {
	c := NewTickerClock(500)
	ctx, cancel := context.WithCancel(context.Background())

	var count atomic.Int64
	c.Subscribe(func(Tick) {
		if count.Add(1) == 3 {
			cancel()
		}
	})

	err := c.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.GreaterOrEqual(t, count.Load(), int64(3))
}

func TestTickerClock_DefaultRate(t *testing.T) {
	assert.Equal(t, time.Second/60, NewTickerClock(0).Interval())
}
