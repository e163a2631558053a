// Package anim holds the time-based UI animations drawn over the particle
// field: easing curves, tweens, the loading splash and the cursor follower.
// Everything here is pure arithmetic on elapsed time so renderers only have
// to draw the values.
package anim

import "math"

// Ease maps progress in [0, 1] to eased progress.
type Ease func(t float64) float64

func Linear(t float64) float64 { return clamp01(t) }

// Power2Out decelerates to the end (cubic).
func Power2Out(t float64) float64 {
	t = clamp01(t)
	return 1 - math.Pow(1-t, 3)
}

// Power2InOut accelerates then decelerates (cubic).
func Power2InOut(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

func clamp01(t float64) float64 {
	if t < 0 || math.IsNaN(t) {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Tween moves a value to a target over a fixed duration. Retargeting
// mid-flight starts a new tween from the current value.
type Tween struct {
	Duration float64 // seconds
	Ease     Ease

	from, to, value float64
	elapsed         float64
}

func NewTween(value, duration float64, ease Ease) *Tween {
	if ease == nil {
		ease = Linear
	}
	return &Tween{Duration: duration, Ease: ease, from: value, to: value, value: value, elapsed: duration}
}

func (tw *Tween) Value() float64  { return tw.value }
func (tw *Tween) Target() float64 { return tw.to }
func (tw *Tween) Done() bool      { return tw.elapsed >= tw.Duration }

// Retarget starts moving toward target; a repeated target is ignored.
func (tw *Tween) Retarget(target float64) {
	if target == tw.to {
		return
	}
	tw.from = tw.value
	tw.to = target
	tw.elapsed = 0
}

// Set jumps straight to v.
func (tw *Tween) Set(v float64) {
	tw.from, tw.to, tw.value = v, v, v
	tw.elapsed = tw.Duration
}

// Update advances the tween by dt seconds and returns the new value.
func (tw *Tween) Update(dt float64) float64 {
	if tw.Done() {
		tw.value = tw.to
		return tw.value
	}

	tw.elapsed += dt
	progress := 1.0
	if tw.Duration > 0 {
		progress = tw.elapsed / tw.Duration
	}
	tw.value = tw.from + (tw.to-tw.from)*tw.Ease(progress)
	return tw.value
}
