package particle

import (
	"time"

	"portfolio-backdrop/internal/engine3D"
)

const (
	DefaultCount           = 1500
	DefaultHalfExtent      = 25
	DefaultMaxVelocity     = 0.005
	DefaultPointerScale    = 10
	DefaultPointerRadius   = 3
	DefaultPointerStrength = 0.01
	DefaultRotationRate    = 0.02 // rad/s about the vertical axis
)

// Particle is a copy of one particle's state, used for fixtures and
// inspection. The field itself stores particles in flat buffers.
type Particle struct {
	Position engine3D.Vec3
	Velocity engine3D.Vec3
}

// Options configures a particle field.
type Options struct {
	Count       int
	HalfExtent  float32 // positions live in [-HalfExtent, HalfExtent] on every axis
	MaxVelocity float32 // initial velocities are drawn from [-MaxVelocity, MaxVelocity]

	// The pointer (in [-1, 1]) is multiplied by PointerScale to reach world
	// units. Particles within PointerRadius of it in the XY plane move by
	// PointerStrength times their offset from it.
	PointerScale    float32
	PointerRadius   float32
	PointerStrength float32

	RotationRate float32
}

func DefaultOptions() Options {
	return Options{
		Count:           DefaultCount,
		HalfExtent:      DefaultHalfExtent,
		MaxVelocity:     DefaultMaxVelocity,
		PointerScale:    DefaultPointerScale,
		PointerRadius:   DefaultPointerRadius,
		PointerStrength: DefaultPointerStrength,
		RotationRate:    DefaultRotationRate,
	}
}

// Frame is what a renderer receives once per refresh. Positions is the
// field's own buffer, 3*Count interleaved x, y, z values, and is only valid
// until the next step: renderers read it, never write it or keep it.
type Frame struct {
	Positions []float32
	Count     int
	Seq       uint64
	Elapsed   time.Duration
	RotationY float32 // radians
	Dirty     bool
	Wraps     uint64 // axis wraps since the field was built
}

// Renderer consumes published frames.
type Renderer interface {
	RenderFrame(f Frame)
}

type RendererFunc func(f Frame)

func (fn RendererFunc) RenderFrame(f Frame) { fn(f) }

// Renderers fans a frame out to several renderers in order.
type Renderers []Renderer

func (rs Renderers) RenderFrame(f Frame) {
	for _, r := range rs {
		if r != nil {
			r.RenderFrame(f)
		}
	}
}
