package particle

import (
	"portfolio-backdrop/internal/engine3D"
)

// Field is a fixed set of particles in a cubic volume. It is not safe for
// concurrent use; the Simulator serialises access to it.
type Field struct {
	opts       Options
	positions  []float32
	velocities []float32
	wraps      uint64
}

// NewField allocates opts.Count particles with random positions and
// velocities.
func NewField(opts Options) *Field {
	f := allocField(opts, opts.Count)
	f.randomize()
	return f
}

// NewFieldFromParticles builds a field from explicit particle states.
// opts.Count is ignored.
func NewFieldFromParticles(opts Options, particles []Particle) *Field {
	f := allocField(opts, len(particles))
	for i, p := range particles {
		f.Set(i, p)
	}
	return f
}

func allocField(opts Options, count int) *Field {
	if count < 0 {
		count = 0
	}
	opts.Count = count
	return &Field{
		opts:       opts,
		positions:  make([]float32, count*3),
		velocities: make([]float32, count*3),
	}
}

func (f *Field) Len() int { return f.opts.Count }

func (f *Field) Options() Options { return f.opts }

// Positions returns the position buffer itself, not a copy.
func (f *Field) Positions() []float32 { return f.positions }

// Velocities returns the velocity buffer itself, not a copy.
func (f *Field) Velocities() []float32 { return f.velocities }

// WrapCount is the number of axis wraps performed since the field was built.
func (f *Field) WrapCount() uint64 { return f.wraps }

func (f *Field) At(i int) Particle {
	i3 := i * 3
	return Particle{
		Position: engine3D.Vec3{X: f.positions[i3], Y: f.positions[i3+1], Z: f.positions[i3+2]},
		Velocity: engine3D.Vec3{X: f.velocities[i3], Y: f.velocities[i3+1], Z: f.velocities[i3+2]},
	}
}

func (f *Field) Set(i int, p Particle) {
	i3 := i * 3
	f.positions[i3] = p.Position.X
	f.positions[i3+1] = p.Position.Y
	f.positions[i3+2] = p.Position.Z
	f.velocities[i3] = p.Velocity.X
	f.velocities[i3+1] = p.Velocity.Y
	f.velocities[i3+2] = p.Velocity.Z
}

// Step advances every particle by one frame given the normalised pointer.
func (f *Field) Step(pointerX, pointerY float32) {
	targetX := pointerX * f.opts.PointerScale
	targetY := pointerY * f.opts.PointerScale

	pos := f.positions
	vel := f.velocities
	for i3 := 0; i3+2 < len(pos); i3 += 3 {
		pos[i3] += vel[i3]
		pos[i3+1] += vel[i3+1]
		pos[i3+2] += vel[i3+2]

		f.applyPointer(pos[i3:i3+3:i3+3], targetX, targetY)
		f.wrapParticle(pos[i3 : i3+3 : i3+3])
	}
}
