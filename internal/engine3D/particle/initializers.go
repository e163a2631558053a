package particle

import (
	"math/rand"
)

// randomize places every particle uniformly in the volume and gives it a
// uniform random velocity.
func (f *Field) randomize() {
	h := f.opts.HalfExtent
	v := f.opts.MaxVelocity

	for i := range f.positions {
		f.positions[i] = randomRange(-h, h)
		f.velocities[i] = randomRange(-v, v)
	}
}

func randomRange(lo, hi float32) float32 {
	return lo + rand.Float32()*(hi-lo)
}
