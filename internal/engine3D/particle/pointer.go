package particle

import (
	"math"
	"sync/atomic"
)

// Pointer holds the latest normalised pointer position. One goroutine
// writes it, the simulation step reads it; both halves are packed into a
// single atomic word so a read never sees x from one write and y from
// another. The zero value is the viewport centre.
type Pointer struct {
	bits atomic.Uint64
}

func NewPointer(x, y float32) *Pointer {
	p := &Pointer{}
	p.Store(x, y)
	return p
}

func (p *Pointer) Store(x, y float32) {
	p.bits.Store(uint64(math.Float32bits(x))<<32 | uint64(math.Float32bits(y)))
}

func (p *Pointer) Load() (x, y float32) {
	bits := p.bits.Load()
	return math.Float32frombits(uint32(bits >> 32)), math.Float32frombits(uint32(bits))
}

// StorePixels normalises a viewport-relative pixel position and stores it.
// It reports false, leaving the pointer untouched, for an empty viewport.
func (p *Pointer) StorePixels(px, py float64, width, height int) bool {
	x, y, ok := NormalizePointer(px, py, width, height)
	if ok {
		p.Store(x, y)
	}
	return ok
}

// NormalizePointer maps a pixel position inside a width x height viewport
// to [-1, 1] on both axes, with +y pointing up. Positions outside the
// viewport are clamped to its edge.
func NormalizePointer(px, py float64, width, height int) (x, y float32, ok bool) {
	if width <= 0 || height <= 0 {
		return 0, 0, false
	}

	nx := px/float64(width)*2 - 1
	ny := -(py/float64(height))*2 + 1
	return float32(clampUnit(nx)), float32(clampUnit(ny)), true
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}
