// Package record stores published particle frames in a compact binary
// stream and reads them back.
//
// Layout, little-endian:
//
//	magic  [8]byte  "PFLDREC1"
//	count  uint32   particles per frame
//	frames:
//	  seq      uint64
//	  elapsed  int64   nanoseconds
//	  rotation float32
//	  isLZ4    uint32  1 when data is an lz4 block
//	  rawSize  uint32  3*count*4
//	  dataSize uint32
//	  data     [dataSize]byte
package record

import (
	"errors"
	"time"
)

const Magic = "PFLDREC1"

var (
	ErrBadMagic   = errors.New("not a particle recording")
	ErrBadFrame   = errors.New("corrupt frame")
	ErrCountDrift = errors.New("frame particle count differs from header")
)

// Frame is a recorded frame. Unlike particle.Frame it owns its positions.
type Frame struct {
	Seq       uint64
	Elapsed   time.Duration
	RotationY float32
	Positions []float32
}

// Count is the number of particles in the frame.
func (f Frame) Count() int { return len(f.Positions) / 3 }

// Bounds returns the smallest and largest coordinate over all axes.
func (f Frame) Bounds() (lo, hi float32) {
	if len(f.Positions) == 0 {
		return 0, 0
	}
	lo, hi = f.Positions[0], f.Positions[0]
	for _, v := range f.Positions[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

type frameHeader struct {
	Seq      uint64
	Elapsed  int64
	Rotation float32
	IsLZ4    uint32
	RawSize  uint32
	DataSize uint32
}
