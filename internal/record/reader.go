package record

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/pierrec/lz4/v4"
)

type Reader struct {
	r      *bufio.Reader
	closer io.Closer
	count  int
	data   []byte
	raw    []byte
}

// NewReader checks the header and returns a reader positioned at the first
// frame.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)

	magic := make([]byte, len(Magic))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadMagic, err)
	}
	if string(magic) != Magic {
		return nil, fmt.Errorf("%w: magic %q", ErrBadMagic, magic)
	}

	var count uint32
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	return &Reader{
		r:     br,
		count: int(count),
		raw:   make([]byte, int(count)*3*4),
	}, nil
}

// Open opens a recording file.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// Count is the number of particles in every frame.
func (r *Reader) Count() int { return r.count }

// Next returns the next frame, or io.EOF after the last one.
func (r *Reader) Next() (Frame, error) {
	var hdr frameHeader
	if err := binary.Read(r.r, binary.LittleEndian, &hdr); err != nil {
		if errors.Is(err, io.EOF) {
			return Frame{}, io.EOF
		}
		return Frame{}, fmt.Errorf("%w: header: %v", ErrBadFrame, err)
	}

	if int(hdr.RawSize) != len(r.raw) {
		return Frame{}, fmt.Errorf("%w: frame %d has %d bytes, want %d", ErrCountDrift, hdr.Seq, hdr.RawSize, len(r.raw))
	}
	switch hdr.IsLZ4 {
	case 0:
		if hdr.DataSize != hdr.RawSize {
			return Frame{}, fmt.Errorf("%w: frame %d stored %d bytes, want %d", ErrBadFrame, hdr.Seq, hdr.DataSize, hdr.RawSize)
		}
	case 1:
		if int(hdr.DataSize) > lz4.CompressBlockBound(int(hdr.RawSize)) {
			return Frame{}, fmt.Errorf("%w: frame %d data size %d", ErrBadFrame, hdr.Seq, hdr.DataSize)
		}
	default:
		return Frame{}, fmt.Errorf("%w: frame %d lz4 flag %d", ErrBadFrame, hdr.Seq, hdr.IsLZ4)
	}

	if cap(r.data) < int(hdr.DataSize) {
		r.data = make([]byte, hdr.DataSize)
	}
	data := r.data[:hdr.DataSize]
	if _, err := io.ReadFull(r.r, data); err != nil {
		return Frame{}, fmt.Errorf("%w: frame %d: %v", ErrBadFrame, hdr.Seq, err)
	}

	raw := data
	if hdr.IsLZ4 == 1 {
		n, err := lz4.UncompressBlock(data, r.raw)
		if err != nil {
			return Frame{}, fmt.Errorf("%w: frame %d: %v", ErrBadFrame, hdr.Seq, err)
		}
		if n != len(r.raw) {
			return Frame{}, fmt.Errorf("%w: frame %d decompressed to %d bytes", ErrBadFrame, hdr.Seq, n)
		}
		raw = r.raw
	}

	positions := make([]float32, r.count*3)
	for i := range positions {
		positions[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}

	return Frame{
		Seq:       hdr.Seq,
		Elapsed:   time.Duration(hdr.Elapsed),
		RotationY: hdr.Rotation,
		Positions: positions,
	}, nil
}

func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}
