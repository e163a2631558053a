package record

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"sync"

	"github.com/pierrec/lz4/v4"

	"portfolio-backdrop/internal/engine3D/particle"
	"portfolio-backdrop/internal/utils"
)

// Writer appends frames to a recording. It implements particle.Renderer so
// it can sit in a renderer fan-out; frames are copied before RenderFrame
// returns.
type Writer struct {
	mu     sync.Mutex
	w      *bufio.Writer
	closer io.Closer
	count  int
	every  uint64

	raw  []byte
	comp []byte

	frames  uint64
	written uint64
	err     error
}

// NewWriter writes a header for count particles. every > 1 keeps one frame
// in every; closer, when non-nil, is closed by Close.
func NewWriter(w io.Writer, count, every int, closer io.Closer) (*Writer, error) {
	if every < 1 {
		every = 1
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Magic); err != nil {
		return nil, err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(count)); err != nil {
		return nil, err
	}

	rawSize := count * 3 * 4
	return &Writer{
		w:      bw,
		closer: closer,
		count:  count,
		every:  uint64(every),
		raw:    make([]byte, rawSize),
		comp:   make([]byte, lz4.CompressBlockBound(rawSize)),
	}, nil
}

// Create opens path for writing and returns a Writer that closes it.
func Create(path string, count, every int) (*Writer, error) {
	if err := utils.EnsureParentDir(path); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w, err := NewWriter(f, count, every, f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

// RenderFrame records f, subject to the every filter. The first write
// error is kept and returned by Close; later frames are dropped.
func (w *Writer) RenderFrame(f particle.Frame) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.frames++
	if w.err != nil || (w.frames-1)%w.every != 0 {
		return
	}

	if err := w.writeFrame(f); err != nil {
		w.err = err
		utils.Error("Recorder: %v (recording stopped)", err)
		return
	}
	w.written++
}

func (w *Writer) writeFrame(f particle.Frame) error {
	if f.Count != w.count || len(f.Positions) != w.count*3 {
		return fmt.Errorf("%w: got %d, want %d", ErrCountDrift, f.Count, w.count)
	}

	for i, v := range f.Positions {
		binary.LittleEndian.PutUint32(w.raw[i*4:], math.Float32bits(v))
	}

	hdr := frameHeader{
		Seq:      f.Seq,
		Elapsed:  int64(f.Elapsed),
		Rotation: f.RotationY,
		RawSize:  uint32(len(w.raw)),
	}

	data := w.raw
	n, err := lz4.CompressBlock(w.raw, w.comp, nil)
	if err != nil {
		return fmt.Errorf("compress frame %d: %w", f.Seq, err)
	}
	// n == 0 means the block did not compress; store it raw.
	if n > 0 && n < len(w.raw) {
		data = w.comp[:n]
		hdr.IsLZ4 = 1
	}
	hdr.DataSize = uint32(len(data))

	if err := binary.Write(w.w, binary.LittleEndian, hdr); err != nil {
		return err
	}
	_, err = w.w.Write(data)
	return err
}

// Written is the number of frames stored so far.
func (w *Writer) Written() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Close flushes the stream and closes the underlying file, if any.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	err := w.err
	if ferr := w.w.Flush(); err == nil {
		err = ferr
	}
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
		w.closer = nil
	}
	return err
}
