package bitstream

import (
	"bytes"
	"math"

	"github.com/icza/bitio"
)

// Writer appends MSB-first bit runs to an in-memory frame.
type Writer struct {
	buf    *bytes.Buffer
	bw     *bitio.Writer
	pos    uint64
	closed bool
}

// NewWriter creates a writer over a fresh buffer.
func NewWriter() *Writer {
	return NewWriterBuffer(new(bytes.Buffer))
}

// NewWriterBuffer creates a writer appending to buf, which is reset first.
func NewWriterBuffer(buf *bytes.Buffer) *Writer {
	buf.Reset()
	return &Writer{buf: buf, bw: bitio.NewWriter(buf)}
}

// Len returns the number of bits written so far.
func (w *Writer) Len() uint64 {
	return w.pos
}

// WriteBits writes the n low bits of v.
func (w *Writer) WriteBits(v uint64, n uint8) error {
	if w.closed {
		return ErrWriterClosed
	}
	if n == 0 || n > 64 {
		return ErrInvalidWidth
	}
	if n < 64 {
		v &= (uint64(1) << n) - 1
	}
	if err := w.bw.WriteBits(v, n); err != nil {
		return err
	}
	w.pos += uint64(n)
	return nil
}

func (w *Writer) WriteBool(b bool) error {
	if b {
		return w.WriteBits(1, 1)
	}
	return w.WriteBits(0, 1)
}

func (w *Writer) WriteUint8(v uint8) error {
	return w.WriteBits(uint64(v), 8)
}

func (w *Writer) WriteUint16(v uint16) error {
	return w.WriteBits(uint64(v), 16)
}

func (w *Writer) WriteUint32(v uint32) error {
	return w.WriteBits(uint64(v), 32)
}

func (w *Writer) WriteUint64(v uint64) error {
	return w.WriteBits(v, 64)
}

func (w *Writer) WriteInt32(v int32) error {
	return w.WriteBits(uint64(uint32(v)), 32)
}

func (w *Writer) WriteInt64(v int64) error {
	return w.WriteBits(uint64(v), 64)
}

func (w *Writer) WriteFloat32(v float32) error {
	return w.WriteBits(uint64(math.Float32bits(v)), 32)
}

func (w *Writer) WriteBytes(b []byte) error {
	for _, c := range b {
		if err := w.WriteUint8(c); err != nil {
			return err
		}
	}
	return nil
}

// WriteCount writes a 32-bit length prefix.
func (w *Writer) WriteCount(n int) error {
	if n < 0 || n > MaxCollectionCount {
		return ErrCollectionTooLarge
	}
	return w.WriteUint32(uint32(n))
}

// Bytes flushes the final partial byte with zero padding and returns the
// frame. The writer accepts no further writes.
func (w *Writer) Bytes() ([]byte, error) {
	if !w.closed {
		if err := w.bw.Close(); err != nil {
			return nil, err
		}
		w.closed = true
	}
	return w.buf.Bytes(), nil
}
