package bitstream

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/icza/bitio"
)

// Reader reads MSB-first bit runs from one frame.
type Reader struct {
	br    *bitio.Reader
	total uint64
	pos   uint64
}

// NewReader wraps the bytes of exactly one frame.
func NewReader(buf []byte) *Reader {
	return &Reader{
		br:    bitio.NewReader(bytes.NewReader(buf)),
		total: uint64(len(buf)) * 8,
	}
}

// Position returns the number of bits consumed so far.
func (r *Reader) Position() uint64 {
	return r.pos
}

// Remaining returns the number of unread bits, including any padding of the
// final byte.
func (r *Reader) Remaining() uint64 {
	return r.total - r.pos
}

// ReadBits reads n bits and returns them right-aligned.
func (r *Reader) ReadBits(n uint8) (uint64, error) {
	if n == 0 || n > 64 {
		return 0, ErrInvalidWidth
	}
	if uint64(n) > r.Remaining() {
		return 0, fmt.Errorf("%w: need %d bits at offset %d, %d left", ErrTruncatedStream, n, r.pos, r.Remaining())
	}
	v, err := r.br.ReadBits(n)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, fmt.Errorf("%w: %v", ErrTruncatedStream, err)
		}
		return 0, err
	}
	r.pos += uint64(n)
	return v, nil
}

func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadBits(1)
	return v == 1, err
}

func (r *Reader) ReadUint8() (uint8, error) {
	v, err := r.ReadBits(8)
	return uint8(v), err
}

func (r *Reader) ReadUint16() (uint16, error) {
	v, err := r.ReadBits(16)
	return uint16(v), err
}

func (r *Reader) ReadUint32() (uint32, error) {
	v, err := r.ReadBits(32)
	return uint32(v), err
}

func (r *Reader) ReadUint64() (uint64, error) {
	return r.ReadBits(64)
}

func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadBits(32)
	return int32(uint32(v)), err
}

func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadBits(64)
	return int64(v), err
}

func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadBits(32)
	return math.Float32frombits(uint32(v)), err
}

// ReadBytes reads n whole bytes; they need not be byte aligned in the frame.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrInvalidWidth
	}
	if uint64(n)*8 > r.Remaining() {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, %d bits left", ErrTruncatedStream, n, r.pos, r.Remaining())
	}
	out := make([]byte, n)
	for i := range out {
		b, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

// ReadCount reads a 32-bit length prefix and checks it against the bits left,
// given that every element takes at least minBits.
func (r *Reader) ReadCount(minBits uint64) (int, error) {
	count, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	return r.checkCount(uint64(count), minBits)
}

func (r *Reader) checkCount(count, minBits uint64) (int, error) {
	if count > MaxCollectionCount {
		return 0, fmt.Errorf("%w: %d", ErrCollectionTooLarge, count)
	}
	if minBits > 0 && count*minBits > r.Remaining() {
		return 0, fmt.Errorf("%w: %d elements of at least %d bits at offset %d, %d left",
			ErrTruncatedStream, count, minBits, r.pos, r.Remaining())
	}
	return int(count), nil
}
