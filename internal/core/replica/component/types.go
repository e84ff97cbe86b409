package component

import (
	"errors"
	"fmt"
	"unicode/utf16"

	"github.com/zeusync/replicanet/internal/core/protocol/bitstream"
)

// ObjID is a 64-bit game object identifier.
type ObjID uint64

// Lot is an object template identifier.
type Lot int32

type Vector3 struct {
	X, Y, Z float32
}

type Quaternion struct {
	X, Y, Z, W float32
}

var ErrStringTooLong = errors.New("component: string exceeds its length prefix")

// Minimum encoded sizes, used to bound length prefixes before allocating.
const (
	bitsObjID      = 64
	bitsVector3    = 96
	bitsQuaternion = 128
)

func writeObjID(w *bitstream.Writer, id ObjID) error {
	return w.WriteUint64(uint64(id))
}

func readObjID(r *bitstream.Reader) (ObjID, error) {
	v, err := r.ReadUint64()
	return ObjID(v), err
}

func writeVector3(w *bitstream.Writer, v Vector3) error {
	for _, f := range [...]float32{v.X, v.Y, v.Z} {
		if err := w.WriteFloat32(f); err != nil {
			return err
		}
	}
	return nil
}

func readVector3(r *bitstream.Reader) (Vector3, error) {
	var v Vector3
	for _, f := range [...]*float32{&v.X, &v.Y, &v.Z} {
		x, err := r.ReadFloat32()
		if err != nil {
			return Vector3{}, err
		}
		*f = x
	}
	return v, nil
}

func writeQuaternion(w *bitstream.Writer, q Quaternion) error {
	for _, f := range [...]float32{q.X, q.Y, q.Z, q.W} {
		if err := w.WriteFloat32(f); err != nil {
			return err
		}
	}
	return nil
}

func readQuaternion(r *bitstream.Reader) (Quaternion, error) {
	var q Quaternion
	for _, f := range [...]*float32{&q.X, &q.Y, &q.Z, &q.W} {
		x, err := r.ReadFloat32()
		if err != nil {
			return Quaternion{}, err
		}
		*f = x
	}
	return q, nil
}

// Transform is a position plus rotation block shared by the physics kinds.
type Transform struct {
	Position Vector3
	Rotation Quaternion
}

func writeTransform(w *bitstream.Writer, t Transform) error {
	if err := writeVector3(w, t.Position); err != nil {
		return err
	}
	return writeQuaternion(w, t.Rotation)
}

func readTransform(r *bitstream.Reader) (Transform, error) {
	pos, err := readVector3(r)
	if err != nil {
		return Transform{}, err
	}
	rot, err := readQuaternion(r)
	if err != nil {
		return Transform{}, err
	}
	return Transform{Position: pos, Rotation: rot}, nil
}

// writeList writes a 32-bit count followed by the elements.
func writeList[T any](w *bitstream.Writer, items []T, encode func(*bitstream.Writer, T) error) error {
	if err := w.WriteCount(len(items)); err != nil {
		return err
	}
	for _, it := range items {
		if err := encode(w, it); err != nil {
			return err
		}
	}
	return nil
}

// readList reads a 32-bit count and that many elements. An empty list decodes as nil.
func readList[T any](r *bitstream.Reader, minBits uint64, decode func(*bitstream.Reader) (T, error)) ([]T, error) {
	n, err := r.ReadCount(minBits)
	if err != nil || n == 0 {
		return nil, err
	}
	out := make([]T, n)
	for i := range out {
		if out[i], err = decode(r); err != nil {
			return nil, fmt.Errorf("element %d of %d: %w", i, n, err)
		}
	}
	return out, nil
}

// blob32: u32 byte length + raw bytes.
func writeBlob(w *bitstream.Writer, b []byte) error {
	if err := w.WriteCount(len(b)); err != nil {
		return err
	}
	return w.WriteBytes(b)
}

func readBlob(r *bitstream.Reader) ([]byte, error) {
	n, err := r.ReadCount(8)
	if err != nil || n == 0 {
		return nil, err
	}
	return r.ReadBytes(n)
}

// str8: u8 byte length + bytes.
func writeString8(w *bitstream.Writer, s string) error {
	if len(s) > 0xFF {
		return fmt.Errorf("%w: %d bytes", ErrStringTooLong, len(s))
	}
	if err := w.WriteUint8(uint8(len(s))); err != nil {
		return err
	}
	return w.WriteBytes([]byte(s))
}

func readString8(r *bitstream.Reader) (string, error) {
	n, err := r.ReadUint8()
	if err != nil {
		return "", err
	}
	b, err := r.ReadBytes(int(n))
	return string(b), err
}

// WideString holds UTF-16 code units exactly as they appear on the wire.
// Unpaired surrogates are kept, so a decoded string encodes back to the
// same bits.
type WideString []uint16

// NewWideString encodes s as UTF-16. The empty string gives nil.
func NewWideString(s string) WideString {
	if s == "" {
		return nil
	}
	return WideString(utf16.Encode([]rune(s)))
}

// String decodes the code units; unpaired surrogates become U+FFFD.
func (s WideString) String() string {
	return string(utf16.Decode(s))
}

func (s WideString) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// wstr8/wstr16: code-unit count of the given width + UTF-16 code units.
func writeWideString(w *bitstream.Writer, s WideString, prefixBits uint8) error {
	if uint64(len(s)) >= uint64(1)<<prefixBits {
		return fmt.Errorf("%w: %d code units", ErrStringTooLong, len(s))
	}
	if err := w.WriteBits(uint64(len(s)), prefixBits); err != nil {
		return err
	}
	for _, u := range s {
		if err := w.WriteUint16(u); err != nil {
			return err
		}
	}
	return nil
}

func readWideString(r *bitstream.Reader, prefixBits uint8) (WideString, error) {
	n, err := r.ReadBits(prefixBits)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	if n*16 > r.Remaining() {
		return nil, fmt.Errorf("%w: wide string of %d code units", bitstream.ErrTruncatedStream, n)
	}
	units := make(WideString, n)
	for i := range units {
		if units[i], err = r.ReadUint16(); err != nil {
			return nil, err
		}
	}
	return units, nil
}
