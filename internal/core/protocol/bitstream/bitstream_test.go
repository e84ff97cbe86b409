package bitstream

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_MSBFirstWithPadding(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.WriteBool(true))
	require.NoError(t, w.WriteBits(0b01, 2))
	require.NoError(t, w.WriteBits(0b11111, 5))
	require.NoError(t, w.WriteBits(0b101, 3))
	assert.Equal(t, uint64(11), w.Len())

	out, err := w.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0b10111111, 0b10100000}, out)

	assert.ErrorIs(t, w.WriteBool(true), ErrWriterClosed)
}

func TestWriter_MultiByteValuesAreBigEndian(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.WriteBool(false))
	require.NoError(t, w.WriteUint16(0x1234))

	out, err := w.Bytes()
	require.NoError(t, err)
	// 0 | 0001 0010 0011 0100 | padding
	assert.Equal(t, []byte{0x09, 0x1A, 0x00}, out)
}

func TestWriter_MasksHighBits(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.WriteBits(0xFF, 4))
	out, err := w.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xF0}, out)
}

func TestReaderWriter_TypedRoundTrip(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.WriteBool(true))
	require.NoError(t, w.WriteUint8(0xAB))
	require.NoError(t, w.WriteUint16(0xBEEF))
	require.NoError(t, w.WriteUint32(0xDEADBEEF))
	require.NoError(t, w.WriteUint64(0x0123456789ABCDEF))
	require.NoError(t, w.WriteInt32(-42))
	require.NoError(t, w.WriteInt64(math.MinInt64))
	require.NoError(t, w.WriteFloat32(-3.5))
	require.NoError(t, w.WriteBytes([]byte("lego")))
	written := w.Len()
	buf, err := w.Bytes()
	require.NoError(t, err)

	r := NewReader(buf)
	b, err := r.ReadBool()
	require.NoError(t, err)
	assert.True(t, b)
	u8, err := r.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0xAB), u8)
	u16, err := r.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0xBEEF), u16)
	u32, err := r.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), u32)
	u64, err := r.ReadUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0123456789ABCDEF), u64)
	i32, err := r.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(-42), i32)
	i64, err := r.ReadInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), i64)
	f32, err := r.ReadFloat32()
	require.NoError(t, err)
	assert.Equal(t, float32(-3.5), f32)
	raw, err := r.ReadBytes(4)
	require.NoError(t, err)
	assert.Equal(t, []byte("lego"), raw)

	assert.Equal(t, written, r.Position())
	assert.Less(t, r.Remaining(), uint64(8), "only padding should be left")
}

func TestReader_Truncated(t *testing.T) {
	r := NewReader([]byte{0xFF})

	_, err := r.ReadBits(5)
	require.NoError(t, err)

	_, err = r.ReadUint8()
	require.ErrorIs(t, err, ErrTruncatedStream)
	assert.Equal(t, uint64(5), r.Position(), "failed read must not move the cursor")

	v, err := r.ReadBits(3)
	require.NoError(t, err)
	assert.Equal(t, uint64(0b111), v)

	_, err = r.ReadBool()
	assert.ErrorIs(t, err, ErrTruncatedStream)
}

func TestReader_EmptyBuffer(t *testing.T) {
	r := NewReader(nil)
	_, err := r.ReadBool()
	assert.ErrorIs(t, err, ErrTruncatedStream)
}

func TestReader_InvalidWidth(t *testing.T) {
	r := NewReader([]byte{0})
	_, err := r.ReadBits(0)
	assert.ErrorIs(t, err, ErrInvalidWidth)
	_, err = r.ReadBits(65)
	assert.ErrorIs(t, err, ErrInvalidWidth)
}

func TestReader_ReadCount(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.WriteCount(3))
	require.NoError(t, w.WriteUint8(1))
	buf, err := w.Bytes()
	require.NoError(t, err)

	_, err = NewReader(buf).ReadCount(16)
	assert.ErrorIs(t, err, ErrTruncatedStream, "3 elements of 16 bits cannot fit in 8 bits")

	n, err := NewReader(buf).ReadCount(2)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	w = NewWriter()
	require.NoError(t, w.WriteUint32(MaxCollectionCount+1))
	buf, err = w.Bytes()
	require.NoError(t, err)
	_, err = NewReader(buf).ReadCount(0)
	assert.ErrorIs(t, err, ErrCollectionTooLarge)
}

func TestOptional(t *testing.T) {
	value := uint32(0x01020304)

	w := NewWriter()
	require.NoError(t, WriteOptional(w, (*uint32)(nil), EncodeUint32))
	assert.Equal(t, uint64(1), w.Len(), "absent value is a single bit")
	require.NoError(t, WriteOptional(w, &value, EncodeUint32))
	assert.Equal(t, uint64(34), w.Len())
	buf, err := w.Bytes()
	require.NoError(t, err)

	r := NewReader(buf)
	got, err := ReadOptional(r, DecodeUint32)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, uint64(1), r.Position())

	got, err = ReadOptional(r, DecodeUint32)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, value, *got)
	assert.Equal(t, uint64(34), r.Position())
}

func TestOptional_TruncatedPayload(t *testing.T) {
	// presence bit set, but only 7 payload bits follow
	r := NewReader([]byte{0x80})
	_, err := ReadOptional(r, DecodeUint32)
	assert.ErrorIs(t, err, ErrTruncatedStream)
}
