package bitstream

// WriteOptional writes a presence bit followed by the value when v is non-nil.
func WriteOptional[T any](w *Writer, v *T, encode func(*Writer, T) error) error {
	if v == nil {
		return w.WriteBool(false)
	}
	if err := w.WriteBool(true); err != nil {
		return err
	}
	return encode(w, *v)
}

// ReadOptional reads a presence bit and, when set, the value. An absent value
// consumes exactly one bit.
func ReadOptional[T any](r *Reader, decode func(*Reader) (T, error)) (*T, error) {
	present, err := r.ReadBool()
	if err != nil || !present {
		return nil, err
	}
	v, err := decode(r)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Method expressions usable with the optional helpers.
var (
	EncodeBool    = (*Writer).WriteBool
	EncodeUint8   = (*Writer).WriteUint8
	EncodeUint16  = (*Writer).WriteUint16
	EncodeUint32  = (*Writer).WriteUint32
	EncodeUint64  = (*Writer).WriteUint64
	EncodeInt32   = (*Writer).WriteInt32
	EncodeFloat32 = (*Writer).WriteFloat32

	DecodeBool    = (*Reader).ReadBool
	DecodeUint8   = (*Reader).ReadUint8
	DecodeUint16  = (*Reader).ReadUint16
	DecodeUint32  = (*Reader).ReadUint32
	DecodeUint64  = (*Reader).ReadUint64
	DecodeInt32   = (*Reader).ReadInt32
	DecodeFloat32 = (*Reader).ReadFloat32
)
