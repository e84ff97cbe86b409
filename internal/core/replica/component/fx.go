package component

import "github.com/zeusync/replicanet/internal/core/protocol/bitstream"

type EffectInfo struct {
	Name        string
	EffectID    int32
	EffectType  WideString
	Scale       float32
	SecondaryID ObjID
}

// empty name, id, empty type, scale, secondary
const bitsEffectInfo = 8 + 32 + 8 + 32 + bitsObjID

func writeEffectInfo(w *bitstream.Writer, e EffectInfo) error {
	if err := writeString8(w, e.Name); err != nil {
		return err
	}
	if err := w.WriteInt32(e.EffectID); err != nil {
		return err
	}
	if err := writeWideString(w, e.EffectType, 8); err != nil {
		return err
	}
	if err := w.WriteFloat32(e.Scale); err != nil {
		return err
	}
	return writeObjID(w, e.SecondaryID)
}

func readEffectInfo(r *bitstream.Reader) (EffectInfo, error) {
	var e EffectInfo
	var err error
	if e.Name, err = readString8(r); err != nil {
		return e, err
	}
	if e.EffectID, err = r.ReadInt32(); err != nil {
		return e, err
	}
	if e.EffectType, err = readWideString(r, 8); err != nil {
		return e, err
	}
	if e.Scale, err = r.ReadFloat32(); err != nil {
		return e, err
	}
	e.SecondaryID, err = readObjID(r)
	return e, err
}

func writeEffects(w *bitstream.Writer, e []EffectInfo) error {
	return writeList(w, e, writeEffectInfo)
}

func readEffects(r *bitstream.Reader) ([]EffectInfo, error) {
	return readList(r, bitsEffectInfo, readEffectInfo)
}

type FxConstruction struct {
	ActiveEffects *[]EffectInfo
}

func (*FxConstruction) Kind() Kind    { return KindFx }
func (*FxConstruction) construction() {}

func (c *FxConstruction) Encode(w *bitstream.Writer) error {
	return bitstream.WriteOptional(w, c.ActiveEffects, writeEffects)
}

func (c *FxConstruction) Decode(r *bitstream.Reader) error {
	var err error
	c.ActiveEffects, err = bitstream.ReadOptional(r, readEffects)
	return err
}
