package component

import "github.com/zeusync/replicanet/internal/core/protocol/bitstream"

type BuffInfo struct {
	BuffID                     uint32
	TimeLeft                   *uint32
	CancelOnDeath              bool
	CancelOnZone               bool
	CancelOnDamaged            bool
	CancelOnRemoveBuff         bool
	CancelOnUI                 bool
	CancelOnLogout             bool
	CancelOnUnequip            bool
	CancelOnDamageAbsorbRanOut bool
	AddedByTeammate            bool
	ApplyOnTeammates           bool
	// CasterID is on the wire only when AddedByTeammate is set.
	CasterID ObjID
	RefCount uint32
}

// id, time-left presence, ten flags, ref count
const bitsBuffInfo = 32 + 1 + 10 + 32

func (b *BuffInfo) flags() [10]*bool {
	return [10]*bool{
		&b.CancelOnDeath, &b.CancelOnZone, &b.CancelOnDamaged, &b.CancelOnRemoveBuff,
		&b.CancelOnUI, &b.CancelOnLogout, &b.CancelOnUnequip, &b.CancelOnDamageAbsorbRanOut,
		&b.AddedByTeammate, &b.ApplyOnTeammates,
	}
}

func writeBuffInfo(w *bitstream.Writer, b BuffInfo) error {
	if err := w.WriteUint32(b.BuffID); err != nil {
		return err
	}
	if err := bitstream.WriteOptional(w, b.TimeLeft, bitstream.EncodeUint32); err != nil {
		return err
	}
	for _, f := range b.flags() {
		if err := w.WriteBool(*f); err != nil {
			return err
		}
	}
	if b.AddedByTeammate {
		if err := writeObjID(w, b.CasterID); err != nil {
			return err
		}
	}
	return w.WriteUint32(b.RefCount)
}

func readBuffInfo(r *bitstream.Reader) (BuffInfo, error) {
	var b BuffInfo
	var err error
	if b.BuffID, err = r.ReadUint32(); err != nil {
		return b, err
	}
	if b.TimeLeft, err = bitstream.ReadOptional(r, bitstream.DecodeUint32); err != nil {
		return b, err
	}
	for _, f := range b.flags() {
		if *f, err = r.ReadBool(); err != nil {
			return b, err
		}
	}
	if b.AddedByTeammate {
		if b.CasterID, err = readObjID(r); err != nil {
			return b, err
		}
	}
	b.RefCount, err = r.ReadUint32()
	return b, err
}

type BuffImmunity struct {
	BuffID   uint32
	RefCount uint32
}

func writeBuffImmunity(w *bitstream.Writer, i BuffImmunity) error {
	if err := w.WriteUint32(i.BuffID); err != nil {
		return err
	}
	return w.WriteUint32(i.RefCount)
}

func readBuffImmunity(r *bitstream.Reader) (BuffImmunity, error) {
	var i BuffImmunity
	var err error
	if i.BuffID, err = r.ReadUint32(); err != nil {
		return i, err
	}
	i.RefCount, err = r.ReadUint32()
	return i, err
}

func writeBuffs(w *bitstream.Writer, b []BuffInfo) error { return writeList(w, b, writeBuffInfo) }

func readBuffs(r *bitstream.Reader) ([]BuffInfo, error) {
	return readList(r, bitsBuffInfo, readBuffInfo)
}

func writeBuffImmunities(w *bitstream.Writer, i []BuffImmunity) error {
	return writeList(w, i, writeBuffImmunity)
}

func readBuffImmunities(r *bitstream.Reader) ([]BuffImmunity, error) {
	return readList(r, 64, readBuffImmunity)
}

type BuffConstruction struct {
	Buffs      *[]BuffInfo
	Immunities *[]BuffImmunity
}

func (*BuffConstruction) Kind() Kind    { return KindBuff }
func (*BuffConstruction) construction() {}

func (c *BuffConstruction) Encode(w *bitstream.Writer) error {
	if err := bitstream.WriteOptional(w, c.Buffs, writeBuffs); err != nil {
		return err
	}
	return bitstream.WriteOptional(w, c.Immunities, writeBuffImmunities)
}

func (c *BuffConstruction) Decode(r *bitstream.Reader) error {
	var err error
	if c.Buffs, err = bitstream.ReadOptional(r, readBuffs); err != nil {
		return err
	}
	c.Immunities, err = bitstream.ReadOptional(r, readBuffImmunities)
	return err
}
