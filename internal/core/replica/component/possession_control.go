package component

import "github.com/zeusync/replicanet/internal/core/protocol/bitstream"

type PossessionInfo struct {
	PossessedID    *ObjID
	PossessionType uint8
}

func writePossessionInfo(w *bitstream.Writer, p PossessionInfo) error {
	if err := bitstream.WriteOptional(w, p.PossessedID, writeObjID); err != nil {
		return err
	}
	return w.WriteUint8(p.PossessionType)
}

func readPossessionInfo(r *bitstream.Reader) (PossessionInfo, error) {
	var p PossessionInfo
	var err error
	if p.PossessedID, err = bitstream.ReadOptional(r, readObjID); err != nil {
		return p, err
	}
	p.PossessionType, err = r.ReadUint8()
	return p, err
}

type PossessionControlConstruction struct {
	Info *PossessionInfo
}

func (*PossessionControlConstruction) Kind() Kind    { return KindPossessionControl }
func (*PossessionControlConstruction) construction() {}

func (c *PossessionControlConstruction) Encode(w *bitstream.Writer) error {
	return bitstream.WriteOptional(w, c.Info, writePossessionInfo)
}

func (c *PossessionControlConstruction) Decode(r *bitstream.Reader) error {
	var err error
	c.Info, err = bitstream.ReadOptional(r, readPossessionInfo)
	return err
}

type PossessionControlSerialization struct {
	Info *PossessionInfo
}

func (*PossessionControlSerialization) Kind() Kind     { return KindPossessionControl }
func (*PossessionControlSerialization) serialization() {}

func (s *PossessionControlSerialization) Encode(w *bitstream.Writer) error {
	return bitstream.WriteOptional(w, s.Info, writePossessionInfo)
}

func (s *PossessionControlSerialization) Decode(r *bitstream.Reader) error {
	var err error
	s.Info, err = bitstream.ReadOptional(r, readPossessionInfo)
	return err
}
