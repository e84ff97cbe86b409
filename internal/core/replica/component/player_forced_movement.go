package component

import "github.com/zeusync/replicanet/internal/core/protocol/bitstream"

type ForcedMovementInfo struct {
	PlayerOnRail  bool
	ShowBillboard bool
}

func writeForcedMovementInfo(w *bitstream.Writer, f ForcedMovementInfo) error {
	if err := w.WriteBool(f.PlayerOnRail); err != nil {
		return err
	}
	return w.WriteBool(f.ShowBillboard)
}

func readForcedMovementInfo(r *bitstream.Reader) (ForcedMovementInfo, error) {
	var f ForcedMovementInfo
	var err error
	if f.PlayerOnRail, err = r.ReadBool(); err != nil {
		return f, err
	}
	f.ShowBillboard, err = r.ReadBool()
	return f, err
}

type PlayerForcedMovementConstruction struct {
	Info *ForcedMovementInfo
}

func (*PlayerForcedMovementConstruction) Kind() Kind    { return KindPlayerForcedMovement }
func (*PlayerForcedMovementConstruction) construction() {}

func (c *PlayerForcedMovementConstruction) Encode(w *bitstream.Writer) error {
	return bitstream.WriteOptional(w, c.Info, writeForcedMovementInfo)
}

func (c *PlayerForcedMovementConstruction) Decode(r *bitstream.Reader) error {
	var err error
	c.Info, err = bitstream.ReadOptional(r, readForcedMovementInfo)
	return err
}

type PlayerForcedMovementSerialization struct {
	Info *ForcedMovementInfo
}

func (*PlayerForcedMovementSerialization) Kind() Kind     { return KindPlayerForcedMovement }
func (*PlayerForcedMovementSerialization) serialization() {}

func (s *PlayerForcedMovementSerialization) Encode(w *bitstream.Writer) error {
	return bitstream.WriteOptional(w, s.Info, writeForcedMovementInfo)
}

func (s *PlayerForcedMovementSerialization) Decode(r *bitstream.Reader) error {
	var err error
	s.Info, err = bitstream.ReadOptional(r, readForcedMovementInfo)
	return err
}
