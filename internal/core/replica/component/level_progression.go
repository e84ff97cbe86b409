package component

import "github.com/zeusync/replicanet/internal/core/protocol/bitstream"

type LevelProgressionConstruction struct {
	CurrentLevel *uint32
}

func (*LevelProgressionConstruction) Kind() Kind    { return KindLevelProgression }
func (*LevelProgressionConstruction) construction() {}

func (c *LevelProgressionConstruction) Encode(w *bitstream.Writer) error {
	return bitstream.WriteOptional(w, c.CurrentLevel, bitstream.EncodeUint32)
}

func (c *LevelProgressionConstruction) Decode(r *bitstream.Reader) error {
	var err error
	c.CurrentLevel, err = bitstream.ReadOptional(r, bitstream.DecodeUint32)
	return err
}

type LevelProgressionSerialization struct {
	CurrentLevel *uint32
}

func (*LevelProgressionSerialization) Kind() Kind     { return KindLevelProgression }
func (*LevelProgressionSerialization) serialization() {}

func (s *LevelProgressionSerialization) Encode(w *bitstream.Writer) error {
	return bitstream.WriteOptional(w, s.CurrentLevel, bitstream.EncodeUint32)
}

func (s *LevelProgressionSerialization) Decode(r *bitstream.Reader) error {
	var err error
	s.CurrentLevel, err = bitstream.ReadOptional(r, bitstream.DecodeUint32)
	return err
}
