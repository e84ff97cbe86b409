package component

import "github.com/zeusync/replicanet/internal/core/protocol/bitstream"

// BbbConstruction points at the item a brick-by-brick model was built from.
type BbbConstruction struct {
	MetadataSourceItem *ObjID
}

func (*BbbConstruction) Kind() Kind    { return KindBbb }
func (*BbbConstruction) construction() {}

func (c *BbbConstruction) Encode(w *bitstream.Writer) error {
	return bitstream.WriteOptional(w, c.MetadataSourceItem, writeObjID)
}

func (c *BbbConstruction) Decode(r *bitstream.Reader) error {
	var err error
	c.MetadataSourceItem, err = bitstream.ReadOptional(r, readObjID)
	return err
}

type BbbSerialization struct {
	MetadataSourceItem *ObjID
}

func (*BbbSerialization) Kind() Kind     { return KindBbb }
func (*BbbSerialization) serialization() {}

func (s *BbbSerialization) Encode(w *bitstream.Writer) error {
	return bitstream.WriteOptional(w, s.MetadataSourceItem, writeObjID)
}

func (s *BbbSerialization) Decode(r *bitstream.Reader) error {
	var err error
	s.MetadataSourceItem, err = bitstream.ReadOptional(r, readObjID)
	return err
}
