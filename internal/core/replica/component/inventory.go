package component

import "github.com/zeusync/replicanet/internal/core/protocol/bitstream"

type EquippedItem struct {
	ID            ObjID
	Lot           Lot
	Subkey        *ObjID
	Count         *uint32
	Slot          *uint16
	InventoryType *uint32
	ExtraInfo     *[]byte
	IsBound       bool
}

// id, lot, five presence bits, bound flag
const bitsEquippedItem = bitsObjID + 32 + 5 + 1

func writeEquippedItem(w *bitstream.Writer, it EquippedItem) error {
	if err := writeObjID(w, it.ID); err != nil {
		return err
	}
	if err := w.WriteInt32(int32(it.Lot)); err != nil {
		return err
	}
	if err := bitstream.WriteOptional(w, it.Subkey, writeObjID); err != nil {
		return err
	}
	if err := bitstream.WriteOptional(w, it.Count, bitstream.EncodeUint32); err != nil {
		return err
	}
	if err := bitstream.WriteOptional(w, it.Slot, bitstream.EncodeUint16); err != nil {
		return err
	}
	if err := bitstream.WriteOptional(w, it.InventoryType, bitstream.EncodeUint32); err != nil {
		return err
	}
	if err := bitstream.WriteOptional(w, it.ExtraInfo, writeBlob); err != nil {
		return err
	}
	return w.WriteBool(it.IsBound)
}

func readEquippedItem(r *bitstream.Reader) (EquippedItem, error) {
	var it EquippedItem
	var err error
	if it.ID, err = readObjID(r); err != nil {
		return it, err
	}
	lot, err := r.ReadInt32()
	if err != nil {
		return it, err
	}
	it.Lot = Lot(lot)
	if it.Subkey, err = bitstream.ReadOptional(r, readObjID); err != nil {
		return it, err
	}
	if it.Count, err = bitstream.ReadOptional(r, bitstream.DecodeUint32); err != nil {
		return it, err
	}
	if it.Slot, err = bitstream.ReadOptional(r, bitstream.DecodeUint16); err != nil {
		return it, err
	}
	if it.InventoryType, err = bitstream.ReadOptional(r, bitstream.DecodeUint32); err != nil {
		return it, err
	}
	if it.ExtraInfo, err = bitstream.ReadOptional(r, readBlob); err != nil {
		return it, err
	}
	it.IsBound, err = r.ReadBool()
	return it, err
}

type ModelTransform struct {
	ModelID ObjID
	Transform
}

func writeModelTransform(w *bitstream.Writer, m ModelTransform) error {
	if err := writeObjID(w, m.ModelID); err != nil {
		return err
	}
	return writeTransform(w, m.Transform)
}

func readModelTransform(r *bitstream.Reader) (ModelTransform, error) {
	id, err := readObjID(r)
	if err != nil {
		return ModelTransform{}, err
	}
	t, err := readTransform(r)
	return ModelTransform{ModelID: id, Transform: t}, err
}

func writeEquippedItems(w *bitstream.Writer, items []EquippedItem) error {
	return writeList(w, items, writeEquippedItem)
}

func readEquippedItems(r *bitstream.Reader) ([]EquippedItem, error) {
	return readList(r, bitsEquippedItem, readEquippedItem)
}

func writeModelTransforms(w *bitstream.Writer, m []ModelTransform) error {
	return writeList(w, m, writeModelTransform)
}

func readModelTransforms(r *bitstream.Reader) ([]ModelTransform, error) {
	return readList(r, bitsObjID+bitsVector3+bitsQuaternion, readModelTransform)
}

// InventoryState is the equipment layout; both tables carry it unchanged.
type InventoryState struct {
	EquippedItems   *[]EquippedItem
	ModelTransforms *[]ModelTransform
}

func (s *InventoryState) encode(w *bitstream.Writer) error {
	if err := bitstream.WriteOptional(w, s.EquippedItems, writeEquippedItems); err != nil {
		return err
	}
	return bitstream.WriteOptional(w, s.ModelTransforms, writeModelTransforms)
}

func (s *InventoryState) decode(r *bitstream.Reader) error {
	var err error
	if s.EquippedItems, err = bitstream.ReadOptional(r, readEquippedItems); err != nil {
		return err
	}
	s.ModelTransforms, err = bitstream.ReadOptional(r, readModelTransforms)
	return err
}

type InventoryConstruction struct{ InventoryState }

func (*InventoryConstruction) Kind() Kind                         { return KindInventory }
func (*InventoryConstruction) construction()                      {}
func (c *InventoryConstruction) Encode(w *bitstream.Writer) error { return c.encode(w) }
func (c *InventoryConstruction) Decode(r *bitstream.Reader) error { return c.decode(r) }

type InventorySerialization struct{ InventoryState }

func (*InventorySerialization) Kind() Kind                         { return KindInventory }
func (*InventorySerialization) serialization()                     {}
func (s *InventorySerialization) Encode(w *bitstream.Writer) error { return s.encode(w) }
func (s *InventorySerialization) Decode(r *bitstream.Reader) error { return s.decode(r) }
