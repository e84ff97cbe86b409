package component

import "github.com/zeusync/replicanet/internal/core/protocol/bitstream"

type SkillInProgress struct {
	SkillID       uint32
	UniqueSkillID uint32
	CasterID      ObjID
}

const bitsSkillInProgress = 32 + 32 + bitsObjID

func writeSkillInProgress(w *bitstream.Writer, s SkillInProgress) error {
	if err := w.WriteUint32(s.SkillID); err != nil {
		return err
	}
	if err := w.WriteUint32(s.UniqueSkillID); err != nil {
		return err
	}
	return writeObjID(w, s.CasterID)
}

func readSkillInProgress(r *bitstream.Reader) (SkillInProgress, error) {
	var s SkillInProgress
	var err error
	if s.SkillID, err = r.ReadUint32(); err != nil {
		return s, err
	}
	if s.UniqueSkillID, err = r.ReadUint32(); err != nil {
		return s, err
	}
	s.CasterID, err = readObjID(r)
	return s, err
}

func writeSkillsInProgress(w *bitstream.Writer, s []SkillInProgress) error {
	return writeList(w, s, writeSkillInProgress)
}

func readSkillsInProgress(r *bitstream.Reader) ([]SkillInProgress, error) {
	return readList(r, bitsSkillInProgress, readSkillInProgress)
}

type SkillConstruction struct {
	SkillsInProgress *[]SkillInProgress
}

func (*SkillConstruction) Kind() Kind    { return KindSkill }
func (*SkillConstruction) construction() {}

func (c *SkillConstruction) Encode(w *bitstream.Writer) error {
	return bitstream.WriteOptional(w, c.SkillsInProgress, writeSkillsInProgress)
}

func (c *SkillConstruction) Decode(r *bitstream.Reader) error {
	var err error
	c.SkillsInProgress, err = bitstream.ReadOptional(r, readSkillsInProgress)
	return err
}
