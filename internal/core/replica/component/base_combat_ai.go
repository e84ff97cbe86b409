package component

import "github.com/zeusync/replicanet/internal/core/protocol/bitstream"

type CombatAiAction uint32

const (
	CombatAiIdle   CombatAiAction = 0
	CombatAiAggro  CombatAiAction = 1
	CombatAiTether CombatAiAction = 2
	CombatAiSpawn  CombatAiAction = 3
	CombatAiDead   CombatAiAction = 4
)

type CombatAiState struct {
	Action   CombatAiAction
	TargetID ObjID
}

func writeCombatAiState(w *bitstream.Writer, s CombatAiState) error {
	if err := w.WriteUint32(uint32(s.Action)); err != nil {
		return err
	}
	return writeObjID(w, s.TargetID)
}

func readCombatAiState(r *bitstream.Reader) (CombatAiState, error) {
	action, err := r.ReadUint32()
	if err != nil {
		return CombatAiState{}, err
	}
	target, err := readObjID(r)
	return CombatAiState{Action: CombatAiAction(action), TargetID: target}, err
}

type BaseCombatAiConstruction struct {
	State *CombatAiState
}

func (*BaseCombatAiConstruction) Kind() Kind    { return KindBaseCombatAi }
func (*BaseCombatAiConstruction) construction() {}

func (c *BaseCombatAiConstruction) Encode(w *bitstream.Writer) error {
	return bitstream.WriteOptional(w, c.State, writeCombatAiState)
}

func (c *BaseCombatAiConstruction) Decode(r *bitstream.Reader) error {
	var err error
	c.State, err = bitstream.ReadOptional(r, readCombatAiState)
	return err
}

type BaseCombatAiSerialization struct {
	State *CombatAiState
}

func (*BaseCombatAiSerialization) Kind() Kind     { return KindBaseCombatAi }
func (*BaseCombatAiSerialization) serialization() {}

func (s *BaseCombatAiSerialization) Encode(w *bitstream.Writer) error {
	return bitstream.WriteOptional(w, s.State, writeCombatAiState)
}

func (s *BaseCombatAiSerialization) Decode(r *bitstream.Reader) error {
	var err error
	s.State, err = bitstream.ReadOptional(r, readCombatAiState)
	return err
}
