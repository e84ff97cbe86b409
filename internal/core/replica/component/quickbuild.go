package component

import "github.com/zeusync/replicanet/internal/core/protocol/bitstream"

// RebuildChallengeState is the progress of a quickbuild.
type RebuildChallengeState uint32

const (
	RebuildOpen       RebuildChallengeState = 0
	RebuildCompleted  RebuildChallengeState = 2
	RebuildResetting  RebuildChallengeState = 4
	RebuildBuilding   RebuildChallengeState = 5
	RebuildIncomplete RebuildChallengeState = 6
)

// ActivityUser is one player taking part in the build and their activity values.
type ActivityUser struct {
	UserID ObjID
	Values [10]float32
}

const bitsActivityUser = bitsObjID + 10*32

func writeActivityUser(w *bitstream.Writer, u ActivityUser) error {
	if err := writeObjID(w, u.UserID); err != nil {
		return err
	}
	for _, v := range u.Values {
		if err := w.WriteFloat32(v); err != nil {
			return err
		}
	}
	return nil
}

func readActivityUser(r *bitstream.Reader) (ActivityUser, error) {
	var u ActivityUser
	var err error
	if u.UserID, err = readObjID(r); err != nil {
		return ActivityUser{}, err
	}
	for i := range u.Values {
		if u.Values[i], err = r.ReadFloat32(); err != nil {
			return ActivityUser{}, err
		}
	}
	return u, nil
}

func writeActivityUsers(w *bitstream.Writer, users []ActivityUser) error {
	return writeList(w, users, writeActivityUser)
}

func readActivityUsers(r *bitstream.Reader) ([]ActivityUser, error) {
	return readList(r, bitsActivityUser, readActivityUser)
}

// QuickbuildSerializationInfo is the state block carried on every update.
type QuickbuildSerializationInfo struct {
	State               RebuildChallengeState
	ShowResetEffect     bool
	HasActivator        bool
	DurationTimer       float32
	TotalIncompleteTime float32
}

func writeQuickbuildSerializationInfo(w *bitstream.Writer, i QuickbuildSerializationInfo) error {
	if err := w.WriteUint32(uint32(i.State)); err != nil {
		return err
	}
	if err := w.WriteBool(i.ShowResetEffect); err != nil {
		return err
	}
	if err := w.WriteBool(i.HasActivator); err != nil {
		return err
	}
	if err := w.WriteFloat32(i.DurationTimer); err != nil {
		return err
	}
	return w.WriteFloat32(i.TotalIncompleteTime)
}

func readQuickbuildSerializationInfo(r *bitstream.Reader) (QuickbuildSerializationInfo, error) {
	var i QuickbuildSerializationInfo
	state, err := r.ReadUint32()
	if err != nil {
		return i, err
	}
	i.State = RebuildChallengeState(state)
	if i.ShowResetEffect, err = r.ReadBool(); err != nil {
		return i, err
	}
	if i.HasActivator, err = r.ReadBool(); err != nil {
		return i, err
	}
	if i.DurationTimer, err = r.ReadFloat32(); err != nil {
		return i, err
	}
	i.TotalIncompleteTime, err = r.ReadFloat32()
	return i, err
}

// QuickbuildConstructionInfo extends the update block with the activator
// placement, sent only on construction.
type QuickbuildConstructionInfo struct {
	QuickbuildSerializationInfo
	Reserved          *uint32
	ActivatorPosition Vector3
	RepositionPlayer  bool
}

func writeQuickbuildConstructionInfo(w *bitstream.Writer, i QuickbuildConstructionInfo) error {
	if err := writeQuickbuildSerializationInfo(w, i.QuickbuildSerializationInfo); err != nil {
		return err
	}
	if err := bitstream.WriteOptional(w, i.Reserved, bitstream.EncodeUint32); err != nil {
		return err
	}
	if err := writeVector3(w, i.ActivatorPosition); err != nil {
		return err
	}
	return w.WriteBool(i.RepositionPlayer)
}

func readQuickbuildConstructionInfo(r *bitstream.Reader) (QuickbuildConstructionInfo, error) {
	var i QuickbuildConstructionInfo
	var err error
	if i.QuickbuildSerializationInfo, err = readQuickbuildSerializationInfo(r); err != nil {
		return i, err
	}
	if i.Reserved, err = bitstream.ReadOptional(r, bitstream.DecodeUint32); err != nil {
		return i, err
	}
	if i.ActivatorPosition, err = readVector3(r); err != nil {
		return i, err
	}
	i.RepositionPlayer, err = r.ReadBool()
	return i, err
}

type QuickbuildConstruction struct {
	ActivityUsers *[]ActivityUser
	Info          *QuickbuildConstructionInfo
}

func (*QuickbuildConstruction) Kind() Kind    { return KindQuickbuild }
func (*QuickbuildConstruction) construction() {}

func (c *QuickbuildConstruction) Encode(w *bitstream.Writer) error {
	if err := bitstream.WriteOptional(w, c.ActivityUsers, writeActivityUsers); err != nil {
		return err
	}
	return bitstream.WriteOptional(w, c.Info, writeQuickbuildConstructionInfo)
}

func (c *QuickbuildConstruction) Decode(r *bitstream.Reader) error {
	var err error
	if c.ActivityUsers, err = bitstream.ReadOptional(r, readActivityUsers); err != nil {
		return err
	}
	c.Info, err = bitstream.ReadOptional(r, readQuickbuildConstructionInfo)
	return err
}

type QuickbuildSerialization struct {
	ActivityUsers *[]ActivityUser
	Info          *QuickbuildSerializationInfo
}

func (*QuickbuildSerialization) Kind() Kind     { return KindQuickbuild }
func (*QuickbuildSerialization) serialization() {}

func (s *QuickbuildSerialization) Encode(w *bitstream.Writer) error {
	if err := bitstream.WriteOptional(w, s.ActivityUsers, writeActivityUsers); err != nil {
		return err
	}
	return bitstream.WriteOptional(w, s.Info, writeQuickbuildSerializationInfo)
}

func (s *QuickbuildSerialization) Decode(r *bitstream.Reader) error {
	var err error
	if s.ActivityUsers, err = bitstream.ReadOptional(r, readActivityUsers); err != nil {
		return err
	}
	s.Info, err = bitstream.ReadOptional(r, readQuickbuildSerializationInfo)
	return err
}
