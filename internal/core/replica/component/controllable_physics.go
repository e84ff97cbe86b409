package component

import "github.com/zeusync/replicanet/internal/core/protocol/bitstream"

type JetpackInfo struct {
	EffectID     uint32
	IsFlying     bool
	BypassChecks bool
}

func writeJetpackInfo(w *bitstream.Writer, j JetpackInfo) error {
	if err := w.WriteUint32(j.EffectID); err != nil {
		return err
	}
	if err := w.WriteBool(j.IsFlying); err != nil {
		return err
	}
	return w.WriteBool(j.BypassChecks)
}

func readJetpackInfo(r *bitstream.Reader) (JetpackInfo, error) {
	var j JetpackInfo
	var err error
	if j.EffectID, err = r.ReadUint32(); err != nil {
		return j, err
	}
	if j.IsFlying, err = r.ReadBool(); err != nil {
		return j, err
	}
	j.BypassChecks, err = r.ReadBool()
	return j, err
}

// StunImmunityInfo holds immunity reference counts per stun category.
type StunImmunityInfo struct {
	Move, Turn, Attack, UseItem, Equip, Interact, Jump uint32
}

func writeStunImmunityInfo(w *bitstream.Writer, s StunImmunityInfo) error {
	for _, v := range [...]uint32{s.Move, s.Turn, s.Attack, s.UseItem, s.Equip, s.Interact, s.Jump} {
		if err := w.WriteUint32(v); err != nil {
			return err
		}
	}
	return nil
}

func readStunImmunityInfo(r *bitstream.Reader) (StunImmunityInfo, error) {
	var s StunImmunityInfo
	for _, p := range [...]*uint32{&s.Move, &s.Turn, &s.Attack, &s.UseItem, &s.Equip, &s.Interact, &s.Jump} {
		v, err := r.ReadUint32()
		if err != nil {
			return StunImmunityInfo{}, err
		}
		*p = v
	}
	return s, nil
}

type CheatInfo struct {
	GravityScale  float32
	RunMultiplier float32
}

func writeCheatInfo(w *bitstream.Writer, c CheatInfo) error {
	if err := w.WriteFloat32(c.GravityScale); err != nil {
		return err
	}
	return w.WriteFloat32(c.RunMultiplier)
}

func readCheatInfo(r *bitstream.Reader) (CheatInfo, error) {
	var c CheatInfo
	var err error
	if c.GravityScale, err = r.ReadFloat32(); err != nil {
		return c, err
	}
	c.RunMultiplier, err = r.ReadFloat32()
	return c, err
}

type EquippedItemInfo struct {
	PickupRadius float32
	Reserved     bool
}

func writeEquippedItemInfo(w *bitstream.Writer, e EquippedItemInfo) error {
	if err := w.WriteFloat32(e.PickupRadius); err != nil {
		return err
	}
	return w.WriteBool(e.Reserved)
}

func readEquippedItemInfo(r *bitstream.Reader) (EquippedItemInfo, error) {
	var e EquippedItemInfo
	var err error
	if e.PickupRadius, err = r.ReadFloat32(); err != nil {
		return e, err
	}
	e.Reserved, err = r.ReadBool()
	return e, err
}

type BubbleInfo struct {
	BubbleType   uint32
	SpecialAnims bool
}

func writeBubbleInfo(w *bitstream.Writer, b BubbleInfo) error {
	if err := w.WriteUint32(b.BubbleType); err != nil {
		return err
	}
	return w.WriteBool(b.SpecialAnims)
}

func readBubbleInfo(r *bitstream.Reader) (BubbleInfo, error) {
	var b BubbleInfo
	var err error
	if b.BubbleType, err = r.ReadUint32(); err != nil {
		return b, err
	}
	b.SpecialAnims, err = r.ReadBool()
	return b, err
}

// BubbleUpdate signals a bubble change; a nil Active means the bubble was removed.
type BubbleUpdate struct {
	Active *BubbleInfo
}

func writeBubbleUpdate(w *bitstream.Writer, b BubbleUpdate) error {
	return bitstream.WriteOptional(w, b.Active, writeBubbleInfo)
}

func readBubbleUpdate(r *bitstream.Reader) (BubbleUpdate, error) {
	active, err := bitstream.ReadOptional(r, readBubbleInfo)
	return BubbleUpdate{Active: active}, err
}

type LocalSpaceInfo struct {
	ObjectID       ObjID
	Position       Vector3
	LinearVelocity *Vector3
}

func writeLocalSpaceInfo(w *bitstream.Writer, l LocalSpaceInfo) error {
	if err := writeObjID(w, l.ObjectID); err != nil {
		return err
	}
	if err := writeVector3(w, l.Position); err != nil {
		return err
	}
	return bitstream.WriteOptional(w, l.LinearVelocity, writeVector3)
}

func readLocalSpaceInfo(r *bitstream.Reader) (LocalSpaceInfo, error) {
	var l LocalSpaceInfo
	var err error
	if l.ObjectID, err = readObjID(r); err != nil {
		return l, err
	}
	if l.Position, err = readVector3(r); err != nil {
		return l, err
	}
	l.LinearVelocity, err = bitstream.ReadOptional(r, readVector3)
	return l, err
}

// FrameStats is the movement snapshot of a controllable object.
type FrameStats struct {
	Position        Vector3
	Rotation        Quaternion
	IsOnGround      bool
	IsOnRail        bool
	LinearVelocity  *Vector3
	AngularVelocity *Vector3
	LocalSpace      *LocalSpaceInfo
}

func writeFrameStats(w *bitstream.Writer, f FrameStats) error {
	if err := writeVector3(w, f.Position); err != nil {
		return err
	}
	if err := writeQuaternion(w, f.Rotation); err != nil {
		return err
	}
	if err := w.WriteBool(f.IsOnGround); err != nil {
		return err
	}
	if err := w.WriteBool(f.IsOnRail); err != nil {
		return err
	}
	if err := bitstream.WriteOptional(w, f.LinearVelocity, writeVector3); err != nil {
		return err
	}
	if err := bitstream.WriteOptional(w, f.AngularVelocity, writeVector3); err != nil {
		return err
	}
	return bitstream.WriteOptional(w, f.LocalSpace, writeLocalSpaceInfo)
}

func readFrameStats(r *bitstream.Reader) (FrameStats, error) {
	var f FrameStats
	var err error
	if f.Position, err = readVector3(r); err != nil {
		return f, err
	}
	if f.Rotation, err = readQuaternion(r); err != nil {
		return f, err
	}
	if f.IsOnGround, err = r.ReadBool(); err != nil {
		return f, err
	}
	if f.IsOnRail, err = r.ReadBool(); err != nil {
		return f, err
	}
	if f.LinearVelocity, err = bitstream.ReadOptional(r, readVector3); err != nil {
		return f, err
	}
	if f.AngularVelocity, err = bitstream.ReadOptional(r, readVector3); err != nil {
		return f, err
	}
	f.LocalSpace, err = bitstream.ReadOptional(r, readLocalSpaceInfo)
	return f, err
}

// FrameUpdate is FrameStats plus the teleport flag carried on updates.
type FrameUpdate struct {
	FrameStats
	IsTeleporting bool
}

func writeFrameUpdate(w *bitstream.Writer, f FrameUpdate) error {
	if err := writeFrameStats(w, f.FrameStats); err != nil {
		return err
	}
	return w.WriteBool(f.IsTeleporting)
}

func readFrameUpdate(r *bitstream.Reader) (FrameUpdate, error) {
	stats, err := readFrameStats(r)
	if err != nil {
		return FrameUpdate{}, err
	}
	teleporting, err := r.ReadBool()
	return FrameUpdate{FrameStats: stats, IsTeleporting: teleporting}, err
}

type ControllablePhysicsConstruction struct {
	Jetpack      *JetpackInfo
	StunImmunity *StunImmunityInfo
	Cheat        *CheatInfo
	EquippedItem *EquippedItemInfo
	Bubble       *BubbleUpdate
	Frame        *FrameStats
}

func (*ControllablePhysicsConstruction) Kind() Kind    { return KindControllablePhysics }
func (*ControllablePhysicsConstruction) construction() {}

func (c *ControllablePhysicsConstruction) Encode(w *bitstream.Writer) error {
	if err := bitstream.WriteOptional(w, c.Jetpack, writeJetpackInfo); err != nil {
		return err
	}
	if err := bitstream.WriteOptional(w, c.StunImmunity, writeStunImmunityInfo); err != nil {
		return err
	}
	if err := bitstream.WriteOptional(w, c.Cheat, writeCheatInfo); err != nil {
		return err
	}
	if err := bitstream.WriteOptional(w, c.EquippedItem, writeEquippedItemInfo); err != nil {
		return err
	}
	if err := bitstream.WriteOptional(w, c.Bubble, writeBubbleUpdate); err != nil {
		return err
	}
	return bitstream.WriteOptional(w, c.Frame, writeFrameStats)
}

func (c *ControllablePhysicsConstruction) Decode(r *bitstream.Reader) error {
	var err error
	if c.Jetpack, err = bitstream.ReadOptional(r, readJetpackInfo); err != nil {
		return err
	}
	if c.StunImmunity, err = bitstream.ReadOptional(r, readStunImmunityInfo); err != nil {
		return err
	}
	if c.Cheat, err = bitstream.ReadOptional(r, readCheatInfo); err != nil {
		return err
	}
	if c.EquippedItem, err = bitstream.ReadOptional(r, readEquippedItemInfo); err != nil {
		return err
	}
	if c.Bubble, err = bitstream.ReadOptional(r, readBubbleUpdate); err != nil {
		return err
	}
	c.Frame, err = bitstream.ReadOptional(r, readFrameStats)
	return err
}

type ControllablePhysicsSerialization struct {
	Cheat        *CheatInfo
	EquippedItem *EquippedItemInfo
	Bubble       *BubbleUpdate
	Frame        *FrameUpdate
}

func (*ControllablePhysicsSerialization) Kind() Kind     { return KindControllablePhysics }
func (*ControllablePhysicsSerialization) serialization() {}

func (s *ControllablePhysicsSerialization) Encode(w *bitstream.Writer) error {
	if err := bitstream.WriteOptional(w, s.Cheat, writeCheatInfo); err != nil {
		return err
	}
	if err := bitstream.WriteOptional(w, s.EquippedItem, writeEquippedItemInfo); err != nil {
		return err
	}
	if err := bitstream.WriteOptional(w, s.Bubble, writeBubbleUpdate); err != nil {
		return err
	}
	return bitstream.WriteOptional(w, s.Frame, writeFrameUpdate)
}

func (s *ControllablePhysicsSerialization) Decode(r *bitstream.Reader) error {
	var err error
	if s.Cheat, err = bitstream.ReadOptional(r, readCheatInfo); err != nil {
		return err
	}
	if s.EquippedItem, err = bitstream.ReadOptional(r, readEquippedItemInfo); err != nil {
		return err
	}
	if s.Bubble, err = bitstream.ReadOptional(r, readBubbleUpdate); err != nil {
		return err
	}
	s.Frame, err = bitstream.ReadOptional(r, readFrameUpdate)
	return err
}
