package component

import "github.com/zeusync/replicanet/internal/core/protocol/bitstream"

// StatusImmunityInfo holds immunity reference counts per status category.
type StatusImmunityInfo struct {
	BasicAttack         uint32
	DamageOverTime      uint32
	Knockback           uint32
	Interrupt           uint32
	Speed               uint32
	ImaginationGain     uint32
	ImaginationLoss     uint32
	QuickbuildInterrupt uint32
	PullToPoint         uint32
}

func (s *StatusImmunityInfo) fields() [9]*uint32 {
	return [9]*uint32{
		&s.BasicAttack, &s.DamageOverTime, &s.Knockback, &s.Interrupt, &s.Speed,
		&s.ImaginationGain, &s.ImaginationLoss, &s.QuickbuildInterrupt, &s.PullToPoint,
	}
}

func writeStatusImmunityInfo(w *bitstream.Writer, s StatusImmunityInfo) error {
	for _, v := range s.fields() {
		if err := w.WriteUint32(*v); err != nil {
			return err
		}
	}
	return nil
}

func readStatusImmunityInfo(r *bitstream.Reader) (StatusImmunityInfo, error) {
	var s StatusImmunityInfo
	var err error
	for _, p := range s.fields() {
		if *p, err = r.ReadUint32(); err != nil {
			return StatusImmunityInfo{}, err
		}
	}
	return s, nil
}

// DestroyableStats is the health block sent on every update.
type DestroyableStats struct {
	CurrentHealth        uint32
	MaxHealth            float32
	CurrentArmor         uint32
	MaxArmor             float32
	CurrentImagination   uint32
	MaxImagination       float32
	DamageAbsorption     uint32
	IsImmune             bool
	IsGMImmune           bool
	IsShielded           bool
	ActualMaxHealth      float32
	ActualMaxArmor       float32
	ActualMaxImagination float32
	Factions             []int32
	IsSmashable          bool
}

func writeDestroyableStats(w *bitstream.Writer, s DestroyableStats) error {
	pairs := [...]struct {
		cur uint32
		max float32
	}{
		{s.CurrentHealth, s.MaxHealth},
		{s.CurrentArmor, s.MaxArmor},
		{s.CurrentImagination, s.MaxImagination},
	}
	for _, p := range pairs {
		if err := w.WriteUint32(p.cur); err != nil {
			return err
		}
		if err := w.WriteFloat32(p.max); err != nil {
			return err
		}
	}
	if err := w.WriteUint32(s.DamageAbsorption); err != nil {
		return err
	}
	for _, b := range [...]bool{s.IsImmune, s.IsGMImmune, s.IsShielded} {
		if err := w.WriteBool(b); err != nil {
			return err
		}
	}
	for _, f := range [...]float32{s.ActualMaxHealth, s.ActualMaxArmor, s.ActualMaxImagination} {
		if err := w.WriteFloat32(f); err != nil {
			return err
		}
	}
	if err := writeList(w, s.Factions, bitstream.EncodeInt32); err != nil {
		return err
	}
	return w.WriteBool(s.IsSmashable)
}

func readDestroyableStats(r *bitstream.Reader) (DestroyableStats, error) {
	var s DestroyableStats
	var err error
	for _, p := range [...]struct {
		cur *uint32
		max *float32
	}{
		{&s.CurrentHealth, &s.MaxHealth},
		{&s.CurrentArmor, &s.MaxArmor},
		{&s.CurrentImagination, &s.MaxImagination},
	} {
		if *p.cur, err = r.ReadUint32(); err != nil {
			return s, err
		}
		if *p.max, err = r.ReadFloat32(); err != nil {
			return s, err
		}
	}
	if s.DamageAbsorption, err = r.ReadUint32(); err != nil {
		return s, err
	}
	for _, b := range [...]*bool{&s.IsImmune, &s.IsGMImmune, &s.IsShielded} {
		if *b, err = r.ReadBool(); err != nil {
			return s, err
		}
	}
	for _, f := range [...]*float32{&s.ActualMaxHealth, &s.ActualMaxArmor, &s.ActualMaxImagination} {
		if *f, err = r.ReadFloat32(); err != nil {
			return s, err
		}
	}
	if s.Factions, err = readList(r, 32, bitstream.DecodeInt32); err != nil {
		return s, err
	}
	s.IsSmashable, err = r.ReadBool()
	return s, err
}

type SmashableInfo struct {
	IsModuleAssembly bool
	ExplodeFactor    *float32
}

func writeSmashableInfo(w *bitstream.Writer, s SmashableInfo) error {
	if err := w.WriteBool(s.IsModuleAssembly); err != nil {
		return err
	}
	return bitstream.WriteOptional(w, s.ExplodeFactor, bitstream.EncodeFloat32)
}

func readSmashableInfo(r *bitstream.Reader) (SmashableInfo, error) {
	var s SmashableInfo
	var err error
	if s.IsModuleAssembly, err = r.ReadBool(); err != nil {
		return s, err
	}
	s.ExplodeFactor, err = bitstream.ReadOptional(r, bitstream.DecodeFloat32)
	return s, err
}

// DestroyableConstructionStats adds the death state only sent on construction.
type DestroyableConstructionStats struct {
	DestroyableStats
	IsDead    bool
	IsSmashed bool
	Smashable *SmashableInfo
}

func writeDestroyableConstructionStats(w *bitstream.Writer, s DestroyableConstructionStats) error {
	if err := writeDestroyableStats(w, s.DestroyableStats); err != nil {
		return err
	}
	if err := w.WriteBool(s.IsDead); err != nil {
		return err
	}
	if err := w.WriteBool(s.IsSmashed); err != nil {
		return err
	}
	return bitstream.WriteOptional(w, s.Smashable, writeSmashableInfo)
}

func readDestroyableConstructionStats(r *bitstream.Reader) (DestroyableConstructionStats, error) {
	var s DestroyableConstructionStats
	var err error
	if s.DestroyableStats, err = readDestroyableStats(r); err != nil {
		return s, err
	}
	if s.IsDead, err = r.ReadBool(); err != nil {
		return s, err
	}
	if s.IsSmashed, err = r.ReadBool(); err != nil {
		return s, err
	}
	s.Smashable, err = bitstream.ReadOptional(r, readSmashableInfo)
	return s, err
}

type DestroyableConstruction struct {
	StatusImmunity *StatusImmunityInfo
	Stats          *DestroyableConstructionStats
	IsOnThreatList *bool
}

func (*DestroyableConstruction) Kind() Kind    { return KindDestroyable }
func (*DestroyableConstruction) construction() {}

func (c *DestroyableConstruction) Encode(w *bitstream.Writer) error {
	if err := bitstream.WriteOptional(w, c.StatusImmunity, writeStatusImmunityInfo); err != nil {
		return err
	}
	if err := bitstream.WriteOptional(w, c.Stats, writeDestroyableConstructionStats); err != nil {
		return err
	}
	return bitstream.WriteOptional(w, c.IsOnThreatList, bitstream.EncodeBool)
}

func (c *DestroyableConstruction) Decode(r *bitstream.Reader) error {
	var err error
	if c.StatusImmunity, err = bitstream.ReadOptional(r, readStatusImmunityInfo); err != nil {
		return err
	}
	if c.Stats, err = bitstream.ReadOptional(r, readDestroyableConstructionStats); err != nil {
		return err
	}
	c.IsOnThreatList, err = bitstream.ReadOptional(r, bitstream.DecodeBool)
	return err
}

type DestroyableSerialization struct {
	Stats          *DestroyableStats
	IsOnThreatList *bool
}

func (*DestroyableSerialization) Kind() Kind     { return KindDestroyable }
func (*DestroyableSerialization) serialization() {}

func (s *DestroyableSerialization) Encode(w *bitstream.Writer) error {
	if err := bitstream.WriteOptional(w, s.Stats, writeDestroyableStats); err != nil {
		return err
	}
	return bitstream.WriteOptional(w, s.IsOnThreatList, bitstream.EncodeBool)
}

func (s *DestroyableSerialization) Decode(r *bitstream.Reader) error {
	var err error
	if s.Stats, err = bitstream.ReadOptional(r, readDestroyableStats); err != nil {
		return err
	}
	s.IsOnThreatList, err = bitstream.ReadOptional(r, bitstream.DecodeBool)
	return err
}
