package component

import "github.com/zeusync/replicanet/internal/core/protocol/bitstream"

type DistanceInfo struct {
	Min float32
	Max float32
}

func writeDistanceInfo(w *bitstream.Writer, d DistanceInfo) error {
	if err := w.WriteFloat32(d.Min); err != nil {
		return err
	}
	return w.WriteFloat32(d.Max)
}

func readDistanceInfo(r *bitstream.Reader) (DistanceInfo, error) {
	var d DistanceInfo
	var err error
	if d.Min, err = r.ReadFloat32(); err != nil {
		return d, err
	}
	d.Max, err = r.ReadFloat32()
	return d, err
}

type PhysicsEffectInfo struct {
	EffectType      uint32
	Amount          float32
	Distance        *DistanceInfo
	ImpulseVelocity *Vector3
}

func writePhysicsEffectInfo(w *bitstream.Writer, e PhysicsEffectInfo) error {
	if err := w.WriteUint32(e.EffectType); err != nil {
		return err
	}
	if err := w.WriteFloat32(e.Amount); err != nil {
		return err
	}
	if err := bitstream.WriteOptional(w, e.Distance, writeDistanceInfo); err != nil {
		return err
	}
	return bitstream.WriteOptional(w, e.ImpulseVelocity, writeVector3)
}

func readPhysicsEffectInfo(r *bitstream.Reader) (PhysicsEffectInfo, error) {
	var e PhysicsEffectInfo
	var err error
	if e.EffectType, err = r.ReadUint32(); err != nil {
		return e, err
	}
	if e.Amount, err = r.ReadFloat32(); err != nil {
		return e, err
	}
	if e.Distance, err = bitstream.ReadOptional(r, readDistanceInfo); err != nil {
		return e, err
	}
	e.ImpulseVelocity, err = bitstream.ReadOptional(r, readVector3)
	return e, err
}

// PhysicsEffectUpdate signals an effect change; a nil Active means the effect is off.
type PhysicsEffectUpdate struct {
	Active *PhysicsEffectInfo
}

func writePhysicsEffectUpdate(w *bitstream.Writer, u PhysicsEffectUpdate) error {
	return bitstream.WriteOptional(w, u.Active, writePhysicsEffectInfo)
}

func readPhysicsEffectUpdate(r *bitstream.Reader) (PhysicsEffectUpdate, error) {
	active, err := bitstream.ReadOptional(r, readPhysicsEffectInfo)
	return PhysicsEffectUpdate{Active: active}, err
}

type PhantomPhysicsState struct {
	Position *Transform
	Effect   *PhysicsEffectUpdate
}

func (s *PhantomPhysicsState) encode(w *bitstream.Writer) error {
	if err := bitstream.WriteOptional(w, s.Position, writeTransform); err != nil {
		return err
	}
	return bitstream.WriteOptional(w, s.Effect, writePhysicsEffectUpdate)
}

func (s *PhantomPhysicsState) decode(r *bitstream.Reader) error {
	var err error
	if s.Position, err = bitstream.ReadOptional(r, readTransform); err != nil {
		return err
	}
	s.Effect, err = bitstream.ReadOptional(r, readPhysicsEffectUpdate)
	return err
}

type PhantomPhysicsConstruction struct{ PhantomPhysicsState }

func (*PhantomPhysicsConstruction) Kind() Kind                         { return KindPhantomPhysics }
func (*PhantomPhysicsConstruction) construction()                      {}
func (c *PhantomPhysicsConstruction) Encode(w *bitstream.Writer) error { return c.encode(w) }
func (c *PhantomPhysicsConstruction) Decode(r *bitstream.Reader) error { return c.decode(r) }

type PhantomPhysicsSerialization struct{ PhantomPhysicsState }

func (*PhantomPhysicsSerialization) Kind() Kind                         { return KindPhantomPhysics }
func (*PhantomPhysicsSerialization) serialization()                     {}
func (s *PhantomPhysicsSerialization) Encode(w *bitstream.Writer) error { return s.encode(w) }
func (s *PhantomPhysicsSerialization) Decode(r *bitstream.Reader) error { return s.decode(r) }
