package component

import "github.com/zeusync/replicanet/internal/core/protocol/bitstream"

type VelocityInfo struct {
	Linear  Vector3
	Angular Vector3
}

func writeVelocityInfo(w *bitstream.Writer, v VelocityInfo) error {
	if err := writeVector3(w, v.Linear); err != nil {
		return err
	}
	return writeVector3(w, v.Angular)
}

func readVelocityInfo(r *bitstream.Reader) (VelocityInfo, error) {
	linear, err := readVector3(r)
	if err != nil {
		return VelocityInfo{}, err
	}
	angular, err := readVector3(r)
	return VelocityInfo{Linear: linear, Angular: angular}, err
}

// SimplePhysicsUpdate holds the blocks shared by both tables.
type SimplePhysicsUpdate struct {
	Velocity   *VelocityInfo
	MotionType *uint32
	Position   *Transform
}

func (u *SimplePhysicsUpdate) encode(w *bitstream.Writer) error {
	if err := bitstream.WriteOptional(w, u.Velocity, writeVelocityInfo); err != nil {
		return err
	}
	if err := bitstream.WriteOptional(w, u.MotionType, bitstream.EncodeUint32); err != nil {
		return err
	}
	return bitstream.WriteOptional(w, u.Position, writeTransform)
}

func (u *SimplePhysicsUpdate) decode(r *bitstream.Reader) error {
	var err error
	if u.Velocity, err = bitstream.ReadOptional(r, readVelocityInfo); err != nil {
		return err
	}
	if u.MotionType, err = bitstream.ReadOptional(r, bitstream.DecodeUint32); err != nil {
		return err
	}
	u.Position, err = bitstream.ReadOptional(r, readTransform)
	return err
}

type SimplePhysicsConstruction struct {
	ClimbableType *int32
	SimplePhysicsUpdate
}

func (*SimplePhysicsConstruction) Kind() Kind    { return KindSimplePhysics }
func (*SimplePhysicsConstruction) construction() {}

func (c *SimplePhysicsConstruction) Encode(w *bitstream.Writer) error {
	if err := bitstream.WriteOptional(w, c.ClimbableType, bitstream.EncodeInt32); err != nil {
		return err
	}
	return c.SimplePhysicsUpdate.encode(w)
}

func (c *SimplePhysicsConstruction) Decode(r *bitstream.Reader) error {
	var err error
	if c.ClimbableType, err = bitstream.ReadOptional(r, bitstream.DecodeInt32); err != nil {
		return err
	}
	return c.SimplePhysicsUpdate.decode(r)
}

type SimplePhysicsSerialization struct {
	SimplePhysicsUpdate
}

func (*SimplePhysicsSerialization) Kind() Kind     { return KindSimplePhysics }
func (*SimplePhysicsSerialization) serialization() {}

func (s *SimplePhysicsSerialization) Encode(w *bitstream.Writer) error {
	return s.SimplePhysicsUpdate.encode(w)
}

func (s *SimplePhysicsSerialization) Decode(r *bitstream.Reader) error {
	return s.SimplePhysicsUpdate.decode(r)
}
