package component

import "github.com/zeusync/replicanet/internal/core/protocol/bitstream"

// CharacterStatCount is the number of lifetime statistics sent on construction.
const CharacterStatCount = 27

type Appearance struct {
	HairColor  uint32
	HairStyle  uint32
	Head       uint32
	ShirtColor uint32
	PantsColor uint32
	ShirtStyle uint32
	HeadColor  uint32
	Eyebrows   uint32
	Eyes       uint32
	Mouth      uint32
}

func (a *Appearance) fields() [10]*uint32 {
	return [10]*uint32{
		&a.HairColor, &a.HairStyle, &a.Head, &a.ShirtColor, &a.PantsColor,
		&a.ShirtStyle, &a.HeadColor, &a.Eyebrows, &a.Eyes, &a.Mouth,
	}
}

type ClaimCodes [4]uint64

func writeClaimCodes(w *bitstream.Writer, c ClaimCodes) error {
	for _, v := range c {
		if err := w.WriteUint64(v); err != nil {
			return err
		}
	}
	return nil
}

func readClaimCodes(r *bitstream.Reader) (ClaimCodes, error) {
	var c ClaimCodes
	var err error
	for i := range c {
		if c[i], err = r.ReadUint64(); err != nil {
			return ClaimCodes{}, err
		}
	}
	return c, nil
}

type GMInfo struct {
	PvpEnabled    bool
	IsGM          bool
	GMLevel       uint8
	EditorEnabled bool
	EditorLevel   uint8
}

func writeGMInfo(w *bitstream.Writer, g GMInfo) error {
	if err := w.WriteBool(g.PvpEnabled); err != nil {
		return err
	}
	if err := w.WriteBool(g.IsGM); err != nil {
		return err
	}
	if err := w.WriteUint8(g.GMLevel); err != nil {
		return err
	}
	if err := w.WriteBool(g.EditorEnabled); err != nil {
		return err
	}
	return w.WriteUint8(g.EditorLevel)
}

func readGMInfo(r *bitstream.Reader) (GMInfo, error) {
	var g GMInfo
	var err error
	if g.PvpEnabled, err = r.ReadBool(); err != nil {
		return g, err
	}
	if g.IsGM, err = r.ReadBool(); err != nil {
		return g, err
	}
	if g.GMLevel, err = r.ReadUint8(); err != nil {
		return g, err
	}
	if g.EditorEnabled, err = r.ReadBool(); err != nil {
		return g, err
	}
	g.EditorLevel, err = r.ReadUint8()
	return g, err
}

type SocialInfo struct {
	GuildID          ObjID
	GuildName        WideString
	IsLegoClubMember bool
}

func writeSocialInfo(w *bitstream.Writer, s SocialInfo) error {
	if err := writeObjID(w, s.GuildID); err != nil {
		return err
	}
	if err := writeWideString(w, s.GuildName, 8); err != nil {
		return err
	}
	return w.WriteBool(s.IsLegoClubMember)
}

func readSocialInfo(r *bitstream.Reader) (SocialInfo, error) {
	var s SocialInfo
	var err error
	if s.GuildID, err = readObjID(r); err != nil {
		return s, err
	}
	if s.GuildName, err = readWideString(r, 8); err != nil {
		return s, err
	}
	s.IsLegoClubMember, err = r.ReadBool()
	return s, err
}

func writeRocketLanding(w *bitstream.Writer, s WideString) error {
	return writeWideString(w, s, 16)
}

func readRocketLanding(r *bitstream.Reader) (WideString, error) {
	return readWideString(r, 16)
}

// CharacterStatus holds the blocks every character frame ends with.
type CharacterStatus struct {
	GM              *GMInfo
	CurrentActivity *uint32
	Social          *SocialInfo
}

func (s *CharacterStatus) encode(w *bitstream.Writer) error {
	if err := bitstream.WriteOptional(w, s.GM, writeGMInfo); err != nil {
		return err
	}
	if err := bitstream.WriteOptional(w, s.CurrentActivity, bitstream.EncodeUint32); err != nil {
		return err
	}
	return bitstream.WriteOptional(w, s.Social, writeSocialInfo)
}

func (s *CharacterStatus) decode(r *bitstream.Reader) error {
	var err error
	if s.GM, err = bitstream.ReadOptional(r, readGMInfo); err != nil {
		return err
	}
	if s.CurrentActivity, err = bitstream.ReadOptional(r, bitstream.DecodeUint32); err != nil {
		return err
	}
	s.Social, err = bitstream.ReadOptional(r, readSocialInfo)
	return err
}

type CharacterConstruction struct {
	VehicleID  *ObjID
	Level      *uint32
	ClaimCodes *ClaimCodes

	Appearance             Appearance
	AccountID              uint64
	LastLogin              uint64
	PropModLastDisplayTime uint64
	UScore                 uint64
	FreeToPlay             bool
	Stats                  [CharacterStatCount]uint64

	RocketLanding *WideString
	CharacterStatus
}

func (*CharacterConstruction) Kind() Kind    { return KindCharacter }
func (*CharacterConstruction) construction() {}

func (c *CharacterConstruction) Encode(w *bitstream.Writer) error {
	if err := bitstream.WriteOptional(w, c.VehicleID, writeObjID); err != nil {
		return err
	}
	if err := bitstream.WriteOptional(w, c.Level, bitstream.EncodeUint32); err != nil {
		return err
	}
	if err := bitstream.WriteOptional(w, c.ClaimCodes, writeClaimCodes); err != nil {
		return err
	}
	for _, v := range c.Appearance.fields() {
		if err := w.WriteUint32(*v); err != nil {
			return err
		}
	}
	for _, v := range [...]uint64{c.AccountID, c.LastLogin, c.PropModLastDisplayTime, c.UScore} {
		if err := w.WriteUint64(v); err != nil {
			return err
		}
	}
	if err := w.WriteBool(c.FreeToPlay); err != nil {
		return err
	}
	for _, v := range c.Stats {
		if err := w.WriteUint64(v); err != nil {
			return err
		}
	}
	if err := bitstream.WriteOptional(w, c.RocketLanding, writeRocketLanding); err != nil {
		return err
	}
	return c.CharacterStatus.encode(w)
}

func (c *CharacterConstruction) Decode(r *bitstream.Reader) error {
	var err error
	if c.VehicleID, err = bitstream.ReadOptional(r, readObjID); err != nil {
		return err
	}
	if c.Level, err = bitstream.ReadOptional(r, bitstream.DecodeUint32); err != nil {
		return err
	}
	if c.ClaimCodes, err = bitstream.ReadOptional(r, readClaimCodes); err != nil {
		return err
	}
	for _, p := range c.Appearance.fields() {
		if *p, err = r.ReadUint32(); err != nil {
			return err
		}
	}
	for _, p := range [...]*uint64{&c.AccountID, &c.LastLogin, &c.PropModLastDisplayTime, &c.UScore} {
		if *p, err = r.ReadUint64(); err != nil {
			return err
		}
	}
	if c.FreeToPlay, err = r.ReadBool(); err != nil {
		return err
	}
	for i := range c.Stats {
		if c.Stats[i], err = r.ReadUint64(); err != nil {
			return err
		}
	}
	if c.RocketLanding, err = bitstream.ReadOptional(r, readRocketLanding); err != nil {
		return err
	}
	return c.CharacterStatus.decode(r)
}

type CharacterSerialization struct {
	VehicleID *ObjID
	Level     *uint32
	CharacterStatus
}

func (*CharacterSerialization) Kind() Kind     { return KindCharacter }
func (*CharacterSerialization) serialization() {}

func (s *CharacterSerialization) Encode(w *bitstream.Writer) error {
	if err := bitstream.WriteOptional(w, s.VehicleID, writeObjID); err != nil {
		return err
	}
	if err := bitstream.WriteOptional(w, s.Level, bitstream.EncodeUint32); err != nil {
		return err
	}
	return s.CharacterStatus.encode(w)
}

func (s *CharacterSerialization) Decode(r *bitstream.Reader) error {
	var err error
	if s.VehicleID, err = bitstream.ReadOptional(r, readObjID); err != nil {
		return err
	}
	if s.Level, err = bitstream.ReadOptional(r, bitstream.DecodeUint32); err != nil {
		return err
	}
	return s.CharacterStatus.decode(r)
}
