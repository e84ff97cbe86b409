package component

import "github.com/zeusync/replicanet/internal/core/protocol/bitstream"

// Payload is one component's share of a replica frame. Encode and Decode
// consume exactly the bits the kind's layout dictates.
type Payload interface {
	Kind() Kind
	Encode(w *bitstream.Writer) error
	Decode(r *bitstream.Reader) error
}

// Construction is the full state sent when an object becomes relevant.
type Construction interface {
	Payload
	construction()
}

// Serialization is the incremental state sent for an already known object.
type Serialization interface {
	Payload
	serialization()
}

// Role describes how a kind takes part in one codec table.
type Role uint8

const (
	// RoleUnknown kinds are outside the fixed set; frames naming them cannot be decoded.
	RoleUnknown Role = iota
	// RoleInert kinds are recognized but contribute no bits.
	RoleInert
	// RolePayload kinds have a codec.
	RolePayload
)

func (r Role) String() string {
	switch r {
	case RoleInert:
		return "inert"
	case RolePayload:
		return "payload"
	default:
		return "unknown"
	}
}

type (
	ConstructionFactory  func() Construction
	SerializationFactory func() Serialization
)

type codec struct {
	name          string
	construction  ConstructionFactory
	serialization SerializationFactory
}

// codecFor is the single table mapping the closed kind set onto codecs.
// A nil factory marks the kind inert in that table.
func codecFor(k Kind) (codec, bool) {
	switch k {
	case KindControllablePhysics:
		return codec{
			name:          "ControllablePhysics",
			construction:  func() Construction { return new(ControllablePhysicsConstruction) },
			serialization: func() Serialization { return new(ControllablePhysicsSerialization) },
		}, true
	case KindRender:
		return codec{name: "Render"}, true
	case KindSimplePhysics:
		return codec{
			name:          "SimplePhysics",
			construction:  func() Construction { return new(SimplePhysicsConstruction) },
			serialization: func() Serialization { return new(SimplePhysicsSerialization) },
		}, true
	case KindCharacter:
		return codec{
			name:          "Character",
			construction:  func() Construction { return new(CharacterConstruction) },
			serialization: func() Serialization { return new(CharacterSerialization) },
		}, true
	case KindScript:
		return codec{
			name:         "Script",
			construction: func() Construction { return new(ScriptConstruction) },
		}, true
	case KindDestroyable:
		return codec{
			name:          "Destroyable",
			construction:  func() Construction { return new(DestroyableConstruction) },
			serialization: func() Serialization { return new(DestroyableSerialization) },
		}, true
	case KindSkill:
		return codec{
			name:         "Skill",
			construction: func() Construction { return new(SkillConstruction) },
		}, true
	case KindInventory:
		return codec{
			name:          "Inventory",
			construction:  func() Construction { return new(InventoryConstruction) },
			serialization: func() Serialization { return new(InventorySerialization) },
		}, true
	case KindMovementAi:
		return codec{name: "MovementAi"}, true
	case KindPhantomPhysics:
		return codec{
			name:          "PhantomPhysics",
			construction:  func() Construction { return new(PhantomPhysicsConstruction) },
			serialization: func() Serialization { return new(PhantomPhysicsSerialization) },
		}, true
	case KindFx:
		return codec{
			name:         "Fx",
			construction: func() Construction { return new(FxConstruction) },
		}, true
	case KindQuickbuild:
		return codec{
			name:          "Quickbuild",
			construction:  func() Construction { return new(QuickbuildConstruction) },
			serialization: func() Serialization { return new(QuickbuildSerialization) },
		}, true
	case KindSoundAmbient2D:
		return codec{name: "SoundAmbient2D"}, true
	case KindSoundAmbient3D:
		return codec{name: "SoundAmbient3D"}, true
	case KindBaseCombatAi:
		return codec{
			name:          "BaseCombatAi",
			construction:  func() Construction { return new(BaseCombatAiConstruction) },
			serialization: func() Serialization { return new(BaseCombatAiSerialization) },
		}, true
	case KindRocketLanding:
		return codec{name: "RocketLanding"}, true
	case KindBuff:
		return codec{
			name:         "Buff",
			construction: func() Construction { return new(BuffConstruction) },
		}, true
	case KindPlayerForcedMovement:
		return codec{
			name:          "PlayerForcedMovement",
			construction:  func() Construction { return new(PlayerForcedMovementConstruction) },
			serialization: func() Serialization { return new(PlayerForcedMovementSerialization) },
		}, true
	case KindBbb:
		return codec{
			name:          "Bbb",
			construction:  func() Construction { return new(BbbConstruction) },
			serialization: func() Serialization { return new(BbbSerialization) },
		}, true
	case KindLevelProgression:
		return codec{
			name:          "LevelProgression",
			construction:  func() Construction { return new(LevelProgressionConstruction) },
			serialization: func() Serialization { return new(LevelProgressionSerialization) },
		}, true
	case KindPossessionControl:
		return codec{
			name:          "PossessionControl",
			construction:  func() Construction { return new(PossessionControlConstruction) },
			serialization: func() Serialization { return new(PossessionControlSerialization) },
		}, true
	default:
		return codec{}, false
	}
}

// LookupConstruction resolves the construction codec of k.
func LookupConstruction(k Kind) (ConstructionFactory, Role) {
	c, ok := codecFor(k)
	switch {
	case !ok:
		return nil, RoleUnknown
	case c.construction == nil:
		return nil, RoleInert
	default:
		return c.construction, RolePayload
	}
}

// LookupSerialization resolves the serialization codec of k.
func LookupSerialization(k Kind) (SerializationFactory, Role) {
	c, ok := codecFor(k)
	switch {
	case !ok:
		return nil, RoleUnknown
	case c.serialization == nil:
		return nil, RoleInert
	default:
		return c.serialization, RolePayload
	}
}
