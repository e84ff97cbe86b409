package component

import "fmt"

// Kind is the numeric component type from the game's component registry.
type Kind uint32

const (
	KindControllablePhysics  Kind = 1
	KindRender               Kind = 2
	KindSimplePhysics        Kind = 3
	KindCharacter            Kind = 4
	KindScript               Kind = 5
	KindDestroyable          Kind = 7
	KindSkill                Kind = 9
	KindInventory            Kind = 17
	KindMovementAi           Kind = 31
	KindPhantomPhysics       Kind = 40
	KindFx                   Kind = 44
	KindQuickbuild           Kind = 48
	KindSoundAmbient2D       Kind = 55
	KindSoundAmbient3D       Kind = 56
	KindBaseCombatAi         Kind = 60
	KindRocketLanding        Kind = 68
	KindBuff                 Kind = 98
	KindPlayerForcedMovement Kind = 106
	KindBbb                  Kind = 107
	KindLevelProgression     Kind = 109
	KindPossessionControl    Kind = 110
)

// Known lists every recognized kind in ascending order.
func Known() []Kind {
	return []Kind{
		KindControllablePhysics,
		KindRender,
		KindSimplePhysics,
		KindCharacter,
		KindScript,
		KindDestroyable,
		KindSkill,
		KindInventory,
		KindMovementAi,
		KindPhantomPhysics,
		KindFx,
		KindQuickbuild,
		KindSoundAmbient2D,
		KindSoundAmbient3D,
		KindBaseCombatAi,
		KindRocketLanding,
		KindBuff,
		KindPlayerForcedMovement,
		KindBbb,
		KindLevelProgression,
		KindPossessionControl,
	}
}

func (k Kind) String() string {
	if c, ok := codecFor(k); ok {
		return c.name
	}
	return fmt.Sprintf("Kind(%d)", uint32(k))
}

// IsKnown reports whether k belongs to the fixed component set.
func (k Kind) IsKnown() bool {
	_, ok := codecFor(k)
	return ok
}
