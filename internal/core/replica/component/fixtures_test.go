package component

func ptr[T any](v T) *T { return &v }

func fullFrameStats() FrameStats {
	return FrameStats{
		Position:        Vector3{X: 1, Y: 2, Z: 3},
		Rotation:        Quaternion{X: 0, Y: 0.7071, Z: 0, W: 0.7071},
		IsOnGround:      true,
		IsOnRail:        false,
		LinearVelocity:  &Vector3{X: 0.5, Y: 0, Z: -0.5},
		AngularVelocity: &Vector3{X: 0, Y: 1, Z: 0},
		LocalSpace: &LocalSpaceInfo{
			ObjectID:       0x3F0000000000AB,
			Position:       Vector3{X: -10, Y: 0, Z: 4},
			LinearVelocity: &Vector3{X: 1, Y: 1, Z: 1},
		},
	}
}

func fullQuickbuildInfo() QuickbuildSerializationInfo {
	return QuickbuildSerializationInfo{
		State:               RebuildBuilding,
		ShowResetEffect:     true,
		HasActivator:        true,
		DurationTimer:       12.5,
		TotalIncompleteTime: 3.25,
	}
}

func oneActivityUser() *[]ActivityUser {
	return &[]ActivityUser{{
		UserID: 1152921510794154770,
		Values: [10]float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
	}}
}

func fullDestroyableStats() DestroyableStats {
	return DestroyableStats{
		CurrentHealth:        4,
		MaxHealth:            4,
		CurrentArmor:         2,
		MaxArmor:             3,
		CurrentImagination:   6,
		MaxImagination:       10,
		DamageAbsorption:     1,
		IsImmune:             false,
		IsGMImmune:           true,
		IsShielded:           false,
		ActualMaxHealth:      4,
		ActualMaxArmor:       3,
		ActualMaxImagination: 10,
		Factions:             []int32{1, -1},
		IsSmashable:          true,
	}
}

func fullEquippedItems() *[]EquippedItem {
	return &[]EquippedItem{
		{
			ID:            1152921510436607008,
			Lot:           4106,
			Subkey:        ptr(ObjID(99)),
			Count:         ptr(uint32(1)),
			Slot:          ptr(uint16(3)),
			InventoryType: ptr(uint32(0)),
			ExtraInfo:     ptr([]byte{0x78, 0x9C, 0x01}),
			IsBound:       true,
		},
		{ID: 7, Lot: 1727},
	}
}

func fullModelTransforms() *[]ModelTransform {
	return &[]ModelTransform{{
		ModelID:   42,
		Transform: Transform{Position: Vector3{X: 1}, Rotation: Quaternion{W: 1}},
	}}
}

func fullPhantomPhysics() PhantomPhysicsState {
	return PhantomPhysicsState{
		Position: &Transform{Position: Vector3{X: 5, Y: 6, Z: 7}, Rotation: Quaternion{W: 1}},
		Effect: &PhysicsEffectUpdate{Active: &PhysicsEffectInfo{
			EffectType:      2,
			Amount:          1500,
			Distance:        &DistanceInfo{Min: 1, Max: 20},
			ImpulseVelocity: &Vector3{Y: 40},
		}},
	}
}

func fullCharacterStatus() CharacterStatus {
	return CharacterStatus{
		GM:              &GMInfo{PvpEnabled: true, IsGM: true, GMLevel: 9, EditorEnabled: false, EditorLevel: 1},
		CurrentActivity: ptr(uint32(2)),
		Social:          &SocialInfo{GuildID: 77, GuildName: NewWideString("Über Builders 🚀"), IsLegoClubMember: true},
	}
}

// fullConstructions has every field of every payload kind present.
func fullConstructions() []Construction {
	stats := [CharacterStatCount]uint64{}
	for i := range stats {
		stats[i] = uint64(i * 1000)
	}
	return []Construction{
		&ControllablePhysicsConstruction{
			Jetpack:      &JetpackInfo{EffectID: 167, IsFlying: true, BypassChecks: true},
			StunImmunity: &StunImmunityInfo{Move: 1, Turn: 2, Attack: 3, UseItem: 4, Equip: 5, Interact: 6, Jump: 7},
			Cheat:        &CheatInfo{GravityScale: 1, RunMultiplier: 1.5},
			EquippedItem: &EquippedItemInfo{PickupRadius: 4.5, Reserved: true},
			Bubble:       &BubbleUpdate{Active: &BubbleInfo{BubbleType: 1, SpecialAnims: true}},
			Frame:        ptr(fullFrameStats()),
		},
		&SimplePhysicsConstruction{
			ClimbableType: ptr(int32(-1)),
			SimplePhysicsUpdate: SimplePhysicsUpdate{
				Velocity:   &VelocityInfo{Linear: Vector3{X: 1}, Angular: Vector3{Z: 2}},
				MotionType: ptr(uint32(5)),
				Position:   &Transform{Position: Vector3{X: 1, Y: 2, Z: 3}, Rotation: Quaternion{W: 1}},
			},
		},
		&CharacterConstruction{
			VehicleID:  ptr(ObjID(1234)),
			Level:      ptr(uint32(45)),
			ClaimCodes: &ClaimCodes{1, 2, 3, 4},
			Appearance: Appearance{
				HairColor: 1, HairStyle: 2, Head: 3, ShirtColor: 4, PantsColor: 5,
				ShirtStyle: 6, HeadColor: 7, Eyebrows: 8, Eyes: 9, Mouth: 10,
			},
			AccountID:              1,
			LastLogin:              1700000000,
			PropModLastDisplayTime: 0,
			UScore:                 123456,
			FreeToPlay:             true,
			Stats:                  stats,
			RocketLanding:          ptr(NewWideString("Nimbus Station")),
			CharacterStatus:        fullCharacterStatus(),
		},
		&ScriptConstruction{NetworkVars: ptr([]byte{0x01, 0x02, 0x03})},
		&DestroyableConstruction{
			StatusImmunity: &StatusImmunityInfo{BasicAttack: 1, PullToPoint: 9},
			Stats: &DestroyableConstructionStats{
				DestroyableStats: fullDestroyableStats(),
				IsDead:           false,
				IsSmashed:        true,
				Smashable:        &SmashableInfo{IsModuleAssembly: true, ExplodeFactor: ptr(float32(1.25))},
			},
			IsOnThreatList: ptr(true),
		},
		&SkillConstruction{SkillsInProgress: &[]SkillInProgress{{SkillID: 1, UniqueSkillID: 2, CasterID: 3}}},
		&InventoryConstruction{InventoryState{EquippedItems: fullEquippedItems(), ModelTransforms: fullModelTransforms()}},
		&PhantomPhysicsConstruction{fullPhantomPhysics()},
		&FxConstruction{ActiveEffects: &[]EffectInfo{
			{Name: "idle", EffectID: 4231, EffectType: NewWideString("on-anim"), Scale: 1, SecondaryID: 0},
			{Name: "", EffectID: -1, Scale: 0.5, SecondaryID: 88},
		}},
		&QuickbuildConstruction{
			ActivityUsers: oneActivityUser(),
			Info: &QuickbuildConstructionInfo{
				QuickbuildSerializationInfo: fullQuickbuildInfo(),
				Reserved:                    ptr(uint32(0xFFFFFFFF)),
				ActivatorPosition:           Vector3{X: -3, Y: 0.5, Z: 8},
				RepositionPlayer:            true,
			},
		},
		&BaseCombatAiConstruction{State: &CombatAiState{Action: CombatAiAggro, TargetID: 5}},
		&BuffConstruction{
			Buffs: &[]BuffInfo{
				{BuffID: 10, TimeLeft: ptr(uint32(3000)), CancelOnDeath: true, AddedByTeammate: true, CasterID: 66, RefCount: 1},
				{BuffID: 11, CancelOnZone: true, ApplyOnTeammates: true, RefCount: 2},
			},
			Immunities: &[]BuffImmunity{{BuffID: 12, RefCount: 1}},
		},
		&PlayerForcedMovementConstruction{Info: &ForcedMovementInfo{PlayerOnRail: true, ShowBillboard: false}},
		&BbbConstruction{MetadataSourceItem: ptr(ObjID(31337))},
		&LevelProgressionConstruction{CurrentLevel: ptr(uint32(30))},
		&PossessionControlConstruction{Info: &PossessionInfo{PossessedID: ptr(ObjID(8)), PossessionType: 2}},
	}
}

// fullSerializations has every field of every payload kind present.
func fullSerializations() []Serialization {
	return []Serialization{
		&ControllablePhysicsSerialization{
			Cheat:        &CheatInfo{GravityScale: 0.5, RunMultiplier: 2},
			EquippedItem: &EquippedItemInfo{PickupRadius: 1},
			Bubble:       &BubbleUpdate{},
			Frame:        &FrameUpdate{FrameStats: fullFrameStats(), IsTeleporting: true},
		},
		&SimplePhysicsSerialization{SimplePhysicsUpdate{
			Velocity:   &VelocityInfo{Linear: Vector3{Y: -9.8}},
			MotionType: ptr(uint32(1)),
			Position:   &Transform{Rotation: Quaternion{W: 1}},
		}},
		&CharacterSerialization{
			VehicleID:       ptr(ObjID(4321)),
			Level:           ptr(uint32(46)),
			CharacterStatus: fullCharacterStatus(),
		},
		&DestroyableSerialization{Stats: ptr(fullDestroyableStats()), IsOnThreatList: ptr(false)},
		&InventorySerialization{InventoryState{EquippedItems: fullEquippedItems(), ModelTransforms: fullModelTransforms()}},
		&PhantomPhysicsSerialization{fullPhantomPhysics()},
		&QuickbuildSerialization{ActivityUsers: oneActivityUser(), Info: ptr(fullQuickbuildInfo())},
		&BaseCombatAiSerialization{State: &CombatAiState{Action: CombatAiDead}},
		&PlayerForcedMovementSerialization{Info: &ForcedMovementInfo{ShowBillboard: true}},
		&BbbSerialization{MetadataSourceItem: ptr(ObjID(1))},
		&LevelProgressionSerialization{CurrentLevel: ptr(uint32(31))},
		&PossessionControlSerialization{Info: &PossessionInfo{PossessionType: 1}},
	}
}

// mixedConstructions alternates present and absent optional fields.
func mixedConstructions() []Construction {
	return []Construction{
		&ControllablePhysicsConstruction{
			StunImmunity: &StunImmunityInfo{Jump: 1},
			Bubble:       &BubbleUpdate{},
			Frame:        &FrameStats{Position: Vector3{X: 1}, Rotation: Quaternion{W: 1}, AngularVelocity: &Vector3{Y: 2}},
		},
		&SimplePhysicsConstruction{SimplePhysicsUpdate: SimplePhysicsUpdate{MotionType: ptr(uint32(0))}},
		&CharacterConstruction{Level: ptr(uint32(1)), CharacterStatus: CharacterStatus{CurrentActivity: ptr(uint32(0))}},
		&DestroyableConstruction{Stats: &DestroyableConstructionStats{IsDead: true}},
		&InventoryConstruction{InventoryState{ModelTransforms: fullModelTransforms()}},
		&PhantomPhysicsConstruction{PhantomPhysicsState{Effect: &PhysicsEffectUpdate{}}},
		&QuickbuildConstruction{Info: &QuickbuildConstructionInfo{QuickbuildSerializationInfo: QuickbuildSerializationInfo{State: RebuildIncomplete}}},
		&BuffConstruction{Immunities: &[]BuffImmunity{{BuffID: 1}}},
		&PossessionControlConstruction{Info: &PossessionInfo{}},
	}
}

func mixedSerializations() []Serialization {
	return []Serialization{
		&ControllablePhysicsSerialization{Frame: &FrameUpdate{FrameStats: FrameStats{IsOnRail: true}}},
		&CharacterSerialization{CharacterStatus: CharacterStatus{Social: &SocialInfo{}}},
		&DestroyableSerialization{IsOnThreatList: ptr(true)},
		&QuickbuildSerialization{ActivityUsers: oneActivityUser()},
		&PhantomPhysicsSerialization{PhantomPhysicsState{Position: &Transform{}}},
	}
}
