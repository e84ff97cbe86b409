package replica

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zeusync/replicanet/internal/core/observability/log"
	"github.com/zeusync/replicanet/internal/core/observability/metrics"
	"github.com/zeusync/replicanet/internal/core/protocol/bitstream"
	"github.com/zeusync/replicanet/internal/core/replica/component"
	"github.com/zeusync/replicanet/internal/core/replica/registry"
	"github.com/zeusync/replicanet/internal/core/replica/typedb"
)

const (
	templatePlayer    int32 = 1
	templateAmbient   int32 = 2
	templateBroken    int32 = 3
	templateScripted  int32 = 4
	templateComponent int32 = 5
)

func templates() map[int32][]component.Kind {
	return map[int32][]component.Kind{
		templatePlayer:    {component.KindCharacter, component.KindDestroyable, component.KindQuickbuild},
		templateAmbient:   {component.KindRender, component.KindCharacter, component.KindSoundAmbient2D},
		templateBroken:    {component.KindCharacter, 6},
		templateScripted:  {component.KindScript, component.KindFx},
		templateComponent: {component.KindLevelProgression},
	}
}

type countingDatabase struct {
	calls atomic.Int32
	next  typedb.Database
}

func (c *countingDatabase) ComponentKinds(ctx context.Context, templateID int32) ([]component.Kind, error) {
	c.calls.Add(1)
	return c.next.ComponentKinds(ctx, templateID)
}

func newCountingDatabase() *countingDatabase {
	return &countingDatabase{next: typedb.NewStatic(templates())}
}

func newEncoder(t *testing.T) *Encoder {
	t.Helper()
	return NewEncoder(registry.New(typedb.NewStatic(templates())))
}

func ptr[T any](v T) *T { return &v }

func playerConstruction() ConstructionState {
	return ConstructionState{
		component.KindCharacter: &component.CharacterConstruction{
			Level:     ptr(uint32(12)),
			AccountID: 42,
			UScore:    1500,
			CharacterStatus: component.CharacterStatus{
				Social: &component.SocialInfo{GuildID: 9, GuildName: component.NewWideString("Paradox")},
			},
		},
		component.KindDestroyable: &component.DestroyableConstruction{
			Stats: &component.DestroyableConstructionStats{
				DestroyableStats: component.DestroyableStats{CurrentHealth: 4, MaxHealth: 4, Factions: []int32{1}},
			},
		},
		component.KindQuickbuild: &component.QuickbuildConstruction{
			Info: &component.QuickbuildConstructionInfo{
				QuickbuildSerializationInfo: component.QuickbuildSerializationInfo{State: component.RebuildOpen},
				ActivatorPosition:           component.Vector3{X: 1, Y: 2, Z: 3},
			},
		},
	}
}

func playerSerialization(level uint32) SerializationState {
	return SerializationState{
		component.KindCharacter: &component.CharacterSerialization{Level: ptr(level)},
		component.KindQuickbuild: &component.QuickbuildSerialization{
			Info: &component.QuickbuildSerializationInfo{State: component.RebuildBuilding, DurationTimer: 2.5},
		},
	}
}

func TestConstructionThenSerialization(t *testing.T) {
	ctx := context.Background()
	enc := newEncoder(t)
	require.NoError(t, enc.Create(ctx, 7, templatePlayer))

	construction, err := enc.EncodeConstruction(7, playerConstruction())
	require.NoError(t, err)

	db := newCountingDatabase()
	dec := NewDecoder(registry.New(db), WithMetrics(metrics.New(metrics.WithRegistry(prometheus.NewRegistry()))))
	assert.Equal(t, StatusUnknown, dec.Status(7))

	frame, err := dec.DecodeConstruction(ctx, templatePlayer, construction)
	require.NoError(t, err)
	assert.Equal(t, uint16(7), frame.NetworkID)
	assert.Equal(t, templatePlayer, frame.TemplateID)
	require.Len(t, frame.Components, 3)
	assert.Equal(t, component.KindCharacter, frame.Components[0].Kind())
	assert.Equal(t, component.KindDestroyable, frame.Components[1].Kind())
	assert.Equal(t, component.KindQuickbuild, frame.Components[2].Kind())
	assert.Zero(t, frame.TrailingBits)
	assert.Equal(t, StatusKnown, dec.Status(7))

	want := playerConstruction()
	for kind, got := range frame.ByKind() {
		assert.Equal(t, want[kind], got)
	}

	update, err := enc.EncodeSerialization(7, playerSerialization(13))
	require.NoError(t, err)

	serial, err := dec.DecodeSerialization(7, update)
	require.NoError(t, err)
	require.Len(t, serial.Components, 3)
	character := serial.ByKind()[component.KindCharacter].(*component.CharacterSerialization)
	assert.Equal(t, uint32(13), *character.Level)
	quickbuild := serial.ByKind()[component.KindQuickbuild].(*component.QuickbuildSerialization)
	assert.Equal(t, component.RebuildBuilding, quickbuild.Info.State)
	assert.Equal(t, &component.DestroyableSerialization{}, serial.ByKind()[component.KindDestroyable])

	assert.Equal(t, int32(1), db.calls.Load(), "serialization must not consult the type database")
}

func TestConstructionFrameStartsWithNetworkID(t *testing.T) {
	enc := newEncoder(t)
	require.NoError(t, enc.Create(context.Background(), 0x1234, templateComponent))

	data, err := enc.EncodeConstruction(0x1234, nil)
	require.NoError(t, err)
	// id, then one absent LevelProgression block
	assert.Equal(t, []byte{0x12, 0x34, 0x00}, data)

	data, err = enc.EncodeSerialization(0x1234, SerializationState{
		component.KindLevelProgression: &component.LevelProgressionSerialization{CurrentLevel: ptr(uint32(1))},
	})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x80, 0x00, 0x00, 0x00, 0x80}, data)
}

func TestInertKindsContributeNothing(t *testing.T) {
	ctx := context.Background()
	enc := newEncoder(t)
	require.NoError(t, enc.Create(ctx, 3, templateAmbient))

	data, err := enc.EncodeConstruction(3, nil)
	require.NoError(t, err)

	dec := NewDecoder(registry.New(typedb.NewStatic(templates())))
	frame, err := dec.DecodeConstruction(ctx, templateAmbient, data)
	require.NoError(t, err)
	require.Len(t, frame.Components, 1)
	assert.Equal(t, component.KindCharacter, frame.Components[0].Kind())
}

func TestConstructionOnlyKindsAreSkippedOnSerialization(t *testing.T) {
	ctx := context.Background()
	enc := newEncoder(t)
	require.NoError(t, enc.Create(ctx, 4, templateScripted))

	data, err := enc.EncodeSerialization(4, nil)
	require.NoError(t, err)
	assert.Empty(t, data)

	construction, err := enc.EncodeConstruction(4, nil)
	require.NoError(t, err)

	dec := NewDecoder(registry.New(typedb.NewStatic(templates())))
	_, err = dec.DecodeConstruction(ctx, templateScripted, construction)
	require.NoError(t, err)

	frame, err := dec.DecodeSerialization(4, data)
	require.NoError(t, err)
	assert.Empty(t, frame.Components)
}

func TestUnknownKindIsFatal(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	dec := NewDecoder(registry.New(typedb.NewStatic(templates())),
		WithLogger(log.NewFromZap(zap.New(core), log.LevelDebug)))

	_, err := dec.DecodeConstruction(context.Background(), templateBroken, []byte{0x00, 0x07, 0xFF, 0xFF})
	require.ErrorIs(t, err, registry.ErrUnknownComponentKind)

	var fe *FrameError
	require.True(t, errors.As(err, &fe))
	assert.True(t, fe.IsFatal())
	assert.Equal(t, uint16(7), fe.NetworkID)
	assert.Equal(t, component.Kind(6), fe.Kind)
	assert.Equal(t, StatusUnknown, dec.Status(7))

	entries := logs.FilterMessage("unknown component kind").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int32(templateBroken), entries[0].ContextMap()["template_id"])
	assert.Equal(t, uint32(6), entries[0].ContextMap()["kind"])
}

func TestUnresolvedSerializationIsRecoverable(t *testing.T) {
	ctx := context.Background()
	dec := NewDecoder(registry.New(typedb.NewStatic(templates())))

	_, err := dec.DecodeSerialization(99, []byte{0xFF})
	require.ErrorIs(t, err, ErrUnresolvedNetworkID)
	assert.True(t, IsRecoverable(err))
	assert.Zero(t, dec.Deferred(99), "deferral is off by default")

	enc := newEncoder(t)
	require.NoError(t, enc.Create(ctx, 1, templateComponent))
	data, err := enc.EncodeConstruction(1, nil)
	require.NoError(t, err)
	_, err = dec.DecodeConstruction(ctx, templateComponent, data)
	assert.NoError(t, err, "the decoder stays usable")
}

func TestDeferredFramesReplayAfterConstruction(t *testing.T) {
	ctx := context.Background()
	enc := newEncoder(t)
	require.NoError(t, enc.Create(ctx, 7, templatePlayer))

	var updates [][]byte
	for level := uint32(1); level <= 3; level++ {
		data, err := enc.EncodeSerialization(7, playerSerialization(level))
		require.NoError(t, err)
		updates = append(updates, data)
	}
	construction, err := enc.EncodeConstruction(7, playerConstruction())
	require.NoError(t, err)

	dec := NewDecoder(registry.New(typedb.NewStatic(templates())), WithDeferral(2))
	for _, u := range updates {
		_, err := dec.DecodeSerialization(7, u)
		require.ErrorIs(t, err, ErrUnresolvedNetworkID)
	}
	assert.Equal(t, 2, dec.Deferred(7), "oldest frame is dropped")

	frame, err := dec.DecodeConstruction(ctx, templatePlayer, construction)
	require.NoError(t, err)
	require.Len(t, frame.Replayed, 2)
	for i, level := range []uint32{2, 3} {
		character := frame.Replayed[i].ByKind()[component.KindCharacter].(*component.CharacterSerialization)
		assert.Equal(t, level, *character.Level)
	}
	assert.Zero(t, dec.Deferred(7))
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	enc := newEncoder(t)
	require.NoError(t, enc.Create(ctx, 7, templatePlayer))
	construction, err := enc.EncodeConstruction(7, nil)
	require.NoError(t, err)
	update, err := enc.EncodeSerialization(7, nil)
	require.NoError(t, err)

	dec := NewDecoder(registry.New(typedb.NewStatic(templates())), WithDeferral(4))
	_, err = dec.DecodeConstruction(ctx, templatePlayer, construction)
	require.NoError(t, err)

	dec.Remove(7)
	assert.Equal(t, StatusUnknown, dec.Status(7))
	_, err = dec.DecodeSerialization(7, update)
	require.ErrorIs(t, err, ErrUnresolvedNetworkID)
	assert.Equal(t, 1, dec.Deferred(7))

	dec.Remove(7)
	assert.Zero(t, dec.Deferred(7))
}

func TestTrailingData(t *testing.T) {
	ctx := context.Background()
	enc := newEncoder(t)
	require.NoError(t, enc.Create(ctx, 7, templateComponent))
	data, err := enc.EncodeConstruction(7, nil)
	require.NoError(t, err)
	padded := append(append([]byte{}, data...), 0xAB)

	lenient := NewDecoder(registry.New(typedb.NewStatic(templates())))
	frame, err := lenient.DecodeConstruction(ctx, templateComponent, padded)
	require.NoError(t, err)
	// 16 id bits and one presence bit leave 7 padding bits plus the extra byte
	assert.Equal(t, uint64(15), frame.TrailingBits)

	strict := NewDecoder(registry.New(typedb.NewStatic(templates())), WithStrictTrailing(true))
	_, err = strict.DecodeConstruction(ctx, templateComponent, padded)
	require.ErrorIs(t, err, ErrTrailingData)
	assert.Equal(t, StatusUnknown, strict.Status(7))

	frame, err = strict.DecodeConstruction(ctx, templateComponent, data)
	require.NoError(t, err)
	assert.Zero(t, frame.TrailingBits, "padding inside the last byte is not trailing data")
}

func TestTruncatedConstruction(t *testing.T) {
	ctx := context.Background()
	enc := newEncoder(t)
	require.NoError(t, enc.Create(ctx, 7, templatePlayer))
	data, err := enc.EncodeConstruction(7, playerConstruction())
	require.NoError(t, err)

	dec := NewDecoder(registry.New(typedb.NewStatic(templates())))
	_, err = dec.DecodeConstruction(ctx, templatePlayer, data[:len(data)-40])
	require.ErrorIs(t, err, bitstream.ErrTruncatedStream)

	var fe *FrameError
	require.True(t, errors.As(err, &fe))
	assert.True(t, fe.IsFatal())
	assert.NotZero(t, fe.Kind)
	assert.Equal(t, StatusUnknown, dec.Status(7))

	_, err = dec.DecodeConstruction(ctx, templatePlayer, []byte{0x00})
	require.ErrorIs(t, err, bitstream.ErrTruncatedStream)
}

func TestEncoderValidation(t *testing.T) {
	ctx := context.Background()
	enc := newEncoder(t)

	_, err := enc.EncodeConstruction(7, nil)
	require.ErrorIs(t, err, ErrUnresolvedNetworkID)
	_, err = enc.EncodeSerialization(7, nil)
	require.ErrorIs(t, err, ErrUnresolvedNetworkID)

	require.NoError(t, enc.Create(ctx, 7, templatePlayer))

	_, err = enc.EncodeConstruction(7, ConstructionState{
		component.KindScript: &component.ScriptConstruction{},
	})
	require.ErrorIs(t, err, ErrComponentNotResolved)

	_, err = enc.EncodeConstruction(7, ConstructionState{
		component.KindCharacter: &component.DestroyableConstruction{},
	})
	require.ErrorIs(t, err, ErrKindMismatch)

	_, err = enc.EncodeSerialization(7, SerializationState{
		component.KindCharacter: &component.QuickbuildSerialization{},
	})
	require.ErrorIs(t, err, ErrKindMismatch)

	err = enc.Create(ctx, 8, templateBroken)
	require.ErrorIs(t, err, registry.ErrUnknownComponentKind)

	enc.Destroy(7)
	_, err = enc.EncodeConstruction(7, nil)
	require.ErrorIs(t, err, ErrUnresolvedNetworkID)
}

func TestMissingKindsEncodeAsAbsent(t *testing.T) {
	ctx := context.Background()
	enc := newEncoder(t)
	require.NoError(t, enc.Create(ctx, 7, templatePlayer))

	data, err := enc.EncodeConstruction(7, ConstructionState{component.KindDestroyable: nil})
	require.NoError(t, err)

	dec := NewDecoder(registry.New(typedb.NewStatic(templates())))
	frame, err := dec.DecodeConstruction(ctx, templatePlayer, data)
	require.NoError(t, err)
	assert.Equal(t, &component.CharacterConstruction{}, frame.Components[0])
	assert.Equal(t, &component.DestroyableConstruction{}, frame.Components[1])
	assert.Equal(t, &component.QuickbuildConstruction{}, frame.Components[2])
}

func TestTypedNilPayloadsEncodeAsAbsent(t *testing.T) {
	ctx := context.Background()
	enc := newEncoder(t)
	require.NoError(t, enc.Create(ctx, 7, templatePlayer))

	want, err := enc.EncodeConstruction(7, nil)
	require.NoError(t, err)
	got, err := enc.EncodeConstruction(7, ConstructionState{
		component.KindQuickbuild: (*component.QuickbuildConstruction)(nil),
		component.KindCharacter:  (*component.CharacterConstruction)(nil),
	})
	require.NoError(t, err)
	assert.Equal(t, want, got)

	want, err = enc.EncodeSerialization(7, nil)
	require.NoError(t, err)
	got, err = enc.EncodeSerialization(7, SerializationState{
		component.KindDestroyable: (*component.DestroyableSerialization)(nil),
	})
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = enc.EncodeConstruction(7, ConstructionState{
		component.KindScript: (*component.ScriptConstruction)(nil),
	})
	assert.ErrorIs(t, err, ErrComponentNotResolved, "typed nil still needs a resolved kind")
}

func TestFailedReconstructionForgetsObject(t *testing.T) {
	ctx := context.Background()
	enc := newEncoder(t)
	require.NoError(t, enc.Create(ctx, 7, templateComponent))
	construction, err := enc.EncodeConstruction(7, nil)
	require.NoError(t, err)
	update, err := enc.EncodeSerialization(7, SerializationState{
		component.KindLevelProgression: &component.LevelProgressionSerialization{CurrentLevel: ptr(uint32(3))},
	})
	require.NoError(t, err)

	cases := map[string]struct {
		template int32
		target   error
	}{
		"unknown kind":     {templateBroken, registry.ErrUnknownComponentKind},
		"unknown template": {999, typedb.ErrTemplateNotFound},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			dec := NewDecoder(registry.New(typedb.NewStatic(templates())))
			_, err := dec.DecodeConstruction(ctx, templateComponent, construction)
			require.NoError(t, err)
			require.Equal(t, StatusKnown, dec.Status(7))

			_, err = dec.DecodeConstruction(ctx, tc.template, []byte{0x00, 0x07, 0x00})
			require.ErrorIs(t, err, tc.target)
			assert.Equal(t, StatusUnknown, dec.Status(7))

			_, err = dec.DecodeSerialization(7, update)
			assert.ErrorIs(t, err, ErrUnresolvedNetworkID, "the old kinds must not decode the update")
		})
	}
}

func TestFrameErrorMessage(t *testing.T) {
	err := &FrameError{
		Op:         OpDecodeSerialization,
		NetworkID:  7,
		TemplateID: 1,
		Kind:       component.KindQuickbuild,
		BitOffset:  42,
		Cause:      bitstream.ErrTruncatedStream,
	}
	assert.Equal(t, "replica: decode serialization network_id=7 template=1 kind=Quickbuild at bit 42: bitstream: truncated stream", err.Error())
	assert.Equal(t, "truncated", reason(err))
	assert.False(t, IsRecoverable(err))
}
