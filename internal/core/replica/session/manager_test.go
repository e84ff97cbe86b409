package session

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/replicanet/internal/core/observability/metrics"
	"github.com/zeusync/replicanet/internal/core/replica"
	"github.com/zeusync/replicanet/internal/core/replica/component"
	"github.com/zeusync/replicanet/internal/core/replica/typedb"
)

const templateLevel int32 = 10

func newManager(t *testing.T, config Config) *Manager {
	t.Helper()
	db := typedb.NewStatic(map[int32][]component.Kind{
		templateLevel: {component.KindRender, component.KindLevelProgression},
	})
	return NewManager(db, config, nil, metrics.New(metrics.WithRegistry(prometheus.NewRegistry())))
}

func ptr[T any](v T) *T { return &v }

// peer encodes frames the way the remote side would send them.
func peerFrames(t *testing.T, m *Manager, networkID uint16, level uint32) (construction, update []byte) {
	t.Helper()
	peer := m.Open()
	defer m.Close(peer.ID())

	require.NoError(t, peer.Create(context.Background(), networkID, templateLevel))
	construction, err := peer.EncodeConstruction(networkID, replica.ConstructionState{
		component.KindLevelProgression: &component.LevelProgressionConstruction{CurrentLevel: ptr(level)},
	})
	require.NoError(t, err)
	update, err = peer.EncodeSerialization(networkID, replica.SerializationState{
		component.KindLevelProgression: &component.LevelProgressionSerialization{CurrentLevel: ptr(level + 1)},
	})
	require.NoError(t, err)
	return construction, update
}

func TestOpenGetClose(t *testing.T) {
	m := newManager(t, DefaultConfig())

	a, b := m.Open(), m.Open()
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 2, m.Len())

	got, ok := m.Get(a.ID())
	require.True(t, ok)
	assert.Same(t, a, got)

	assert.True(t, m.Close(a.ID()))
	assert.False(t, m.Close(a.ID()))
	_, ok = m.Get(a.ID())
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())
}

func TestProcessKeepsPerConnectionOrder(t *testing.T) {
	m := newManager(t, DefaultConfig())
	construction, update := peerFrames(t, m, 7, 5)

	a, b := m.Open(), m.Open()
	missing := uuid.New()
	frames := []Frame{
		{Connection: a.ID(), Op: OpSerialize, NetworkID: 7, Data: update},
		{Connection: b.ID(), Op: OpConstruct, TemplateID: templateLevel, Data: construction},
		{Connection: a.ID(), Op: OpConstruct, TemplateID: templateLevel, Data: construction},
		{Connection: missing, Op: OpSerialize, NetworkID: 7, Data: update},
		{Connection: a.ID(), Op: OpSerialize, NetworkID: 7, Data: update},
		{Connection: b.ID(), Op: OpDestruct, NetworkID: 7},
		{Connection: b.ID(), Op: OpSerialize, NetworkID: 7, Data: update},
	}

	results, err := m.Process(context.Background(), frames)
	require.NoError(t, err)
	require.Len(t, results, len(frames))

	assert.ErrorIs(t, results[0].Err, replica.ErrUnresolvedNetworkID)

	require.NoError(t, results[1].Err)
	assert.Equal(t, uint16(7), results[1].Construction.NetworkID)

	require.NoError(t, results[2].Err)
	level := results[2].Construction.Components[0].(*component.LevelProgressionConstruction)
	assert.Equal(t, uint32(5), *level.CurrentLevel)

	assert.ErrorIs(t, results[3].Err, ErrConnectionNotFound)

	require.NoError(t, results[4].Err)
	update4 := results[4].Serialization.Components[0].(*component.LevelProgressionSerialization)
	assert.Equal(t, uint32(6), *update4.CurrentLevel)

	assert.NoError(t, results[5].Err)
	assert.ErrorIs(t, results[6].Err, replica.ErrUnresolvedNetworkID)

	assert.Equal(t, replica.StatusKnown, a.Status(7))
	assert.Equal(t, replica.StatusUnknown, b.Status(7))
}

func TestProcessReplaysDeferredFrames(t *testing.T) {
	config := DefaultConfig()
	config.DeferUnresolved = true
	m := newManager(t, config)
	construction, update := peerFrames(t, m, 3, 1)

	conn := m.Open()
	results, err := m.Process(context.Background(), []Frame{
		{Connection: conn.ID(), Op: OpSerialize, NetworkID: 3, Data: update},
		{Connection: conn.ID(), Op: OpConstruct, TemplateID: templateLevel, Data: construction},
	})
	require.NoError(t, err)
	assert.ErrorIs(t, results[0].Err, replica.ErrUnresolvedNetworkID)
	require.NoError(t, results[1].Err)
	require.Len(t, results[1].Construction.Replayed, 1)
}

func TestProcessManyConnections(t *testing.T) {
	config := DefaultConfig()
	config.Workers = 4
	m := newManager(t, config)
	construction, update := peerFrames(t, m, 1, 10)

	var frames []Frame
	for i := 0; i < 32; i++ {
		id := m.Open().ID()
		frames = append(frames,
			Frame{Connection: id, Op: OpConstruct, TemplateID: templateLevel, Data: construction},
			Frame{Connection: id, Op: OpSerialize, NetworkID: 1, Data: update},
		)
	}

	results, err := m.Process(context.Background(), frames)
	require.NoError(t, err)
	for i, r := range results {
		assert.NoError(t, r.Err, "frame %d", i)
	}
}

func TestProcessUnsupportedOp(t *testing.T) {
	m := newManager(t, DefaultConfig())
	conn := m.Open()
	results, err := m.Process(context.Background(), []Frame{{Connection: conn.ID(), Op: 9}})
	require.NoError(t, err)
	assert.ErrorContains(t, results[0].Err, "FrameOp(9)")
}

func TestProcessCanceled(t *testing.T) {
	m := newManager(t, DefaultConfig())
	conn := m.Open()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Process(ctx, []Frame{{Connection: conn.ID(), Op: OpDestruct}})
	assert.ErrorIs(t, err, context.Canceled)
}
