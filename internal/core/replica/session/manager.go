// Package session keeps per-connection replica state and processes frame
// batches across connections concurrently.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/zeusync/replicanet/internal/core/observability/log"
	"github.com/zeusync/replicanet/internal/core/observability/metrics"
	"github.com/zeusync/replicanet/internal/core/replica"
	"github.com/zeusync/replicanet/internal/core/replica/registry"
	"github.com/zeusync/replicanet/internal/core/replica/typedb"
	"github.com/zeusync/replicanet/pkg/concurrent"
)

var ErrConnectionNotFound = errors.New("session: connection not found")

type Config struct {
	Shards  int
	Workers int

	DeferUnresolved   bool
	MaxDeferredFrames int
	StrictTrailing    bool
}

func DefaultConfig() Config {
	return Config{
		Shards:            16,
		Workers:           8,
		MaxDeferredFrames: replica.DefaultMaxDeferredFrames,
	}
}

type shard struct {
	mu    sync.RWMutex
	conns map[uuid.UUID]*Connection
}

// Manager owns every open Connection. All of them resolve templates
// through the same type database.
type Manager struct {
	db      typedb.Database
	log     log.Log
	metrics *metrics.Collector
	config  Config
	shards  []*shard
}

func NewManager(db typedb.Database, config Config, logger log.Log, collector *metrics.Collector) *Manager {
	if config.Shards <= 0 {
		config.Shards = 1
	}
	if logger == nil {
		logger = log.NewNop()
	}
	shards := make([]*shard, config.Shards)
	for i := range shards {
		shards[i] = &shard{conns: make(map[uuid.UUID]*Connection)}
	}
	return &Manager{
		db:      db,
		log:     logger,
		metrics: collector,
		config:  config,
		shards:  shards,
	}
}

func (m *Manager) shardFor(id uuid.UUID) *shard {
	return m.shards[xxhash.Sum64(id[:])%uint64(len(m.shards))]
}

// Open registers a new connection with empty replica state.
func (m *Manager) Open() *Connection {
	id := uuid.New()
	opts := []replica.DecoderOption{
		replica.WithLogger(m.log.With(log.String("connection", id.String()))),
		replica.WithMetrics(m.metrics),
		replica.WithStrictTrailing(m.config.StrictTrailing),
	}
	if m.config.DeferUnresolved {
		opts = append(opts, replica.WithDeferral(m.config.MaxDeferredFrames))
	}
	conn := &Connection{
		id:      id,
		decoder: replica.NewDecoder(registry.New(m.db), opts...),
		encoder: replica.NewEncoder(registry.New(m.db)),
	}

	s := m.shardFor(id)
	s.mu.Lock()
	s.conns[id] = conn
	s.mu.Unlock()

	m.metrics.ConnectionOpened()
	m.log.Debug("connection opened", log.String("connection", id.String()))
	return conn
}

func (m *Manager) Get(id uuid.UUID) (*Connection, bool) {
	s := m.shardFor(id)
	s.mu.RLock()
	defer s.mu.RUnlock()
	conn, ok := s.conns[id]
	return conn, ok
}

// Close drops a connection and everything known through it.
func (m *Manager) Close(id uuid.UUID) bool {
	s := m.shardFor(id)
	s.mu.Lock()
	_, ok := s.conns[id]
	delete(s.conns, id)
	s.mu.Unlock()
	if ok {
		m.metrics.ConnectionClosed()
		m.log.Debug("connection closed", log.String("connection", id.String()))
	}
	return ok
}

func (m *Manager) Len() int {
	n := 0
	for _, s := range m.shards {
		s.mu.RLock()
		n += len(s.conns)
		s.mu.RUnlock()
	}
	return n
}

// FrameOp says what an inbound frame does to an object.
type FrameOp uint8

const (
	OpConstruct FrameOp = iota + 1
	OpSerialize
	OpDestruct
)

func (op FrameOp) String() string {
	switch op {
	case OpConstruct:
		return "construct"
	case OpSerialize:
		return "serialize"
	case OpDestruct:
		return "destruct"
	default:
		return fmt.Sprintf("FrameOp(%d)", uint8(op))
	}
}

// Frame is one inbound replica frame with the envelope fields the transport
// layer already parsed. TemplateID is used by constructions, NetworkID by
// serializations and destructions.
type Frame struct {
	Connection uuid.UUID
	Op         FrameOp
	TemplateID int32
	NetworkID  uint16
	Data       []byte
}

// Result is the outcome of the Frame at the same index.
type Result struct {
	Construction  *replica.ConstructionFrame
	Serialization *replica.SerializationFrame
	Err           error
}

type indexedFrame struct {
	index int
	frame Frame
}

// Process decodes a batch. Frames of one connection are decoded in batch
// order; different connections run concurrently. Per-frame failures are
// reported in the results; the returned error is only set when ctx ends
// before the batch is done.
func (m *Manager) Process(ctx context.Context, frames []Frame) ([]Result, error) {
	results := make([]Result, len(frames))
	indexed := make([]indexedFrame, len(frames))
	for i, f := range frames {
		indexed[i] = indexedFrame{index: i, frame: f}
	}
	keys, groups := concurrent.GroupBy(indexed, func(f indexedFrame) uuid.UUID { return f.frame.Connection })

	err := concurrent.ForEach(ctx, keys, m.config.Workers, func(ctx context.Context, id uuid.UUID) error {
		conn, ok := m.Get(id)
		for _, f := range groups[id] {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !ok {
				results[f.index].Err = fmt.Errorf("%w: %s", ErrConnectionNotFound, id)
				continue
			}
			results[f.index] = m.processOne(ctx, conn, f.frame)
		}
		return nil
	})
	return results, err
}

func (m *Manager) processOne(ctx context.Context, conn *Connection, f Frame) Result {
	switch f.Op {
	case OpConstruct:
		frame, err := conn.DecodeConstruction(ctx, f.TemplateID, f.Data)
		return Result{Construction: frame, Err: err}
	case OpSerialize:
		frame, err := conn.DecodeSerialization(f.NetworkID, f.Data)
		return Result{Serialization: frame, Err: err}
	case OpDestruct:
		conn.Remove(f.NetworkID)
		return Result{}
	default:
		return Result{Err: fmt.Errorf("session: unsupported frame op %s", f.Op)}
	}
}
