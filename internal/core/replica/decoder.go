package replica

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/zeusync/replicanet/internal/core/observability/log"
	"github.com/zeusync/replicanet/internal/core/observability/metrics"
	"github.com/zeusync/replicanet/internal/core/protocol/bitstream"
	"github.com/zeusync/replicanet/internal/core/replica/component"
	"github.com/zeusync/replicanet/internal/core/replica/registry"
	"github.com/zeusync/replicanet/pkg/sequence"
)

// DefaultMaxDeferredFrames bounds the per-object queue of early serializations.
const DefaultMaxDeferredFrames = 8

type DecoderOption func(*Decoder)

func WithLogger(l log.Log) DecoderOption {
	return func(d *Decoder) {
		d.log = l
	}
}

func WithMetrics(m *metrics.Collector) DecoderOption {
	return func(d *Decoder) {
		d.metrics = m
	}
}

// WithDeferral keeps up to max serialization frames per unconstructed object
// and replays them after its construction. Zero or less disables deferral.
func WithDeferral(max int) DecoderOption {
	return func(d *Decoder) {
		d.maxDeferred = max
	}
}

// WithStrictTrailing turns leftover bits after the last component into an error.
func WithStrictTrailing(strict bool) DecoderOption {
	return func(d *Decoder) {
		d.strictTrailing = strict
	}
}

// Decoder turns replica frames of one connection into component states.
type Decoder struct {
	registry       *registry.Registry
	log            log.Log
	metrics        *metrics.Collector
	maxDeferred    int
	strictTrailing bool

	mu       sync.Mutex
	deferred map[uint16]*sequence.Ring[[]byte]
}

func NewDecoder(reg *registry.Registry, opts ...DecoderOption) *Decoder {
	d := &Decoder{
		registry: reg,
		log:      log.NewNop(),
		deferred: make(map[uint16]*sequence.Ring[[]byte]),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Status reports whether networkID has been constructed.
func (d *Decoder) Status(networkID uint16) Status {
	if _, ok := d.registry.Lookup(networkID); ok {
		return StatusKnown
	}
	return StatusUnknown
}

// DecodeConstruction decodes a construction frame: a 16-bit network id
// followed by the construction payload of every component of templateID.
func (d *Decoder) DecodeConstruction(ctx context.Context, templateID int32, buf []byte) (*ConstructionFrame, error) {
	start := time.Now()
	frame, err := d.decodeConstruction(ctx, templateID, buf)
	if err != nil {
		d.metrics.Frame(metrics.FrameConstruction, metrics.OutcomeFailed, time.Since(start))
		return nil, err
	}
	d.metrics.Frame(metrics.FrameConstruction, metrics.OutcomeOK, time.Since(start))

	frame.Replayed = d.replay(frame.NetworkID)
	return frame, nil
}

func (d *Decoder) decodeConstruction(ctx context.Context, templateID int32, buf []byte) (*ConstructionFrame, error) {
	r := bitstream.NewReader(buf)
	networkID, err := r.ReadUint16()
	if err != nil {
		return nil, &FrameError{Op: OpDecodeConstruction, TemplateID: templateID, Cause: err}
	}

	codecs, err := d.registry.ResolveConstruction(ctx, networkID, templateID)
	if err != nil {
		fe := &FrameError{Op: OpDecodeConstruction, NetworkID: networkID, TemplateID: templateID, BitOffset: r.Position(), Cause: err}
		var unknown *registry.UnknownKindError
		if errors.As(err, &unknown) {
			fe.Kind = unknown.Kind
			d.log.Error("unknown component kind",
				log.Uint16("network_id", networkID),
				log.Int32("template_id", templateID),
				log.Uint32("kind", uint32(unknown.Kind)),
			)
		}
		return nil, fe
	}

	frame := &ConstructionFrame{
		NetworkID:  networkID,
		TemplateID: templateID,
		Components: make([]component.Construction, 0, len(codecs)),
	}
	for _, c := range codecs {
		offset := r.Position()
		payload := c.New()
		if err := payload.Decode(r); err != nil {
			d.registry.Forget(networkID)
			return nil, d.componentError(OpDecodeConstruction, networkID, templateID, c.Kind, offset, err)
		}
		d.metrics.Component(c.Kind.String())
		frame.Components = append(frame.Components, payload)
	}

	trailing, err := d.checkTrailing(OpDecodeConstruction, networkID, templateID, r)
	if err != nil {
		d.registry.Forget(networkID)
		return nil, err
	}
	frame.TrailingBits = trailing
	return frame, nil
}

// DecodeSerialization decodes an update of an already constructed object.
// The network id comes from the enclosing packet, not from buf.
func (d *Decoder) DecodeSerialization(networkID uint16, buf []byte) (*SerializationFrame, error) {
	start := time.Now()
	frame, err := d.decodeSerialization(networkID, buf)
	switch {
	case err == nil:
		d.metrics.Frame(metrics.FrameSerialization, metrics.OutcomeOK, time.Since(start))
	case IsRecoverable(err):
		d.metrics.Frame(metrics.FrameSerialization, metrics.OutcomeUnresolved, time.Since(start))
		d.log.Debug("serialization for unresolved network id", log.Uint16("network_id", networkID))
		d.enqueue(networkID, buf)
	default:
		d.metrics.Frame(metrics.FrameSerialization, metrics.OutcomeFailed, time.Since(start))
	}
	return frame, err
}

func (d *Decoder) decodeSerialization(networkID uint16, buf []byte) (*SerializationFrame, error) {
	entry, codecs, ok := d.registry.ResolveSerialization(networkID)
	if !ok {
		return nil, &FrameError{Op: OpDecodeSerialization, NetworkID: networkID, Cause: ErrUnresolvedNetworkID}
	}

	r := bitstream.NewReader(buf)
	frame := &SerializationFrame{
		NetworkID:  networkID,
		Components: make([]component.Serialization, 0, len(codecs)),
	}
	for _, c := range codecs {
		offset := r.Position()
		payload := c.New()
		if err := payload.Decode(r); err != nil {
			return nil, d.componentError(OpDecodeSerialization, networkID, entry.TemplateID, c.Kind, offset, err)
		}
		d.metrics.Component(c.Kind.String())
		frame.Components = append(frame.Components, payload)
	}

	trailing, err := d.checkTrailing(OpDecodeSerialization, networkID, entry.TemplateID, r)
	if err != nil {
		return nil, err
	}
	frame.TrailingBits = trailing
	return frame, nil
}

// Remove forgets networkID and drops any frames deferred for it.
func (d *Decoder) Remove(networkID uint16) {
	d.registry.Forget(networkID)
	d.mu.Lock()
	dropped := 0
	if queue, ok := d.deferred[networkID]; ok {
		dropped = queue.Len()
		delete(d.deferred, networkID)
	}
	d.mu.Unlock()
	d.metrics.Deferred(metrics.DeferDropped, dropped)
}

// Deferred returns how many frames are waiting for networkID's construction.
func (d *Decoder) Deferred(networkID uint16) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if queue, ok := d.deferred[networkID]; ok {
		return queue.Len()
	}
	return 0
}

func (d *Decoder) componentError(op string, networkID uint16, templateID int32, kind component.Kind, offset uint64, err error) error {
	d.log.Warn("component decode failed",
		log.String("op", op),
		log.Uint16("network_id", networkID),
		log.Int32("template_id", templateID),
		log.String("kind", kind.String()),
		log.Uint64("bit_offset", offset),
		log.String("reason", reason(err)),
		log.Error(err),
	)
	return &FrameError{Op: op, NetworkID: networkID, TemplateID: templateID, Kind: kind, BitOffset: offset, Cause: err}
}

// checkTrailing treats a whole byte or more of unread bits as trailing
// data; anything less is the writer's zero padding.
func (d *Decoder) checkTrailing(op string, networkID uint16, templateID int32, r *bitstream.Reader) (uint64, error) {
	left := r.Remaining()
	if left < 8 {
		return 0, nil
	}
	if d.strictTrailing {
		return 0, &FrameError{Op: op, NetworkID: networkID, TemplateID: templateID, BitOffset: r.Position(), Cause: ErrTrailingData}
	}
	d.log.Warn("trailing bits after last component",
		log.String("op", op),
		log.Uint16("network_id", networkID),
		log.Int32("template_id", templateID),
		log.Uint64("bits", left),
	)
	return left, nil
}

func (d *Decoder) enqueue(networkID uint16, buf []byte) {
	if d.maxDeferred <= 0 {
		return
	}
	d.mu.Lock()
	queue, ok := d.deferred[networkID]
	if !ok {
		queue = sequence.NewRing[[]byte](d.maxDeferred)
		d.deferred[networkID] = queue
	}
	evicted := queue.Push(slices.Clone(buf))
	d.mu.Unlock()

	d.metrics.Deferred(metrics.DeferQueued, 1)
	if evicted {
		d.metrics.Deferred(metrics.DeferDropped, 1)
		d.log.Warn("deferred frame queue full, dropping oldest",
			log.Uint16("network_id", networkID),
		)
	}
}

func (d *Decoder) replay(networkID uint16) []*SerializationFrame {
	d.mu.Lock()
	ring, ok := d.deferred[networkID]
	delete(d.deferred, networkID)
	d.mu.Unlock()
	if !ok || ring.IsEmpty() {
		return nil
	}
	queue := ring.Drain()

	out := make([]*SerializationFrame, 0, len(queue))
	for _, buf := range queue {
		start := time.Now()
		frame, err := d.decodeSerialization(networkID, buf)
		if err != nil {
			d.metrics.Frame(metrics.FrameSerialization, metrics.OutcomeFailed, time.Since(start))
			d.log.Warn("deferred frame failed after construction",
				log.Uint16("network_id", networkID),
				log.Error(err),
			)
			continue
		}
		d.metrics.Frame(metrics.FrameSerialization, metrics.OutcomeOK, time.Since(start))
		out = append(out, frame)
	}
	d.metrics.Deferred(metrics.DeferReplayed, len(out))
	return out
}
