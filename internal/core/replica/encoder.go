package replica

import (
	"bytes"
	"context"
	"fmt"
	"reflect"
	"slices"

	"github.com/zeusync/replicanet/internal/core/protocol/bitstream"
	"github.com/zeusync/replicanet/internal/core/replica/component"
	"github.com/zeusync/replicanet/internal/core/replica/registry"
	"github.com/zeusync/replicanet/pkg/generic"
)

var buffers = generic.NewBufferPool()

// Encoder writes replica frames for objects this side owns.
type Encoder struct {
	registry *registry.Registry
}

func NewEncoder(reg *registry.Registry) *Encoder {
	return &Encoder{registry: reg}
}

// Create resolves the component kinds of a new object. It must be called
// before the object's first construction.
func (e *Encoder) Create(ctx context.Context, networkID uint16, templateID int32) error {
	if _, err := e.registry.ResolveConstruction(ctx, networkID, templateID); err != nil {
		return &FrameError{Op: OpEncodeConstruction, NetworkID: networkID, TemplateID: templateID, Cause: err}
	}
	return nil
}

// Destroy forgets networkID.
func (e *Encoder) Destroy(networkID uint16) {
	e.registry.Forget(networkID)
}

// EncodeConstruction writes the network id and every resolved component's
// construction payload.
func (e *Encoder) EncodeConstruction(networkID uint16, state ConstructionState) ([]byte, error) {
	entry, codecs, ok := e.registry.ConstructionCodecs(networkID)
	if !ok {
		return nil, &FrameError{Op: OpEncodeConstruction, NetworkID: networkID, Cause: ErrUnresolvedNetworkID}
	}

	kinds := make([]component.Kind, len(codecs))
	for i, c := range codecs {
		kinds[i] = c.Kind
	}
	if err := validateState(OpEncodeConstruction, networkID, entry.TemplateID, kinds, state); err != nil {
		return nil, err
	}

	return encodeFrame(func(w *bitstream.Writer) error {
		if err := w.WriteUint16(networkID); err != nil {
			return &FrameError{Op: OpEncodeConstruction, NetworkID: networkID, TemplateID: entry.TemplateID, Cause: err}
		}
		for _, c := range codecs {
			payload, ok := state[c.Kind]
			if !ok || isNil(payload) {
				payload = c.New()
			}
			offset := w.Len()
			if err := payload.Encode(w); err != nil {
				return &FrameError{Op: OpEncodeConstruction, NetworkID: networkID, TemplateID: entry.TemplateID, Kind: c.Kind, BitOffset: offset, Cause: err}
			}
		}
		return nil
	})
}

// EncodeSerialization writes every resolved component's serialization
// payload. The network id travels in the enclosing packet.
func (e *Encoder) EncodeSerialization(networkID uint16, state SerializationState) ([]byte, error) {
	entry, codecs, ok := e.registry.ResolveSerialization(networkID)
	if !ok {
		return nil, &FrameError{Op: OpEncodeSerialization, NetworkID: networkID, Cause: ErrUnresolvedNetworkID}
	}

	kinds := make([]component.Kind, len(codecs))
	for i, c := range codecs {
		kinds[i] = c.Kind
	}
	if err := validateState(OpEncodeSerialization, networkID, entry.TemplateID, kinds, state); err != nil {
		return nil, err
	}

	return encodeFrame(func(w *bitstream.Writer) error {
		for _, c := range codecs {
			payload, ok := state[c.Kind]
			if !ok || isNil(payload) {
				payload = c.New()
			}
			offset := w.Len()
			if err := payload.Encode(w); err != nil {
				return &FrameError{Op: OpEncodeSerialization, NetworkID: networkID, TemplateID: entry.TemplateID, Kind: c.Kind, BitOffset: offset, Cause: err}
			}
		}
		return nil
	})
}

func validateState[P component.Payload](op string, networkID uint16, templateID int32, kinds []component.Kind, state map[component.Kind]P) error {
	for kind, payload := range state {
		if !slices.Contains(kinds, kind) {
			return &FrameError{Op: op, NetworkID: networkID, TemplateID: templateID, Kind: kind, Cause: ErrComponentNotResolved}
		}
		if isNil(payload) {
			continue
		}
		if got := payload.Kind(); got != kind {
			return &FrameError{Op: op, NetworkID: networkID, TemplateID: templateID, Kind: kind,
				Cause: fmt.Errorf("%w: %s stored under %s", ErrKindMismatch, got, kind)}
		}
	}
	return nil
}

// isNil also catches a nil pointer stored in a non-nil interface, which
// callers use to mean "absent" just like a missing key.
func isNil(p component.Payload) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func encodeFrame(write func(*bitstream.Writer) error) ([]byte, error) {
	buf := buffers.Get()
	defer buffers.Put(buf)

	w := bitstream.NewWriterBuffer(buf)
	if err := write(w); err != nil {
		return nil, err
	}
	data, err := w.Bytes()
	if err != nil {
		return nil, err
	}
	return bytes.Clone(data), nil
}
