package replica

import "github.com/zeusync/replicanet/internal/core/replica/component"

// ConstructionFrame is a decoded construction.
type ConstructionFrame struct {
	NetworkID  uint16
	TemplateID int32
	// Components are in wire order; inert kinds have no entry.
	Components []component.Construction
	// Replayed holds serializations that arrived before this construction
	// and were decoded right after it.
	Replayed []*SerializationFrame
	// TrailingBits counts whole bytes' worth of bits nobody consumed.
	TrailingBits uint64
}

func (f *ConstructionFrame) ByKind() map[component.Kind]component.Construction {
	out := make(map[component.Kind]component.Construction, len(f.Components))
	for _, c := range f.Components {
		out[c.Kind()] = c
	}
	return out
}

// SerializationFrame is a decoded serialization.
type SerializationFrame struct {
	NetworkID    uint16
	Components   []component.Serialization
	TrailingBits uint64
}

func (f *SerializationFrame) ByKind() map[component.Kind]component.Serialization {
	out := make(map[component.Kind]component.Serialization, len(f.Components))
	for _, c := range f.Components {
		out[c.Kind()] = c
	}
	return out
}

// ConstructionState is the construction payload of each kind to encode.
// Resolved kinds without an entry are encoded with every field absent.
type ConstructionState map[component.Kind]component.Construction

// SerializationState is ConstructionState's counterpart for updates.
type SerializationState map[component.Kind]component.Serialization

// Status is what a peer knows about a network id.
type Status uint8

const (
	StatusUnknown Status = iota
	StatusKnown
)

func (s Status) String() string {
	if s == StatusKnown {
		return "known"
	}
	return "unknown"
}
