// Package registry remembers which component kinds each replicated object
// carries and turns them into ordered codec lists.
package registry

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/zeusync/replicanet/internal/core/replica/component"
	"github.com/zeusync/replicanet/internal/core/replica/typedb"
)

var ErrUnknownComponentKind = errors.New("registry: unknown component kind")

// UnknownKindError names the kind that made a template unusable.
type UnknownKindError struct {
	TemplateID int32
	Kind       component.Kind
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("%s %d in template %d", ErrUnknownComponentKind, uint32(e.Kind), e.TemplateID)
}

func (e *UnknownKindError) Unwrap() error { return ErrUnknownComponentKind }

// Entry is what is remembered about one constructed object.
type Entry struct {
	TemplateID int32
	// Kinds is the full list from the type database, inert kinds included.
	Kinds []component.Kind
}

type ConstructionCodec struct {
	Kind component.Kind
	New  component.ConstructionFactory
}

type SerializationCodec struct {
	Kind component.Kind
	New  component.SerializationFactory
}

// Registry is safe for concurrent use.
type Registry struct {
	db typedb.Database

	mu      sync.RWMutex
	entries map[uint16]Entry
}

func New(db typedb.Database) *Registry {
	return &Registry{
		db:      db,
		entries: make(map[uint16]Entry),
	}
}

// ResolveConstruction looks up the kinds of templateID, records them under
// networkID and returns the construction codecs in wire order. Inert kinds
// are skipped. On any failure the previous entry of networkID is dropped,
// so a failed re-construction never leaves the old kinds behind.
func (r *Registry) ResolveConstruction(ctx context.Context, networkID uint16, templateID int32) ([]ConstructionCodec, error) {
	kinds, err := r.db.ComponentKinds(ctx, templateID)
	if err != nil {
		r.Forget(networkID)
		return nil, fmt.Errorf("resolve template %d: %w", templateID, err)
	}

	codecs, err := constructionCodecs(templateID, kinds)
	if err != nil {
		r.Forget(networkID)
		return nil, err
	}

	r.mu.Lock()
	r.entries[networkID] = Entry{TemplateID: templateID, Kinds: slices.Clone(kinds)}
	r.mu.Unlock()
	return codecs, nil
}

// ConstructionCodecs returns the entry and construction codecs of an object
// that was already resolved, without consulting the type database.
func (r *Registry) ConstructionCodecs(networkID uint16) (Entry, []ConstructionCodec, bool) {
	entry, ok := r.Lookup(networkID)
	if !ok {
		return Entry{}, nil, false
	}
	// recorded kinds were all known at construction
	codecs, _ := constructionCodecs(entry.TemplateID, entry.Kinds)
	return entry, codecs, true
}

func constructionCodecs(templateID int32, kinds []component.Kind) ([]ConstructionCodec, error) {
	codecs := make([]ConstructionCodec, 0, len(kinds))
	for _, k := range kinds {
		factory, role := component.LookupConstruction(k)
		switch role {
		case component.RoleUnknown:
			return nil, &UnknownKindError{TemplateID: templateID, Kind: k}
		case component.RolePayload:
			codecs = append(codecs, ConstructionCodec{Kind: k, New: factory})
		}
	}
	return codecs, nil
}

// ResolveSerialization returns the entry and serialization codecs of a
// constructed object, or false when networkID was never constructed or was
// forgotten.
func (r *Registry) ResolveSerialization(networkID uint16) (Entry, []SerializationCodec, bool) {
	entry, ok := r.Lookup(networkID)
	if !ok {
		return Entry{}, nil, false
	}

	codecs := make([]SerializationCodec, 0, len(entry.Kinds))
	for _, k := range entry.Kinds {
		// recorded kinds were all known at construction
		if factory, role := component.LookupSerialization(k); role == component.RolePayload {
			codecs = append(codecs, SerializationCodec{Kind: k, New: factory})
		}
	}
	return entry, codecs, true
}

// Lookup returns the entry recorded for networkID.
func (r *Registry) Lookup(networkID uint16) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[networkID]
	if !ok {
		return Entry{}, false
	}
	return Entry{TemplateID: e.TemplateID, Kinds: slices.Clone(e.Kinds)}, true
}

// Forget discards what was recorded for networkID.
func (r *Registry) Forget(networkID uint16) {
	r.mu.Lock()
	delete(r.entries, networkID)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
