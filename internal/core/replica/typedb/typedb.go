// Package typedb resolves object templates to their ordered component kinds.
package typedb

import (
	"context"
	"errors"

	"github.com/zeusync/replicanet/internal/core/replica/component"
)

var (
	ErrTemplateNotFound = errors.New("typedb: template not found")
	// ErrInvalidKind marks a stored component type outside the 32-bit kind range.
	ErrInvalidKind = errors.New("typedb: component type out of range")
)

// Database maps a template id to the component kinds its objects carry.
// The order of the returned kinds is the order of payloads on the wire and
// must be stable across calls.
type Database interface {
	ComponentKinds(ctx context.Context, templateID int32) ([]component.Kind, error)
}

// Func adapts a plain function to Database.
type Func func(ctx context.Context, templateID int32) ([]component.Kind, error)

func (f Func) ComponentKinds(ctx context.Context, templateID int32) ([]component.Kind, error) {
	return f(ctx, templateID)
}
