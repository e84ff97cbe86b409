package typedb

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/zeusync/replicanet/internal/core/replica/component"
)

// Cached memoizes another Database. Missing templates are remembered too;
// other errors are not.
type Cached struct {
	next  Database
	group singleflight.Group

	mu      sync.RWMutex
	entries map[int32][]component.Kind
	missing map[int32]struct{}
}

func NewCached(next Database) *Cached {
	return &Cached{
		next:    next,
		entries: make(map[int32][]component.Kind),
		missing: make(map[int32]struct{}),
	}
}

func (c *Cached) ComponentKinds(ctx context.Context, templateID int32) ([]component.Kind, error) {
	c.mu.RLock()
	kinds, ok := c.entries[templateID]
	_, miss := c.missing[templateID]
	c.mu.RUnlock()
	if ok {
		return slices.Clone(kinds), nil
	}
	if miss {
		return nil, &missError{templateID: templateID}
	}

	v, err, _ := c.group.Do(strconv.FormatInt(int64(templateID), 10), func() (any, error) {
		kinds, err := c.next.ComponentKinds(ctx, templateID)
		c.mu.Lock()
		defer c.mu.Unlock()
		switch {
		case err == nil:
			c.entries[templateID] = kinds
		case errors.Is(err, ErrTemplateNotFound):
			c.missing[templateID] = struct{}{}
		}
		return kinds, err
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]component.Kind)), nil
}

// Forget drops whatever is cached for templateID.
func (c *Cached) Forget(templateID int32) {
	c.mu.Lock()
	delete(c.entries, templateID)
	delete(c.missing, templateID)
	c.mu.Unlock()
}

// Len returns the number of cached templates, found or missing.
func (c *Cached) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries) + len(c.missing)
}

type missError struct{ templateID int32 }

func (e *missError) Error() string {
	return ErrTemplateNotFound.Error() + ": " + strconv.FormatInt(int64(e.templateID), 10)
}

func (e *missError) Unwrap() error { return ErrTemplateNotFound }
