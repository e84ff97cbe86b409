// Package concurrent runs work over slices with bounded parallelism.
package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ForEach runs action for every item, at most limit at a time (no limit when
// limit <= 0). The first error cancels the context passed to the remaining
// actions and is returned once all started actions finished.
func ForEach[T any](ctx context.Context, items []T, limit int, action func(context.Context, T) error) error {
	group, groupCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		group.SetLimit(limit)
	}
	for _, item := range items {
		if groupCtx.Err() != nil {
			break
		}
		item := item
		group.Go(func() error {
			return action(groupCtx, item)
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// GroupBy splits items by key. Keys are returned in order of first
// appearance and every group keeps the items' original order.
func GroupBy[K comparable, T any](items []T, key func(T) K) ([]K, map[K][]T) {
	var keys []K
	groups := make(map[K][]T)
	for _, item := range items {
		k := key(item)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], item)
	}
	return keys, groups
}
