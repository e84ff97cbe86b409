package sequence

// Ring is a FIFO with a fixed capacity. Pushing onto a full ring evicts
// the oldest item.
type Ring[T any] struct {
	items []T
	head  int
	size  int
}

func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{items: make([]T, capacity)}
}

// Push appends v and reports whether the oldest item had to go.
func (r *Ring[T]) Push(v T) (evicted bool) {
	if r.size == len(r.items) {
		r.items[r.head] = v
		r.head = (r.head + 1) % len(r.items)
		return true
	}
	r.items[(r.head+r.size)%len(r.items)] = v
	r.size++
	return false
}

// Drain returns the items oldest first and empties the ring.
func (r *Ring[T]) Drain() []T {
	if r.size == 0 {
		return nil
	}
	out := make([]T, r.size)
	for i := range out {
		out[i] = r.items[(r.head+i)%len(r.items)]
	}
	clear(r.items)
	r.head, r.size = 0, 0
	return out
}

func (r *Ring[T]) Len() int {
	return r.size
}

func (r *Ring[T]) IsEmpty() bool {
	return r.size == 0
}
