// Package generic holds small type-safe wrappers over standard containers.
package generic

import (
	"bytes"
	"sync"
)

// Pool is a typed sync.Pool. When reset is set it runs on every Put.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(T)
}

func NewPool[T any](generate func() T) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return generate()
			},
		},
	}
}

// NewResetPool is NewPool with a reset hook applied before values are reused.
func NewResetPool[T any](generate func() T, reset func(T)) *Pool[T] {
	p := NewPool(generate)
	p.reset = reset
	return p
}

func (p *Pool[T]) Get() T {
	return p.pool.Get().(T)
}

func (p *Pool[T]) Put(value T) {
	if p.reset != nil {
		p.reset(value)
	}
	p.pool.Put(value)
}

// maxPooledBuffer keeps one oversized frame from pinning memory in the pool.
const maxPooledBuffer = 64 << 10

// NewBufferPool pools byte buffers, dropping ones that grew past 64 KiB.
func NewBufferPool() *Pool[*bytes.Buffer] {
	return NewResetPool(
		func() *bytes.Buffer { return bytes.NewBuffer(make([]byte, 0, 512)) },
		func(b *bytes.Buffer) {
			if b.Cap() > maxPooledBuffer {
				*b = bytes.Buffer{}
				return
			}
			b.Reset()
		},
	)
}
