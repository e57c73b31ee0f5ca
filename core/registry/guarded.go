package registry

import "sync"

// Guarded wraps a value with a single mutex.
type Guarded[T any] struct {
	mu sync.Mutex
	v  T
}

// NewGuarded creates a Guarded holding v.
func NewGuarded[T any](v T) *Guarded[T] {
	return &Guarded[T]{v: v}
}

// Operate runs fn with exclusive access to the guarded value.
// fn must not retain the pointer after it returns.
func (g *Guarded[T]) Operate(fn func(v *T)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(&g.v)
}

// Read runs fn with a copy of the guarded value while holding the lock.
// Reference types inside T (slices, maps) still alias the guarded data and must not escape fn.
func (g *Guarded[T]) Read(fn func(v T)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(g.v)
}
