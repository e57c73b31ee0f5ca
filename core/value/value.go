package value

import "sync"

// Value is a mutex-guarded attribute cell.
// The zero value holds the zero T and is ready to use.
type Value[T comparable] struct {
	mu sync.RWMutex
	v  T
}

// New creates a Value holding v.
func New[T comparable](v T) *Value[T] {
	return &Value[T]{v: v}
}

// Get returns the current value.
func (c *Value[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.v
}

// Set stores v and reports whether the stored value changed.
func (c *Value[T]) Set(v T) bool {
	_, changed := c.Swap(v)
	return changed
}

// Swap stores v and returns the previous value together with the changed flag.
// Both are computed under the same lock, so concurrent writers never observe a stale transition.
func (c *Value[T]) Swap(v T) (old T, changed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	old = c.v
	if old == v {
		return old, false
	}
	c.v = v
	return old, true
}

// Update applies fn to the current value under the lock.
func (c *Value[T]) Update(fn func(T) T) (old, updated T, changed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	old = c.v
	updated = fn(old)
	if updated == old {
		return old, old, false
	}
	c.v = updated
	return old, updated, true
}
