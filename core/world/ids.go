package world

import "sync/atomic"

// NetworkID identifies an entity for its whole lifetime. Zero is never allocated.
type NetworkID uint64

// IDAllocator hands out network ids. It is safe for concurrent use.
type IDAllocator struct {
	next atomic.Uint64
}

// Next returns a fresh id.
func (a *IDAllocator) Next() NetworkID {
	return NetworkID(a.next.Add(1))
}
