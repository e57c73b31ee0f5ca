package registry

import (
	"errors"
	"fmt"
	"slices"
)

// ErrNotTracked is returned when an entry expected in a registry is missing.
var ErrNotTracked = errors.New("registry: entry not tracked")

// BaseIDTracker is the multiset of base ids in use by live players.
type BaseIDTracker struct {
	g *Guarded[[]uint32]
}

// NewBaseIDTracker creates an empty tracker.
func NewBaseIDTracker() *BaseIDTracker {
	return &BaseIDTracker{g: NewGuarded[[]uint32](nil)}
}

// Add records one more use of base.
func (t *BaseIDTracker) Add(base uint32) {
	t.g.Operate(func(ids *[]uint32) {
		*ids = append(*ids, base)
	})
}

// Remove drops exactly one use of base.
func (t *BaseIDTracker) Remove(base uint32) error {
	var err error
	t.g.Operate(func(ids *[]uint32) {
		i := slices.Index(*ids, base)
		if i < 0 {
			err = fmt.Errorf("%w: base %08X", ErrNotTracked, base)
			return
		}
		*ids = slices.Delete(*ids, i, i+1)
	})
	return err
}

// Replace swaps one use of old for base in place.
// The tracker never observes a state where the entity is missing.
func (t *BaseIDTracker) Replace(old, base uint32) error {
	var err error
	t.g.Operate(func(ids *[]uint32) {
		i := slices.Index(*ids, old)
		if i < 0 {
			err = fmt.Errorf("%w: base %08X", ErrNotTracked, old)
			return
		}
		(*ids)[i] = base
	})
	return err
}

// Claim picks a replacement for one use of old and swaps it in under the
// same lock, so two callers never claim the same unused base. pick receives
// a copy of the tracked ids. It returns false when pick finds nothing.
func (t *BaseIDTracker) Claim(old uint32, pick func(exclude []uint32) (uint32, bool)) (uint32, bool, error) {
	var (
		base uint32
		ok   bool
		err  error
	)
	t.g.Operate(func(ids *[]uint32) {
		i := slices.Index(*ids, old)
		if i < 0 {
			err = fmt.Errorf("%w: base %08X", ErrNotTracked, old)
			return
		}
		if base, ok = pick(slices.Clone(*ids)); ok {
			(*ids)[i] = base
		}
	})
	return base, ok, err
}

// Contains reports whether base is in use.
func (t *BaseIDTracker) Contains(base uint32) bool {
	var ok bool
	t.g.Read(func(ids []uint32) {
		ok = slices.Contains(ids, base)
	})
	return ok
}

// Snapshot returns a copy of the tracked base ids.
func (t *BaseIDTracker) Snapshot() []uint32 {
	var out []uint32
	t.g.Read(func(ids []uint32) {
		out = slices.Clone(ids)
	})
	return out
}

// Len returns the number of tracked uses.
func (t *BaseIDTracker) Len() int {
	var n int
	t.g.Read(func(ids []uint32) {
		n = len(ids)
	})
	return n
}

// WindowTracker maps a window id to the members that have it attached.
type WindowTracker[K comparable] struct {
	g *Guarded[map[K][]K]
}

// NewWindowTracker creates an empty tracker.
func NewWindowTracker[K comparable]() *WindowTracker[K] {
	return &WindowTracker[K]{g: NewGuarded(make(map[K][]K))}
}

// Attach adds member to window. It is idempotent and reports whether membership changed.
func (t *WindowTracker[K]) Attach(window, member K) bool {
	added := false
	t.g.Operate(func(m *map[K][]K) {
		if slices.Contains((*m)[window], member) {
			return
		}
		(*m)[window] = append((*m)[window], member)
		added = true
	})
	return added
}

// Detach removes member from window and reports whether it was attached.
func (t *WindowTracker[K]) Detach(window, member K) bool {
	removed := false
	t.g.Operate(func(m *map[K][]K) {
		removed = detachLocked(*m, window, member)
	})
	return removed
}

// DetachAll removes member from every listed window.
// It returns ErrNotTracked when a listed window did not contain the member.
func (t *WindowTracker[K]) DetachAll(member K, windows []K) error {
	var missing int
	t.g.Operate(func(m *map[K][]K) {
		for _, w := range windows {
			if !detachLocked(*m, w, member) {
				missing++
			}
		}
	})
	if missing > 0 {
		return fmt.Errorf("%w: %d window memberships", ErrNotTracked, missing)
	}
	return nil
}

// Members returns a copy of the members attached to window.
func (t *WindowTracker[K]) Members(window K) []K {
	var out []K
	t.g.Read(func(m map[K][]K) {
		out = slices.Clone(m[window])
	})
	return out
}

// IsAttached reports whether member has window attached.
func (t *WindowTracker[K]) IsAttached(window, member K) bool {
	var ok bool
	t.g.Read(func(m map[K][]K) {
		ok = slices.Contains(m[window], member)
	})
	return ok
}

func detachLocked[K comparable](m map[K][]K, window, member K) bool {
	members := m[window]
	i := slices.Index(members, member)
	if i < 0 {
		return false
	}
	members = slices.Delete(members, i, i+1)
	if len(members) == 0 {
		delete(m, window)
		return true
	}
	m[window] = members
	return true
}
