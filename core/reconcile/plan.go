package reconcile

import (
	"errors"
	"fmt"
)

// ErrInvalidDiff is returned by Validate for malformed diffs.
var ErrInvalidDiff = errors.New("reconcile: invalid diff")

// Validate checks that every base appears once and equip transitions are in range.
func (d Diff) Validate() error {
	seen := make(map[uint32]struct{}, len(d))
	for _, e := range d {
		if _, dup := seen[e.Base]; dup {
			return fmt.Errorf("%w: duplicate base %08X", ErrInvalidDiff, e.Base)
		}
		seen[e.Base] = struct{}{}

		if e.Equipped < EquipOff || e.Equipped > EquipOn {
			return fmt.Errorf("%w: equip transition %d for base %08X", ErrInvalidDiff, e.Equipped, e.Base)
		}
	}
	return nil
}

// Apply mutates s by d and returns the effects that were actually applied.
// Counts never go below zero; a stack reaching zero is removed.
func Apply(s *Snapshot, d Diff) Effects {
	effects := make(Effects, 0, len(d))

	for _, e := range d {
		cur, _ := s.Get(e.Base)

		next := Stack{
			Base:      e.Base,
			Count:     max(cur.Count+e.Count, 0),
			Condition: e.Condition,
			Equipped:  cur.Equipped,
		}
		switch e.Equipped {
		case EquipOn:
			next.Equipped = true
		case EquipOff:
			next.Equipped = false
		}

		if next.Count == 0 {
			delete(s.stacks, e.Base)
			next = Stack{Base: e.Base}
		} else {
			s.stacks[e.Base] = next
		}

		applied := Entry{
			Base:          e.Base,
			Count:         next.Count - cur.Count,
			Condition:     next.Condition,
			PrevCondition: cur.Condition,
			Equipped:      transition(cur.Equipped, next.Equipped),
		}
		if applied.Count != 0 || cur.Condition != next.Condition || applied.Equipped != EquipNone {
			effects = append(effects, applied)
		}
	}

	return effects
}

// Add returns the diff that adds count items of base to s without applying it.
func Add(s *Snapshot, base uint32, count int, condition float64, equipped bool) Diff {
	next := s.Clone()

	st, _ := next.Get(base)
	st.Base = base
	st.Count += count
	st.Condition = condition
	st.Equipped = st.Equipped || equipped
	if st.Count <= 0 {
		delete(next.stacks, base)
	} else {
		next.stacks[base] = st
	}

	return Compute(s, next)
}
