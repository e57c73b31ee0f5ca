package reconcile

import (
	"slices"
)

// Equip encodes an equip-state transition.
type Equip int8

const (
	// EquipOff means the stack became unequipped.
	EquipOff Equip = -1
	// EquipNone means the equip state did not change.
	EquipNone Equip = 0
	// EquipOn means the stack became equipped.
	EquipOn Equip = 1
)

// Stack is one entry of a container snapshot.
type Stack struct {
	// Base is the item template id.
	Base uint32 `json:"base"`

	// Count is the number of items in the stack. Stored stacks always have Count > 0.
	Count int `json:"count"`

	// Condition is the item health, in percent.
	Condition float64 `json:"condition"`

	// Equipped indicates whether the stack is equipped by its owner.
	Equipped bool `json:"equipped"`
}

// Snapshot is the full contents of a container, keyed by base id.
// A base holds a single stack, so equip state and condition are per base:
// an equipped and an unequipped copy of one base collapse into one stack
// carrying the state of the last copy added.
// It is not safe for concurrent use; the owning container serializes access.
type Snapshot struct {
	stacks map[uint32]Stack
}

// NewSnapshot builds a snapshot from stacks. Stacks sharing a base are merged:
// counts add up, condition and equip state of the last one win.
func NewSnapshot(stacks ...Stack) *Snapshot {
	s := &Snapshot{stacks: make(map[uint32]Stack, len(stacks))}
	for _, st := range stacks {
		if st.Count <= 0 {
			continue
		}
		if cur, ok := s.stacks[st.Base]; ok {
			st.Count += cur.Count
		}
		s.stacks[st.Base] = st
	}
	return s
}

// Get returns the stack for base.
func (s *Snapshot) Get(base uint32) (Stack, bool) {
	st, ok := s.stacks[base]
	return st, ok
}

// Len returns the number of stacks.
func (s *Snapshot) Len() int {
	return len(s.stacks)
}

// Stacks returns the stacks ordered by base id.
func (s *Snapshot) Stacks() []Stack {
	out := make([]Stack, 0, len(s.stacks))
	for _, st := range s.stacks {
		out = append(out, st)
	}
	slices.SortFunc(out, func(a, b Stack) int {
		return compareBase(a.Base, b.Base)
	})
	return out
}

// Clone returns a deep copy.
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{stacks: make(map[uint32]Stack, len(s.stacks))}
	for k, v := range s.stacks {
		c.stacks[k] = v
	}
	return c
}

// Equal reports whether both snapshots hold exactly the same stacks.
func (s *Snapshot) Equal(o *Snapshot) bool {
	if len(s.stacks) != len(o.stacks) {
		return false
	}
	for k, v := range s.stacks {
		if ov, ok := o.stacks[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Entry is the per-base delta between two snapshots.
type Entry struct {
	// Base is the item template id.
	Base uint32 `json:"base"`

	// Count is the signed change in stack size.
	Count int `json:"count"`

	// Condition is the condition after the change.
	Condition float64 `json:"condition"`

	// PrevCondition is the condition before the change. It makes the entry reversible.
	PrevCondition float64 `json:"prev_condition"`

	// Equipped is the equip transition.
	Equipped Equip `json:"equipped"`
}

// Diff is a set of entries with unique base ids, ordered by base id.
type Diff []Entry

// Effects are the entries actually applied to a snapshot.
type Effects []Entry

// WithoutBase returns the effects minus every entry for base.
func (e Effects) WithoutBase(base uint32) Effects {
	return slices.DeleteFunc(e, func(en Entry) bool {
		return en.Base == base
	})
}

func compareBase(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
