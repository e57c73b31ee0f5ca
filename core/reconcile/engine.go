package reconcile

import (
	"slices"
)

// Compute returns the diff that turns from into to.
// Only bases whose count, condition or equip state differ get an entry.
func Compute(from, to *Snapshot) Diff {
	union := buildUnion(from, to)

	diff := make(Diff, 0, len(union))
	for _, base := range union {
		if entry, ok := buildEntry(base, from, to); ok {
			diff = append(diff, entry)
		}
	}
	return diff
}

// Negate returns the diff that reverses d.
func (d Diff) Negate() Diff {
	out := make(Diff, len(d))
	for i, e := range d {
		out[i] = Entry{
			Base:          e.Base,
			Count:         -e.Count,
			Condition:     e.PrevCondition,
			PrevCondition: e.Condition,
			Equipped:      -e.Equipped,
		}
	}
	return out
}

// Bases returns the base ids touched by d.
func (d Diff) Bases() []uint32 {
	out := make([]uint32, len(d))
	for i, e := range d {
		out[i] = e.Base
	}
	return out
}

// buildUnion creates the ordered union of base ids of both snapshots.
func buildUnion(from, to *Snapshot) []uint32 {
	seen := make(map[uint32]struct{}, len(from.stacks)+len(to.stacks))
	for base := range from.stacks {
		seen[base] = struct{}{}
	}
	for base := range to.stacks {
		seen[base] = struct{}{}
	}

	union := make([]uint32, 0, len(seen))
	for base := range seen {
		union = append(union, base)
	}
	slices.Sort(union)
	return union
}

// buildEntry compares a single key. A missing stack compares as an empty one.
func buildEntry(base uint32, from, to *Snapshot) (Entry, bool) {
	a := from.stacks[base]
	b := to.stacks[base]

	entry := Entry{
		Base:          base,
		Count:         b.Count - a.Count,
		Condition:     b.Condition,
		PrevCondition: a.Condition,
		Equipped:      transition(a.Equipped, b.Equipped),
	}

	changed := entry.Count != 0 || a.Condition != b.Condition || entry.Equipped != EquipNone
	return entry, changed
}

func transition(before, after bool) Equip {
	switch {
	case !before && after:
		return EquipOn
	case before && !after:
		return EquipOff
	default:
		return EquipNone
	}
}
