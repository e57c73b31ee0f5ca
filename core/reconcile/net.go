package reconcile

import "slices"

// ItemState describes a standalone item entity carried in a NetDiff.
type ItemState struct {
	// NetworkID is the item's network identity. The server assigns it on materialization.
	NetworkID uint64 `json:"id,omitempty"`

	Base      uint32     `json:"base"`
	Count     int        `json:"count"`
	Condition float64    `json:"condition"`
	Pos       [3]float64 `json:"pos"`
	Cell      uint32     `json:"cell"`
}

// NetDiff is the wire form of a container update.
type NetDiff struct {
	// Entries is the count/condition/equip delta.
	Entries []Entry `json:"entries"`

	// Dropped lists items that left the container as standalone entities.
	Dropped []ItemState `json:"dropped,omitempty"`

	// PickedUp lists standalone item entities that entered the container.
	PickedUp []uint64 `json:"picked_up,omitempty"`
}

// ToNet wraps d into a NetDiff without materialization lists.
func ToNet(d Diff) NetDiff {
	return NetDiff{Entries: slices.Clone([]Entry(d))}
}

// Diff returns the ordered diff part of the wire form.
func (n NetDiff) Diff() Diff {
	d := Diff(slices.Clone(n.Entries))
	slices.SortFunc(d, func(a, b Entry) int {
		return compareBase(a.Base, b.Base)
	})
	return d
}

// IsEmpty reports whether the wire diff carries nothing.
func (n NetDiff) IsEmpty() bool {
	return len(n.Entries) == 0 && len(n.Dropped) == 0 && len(n.PickedUp) == 0
}
