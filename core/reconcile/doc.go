// Package reconcile provides the container diff algebra used to keep inventories in sync.
//
// A container's contents are a Snapshot: one Stack per item base id. Two snapshots are
// reconciled into a Diff, which can be applied to the "from" snapshot to obtain the "to"
// snapshot exactly, or negated to go back.
//
// # Algorithm
//
// Compute builds the union of base ids present in either snapshot and compares each key
// independently. An Entry is emitted only when the count, the condition or the equip state
// differs. Equip transitions are encoded as a sign so that recipients can tell an equip from an
// unequip with a single check:
//
//	+1  became equipped
//	-1  became unequipped
//	 0  unchanged
//
// Apply mutates a snapshot and returns the Effects that were actually applied. The caller
// filters effects consumed by item materialization (drop/pickup) with Effects.WithoutBase.
//
// # Wire Form
//
// NetDiff extends a Diff with the items that became standalone entities (Dropped) and the
// standalone item entities that were absorbed (PickedUp). A plain count delta cannot express
// those because the items gain or lose their own network identity.
//
// # Usage
//
//	diff := reconcile.Compute(before, after)
//	effects := reconcile.Apply(snapshot, diff)
//	for _, e := range effects.WithoutBase(droppedBase) {
//	    // notify
//	}
package reconcile
