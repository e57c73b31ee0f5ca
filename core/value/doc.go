// Package value provides the per-entity value store.
//
// Every mutable attribute of a synchronized entity is wrapped in a Value so that reads and
// writes are race-free when several connection goroutines touch the same entity.
//
// # Changed Contract
//
// Writes report whether the stored value actually changed. Handlers rely on this single
// signal to decide whether a broadcast and a script notification are due:
//
//	if actor.Alerted.Set(true) {
//	    // broadcast + notify
//	}
//
// A write of the current value is a no-op and reports false.
package value
