// Package sync reconciles per-entity state reported by clients.
//
// Every handler follows the same shape: resolve the entity, attempt the write,
// and only when the value actually changed compose a broadcast to the other
// clients and emit a scripting event. Position, angle and cell updates are
// sequenced since only the latest one matters; everything else is ordered.
//
// Container updates apply the client's diff, materialize dropped items as new
// item entities, destroy picked up ones and classify the remaining effects as
// equip, unequip or a plain change.
//
// Deaths of players schedule a single respawn on the Scheduler. The timer is
// cancelled when the player is destroyed and firing against a missing entity
// is a no-op.
package sync
