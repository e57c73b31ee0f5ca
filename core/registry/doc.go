// Package registry holds the process-wide entity registries.
//
// Two registries exist, each behind its own lock so that base-identity lookups never contend
// with window attachment lookups:
//
//   - BaseIDTracker: the multiset of template (base) ids currently used by live players. The
//     session feature filters it to avoid spawning two players from the same template.
//   - WindowTracker: window id -> set of player network ids that have the window attached.
//
// Both are built on Guarded, a lock-wrapped value that is only reachable through Operate and
// Read callbacks. No iterator or slice aliasing the guarded data escapes the lock.
//
// # Usage
//
//	bases := registry.NewBaseIDTracker()
//	bases.Add(0x00000007)
//	if err := bases.Replace(0x00000007, 0x0001B3E2); err != nil {
//	    // the old base was not tracked
//	}
package registry
