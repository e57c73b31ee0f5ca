// Package world holds the server-side entity model.
//
// Entities are composed rather than inherited: an Item or Container embeds an
// Object, an Actor embeds a Container and a Player embeds an Actor. Callers test
// for a capability with AsItem, AsContainer, AsActor and AsPlayer.
//
// Every mutable attribute is a value.Value cell, so each setter reports whether
// the stored value actually changed. Handlers broadcast only on change.
//
// The Factory owns the live entity set. It allocates network ids, keeps the
// player registries (base ids in use, attached windows) consistent with the
// live players and runs destroy hooks exactly once per entity.
package world
