package world

import "errors"

var (
	// ErrNotFound is returned when a network id does not resolve to a live entity.
	ErrNotFound = errors.New("world: entity not found")
	// ErrWrongType is returned when an entity lacks the requested capability.
	ErrWrongType = errors.New("world: entity has wrong type")
	// ErrInvalidCell is returned when a cell id is not in the record tables.
	ErrInvalidCell = errors.New("world: invalid cell")
)
