// Package records provides the read-only game record tables the server validates against.
//
// The tables cover cells and their exterior grid, NPC templates with their starting
// inventories, races, weapons and idle animations. They are consumed through the
// Lookup interface; Table is the in-memory implementation.
//
// # Sources
//
// Tables are seeded from a YAML file (LoadYAML) or loaded from the record database
// (LoadDB). Import copies a table into the database and CheckSchema compares the
// live schema with the models.
//
// # Caching
//
// Cache wraps a Source with a TTL. Concurrent reloads share one load through
// singleflight, and the Lookup methods of the Cache always read the last table built.
package records
