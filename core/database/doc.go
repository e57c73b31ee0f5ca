// Package database handles record database connections and schema inspection.
//
// It wraps GORM so the record tables can live in MySQL for shared deployments
// or in a SQLite file for a single server box.
//
// # Connect
//
// Connect picks the dialector from Config.Driver, applies pool settings and pings
// the database before returning. A failed connection is not fatal to the server:
// the caller falls back to YAML seeded records.
//
// # Schema Inspection
//
// TableColumns lists the name and declared type of every column of a table for
// both dialects. The records package uses it to verify that an imported database
// matches the expected models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Record database unavailable", zap.Error(err))
//	}
//
//	columns, err := database.TableColumns(db, "npcs")
package database
