package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Column is a live column as reported by the database.
type Column struct {
	Name string
	// Type is the declared type in lower case, e.g. "varchar(128)".
	Type string
}

// TableColumns lists the columns of table. SQLite reports a missing table as
// having no columns.
func TableColumns(db *gorm.DB, table string) ([]Column, error) {
	var (
		rows []struct {
			Name  string
			Field string
			Type  string
		}
		query string
	)
	switch db.Dialector.Name() {
	case "sqlite":
		query = fmt.Sprintf("PRAGMA table_info('%s')", table)
	default:
		query = fmt.Sprintf("SHOW COLUMNS FROM `%s`", table)
	}
	if err := db.Raw(query).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("inspect columns of %s: %w", table, err)
	}

	columns := make([]Column, 0, len(rows))
	for _, r := range rows {
		name := r.Name
		if name == "" {
			name = r.Field
		}
		columns = append(columns, Column{Name: strings.ToLower(name), Type: strings.ToLower(r.Type)})
	}
	return columns, nil
}
