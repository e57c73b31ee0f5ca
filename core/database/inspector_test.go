package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE idle_groups (id INTEGER PRIMARY KEY, name TEXT, category TEXT)").Error)

	columns, err := TableColumns(db, "idle_groups")
	require.NoError(t, err)
	require.Len(t, columns, 3)

	types := make(map[string]string)
	for _, col := range columns {
		types[col.Name] = col.Type
	}
	assert.Equal(t, map[string]string{"id": "integer", "name": "text", "category": "text"}, types)

	missing, err := TableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, missing)
}
