package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTable(t *testing.T) *Table {
	t.Helper()
	table, err := ParseYAML([]byte(seedYAML))
	require.NoError(t, err)
	return table
}

func TestTable_Cells(t *testing.T) {
	table := seedTable(t)

	assert.True(t, table.IsValidCell(100))
	assert.True(t, table.IsValidCell(200))
	assert.True(t, table.IsValidCell(101), "exterior without cell row")
	assert.False(t, table.IsValidCell(0xDEAD))

	name, ok := table.CellName(200)
	assert.True(t, ok)
	assert.Equal(t, "Vault 101", name)
}

func TestTable_Adjacents(t *testing.T) {
	table := seedTable(t)

	adj, ok := table.Adjacents(100)
	require.True(t, ok)
	assert.Equal(t, Adjacency{100, 0, 102, 0, 0, 101, 103, 0, 0}, adj)

	adj, ok = table.Adjacents(200)
	assert.False(t, ok)
	assert.Equal(t, Adjacency{200}, adj)
}

func TestTable_NPCNotIn(t *testing.T) {
	table := seedTable(t)

	notChild := func(n NPC) bool {
		r, _ := table.Race(n.Race)
		return !n.Essential && !r.Child && !n.IsDLC()
	}

	npc, ok := table.NPCNotIn(nil, notChild)
	require.True(t, ok)
	assert.Equal(t, uint32(10), npc.Base)
	assert.Len(t, npc.Items, 2)

	_, ok = table.NPCNotIn([]uint32{10}, notChild)
	assert.False(t, ok, "20 is essential and 30 is a child")

	npc, ok = table.NPCNotIn([]uint32{10}, nil)
	require.True(t, ok)
	assert.Equal(t, uint32(20), npc.Base)
}

func TestTable_WeaponsAndIdles(t *testing.T) {
	table := seedTable(t)

	w, ok := table.Weapon(4002)
	require.True(t, ok)
	assert.True(t, w.Automatic)
	assert.Equal(t, 7.5, w.FireRate)

	assert.Equal(t, "LooseCrouch", table.IdleName(5000))
	assert.Equal(t, "", table.IdleName(0))
	assert.Equal(t, "", table.IdleName(1234))
}

func TestIsDLC(t *testing.T) {
	assert.False(t, IsDLC(0x00012345))
	assert.True(t, IsDLC(0x01012345))
}

func TestParseYAML_Invalid(t *testing.T) {
	_, err := ParseYAML([]byte("cells: {"))
	assert.ErrorContains(t, err, "records yaml")
}
