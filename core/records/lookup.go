package records

import (
	"errors"
	"slices"
)

// ErrUnknownRecord is returned when a referenced record does not exist.
var ErrUnknownRecord = errors.New("records: unknown record")

// DLCMask selects the plugin index of a form id.
const DLCMask uint32 = 0xFF000000

// IsDLC reports whether id belongs to a plugin other than the master file.
func IsDLC(id uint32) bool {
	return id&DLCMask != 0
}

// Adjacency is the 3x3 neighbourhood of a cell, the cell itself first.
type Adjacency [9]uint32

// Lookup is the read-only record interface the server validates against.
type Lookup interface {
	IsValidCell(id uint32) bool
	CellName(id uint32) (string, bool)
	Exterior(cell uint32) (Exterior, bool)
	// Adjacents returns the neighbourhood of an exterior cell; ok is false for interiors.
	Adjacents(cell uint32) (adj Adjacency, ok bool)
	NPC(base uint32) (NPC, bool)
	// NPCNotIn returns the first template, by base id, not in exclude that satisfies pred.
	NPCNotIn(exclude []uint32, pred func(NPC) bool) (NPC, bool)
	Race(id uint32) (Race, bool)
	Weapon(base uint32) (Weapon, bool)
	// IdleName resolves an idle animation; zero and unknown ids yield "".
	IdleName(id uint32) string
}

type gridKey struct {
	world uint32
	x, y  int32
}

// Table is an immutable in-memory Lookup.
type Table struct {
	cells     map[uint32]Cell
	exteriors map[uint32]Exterior
	grid      map[gridKey]uint32
	npcs      map[uint32]NPC
	npcOrder  []uint32
	races     map[uint32]Race
	weapons   map[uint32]Weapon
	idles     map[uint32]Idle
}

// NewTable indexes data. Exterior cells are valid cells even without a Cell row.
func NewTable(data Data) *Table {
	t := &Table{
		cells:     make(map[uint32]Cell, len(data.Cells)),
		exteriors: make(map[uint32]Exterior, len(data.Exteriors)),
		grid:      make(map[gridKey]uint32, len(data.Exteriors)),
		npcs:      make(map[uint32]NPC, len(data.NPCs)),
		races:     make(map[uint32]Race, len(data.Races)),
		weapons:   make(map[uint32]Weapon, len(data.Weapons)),
		idles:     make(map[uint32]Idle, len(data.Idles)),
	}

	for _, c := range data.Cells {
		t.cells[c.ID] = c
	}
	for _, e := range data.Exteriors {
		t.exteriors[e.Cell] = e
		t.grid[gridKey{e.World, e.X, e.Y}] = e.Cell
	}
	for _, n := range data.NPCs {
		t.npcs[n.Base] = n
		t.npcOrder = append(t.npcOrder, n.Base)
	}
	slices.Sort(t.npcOrder)
	t.npcOrder = slices.Compact(t.npcOrder)
	for _, r := range data.Races {
		t.races[r.ID] = r
	}
	for _, w := range data.Weapons {
		t.weapons[w.Base] = w
	}
	for _, i := range data.Idles {
		t.idles[i.ID] = i
	}

	return t
}

// Data returns the table content, ordered by primary key.
func (t *Table) Data() Data {
	var d Data
	for _, id := range sortedKeys(t.cells) {
		d.Cells = append(d.Cells, t.cells[id])
	}
	for _, id := range sortedKeys(t.exteriors) {
		d.Exteriors = append(d.Exteriors, t.exteriors[id])
	}
	for _, id := range t.npcOrder {
		d.NPCs = append(d.NPCs, t.npcs[id])
	}
	for _, id := range sortedKeys(t.races) {
		d.Races = append(d.Races, t.races[id])
	}
	for _, id := range sortedKeys(t.weapons) {
		d.Weapons = append(d.Weapons, t.weapons[id])
	}
	for _, id := range sortedKeys(t.idles) {
		d.Idles = append(d.Idles, t.idles[id])
	}
	return d
}

func (t *Table) IsValidCell(id uint32) bool {
	if _, ok := t.cells[id]; ok {
		return true
	}
	_, ok := t.exteriors[id]
	return ok
}

func (t *Table) CellName(id uint32) (string, bool) {
	c, ok := t.cells[id]
	return c.Name, ok
}

func (t *Table) Exterior(cell uint32) (Exterior, bool) {
	e, ok := t.exteriors[cell]
	return e, ok
}

func (t *Table) Adjacents(cell uint32) (Adjacency, bool) {
	e, ok := t.exteriors[cell]
	if !ok {
		return Adjacency{cell}, false
	}

	adj := Adjacency{cell}
	i := 1
	for dy := int32(1); dy >= -1; dy-- {
		for dx := int32(-1); dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			adj[i] = t.grid[gridKey{e.World, e.X + dx, e.Y + dy}]
			i++
		}
	}
	return adj, true
}

func (t *Table) NPC(base uint32) (NPC, bool) {
	n, ok := t.npcs[base]
	return n, ok
}

func (t *Table) NPCNotIn(exclude []uint32, pred func(NPC) bool) (NPC, bool) {
	for _, base := range t.npcOrder {
		if slices.Contains(exclude, base) {
			continue
		}
		n := t.npcs[base]
		if pred == nil || pred(n) {
			return n, true
		}
	}
	return NPC{}, false
}

func (t *Table) Race(id uint32) (Race, bool) {
	r, ok := t.races[id]
	return r, ok
}

func (t *Table) Weapon(base uint32) (Weapon, bool) {
	w, ok := t.weapons[base]
	return w, ok
}

func (t *Table) IdleName(id uint32) string {
	if id == 0 {
		return ""
	}
	return t.idles[id].Name
}

func sortedKeys[V any](m map[uint32]V) []uint32 {
	keys := make([]uint32, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
