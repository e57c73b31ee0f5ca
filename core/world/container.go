package world

import (
	"sync"

	"github.com/beInDev/vaultmp/core/reconcile"
)

// Container is an entity with an inventory.
type Container struct {
	*Object

	mu       sync.Mutex
	contents *reconcile.Snapshot
}

func (c *Container) container() *Container { return c }

// Contents returns the stacks ordered by base id.
func (c *Container) Contents() []reconcile.Stack {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.contents.Stacks()
}

// Snapshot returns a copy of the inventory.
func (c *Container) Snapshot() *reconcile.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.contents.Clone()
}

// SetContents replaces the inventory.
func (c *Container) SetContents(stacks ...reconcile.Stack) {
	snapshot := reconcile.NewSnapshot(stacks...)

	c.mu.Lock()
	c.contents = snapshot
	c.mu.Unlock()
}

// IsEmpty reports whether the inventory holds nothing.
func (c *Container) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.contents.Len() == 0
}

// AddItem returns the diff adding count items of base. The inventory is not modified.
func (c *Container) AddItem(base uint32, count int, condition float64, equipped bool) reconcile.Diff {
	c.mu.Lock()
	defer c.mu.Unlock()
	return reconcile.Add(c.contents, base, count, condition, equipped)
}

// ApplyDiff mutates the inventory under the container lock and returns the applied effects.
func (c *Container) ApplyDiff(d reconcile.Diff) reconcile.Effects {
	c.mu.Lock()
	defer c.mu.Unlock()
	return reconcile.Apply(c.contents, d)
}

// EquippedBases returns the equipped stacks' base ids, ordered.
func (c *Container) EquippedBases() []uint32 {
	var out []uint32
	for _, st := range c.Contents() {
		if st.Equipped {
			out = append(out, st.Base)
		}
	}
	return out
}
