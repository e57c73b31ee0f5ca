package records

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Source loads a complete record table.
type Source func(ctx context.Context) (*Table, error)

// YAMLSource loads the table from a seed file.
func YAMLSource(path string) Source {
	return func(context.Context) (*Table, error) {
		return LoadYAML(path)
	}
}

// Cache holds the last table built from a Source.
// Its Lookup methods read the current table without reloading.
type Cache struct {
	source Source
	ttl    time.Duration

	mu    sync.RWMutex
	table *Table
	built time.Time

	sf singleflight.Group
}

var _ Lookup = (*Cache)(nil)

// NewCache creates a Cache. A zero ttl rebuilds on every Get.
func NewCache(source Source, ttl time.Duration) *Cache {
	return &Cache{
		source: source,
		ttl:    ttl,
		table:  NewTable(Data{}),
	}
}

// IsExpired reports whether the next Get rebuilds the table.
func (c *Cache) IsExpired() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.expiredLocked()
}

func (c *Cache) expiredLocked() bool {
	if c.built.IsZero() || c.ttl == 0 {
		return true
	}
	return time.Since(c.built) > c.ttl
}

// Get returns the current table, rebuilding it when expired.
// Concurrent rebuilds are collapsed into one load.
func (c *Cache) Get(ctx context.Context) (*Table, error) {
	c.mu.RLock()
	table, expired := c.table, c.expiredLocked()
	c.mu.RUnlock()

	if !expired {
		return table, nil
	}

	result, err, _ := c.sf.Do("records", func() (interface{}, error) {
		c.mu.RLock()
		table, expired := c.table, c.expiredLocked()
		c.mu.RUnlock()
		if !expired {
			return table, nil
		}

		fresh, err := c.source(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load records: %w", err)
		}

		c.mu.Lock()
		c.table = fresh
		c.built = time.Now()
		c.mu.Unlock()

		return fresh, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*Table), nil
}

// Invalidate forces the next Get to rebuild.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.built = time.Time{}
	c.mu.Unlock()
}

// Built returns when the current table was loaded.
func (c *Cache) Built() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.built
}

func (c *Cache) current() *Table {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.table
}

func (c *Cache) IsValidCell(id uint32) bool { return c.current().IsValidCell(id) }

func (c *Cache) CellName(id uint32) (string, bool) { return c.current().CellName(id) }

func (c *Cache) Exterior(cell uint32) (Exterior, bool) { return c.current().Exterior(cell) }

func (c *Cache) Adjacents(cell uint32) (Adjacency, bool) { return c.current().Adjacents(cell) }

func (c *Cache) NPC(base uint32) (NPC, bool) { return c.current().NPC(base) }

func (c *Cache) NPCNotIn(exclude []uint32, pred func(NPC) bool) (NPC, bool) {
	return c.current().NPCNotIn(exclude, pred)
}

func (c *Cache) Race(id uint32) (Race, bool) { return c.current().Race(id) }

func (c *Cache) Weapon(base uint32) (Weapon, bool) { return c.current().Weapon(base) }

func (c *Cache) IdleName(id uint32) string { return c.current().IdleName(id) }
