package world

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/beInDev/vaultmp/core/records"
	"github.com/beInDev/vaultmp/core/registry"
	"github.com/beInDev/vaultmp/core/value"
)

// Control is one key binding of a player.
type Control struct {
	Key     uint8 `json:"key"`
	Enabled bool  `json:"enabled"`
}

// Player is the actor controlled by a connected client.
type Player struct {
	*Actor

	bases   *registry.BaseIDTracker
	tracker *registry.WindowTracker[NetworkID]

	controls    *registry.Guarded[map[uint8]Control]
	windows     *registry.Guarded[[]NetworkID]
	respawn     value.Value[time.Duration]
	spawnCell   value.Value[uint32]
	console     value.Value[bool]
	cellContext value.Value[records.Adjacency]
}

func (p *Player) player() *Player { return p }

// SetBase re-bases the player and replaces its base id in the registry in place.
func (p *Player) SetBase(base uint32) (bool, error) {
	old, changed := p.base.Swap(base)
	if !changed {
		return false, nil
	}
	if err := p.bases.Replace(old, base); err != nil {
		return true, fmt.Errorf("replace base of player %d: %w", p.id, err)
	}
	return true, nil
}

// ClaimBase re-bases the player onto the base chosen by pick. The choice
// and the registry update happen under the tracker lock.
func (p *Player) ClaimBase(pick func(exclude []uint32) (uint32, bool)) (uint32, bool, error) {
	base, ok, err := p.bases.Claim(p.base.Get(), pick)
	if err != nil {
		return 0, false, fmt.Errorf("claim base of player %d: %w", p.id, err)
	}
	if ok {
		p.base.Set(base)
	}
	return base, ok, nil
}

// Control returns the binding for code.
func (p *Player) Control(code uint8) (Control, bool) {
	var (
		c  Control
		ok bool
	)
	p.controls.Read(func(m map[uint8]Control) {
		c, ok = m[code]
	})
	return c, ok
}

// Controls returns a copy of every binding.
func (p *Player) Controls() map[uint8]Control {
	var out map[uint8]Control
	p.controls.Read(func(m map[uint8]Control) {
		out = maps.Clone(m)
	})
	return out
}

// SetControl binds code to key.
func (p *Player) SetControl(code, key uint8) bool {
	return p.updateControl(code, func(c *Control) { c.Key = key })
}

// SetControlEnabled toggles the binding for code.
func (p *Player) SetControlEnabled(code uint8, enabled bool) bool {
	return p.updateControl(code, func(c *Control) { c.Enabled = enabled })
}

func (p *Player) updateControl(code uint8, fn func(*Control)) bool {
	changed := false
	p.controls.Operate(func(m *map[uint8]Control) {
		old, ok := (*m)[code]
		next := old
		fn(&next)
		if ok && next == old {
			return
		}
		(*m)[code] = next
		changed = true
	})
	return changed
}

// Respawn returns the delay between death and respawn.
func (p *Player) Respawn() time.Duration { return p.respawn.Get() }

func (p *Player) SetRespawn(d time.Duration) bool { return p.respawn.Set(d) }

// SpawnCell returns the cell the player respawns in.
func (p *Player) SpawnCell() uint32 { return p.spawnCell.Get() }

// SetSpawnCell validates and stores the spawn cell.
func (p *Player) SetSpawnCell(cell uint32) (bool, error) {
	if !p.lookup.IsValidCell(cell) {
		return false, fmt.Errorf("%w: %08X", ErrInvalidCell, cell)
	}
	return p.spawnCell.Set(cell), nil
}

func (p *Player) ConsoleEnabled() bool { return p.console.Get() }

func (p *Player) SetConsoleEnabled(enabled bool) bool { return p.console.Set(enabled) }

// CellContext returns the neighbourhood of the current network cell.
func (p *Player) CellContext() records.Adjacency { return p.cellContext.Get() }

func (p *Player) updateCellContext(cell uint32) {
	adj, ok := p.lookup.Adjacents(cell)
	if !ok {
		adj = records.Adjacency{cell}
	}
	p.cellContext.Set(adj)
}

// AttachWindow attaches a UI window. Attaching twice keeps one membership.
func (p *Player) AttachWindow(window NetworkID) bool {
	added := false
	p.windows.Operate(func(ws *[]NetworkID) {
		if slices.Contains(*ws, window) {
			return
		}
		*ws = append(*ws, window)
		p.tracker.Attach(window, p.id)
		added = true
	})
	return added
}

// DetachWindow detaches a UI window.
func (p *Player) DetachWindow(window NetworkID) bool {
	removed := false
	p.windows.Operate(func(ws *[]NetworkID) {
		i := slices.Index(*ws, window)
		if i < 0 {
			return
		}
		*ws = slices.Delete(*ws, i, i+1)
		p.tracker.Detach(window, p.id)
		removed = true
	})
	return removed
}

// Windows returns the attached windows in attach order.
func (p *Player) Windows() []NetworkID {
	var out []NetworkID
	p.windows.Read(func(ws []NetworkID) {
		out = slices.Clone(ws)
	})
	return out
}

// release drops the player from both registries. The Factory calls it once.
func (p *Player) release() error {
	var errs []error

	if err := p.bases.Remove(p.Base()); err != nil {
		errs = append(errs, err)
	}

	p.windows.Operate(func(ws *[]NetworkID) {
		if err := p.tracker.DetachAll(p.id, *ws); err != nil {
			errs = append(errs, err)
		}
		*ws = nil
	})

	return errors.Join(errs...)
}
