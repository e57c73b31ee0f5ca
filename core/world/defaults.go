package world

import (
	"fmt"
	"time"

	"github.com/beInDev/vaultmp/core/records"
	"github.com/beInDev/vaultmp/core/value"
)

// Defaults are the server-wide settings copied into every new player.
type Defaults struct {
	lookup records.Lookup

	respawn   value.Value[time.Duration]
	spawnCell value.Value[uint32]
	console   value.Value[bool]
}

// NewDefaults creates Defaults. The spawn cell starts unset.
func NewDefaults(lookup records.Lookup, respawn time.Duration, console bool) *Defaults {
	d := &Defaults{lookup: lookup}
	d.respawn.Set(respawn)
	d.console.Set(console)
	return d
}

func (d *Defaults) Respawn() time.Duration { return d.respawn.Get() }

func (d *Defaults) SetRespawn(r time.Duration) bool { return d.respawn.Set(r) }

func (d *Defaults) SpawnCell() uint32 { return d.spawnCell.Get() }

// SetSpawnCell validates and stores the default spawn cell.
func (d *Defaults) SetSpawnCell(cell uint32) (bool, error) {
	if !d.lookup.IsValidCell(cell) {
		return false, fmt.Errorf("%w: %08X", ErrInvalidCell, cell)
	}
	return d.spawnCell.Set(cell), nil
}

func (d *Defaults) Console() bool { return d.console.Get() }

func (d *Defaults) SetConsole(enabled bool) bool { return d.console.Set(enabled) }

// Clock is the in-game date and time.
type Clock struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Day   int     `json:"day"`
	Hour  float64 `json:"hour"`
}

// Valid reports whether the clock holds a plausible date.
func (c Clock) Valid() bool {
	return c.Month >= 0 && c.Month < 12 && c.Day >= 1 && c.Day <= 31 && c.Hour >= 0 && c.Hour < 24
}

// Globals are the world-wide values sent to joining clients.
type Globals struct {
	clock   value.Value[Clock]
	weather value.Value[uint32]
}

// NewGlobals creates Globals.
func NewGlobals(clock Clock, weather uint32) *Globals {
	g := &Globals{}
	g.clock.Set(clock)
	g.weather.Set(weather)
	return g
}

func (g *Globals) Clock() Clock { return g.clock.Get() }

func (g *Globals) SetClock(c Clock) bool { return g.clock.Set(c) }

func (g *Globals) Weather() uint32 { return g.weather.Get() }

func (g *Globals) SetWeather(w uint32) bool { return g.weather.Set(w) }
