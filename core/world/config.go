package world

import (
	"fmt"
	"time"

	"github.com/beInDev/vaultmp/core/utils"
)

// Config holds the game settings. Form ids are hex strings.
type Config struct {
	// RespawnMS is the default delay between a player's death and its respawn.
	RespawnMS int `mapstructure:"respawn_ms" default:"8000"`
	// SpawnCell is the cell new players load into.
	SpawnCell string `mapstructure:"spawn_cell" default:""`
	// Console enables the in-game console for new players.
	Console bool `mapstructure:"console" default:"false"`
	// Year, Month (0 based), Day and Hour set the initial game clock.
	Year  int     `mapstructure:"year" default:"2277"`
	Month int     `mapstructure:"month" default:"6"`
	Day   int     `mapstructure:"day" default:"17"`
	Hour  float64 `mapstructure:"hour" default:"8"`
	// Weather is the weather form id sent at game load.
	Weather string `mapstructure:"weather" default:""`
	// RecordsFile is a YAML seed used when the record database is unreachable.
	RecordsFile string `mapstructure:"records_file" default:""`
	// RecordsTTLSeconds reloads the record table periodically; 0 keeps it until an admin reload.
	RecordsTTLSeconds int `mapstructure:"records_ttl_seconds" default:"0"`
}

// Respawn returns RespawnMS as a duration.
func (c Config) Respawn() time.Duration {
	return time.Duration(c.RespawnMS) * time.Millisecond
}

// Clock returns the configured game clock.
func (c Config) Clock() Clock {
	return Clock{Year: c.Year, Month: c.Month, Day: c.Day, Hour: c.Hour}
}

// SpawnCellID parses SpawnCell. An empty value yields 0.
func (c Config) SpawnCellID() (uint32, error) {
	id, err := utils.ParseFormID(c.SpawnCell)
	if err != nil {
		return 0, fmt.Errorf("game.spawn_cell: %w", err)
	}
	return id, nil
}

// WeatherID parses Weather. An empty value yields 0.
func (c Config) WeatherID() (uint32, error) {
	id, err := utils.ParseFormID(c.Weather)
	if err != nil {
		return 0, fmt.Errorf("game.weather: %w", err)
	}
	return id, nil
}

// Validate checks the clock and form ids.
func (c Config) Validate() error {
	if c.RespawnMS < 0 {
		return fmt.Errorf("game.respawn_ms must not be negative")
	}
	if !c.Clock().Valid() {
		return fmt.Errorf("game clock %+v is not a valid date", c.Clock())
	}
	if _, err := c.SpawnCellID(); err != nil {
		return err
	}
	_, err := c.WeatherID()
	return err
}
