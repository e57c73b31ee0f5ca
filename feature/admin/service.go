package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/beInDev/vaultmp/core/network"
	"github.com/beInDev/vaultmp/core/protocol"
	"github.com/beInDev/vaultmp/core/records"
	"github.com/beInDev/vaultmp/core/script"
	"github.com/beInDev/vaultmp/core/world"
)

// ErrInvalidClock is returned when a globals update holds an impossible date.
var ErrInvalidClock = errors.New("admin: invalid clock")

// ErrNoDatabase is returned by record operations when no record database is configured.
var ErrNoDatabase = errors.New("admin: no record database")

// Connections counts open game connections.
type Connections interface {
	Len() int
}

// RecordCache is the reloadable record table.
type RecordCache interface {
	Invalidate()
	Get(ctx context.Context) (*records.Table, error)
	Built() time.Time
}

// Status is the server overview.
type Status struct {
	Players     int `json:"players"`
	Connections int `json:"connections"`
	Entities    int `json:"entities"`
}

// PlayerInfo is one connected client.
type PlayerInfo struct {
	network.Client
	Base uint32 `json:"base"`
	Cell uint32 `json:"cell"`
	Dead bool   `json:"dead"`
}

// DefaultsView is the JSON form of world.Defaults.
type DefaultsView struct {
	RespawnMS int64  `json:"respawn_ms"`
	SpawnCell uint32 `json:"spawn_cell"`
	Console   bool   `json:"console"`
}

// DefaultsUpdate changes the fields that are set.
type DefaultsUpdate struct {
	RespawnMS *int64  `json:"respawn_ms"`
	SpawnCell *uint32 `json:"spawn_cell"`
	Console   *bool   `json:"console"`
}

// GlobalsView is the JSON form of world.Globals.
type GlobalsView struct {
	Clock   world.Clock `json:"clock"`
	Weather uint32      `json:"weather"`
}

// GlobalsUpdate changes the fields that are set.
type GlobalsUpdate struct {
	Clock   *world.Clock `json:"clock"`
	Weather *uint32      `json:"weather"`
}

// RecordStats summarizes a loaded record table.
type RecordStats struct {
	Built     time.Time `json:"built"`
	Cells     int       `json:"cells"`
	Exteriors int       `json:"exteriors"`
	NPCs      int       `json:"npcs"`
	Races     int       `json:"races"`
	Weapons   int       `json:"weapons"`
	Idles     int       `json:"idles"`
}

// Service reads and adjusts live server state.
type Service struct {
	logger   *zap.Logger
	factory  *world.Factory
	clients  *network.Clients
	conns    Connections
	defaults *world.Defaults
	globals  *world.Globals
	events   *script.Ring
	records  RecordCache
	db       *gorm.DB
}

// NewService creates an admin service. conns, events, records and db may be nil.
func NewService(logger *zap.Logger, factory *world.Factory, clients *network.Clients, conns Connections, globals *world.Globals, events *script.Ring, records RecordCache, db *gorm.DB) *Service {
	return &Service{
		logger:   logger,
		factory:  factory,
		clients:  clients,
		conns:    conns,
		defaults: factory.Defaults(),
		globals:  globals,
		events:   events,
		records:  records,
		db:       db,
	}
}

// Status returns the current counts.
func (s *Service) Status() Status {
	st := Status{
		Players:  s.clients.Len(),
		Entities: s.factory.Count(),
	}
	if s.conns != nil {
		st.Connections = s.conns.Len()
	}
	return st
}

// Players lists the connected clients in join order.
func (s *Service) Players() []PlayerInfo {
	clients := s.clients.List()
	out := make([]PlayerInfo, 0, len(clients))
	for _, cl := range clients {
		info := PlayerInfo{Client: cl}
		if p, err := s.factory.GetPlayer(cl.Player); err == nil {
			info.Base = p.Base()
			info.Cell = p.NetworkCell()
			info.Dead = p.Dead()
		}
		out = append(out, info)
	}
	return out
}

// Entity snapshots one entity.
func (s *Service) Entity(id world.NetworkID) (protocol.ObjectNew, error) {
	e, err := s.factory.Get(id)
	if err != nil {
		return protocol.ObjectNew{}, err
	}
	return protocol.NewObject(e), nil
}

// Defaults returns the player defaults.
func (s *Service) Defaults() DefaultsView {
	return DefaultsView{
		RespawnMS: s.defaults.Respawn().Milliseconds(),
		SpawnCell: s.defaults.SpawnCell(),
		Console:   s.defaults.Console(),
	}
}

// UpdateDefaults applies u. An invalid spawn cell rejects the whole update.
func (s *Service) UpdateDefaults(u DefaultsUpdate) (DefaultsView, error) {
	if u.RespawnMS != nil && *u.RespawnMS < 0 {
		return s.Defaults(), fmt.Errorf("respawn must not be negative: %d", *u.RespawnMS)
	}
	if u.SpawnCell != nil {
		if _, err := s.defaults.SetSpawnCell(*u.SpawnCell); err != nil {
			return s.Defaults(), err
		}
	}
	if u.RespawnMS != nil {
		s.defaults.SetRespawn(time.Duration(*u.RespawnMS) * time.Millisecond)
	}
	if u.Console != nil {
		s.defaults.SetConsole(*u.Console)
	}

	view := s.Defaults()
	s.logger.Info("Defaults updated",
		zap.Int64("respawn_ms", view.RespawnMS),
		zap.Uint32("spawn_cell", view.SpawnCell),
		zap.Bool("console", view.Console))
	return view, nil
}

// Globals returns the world globals.
func (s *Service) Globals() GlobalsView {
	return GlobalsView{Clock: s.globals.Clock(), Weather: s.globals.Weather()}
}

// UpdateGlobals applies u. The values reach clients at their next game load.
func (s *Service) UpdateGlobals(u GlobalsUpdate) (GlobalsView, error) {
	if u.Clock != nil {
		if !u.Clock.Valid() {
			return s.Globals(), fmt.Errorf("%w: %+v", ErrInvalidClock, *u.Clock)
		}
		s.globals.SetClock(*u.Clock)
	}
	if u.Weather != nil {
		s.globals.SetWeather(*u.Weather)
	}
	return s.Globals(), nil
}

// Events returns the retained events, optionally only those of kind.
func (s *Service) Events(kind string) []script.Event {
	if s.events == nil {
		return nil
	}
	events := s.events.Events()
	if kind == "" {
		return events
	}
	out := events[:0]
	for _, e := range events {
		if e.Kind.String() == kind {
			out = append(out, e)
		}
	}
	return out
}

// ReloadRecords drops the cached table and loads it again.
func (s *Service) ReloadRecords(ctx context.Context) (RecordStats, error) {
	if s.records == nil {
		return RecordStats{}, ErrNoDatabase
	}
	s.records.Invalidate()
	t, err := s.records.Get(ctx)
	if err != nil {
		return RecordStats{}, fmt.Errorf("reload records: %w", err)
	}

	d := t.Data()
	stats := RecordStats{
		Built:     s.records.Built(),
		Cells:     len(d.Cells),
		Exteriors: len(d.Exteriors),
		NPCs:      len(d.NPCs),
		Races:     len(d.Races),
		Weapons:   len(d.Weapons),
		Idles:     len(d.Idles),
	}
	s.logger.Info("Records reloaded", zap.Int("cells", stats.Cells), zap.Int("npcs", stats.NPCs))
	return stats, nil
}

// CheckSchema compares the record database with the models.
func (s *Service) CheckSchema() (*records.SchemaReport, error) {
	if s.db == nil {
		return nil, ErrNoDatabase
	}
	return records.CheckSchema(s.db)
}
