package protocol

import (
	"github.com/beInDev/vaultmp/core/reconcile"
	"github.com/beInDev/vaultmp/core/world"
)

// Outbound message types.
const (
	TypeGameMod          = "game_mod"
	TypeGameStart        = "game_start"
	TypeGameEnd          = "game_end"
	TypeUpdateExterior   = "update_exterior"
	TypeUpdateInterior   = "update_interior"
	TypeObjectNew        = "object_new"
	TypeGameGlobal       = "game_global"
	TypeGameWeather      = "game_weather"
	TypeGameLoad         = "game_load"
	TypeUpdatePos        = "update_pos"
	TypeUpdateAngle      = "update_angle"
	TypeUpdateCell       = "update_cell"
	TypeUpdateContainer  = "update_container"
	TypeUpdateValue      = "update_value"
	TypeUpdateState      = "update_state"
	TypeUpdateFireWeapon = "update_fireweapon"
	TypeUpdateIdle       = "update_idle"
	TypeUpdateDead       = "update_dead"
	TypeUpdateRace       = "update_race"
	TypeUpdateSex        = "update_sex"
	TypeGameChat         = "game_chat"
	TypeObjectRemove     = "object_remove"
)

// Reason explains why a session ended.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonQuit
	ReasonKick
	ReasonDenied
	ReasonError
	ReasonLost
)

// Valid reports whether r is a known reason.
func (r Reason) Valid() bool {
	return r <= ReasonLost
}

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonQuit:
		return "quit"
	case ReasonKick:
		return "kick"
	case ReasonDenied:
		return "denied"
	case ReasonError:
		return "error"
	case ReasonLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Global names.
const (
	GlobalGameYear  = "game_year"
	GlobalGameMonth = "game_month"
	GlobalGameDay   = "game_day"
	GlobalGameHour  = "game_hour"
)

type GameMod struct {
	Name     string `json:"name"`
	Checksum string `json:"checksum"`
}

func (GameMod) MessageType() string { return TypeGameMod }

type GameStart struct {
	Version string `json:"version"`
}

func (GameStart) MessageType() string { return TypeGameStart }

type GameEnd struct {
	Reason Reason `json:"reason"`
}

func (GameEnd) MessageType() string { return TypeGameEnd }

type UpdateExterior struct {
	ID    world.NetworkID `json:"id"`
	World uint32          `json:"world"`
	X     int32           `json:"x"`
	Y     int32           `json:"y"`
	Spawn bool            `json:"spawn"`
}

func (UpdateExterior) MessageType() string { return TypeUpdateExterior }

type UpdateInterior struct {
	ID    world.NetworkID `json:"id"`
	Cell  string          `json:"cell"`
	Spawn bool            `json:"spawn"`
}

func (UpdateInterior) MessageType() string { return TypeUpdateInterior }

type GameGlobal struct {
	Global string  `json:"global"`
	Value  float64 `json:"value"`
}

func (GameGlobal) MessageType() string { return TypeGameGlobal }

type GameWeather struct {
	Weather uint32 `json:"weather"`
}

func (GameWeather) MessageType() string { return TypeGameWeather }

type GameLoad struct{}

func (GameLoad) MessageType() string { return TypeGameLoad }

type UpdatePos struct {
	ID  world.NetworkID `json:"id"`
	Pos world.Vector3   `json:"pos"`
}

func (UpdatePos) MessageType() string { return TypeUpdatePos }

type UpdateAngle struct {
	ID    world.NetworkID `json:"id"`
	Axis  world.Axis      `json:"axis"`
	Value float64         `json:"value"`
}

func (UpdateAngle) MessageType() string { return TypeUpdateAngle }

type UpdateCell struct {
	ID   world.NetworkID `json:"id"`
	Cell uint32          `json:"cell"`
}

func (UpdateCell) MessageType() string { return TypeUpdateCell }

type UpdateContainer struct {
	ID   world.NetworkID   `json:"id"`
	Diff reconcile.NetDiff `json:"diff"`
}

func (UpdateContainer) MessageType() string { return TypeUpdateContainer }

type UpdateValue struct {
	ID    world.NetworkID `json:"id"`
	Base  bool            `json:"base"`
	Index uint8           `json:"index"`
	Value float64         `json:"value"`
}

func (UpdateValue) MessageType() string { return TypeUpdateValue }

// UpdateState carries the full animation state. Firing is set for a plain weapon attack only.
type UpdateState struct {
	ID       world.NetworkID `json:"id"`
	Idle     uint32          `json:"idle"`
	Moving   uint8           `json:"moving"`
	MovingXY uint8           `json:"moving_xy"`
	Weapon   uint8           `json:"weapon"`
	Alerted  bool            `json:"alerted"`
	Sneaking bool            `json:"sneaking"`
	Firing   bool            `json:"firing"`
}

func (UpdateState) MessageType() string { return TypeUpdateState }

// UpdateFireWeapon carries the fired weapon. Rate is 0 for non-automatic weapons.
type UpdateFireWeapon struct {
	ID     world.NetworkID `json:"id"`
	Weapon uint32          `json:"weapon"`
	Rate   float64         `json:"rate"`
}

func (UpdateFireWeapon) MessageType() string { return TypeUpdateFireWeapon }

type UpdateIdle struct {
	ID   world.NetworkID `json:"id"`
	Idle uint32          `json:"idle"`
	Name string          `json:"name"`
}

func (UpdateIdle) MessageType() string { return TypeUpdateIdle }

type UpdateDead struct {
	ID    world.NetworkID `json:"id"`
	Dead  bool            `json:"dead"`
	Limbs uint16          `json:"limbs"`
	Cause int8            `json:"cause"`
}

func (UpdateDead) MessageType() string { return TypeUpdateDead }

type UpdateRace struct {
	ID       world.NetworkID `json:"id"`
	Race     uint32          `json:"race"`
	Age      int             `json:"age"`
	DeltaAge int             `json:"delta_age"`
}

func (UpdateRace) MessageType() string { return TypeUpdateRace }

type UpdateSex struct {
	ID     world.NetworkID `json:"id"`
	Female bool            `json:"female"`
}

func (UpdateSex) MessageType() string { return TypeUpdateSex }

type GameChat struct {
	Message string `json:"message"`
}

func (GameChat) MessageType() string { return TypeGameChat }

type ObjectRemove struct {
	ID world.NetworkID `json:"id"`
}

func (ObjectRemove) MessageType() string { return TypeObjectRemove }
