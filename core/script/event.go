package script

import (
	"fmt"
	"time"

	"github.com/beInDev/vaultmp/core/world"
)

// Kind names an event.
type Kind uint8

const (
	KindCellChange Kind = iota + 1
	KindValueChange
	KindPunch
	KindFireWeapon
	KindAlert
	KindSneak
	KindDeath
	KindSpawn
	KindDropItem
	KindPickupItem
	KindEquipItem
	KindUnequipItem
	KindContainerItemChange
	KindPlayerDisconnect
	KindControlChange
)

var kindNames = map[Kind]string{
	KindCellChange:          "cell_change",
	KindValueChange:         "value_change",
	KindPunch:               "punch",
	KindFireWeapon:          "fire_weapon",
	KindAlert:               "alert",
	KindSneak:               "sneak",
	KindDeath:               "death",
	KindSpawn:               "spawn",
	KindDropItem:            "drop_item",
	KindPickupItem:          "pickup_item",
	KindEquipItem:           "equip_item",
	KindUnequipItem:         "unequip_item",
	KindContainerItemChange: "container_item_change",
	KindPlayerDisconnect:    "player_disconnect",
	KindControlChange:       "control_change",
}

// luaHandlers are the global function names a script defines to receive events.
var luaHandlers = map[Kind]string{
	KindCellChange:          "OnCellChange",
	KindValueChange:         "OnActorValueChange",
	KindPunch:               "OnActorPunch",
	KindFireWeapon:          "OnActorFireWeapon",
	KindAlert:               "OnActorAlert",
	KindSneak:               "OnActorSneak",
	KindDeath:               "OnActorDeath",
	KindSpawn:               "OnSpawn",
	KindDropItem:            "OnActorDropItem",
	KindPickupItem:          "OnActorPickupItem",
	KindEquipItem:           "OnActorEquipItem",
	KindUnequipItem:         "OnActorUnequipItem",
	KindContainerItemChange: "OnContainerItemChange",
	KindPlayerDisconnect:    "OnPlayerDisconnect",
	KindControlChange:       "OnPlayerControlChange",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Event is one committed state change.
// Fields not relevant to a kind stay zero.
type Event struct {
	Kind      Kind            `json:"kind"`
	Entity    world.NetworkID `json:"entity"`
	Base      uint32          `json:"base,omitempty"`
	Count     int             `json:"count,omitempty"`
	Condition float64         `json:"condition,omitempty"`
	Index     uint8           `json:"index,omitempty"`
	Value     float64         `json:"value,omitempty"`
	// Flag is the power flag of a punch, the new alert or sneak state, or the base flag of a value change.
	Flag   bool      `json:"flag,omitempty"`
	Limbs  uint16    `json:"limbs,omitempty"`
	Cause  int8      `json:"cause,omitempty"`
	Reason uint8     `json:"reason,omitempty"`
	Cell   uint32    `json:"cell,omitempty"`
	Time   time.Time `json:"time"`
}

// Notifier receives events from the handlers.
type Notifier interface {
	Emit(e Event)
}

// Sink consumes events from a Bus.
type Sink interface {
	Handle(e Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(e Event)

func (f SinkFunc) Handle(e Event) { f(e) }
