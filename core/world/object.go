package world

import (
	"fmt"

	"github.com/beInDev/vaultmp/core/records"
	"github.com/beInDev/vaultmp/core/value"
)

// Kind is the concrete type of an entity.
type Kind uint8

const (
	KindObject Kind = iota
	KindItem
	KindContainer
	KindActor
	KindPlayer
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindItem:
		return "item"
	case KindContainer:
		return "container"
	case KindActor:
		return "actor"
	case KindPlayer:
		return "player"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Vector3 is a position in game units.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Axis selects one rotation axis.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Valid reports whether a is a known axis.
func (a Axis) Valid() bool {
	return a <= AxisZ
}

// Entity is any live world object.
type Entity interface {
	NetworkID() NetworkID
	Kind() Kind
	object() *Object
}

// Object is the base of every entity.
type Object struct {
	id     NetworkID
	kind   Kind
	lookup records.Lookup

	reference   value.Value[uint32]
	base        value.Value[uint32]
	name        value.Value[string]
	networkPos  value.Value[Vector3]
	gamePos     value.Value[Vector3]
	angle       [3]value.Value[float64]
	networkCell value.Value[uint32]
	gameCell    value.Value[uint32]
	enabled     value.Value[bool]

	// onCell runs after a committed network cell change.
	onCell func(cell uint32)
}

func newObject(id NetworkID, kind Kind, lookup records.Lookup, ref, base uint32) *Object {
	o := &Object{id: id, kind: kind, lookup: lookup}
	o.reference.Set(ref)
	o.base.Set(base)
	o.enabled.Set(true)
	return o
}

func (o *Object) object() *Object { return o }

// NetworkID returns the immutable network id.
func (o *Object) NetworkID() NetworkID { return o.id }

// Kind returns the concrete entity type.
func (o *Object) Kind() Kind { return o.kind }

// Reference returns the in-game reference id.
func (o *Object) Reference() uint32 { return o.reference.Get() }

// SetReference reassigns the in-game reference id.
func (o *Object) SetReference(ref uint32) bool { return o.reference.Set(ref) }

// Base returns the template id.
func (o *Object) Base() uint32 { return o.base.Get() }

// SetBase changes the template id. Players use Player.SetBase to keep the registry in sync.
func (o *Object) SetBase(base uint32) bool { return o.base.Set(base) }

func (o *Object) Name() string { return o.name.Get() }

func (o *Object) SetName(name string) bool { return o.name.Set(name) }

// NetworkPos returns the authoritative position.
func (o *Object) NetworkPos() Vector3 { return o.networkPos.Get() }

// SetNetworkPos stores the authoritative position.
func (o *Object) SetNetworkPos(pos Vector3) bool { return o.networkPos.Set(pos) }

// GamePos returns the last position reported by the owning client.
func (o *Object) GamePos() Vector3 { return o.gamePos.Get() }

func (o *Object) SetGamePos(pos Vector3) bool { return o.gamePos.Set(pos) }

// Angle returns the rotation around axis.
func (o *Object) Angle(axis Axis) float64 {
	if !axis.Valid() {
		return 0
	}
	return o.angle[axis].Get()
}

// SetAngle stores the rotation around axis. Unknown axes never change.
func (o *Object) SetAngle(axis Axis, v float64) bool {
	if !axis.Valid() {
		return false
	}
	return o.angle[axis].Set(v)
}

// NetworkCell returns the authoritative cell.
func (o *Object) NetworkCell() uint32 { return o.networkCell.Get() }

// SetNetworkCell moves the entity to cell. An unknown cell returns ErrInvalidCell and mutates nothing.
func (o *Object) SetNetworkCell(cell uint32) (bool, error) {
	if !o.lookup.IsValidCell(cell) {
		return false, fmt.Errorf("%w: %08X", ErrInvalidCell, cell)
	}
	if !o.networkCell.Set(cell) {
		return false, nil
	}
	if o.onCell != nil {
		o.onCell(cell)
	}
	return true, nil
}

// GameCell returns the last cell reported by the owning client.
func (o *Object) GameCell() uint32 { return o.gameCell.Get() }

func (o *Object) SetGameCell(cell uint32) bool { return o.gameCell.Set(cell) }

func (o *Object) Enabled() bool { return o.enabled.Get() }

func (o *Object) SetEnabled(enabled bool) bool { return o.enabled.Set(enabled) }
