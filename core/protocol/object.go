package protocol

import (
	"github.com/beInDev/vaultmp/core/reconcile"
	"github.com/beInDev/vaultmp/core/world"
)

// ObjectNew is the full state of one entity. Sections are present per capability.
type ObjectNew struct {
	ID        world.NetworkID `json:"id"`
	Kind      string          `json:"kind"`
	Reference uint32          `json:"reference"`
	Base      uint32          `json:"base"`
	Name      string          `json:"name,omitempty"`
	Pos       world.Vector3   `json:"pos"`
	Angle     [3]float64      `json:"angle"`
	Cell      uint32          `json:"cell"`
	Enabled   bool            `json:"enabled"`

	Item     *ItemSection      `json:"item,omitempty"`
	Contents []reconcile.Stack `json:"contents,omitempty"`
	Actor    *ActorSection     `json:"actor,omitempty"`
	Player   *PlayerSection    `json:"player,omitempty"`
}

func (ObjectNew) MessageType() string { return TypeObjectNew }

type ItemSection struct {
	Count     int             `json:"count"`
	Condition float64         `json:"condition"`
	Equipped  bool            `json:"equipped"`
	Holder    world.NetworkID `json:"holder,omitempty"`
}

type ActorSection struct {
	Values   map[uint8]world.ValuePair `json:"values"`
	Race     uint32                    `json:"race"`
	Age      int                       `json:"age"`
	Female   bool                      `json:"female"`
	Dead     bool                      `json:"dead"`
	Alerted  bool                      `json:"alerted"`
	Sneaking bool                      `json:"sneaking"`
	Idle     uint32                    `json:"idle"`
	Moving   uint8                     `json:"moving"`
	MovingXY uint8                     `json:"moving_xy"`
	Weapon   uint8                     `json:"weapon"`
}

type PlayerSection struct {
	Controls map[uint8]world.Control `json:"controls"`
	Console  bool                    `json:"console"`
}

// NewObject snapshots e.
func NewObject(e world.Entity) ObjectNew {
	o := world.ObjectOf(e)
	msg := ObjectNew{
		ID:        o.NetworkID(),
		Kind:      o.Kind().String(),
		Reference: o.Reference(),
		Base:      o.Base(),
		Name:      o.Name(),
		Pos:       o.NetworkPos(),
		Angle:     [3]float64{o.Angle(world.AxisX), o.Angle(world.AxisY), o.Angle(world.AxisZ)},
		Cell:      o.NetworkCell(),
		Enabled:   o.Enabled(),
	}

	if item, ok := world.AsItem(e); ok {
		msg.Item = &ItemSection{
			Count:     item.Count(),
			Condition: item.Condition(),
			Equipped:  item.Equipped(),
			Holder:    item.Holder(),
		}
	}
	if c, ok := world.AsContainer(e); ok {
		msg.Contents = c.Contents()
	}
	if a, ok := world.AsActor(e); ok {
		msg.Actor = &ActorSection{
			Values:   a.ActorValues(),
			Race:     a.Race(),
			Age:      a.Age(),
			Female:   a.Female(),
			Dead:     a.Dead(),
			Alerted:  a.Alerted(),
			Sneaking: a.Sneaking(),
			Idle:     a.IdleAnimation(),
			Moving:   a.MovingAnimation(),
			MovingXY: a.MovingXY(),
			Weapon:   a.WeaponAnimation(),
		}
	}
	if p, ok := world.AsPlayer(e); ok {
		msg.Player = &PlayerSection{
			Controls: p.Controls(),
			Console:  p.ConsoleEnabled(),
		}
	}

	return msg
}
