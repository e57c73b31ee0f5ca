package protocol

import (
	"errors"
	"fmt"
	"math"

	"github.com/beInDev/vaultmp/core/reconcile"
	"github.com/beInDev/vaultmp/core/world"
)

// Inbound message types.
const (
	TypeAuthenticate = "authenticate"
	TypeLoadGame     = "load_game"
	TypeNewPlayer    = "new_player"
	TypeDisconnect   = "disconnect"
	TypeSetPos       = "set_pos"
	TypeSetAngle     = "set_angle"
	TypeSetCell      = "set_cell"
	TypeSetContainer = "set_container"
	TypeSetValue     = "set_value"
	TypeSetState     = "set_state"
	TypeSetDead      = "set_dead"
	TypeSetControl   = "set_control"
	TypeChat         = "chat"
)

// MaxChatLength bounds chat messages in bytes.
const MaxChatLength = 512

var errMissingID = errors.New("missing entity id")

func checkID(id world.NetworkID) error {
	if id == 0 {
		return errMissingID
	}
	return nil
}

func checkFinite(vs ...float64) error {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite value %v", v)
		}
	}
	return nil
}

// Authenticate asks to join with a name and credential.
type Authenticate struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (a *Authenticate) Validate() error {
	if a.Name == "" || len(a.Name) > 64 {
		return fmt.Errorf("name length %d out of range", len(a.Name))
	}
	return nil
}

// LoadGame requests the world snapshot.
type LoadGame struct{}

func (*LoadGame) Validate() error { return nil }

// NewPlayer requests a player entity with the client's key bindings.
type NewPlayer struct {
	Controls map[uint8]world.Control `json:"controls"`
}

func (*NewPlayer) Validate() error { return nil }

// Disconnect announces the client is leaving.
type Disconnect struct {
	Reason Reason `json:"reason"`
}

func (d *Disconnect) Validate() error {
	if !d.Reason.Valid() {
		return fmt.Errorf("unknown reason %d", d.Reason)
	}
	return nil
}

// SetPos reports an entity position.
type SetPos struct {
	ID  world.NetworkID `json:"id"`
	Pos world.Vector3   `json:"pos"`
}

func (s *SetPos) Validate() error {
	if err := checkID(s.ID); err != nil {
		return err
	}
	return checkFinite(s.Pos.X, s.Pos.Y, s.Pos.Z)
}

// SetAngle reports one rotation axis.
type SetAngle struct {
	ID    world.NetworkID `json:"id"`
	Axis  world.Axis      `json:"axis"`
	Value float64         `json:"value"`
}

func (s *SetAngle) Validate() error {
	if err := checkID(s.ID); err != nil {
		return err
	}
	if !s.Axis.Valid() {
		return fmt.Errorf("unknown axis %d", s.Axis)
	}
	return checkFinite(s.Value)
}

// SetCell reports a cell change.
type SetCell struct {
	ID   world.NetworkID `json:"id"`
	Cell uint32          `json:"cell"`
}

func (s *SetCell) Validate() error {
	return checkID(s.ID)
}

// SetContainer reports an inventory change as a wire diff.
type SetContainer struct {
	ID   world.NetworkID   `json:"id"`
	Diff reconcile.NetDiff `json:"diff"`
}

func (s *SetContainer) Validate() error {
	if err := checkID(s.ID); err != nil {
		return err
	}
	if err := s.Diff.Diff().Validate(); err != nil {
		return err
	}
	for _, d := range s.Diff.Dropped {
		if d.Count <= 0 {
			return fmt.Errorf("dropped item %08X with count %d", d.Base, d.Count)
		}
		if err := checkFinite(d.Condition, d.Pos[0], d.Pos[1], d.Pos[2]); err != nil {
			return err
		}
	}
	for _, id := range s.Diff.PickedUp {
		if id == 0 {
			return errors.New("picked up item without id")
		}
	}
	return nil
}

// SetValue reports an actor value.
type SetValue struct {
	ID    world.NetworkID `json:"id"`
	Base  bool            `json:"base"`
	Index uint8           `json:"index"`
	Value float64         `json:"value"`
}

func (s *SetValue) Validate() error {
	if err := checkID(s.ID); err != nil {
		return err
	}
	return checkFinite(s.Value)
}

// SetState reports actor animation state.
type SetState struct {
	ID       world.NetworkID `json:"id"`
	Idle     uint32          `json:"idle"`
	Moving   uint8           `json:"moving"`
	MovingXY uint8           `json:"moving_xy"`
	Weapon   uint8           `json:"weapon"`
	Alerted  bool            `json:"alerted"`
	Sneaking bool            `json:"sneaking"`
}

func (s *SetState) Validate() error {
	return checkID(s.ID)
}

// SetDead reports a death or revival.
type SetDead struct {
	ID    world.NetworkID `json:"id"`
	Dead  bool            `json:"dead"`
	Limbs uint16          `json:"limbs"`
	Cause int8            `json:"cause"`
}

func (s *SetDead) Validate() error {
	return checkID(s.ID)
}

// SetControl reports a key binding change.
type SetControl struct {
	ID   world.NetworkID `json:"id"`
	Code uint8           `json:"code"`
	Key  uint8           `json:"key"`
}

func (s *SetControl) Validate() error {
	return checkID(s.ID)
}

// Chat is a chat line typed by the player.
type Chat struct {
	Message string `json:"message"`
}

func (c *Chat) Validate() error {
	if len(c.Message) > MaxChatLength {
		return fmt.Errorf("chat message of %d bytes exceeds %d", len(c.Message), MaxChatLength)
	}
	return nil
}
