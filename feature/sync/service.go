package sync

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/beInDev/vaultmp/core/dispatch"
	"github.com/beInDev/vaultmp/core/network"
	"github.com/beInDev/vaultmp/core/protocol"
	"github.com/beInDev/vaultmp/core/script"
	"github.com/beInDev/vaultmp/core/world"
)

// Sender delivers responses produced outside a request, such as a respawn.
type Sender interface {
	Send(resps network.Responses)
}

// Service implements the per-entity reconciliation handlers.
type Service struct {
	logger    *zap.Logger
	factory   *world.Factory
	clients   *network.Clients
	notifier  script.Notifier
	scheduler *Scheduler
	sender    Sender
}

// NewService creates a sync service. Destroyed entities lose their pending respawn.
func NewService(logger *zap.Logger, factory *world.Factory, clients *network.Clients, notifier script.Notifier, scheduler *Scheduler, sender Sender) *Service {
	s := &Service{
		logger:    logger,
		factory:   factory,
		clients:   clients,
		notifier:  notifier,
		scheduler: scheduler,
		sender:    sender,
	}
	factory.OnDestroy(func(e world.Entity) {
		scheduler.Cancel(e.NetworkID())
	})
	return s
}

// Register adds the sync handlers to r.
func (s *Service) Register(r *dispatch.Router) {
	r.Handle(protocol.TypeSetPos, dispatch.WithPayload(s.SetPos))
	r.Handle(protocol.TypeSetAngle, dispatch.WithPayload(s.SetAngle))
	r.Handle(protocol.TypeSetCell, dispatch.WithPayload(s.SetCell))
	r.Handle(protocol.TypeSetContainer, dispatch.WithPayload(s.SetContainer))
	r.Handle(protocol.TypeSetValue, dispatch.WithPayload(s.SetValue))
	r.Handle(protocol.TypeSetState, dispatch.WithPayload(s.SetState))
	r.Handle(protocol.TypeSetDead, dispatch.WithPayload(s.SetDead))
	r.Handle(protocol.TypeSetControl, dispatch.WithPayload(s.SetControl))
}

func (s *Service) object(id world.NetworkID) (*world.Object, error) {
	e, err := s.factory.Get(id)
	if err != nil {
		return nil, err
	}
	return world.ObjectOf(e), nil
}

// SetPos stores the position and relays it when it changed.
func (s *Service) SetPos(_ context.Context, req dispatch.Request, p protocol.SetPos) (network.Responses, error) {
	o, err := s.object(p.ID)
	if err != nil {
		return nil, err
	}
	if !o.SetNetworkPos(p.Pos) {
		return nil, nil
	}
	o.SetGamePos(p.Pos)
	return network.Responses{network.Sequenced(protocol.UpdatePos{ID: p.ID, Pos: p.Pos}, s.clients.Observers(req.Client))}, nil
}

// SetAngle stores one rotation axis.
func (s *Service) SetAngle(_ context.Context, req dispatch.Request, p protocol.SetAngle) (network.Responses, error) {
	o, err := s.object(p.ID)
	if err != nil {
		return nil, err
	}
	if !o.SetAngle(p.Axis, p.Value) {
		return nil, nil
	}
	return network.Responses{network.Sequenced(protocol.UpdateAngle{ID: p.ID, Axis: p.Axis, Value: p.Value}, s.clients.Observers(req.Client))}, nil
}

// SetCell validates and stores the cell. An unknown cell changes nothing.
func (s *Service) SetCell(_ context.Context, req dispatch.Request, p protocol.SetCell) (network.Responses, error) {
	o, err := s.object(p.ID)
	if err != nil {
		return nil, err
	}
	changed, err := o.SetNetworkCell(p.Cell)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, nil
	}
	o.SetGameCell(p.Cell)

	resps := network.Responses{network.Sequenced(protocol.UpdateCell{ID: p.ID, Cell: p.Cell}, s.clients.Observers(req.Client))}
	s.notifier.Emit(script.Event{Kind: script.KindCellChange, Entity: p.ID, Cell: p.Cell})
	return resps, nil
}

// SetValue stores an actor value or base value.
func (s *Service) SetValue(_ context.Context, req dispatch.Request, p protocol.SetValue) (network.Responses, error) {
	a, err := s.factory.GetActor(p.ID)
	if err != nil {
		return nil, err
	}
	if !a.SetValue(p.Base, p.Index, p.Value) {
		return nil, nil
	}

	resps := network.Responses{network.Ordered(protocol.UpdateValue{ID: p.ID, Base: p.Base, Index: p.Index, Value: p.Value}, s.clients.Observers(req.Client))}
	s.notifier.Emit(script.Event{Kind: script.KindValueChange, Entity: p.ID, Index: p.Index, Value: p.Value, Flag: p.Base})
	return resps, nil
}

// SetState stores the animation state and derives weapon use from it.
func (s *Service) SetState(_ context.Context, req dispatch.Request, p protocol.SetState) (network.Responses, error) {
	a, err := s.factory.GetActor(p.ID)
	if err != nil {
		return nil, err
	}

	alerted := a.SetAlerted(p.Alerted)
	sneaking := a.SetSneaking(p.Sneaking)
	weapon := a.SetWeaponAnimation(p.Weapon)
	idle := a.SetIdleAnimation(p.Idle)
	moving := a.SetMovingAnimation(p.Moving)
	movingXY := a.SetMovingXY(p.MovingXY)

	if !(alerted || sneaking || weapon || idle || moving || movingXY) {
		return nil, nil
	}

	punching := weapon && a.IsPunching()
	powerPunching := weapon && a.IsPowerPunching()
	firing := weapon && !punching && !powerPunching && a.IsFiring()

	observers := s.clients.Observers(req.Client)
	resps := network.Responses{network.Ordered(protocol.UpdateState{
		ID:       p.ID,
		Idle:     p.Idle,
		Moving:   p.Moving,
		MovingXY: p.MovingXY,
		Weapon:   p.Weapon,
		Alerted:  p.Alerted,
		Sneaking: p.Sneaking,
		Firing:   firing,
	}, observers)}

	var events []script.Event
	switch {
	case powerPunching:
		events = append(events, script.Event{Kind: script.KindPunch, Entity: p.ID, Flag: true})
	case punching:
		events = append(events, script.Event{Kind: script.KindPunch, Entity: p.ID})
	case firing:
		base := a.EquippedWeapon()
		rate := 0.0
		if w, ok := s.factory.Lookup().Weapon(base); ok && w.Automatic {
			rate = w.FireRate
		}
		resps = append(resps, network.Ordered(protocol.UpdateFireWeapon{ID: p.ID, Weapon: base, Rate: rate}, observers))
		events = append(events, script.Event{Kind: script.KindFireWeapon, Entity: p.ID, Base: base})
	}

	if alerted {
		events = append(events, script.Event{Kind: script.KindAlert, Entity: p.ID, Flag: p.Alerted})
	}
	if sneaking {
		events = append(events, script.Event{Kind: script.KindSneak, Entity: p.ID, Flag: p.Sneaking})
	}

	if idle {
		name := ""
		if p.Idle != 0 {
			name = s.factory.Lookup().IdleName(p.Idle)
		}
		resps = append(resps, network.Ordered(protocol.UpdateIdle{ID: p.ID, Idle: p.Idle, Name: name}, observers))
	}

	s.emit(events)
	return resps, nil
}

// SetDead stores the dead flag. A player's death schedules one respawn and a
// revive cancels the pending one.
func (s *Service) SetDead(_ context.Context, req dispatch.Request, p protocol.SetDead) (network.Responses, error) {
	e, err := s.factory.Get(p.ID)
	if err != nil {
		return nil, err
	}
	a, ok := world.AsActor(e)
	if !ok {
		return nil, fmt.Errorf("%w: %d is a %s", world.ErrWrongType, p.ID, e.Kind())
	}
	if !a.SetDead(p.Dead) {
		return nil, nil
	}

	resps := network.Responses{network.Ordered(protocol.UpdateDead{ID: p.ID, Dead: p.Dead, Limbs: p.Limbs, Cause: p.Cause}, s.clients.Observers(req.Client))}

	// Checked on the entity: the narrowed actor no longer answers as a player.
	player, isPlayer := world.AsPlayer(e)

	if !p.Dead {
		if isPlayer {
			s.scheduler.Cancel(p.ID)
		}
		s.notifier.Emit(script.Event{Kind: script.KindSpawn, Entity: p.ID})
		return resps, nil
	}

	s.notifier.Emit(script.Event{Kind: script.KindDeath, Entity: p.ID, Limbs: p.Limbs, Cause: p.Cause})
	if isPlayer {
		id := player.NetworkID()
		s.scheduler.Schedule(id, player.Respawn(), func() { s.Respawn(id) })
	}
	return resps, nil
}

// SetControl stores a key binding. Bindings are private to the player and not relayed.
func (s *Service) SetControl(_ context.Context, _ dispatch.Request, p protocol.SetControl) (network.Responses, error) {
	player, err := s.factory.GetPlayer(p.ID)
	if err != nil {
		return nil, err
	}
	if player.SetControl(p.Code, p.Key) {
		s.notifier.Emit(script.Event{Kind: script.KindControlChange, Entity: p.ID, Index: p.Code, Value: float64(p.Key)})
	}
	return nil, nil
}

// Respawn revives a dead player, restores its health and tells every client.
// A player destroyed meanwhile is ignored.
func (s *Service) Respawn(id world.NetworkID) {
	player, err := s.factory.GetPlayer(id)
	if err != nil {
		s.logger.Debug("Respawn target gone", zap.Uint64("entity", uint64(id)), zap.Error(err))
		return
	}

	everyone := s.clients.NetworkList(nil)
	var resps network.Responses
	if player.SetDead(false) {
		resps = append(resps, network.Ordered(protocol.UpdateDead{ID: id}, everyone))
	}
	health := player.ActorBaseValue(world.AVHealth)
	if player.SetActorValue(world.AVHealth, health) {
		resps = append(resps, network.Ordered(protocol.UpdateValue{ID: id, Index: world.AVHealth, Value: health}, everyone))
	}

	if s.sender != nil && len(resps) > 0 {
		s.sender.Send(resps)
	}
	s.notifier.Emit(script.Event{Kind: script.KindSpawn, Entity: id})
}

func (s *Service) emit(events []script.Event) {
	for _, e := range events {
		s.notifier.Emit(e)
	}
}
