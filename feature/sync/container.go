package sync

import (
	"context"
	"slices"

	"go.uber.org/zap"

	"github.com/beInDev/vaultmp/core/dispatch"
	"github.com/beInDev/vaultmp/core/network"
	"github.com/beInDev/vaultmp/core/protocol"
	"github.com/beInDev/vaultmp/core/reconcile"
	"github.com/beInDev/vaultmp/core/script"
	"github.com/beInDev/vaultmp/core/utils"
	"github.com/beInDev/vaultmp/core/world"
)

// SetContainer applies a client inventory diff.
//
// Dropped items become item entities with server assigned ids and picked up
// item entities are destroyed. Their bases are filtered out of the applied
// effects so a materialized item is not reported twice. Observers receive the
// diff with the assigned ids; the origin receives the new item entities.
func (s *Service) SetContainer(_ context.Context, req dispatch.Request, p protocol.SetContainer) (network.Responses, error) {
	c, err := s.factory.GetContainer(p.ID)
	if err != nil {
		return nil, err
	}
	if p.Diff.IsEmpty() {
		return nil, nil
	}

	effects := c.ApplyDiff(p.Diff.Diff())

	var events []script.Event
	dropped := make([]reconcile.ItemState, 0, len(p.Diff.Dropped))
	var created []*world.Item

	for _, d := range p.Diff.Dropped {
		item := s.materialize(d)
		d.NetworkID = uint64(item.NetworkID())
		dropped = append(dropped, d)
		created = append(created, item)

		effects = effects.WithoutBase(d.Base)
		events = append(events, script.Event{Kind: script.KindDropItem, Entity: p.ID, Base: d.Base, Count: d.Count, Condition: d.Condition})
	}

	pickedUp := make([]uint64, 0, len(p.Diff.PickedUp))
	for _, raw := range p.Diff.PickedUp {
		id := world.NetworkID(raw)
		item, err := s.factory.GetItem(id)
		if err != nil {
			s.logger.Warn("Picked up item not found",
				zap.Uint64("item", raw),
				zap.Bool("deleted", s.factory.IsDeleted(id)),
				zap.Error(err))
			continue
		}

		base, count, condition := item.Base(), item.Count(), item.Condition()
		effects = effects.WithoutBase(base)
		if err := s.factory.Destroy(id); err != nil {
			s.logger.Warn("Picked up item vanished", zap.Uint64("item", raw), zap.Error(err))
			continue
		}
		pickedUp = append(pickedUp, raw)
		events = append(events, script.Event{Kind: script.KindPickupItem, Entity: p.ID, Base: base, Count: count, Condition: condition})
	}

	for _, e := range effects {
		switch {
		case e.Equipped > 0:
			events = append(events, script.Event{Kind: script.KindEquipItem, Entity: p.ID, Base: e.Base, Condition: e.Condition})
		case e.Equipped < 0:
			events = append(events, script.Event{Kind: script.KindUnequipItem, Entity: p.ID, Base: e.Base, Condition: e.Condition})
		default:
			events = append(events, script.Event{Kind: script.KindContainerItemChange, Entity: p.ID, Base: e.Base, Count: e.Count, Condition: e.Condition})
		}
	}

	diff := reconcile.NetDiff{
		Entries:  slices.Clone(p.Diff.Entries),
		Dropped:  dropped,
		PickedUp: pickedUp,
	}
	resps := network.Responses{network.Ordered(protocol.UpdateContainer{ID: p.ID, Diff: diff}, s.clients.Observers(req.Client))}
	for _, item := range created {
		resps = append(resps, network.Ordered(protocol.NewObject(item), network.To(req.Client)))
	}

	s.emit(events)
	return resps, nil
}

// materialize creates the standalone entity of a dropped item.
func (s *Service) materialize(d reconcile.ItemState) *world.Item {
	item := s.factory.CreateItem(0, d.Base)
	item.SetCount(d.Count)
	item.SetCondition(d.Condition)

	pos := world.Vector3{X: d.Pos[0], Y: d.Pos[1], Z: d.Pos[2]}
	item.SetNetworkPos(pos)
	item.SetGamePos(pos)

	if d.Cell != 0 {
		if _, err := item.SetNetworkCell(d.Cell); err != nil {
			s.logger.Warn("Dropped item in unknown cell", zap.String("item", utils.FormatFormID(d.Base)), zap.Error(err))
		} else {
			item.SetGameCell(d.Cell)
		}
	}
	return item
}
