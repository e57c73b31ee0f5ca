package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/beInDev/vaultmp/core/dispatch"
	"github.com/beInDev/vaultmp/core/network"
	"github.com/beInDev/vaultmp/core/protocol"
	"github.com/beInDev/vaultmp/core/reconcile"
	"github.com/beInDev/vaultmp/core/records"
	"github.com/beInDev/vaultmp/core/script"
	"github.com/beInDev/vaultmp/core/utils"
	"github.com/beInDev/vaultmp/core/world"
)

// NewPlayer creates the origin's player and dresses it from a template.
func (s *Service) NewPlayer(_ context.Context, req dispatch.Request, p protocol.NewPlayer) (network.Responses, error) {
	if c, ok := s.clients.Get(req.Client); ok && c.Player != 0 {
		return nil, fmt.Errorf("%w: %s", ErrAlreadySpawned, req.Client)
	}

	player := s.factory.CreatePlayer(0, world.PlayerBase)
	for code, control := range p.Controls {
		player.SetControl(code, control.Key)
		player.SetControlEnabled(code, control.Enabled)
	}
	s.clients.Register(req.Client, player.NetworkID())

	npc, err := s.template(player)
	if err != nil {
		s.abandon(req.Client, player)
		return nil, err
	}

	resps, err := s.dress(req.Client, player, npc)
	if err != nil {
		s.abandon(req.Client, player)
		return nil, err
	}

	resps = append(resps, network.Ordered(protocol.NewObject(player), s.clients.Observers(req.Client)))

	s.logger.Info("Player spawned",
		zap.String("client", req.Client.String()),
		zap.Uint64("player", uint64(player.NetworkID())),
		zap.String("template", utils.FormatFormID(npc.Base)))

	s.notifier.Emit(script.Event{Kind: script.KindSpawn, Entity: player.NetworkID()})
	return resps, nil
}

// template asks the hook first and falls back to the first unused eligible NPC,
// which is claimed in the base registry before any other player can see it.
func (s *Service) template(player *world.Player) (records.NPC, error) {
	lookup := s.factory.Lookup()

	if base := s.hooks.RequestGame(player.NetworkID()); base != 0 {
		npc, ok := lookup.NPC(base)
		if !ok {
			return records.NPC{}, fmt.Errorf("requested template %08X: %w", base, records.ErrUnknownRecord)
		}
		return npc, nil
	}

	var npc records.NPC
	_, ok, err := player.ClaimBase(func(exclude []uint32) (uint32, bool) {
		var found bool
		npc, found = lookup.NPCNotIn(exclude, eligible(lookup))
		return npc.Base, found
	})
	if err != nil {
		return records.NPC{}, err
	}
	if !ok {
		return records.NPC{}, ErrNoTemplate
	}
	return npc, nil
}

// dress re-bases the player onto npc and copies inventory, race, age and sex.
// Every message goes to the origin only.
func (s *Service) dress(guid network.GUID, player *world.Player, npc records.NPC) (network.Responses, error) {
	origin := network.To(guid)
	id := player.NetworkID()
	lookup := s.factory.Lookup()

	player.SetReference(0)
	if _, err := player.SetBase(npc.Base); err != nil {
		return nil, err
	}

	var resps network.Responses
	for _, item := range npc.Items {
		if records.IsDLC(item.Base) {
			continue
		}
		diff := player.AddItem(item.Base, item.Count, item.Condition, item.Equipped)
		if len(diff) == 0 {
			continue
		}
		resps = append(resps, network.Ordered(protocol.UpdateContainer{ID: id, Diff: reconcile.ToNet(diff)}, origin))
		player.ApplyDiff(diff)
	}

	oldRace := player.Race()
	if player.SetRace(npc.Race) {
		delta := ageDifference(lookup, oldRace, npc.Race)
		resps = append(resps, network.Ordered(protocol.UpdateRace{ID: id, Race: npc.Race, Age: delta, DeltaAge: delta}, origin))
	}
	player.SetAge(ageDifference(lookup, npc.BaseRace(), npc.Race))

	if player.SetFemale(npc.Female) {
		resps = append(resps, network.Ordered(protocol.UpdateSex{ID: id, Female: npc.Female}, origin))
	}
	return resps, nil
}

func ageDifference(lookup records.Lookup, from, to uint32) int {
	race, ok := lookup.Race(from)
	if !ok {
		return 0
	}
	other, ok := lookup.Race(to)
	if !ok {
		return 0
	}
	return race.AgeDifference(other)
}

// abandon undoes a failed spawn.
func (s *Service) abandon(guid network.GUID, player *world.Player) {
	_, errRemove := s.clients.Remove(guid)
	errDestroy := s.factory.Destroy(player.NetworkID())
	if err := errors.Join(errRemove, errDestroy); err != nil {
		s.logger.Error("Failed to undo player spawn", zap.Error(err))
	}
}
