package session

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/beInDev/vaultmp/core/dispatch"
	"github.com/beInDev/vaultmp/core/network"
	"github.com/beInDev/vaultmp/core/protocol"
	"github.com/beInDev/vaultmp/core/records"
	"github.com/beInDev/vaultmp/core/script"
	"github.com/beInDev/vaultmp/core/world"
	"github.com/beInDev/vaultmp/feature/mods"
)

var (
	// ErrAlreadySpawned is returned when a client asks for a second player.
	ErrAlreadySpawned = errors.New("session: client already has a player")
	// ErrNoTemplate is returned when no template is eligible for a new player.
	ErrNoTemplate = errors.New("session: no eligible player template")
)

// ModLister provides the mods announced on authenticate.
type ModLister interface {
	Mods() []mods.Mod
}

// Service implements the session handlers.
type Service struct {
	logger   *zap.Logger
	factory  *world.Factory
	clients  *network.Clients
	globals  *world.Globals
	hooks    script.Hooks
	notifier script.Notifier
	mods     ModLister
}

// NewService creates a session service.
func NewService(logger *zap.Logger, factory *world.Factory, clients *network.Clients, globals *world.Globals, hooks script.Hooks, notifier script.Notifier, mods ModLister) *Service {
	return &Service{
		logger:   logger,
		factory:  factory,
		clients:  clients,
		globals:  globals,
		hooks:    hooks,
		notifier: notifier,
		mods:     mods,
	}
}

// Register adds the session handlers to r.
func (s *Service) Register(r *dispatch.Router) {
	r.Handle(protocol.TypeAuthenticate, dispatch.WithPayload(s.Authenticate))
	r.Handle(protocol.TypeLoadGame, dispatch.WithPayload(s.LoadGame))
	r.Handle(protocol.TypeNewPlayer, dispatch.WithPayload(s.NewPlayer))
	r.Handle(protocol.TypeDisconnect, dispatch.WithPayload(s.Disconnect))
	r.Handle(protocol.TypeChat, dispatch.WithPayload(s.Chat))
}

// Authenticate lets the hook accept or deny the client.
func (s *Service) Authenticate(_ context.Context, req dispatch.Request, p protocol.Authenticate) (network.Responses, error) {
	origin := network.To(req.Client)

	if !s.hooks.Authenticate(p.Name, p.Password) {
		s.logger.Info("Client denied", zap.String("client", req.Client.String()), zap.String("name", p.Name))
		return network.Responses{network.Ordered(protocol.GameEnd{Reason: protocol.ReasonDenied}, origin)}, nil
	}

	var resps network.Responses
	if s.mods != nil {
		for _, mod := range s.mods.Mods() {
			resps = append(resps, network.Ordered(protocol.GameMod{Name: mod.Name, Checksum: mod.ETag}, origin))
		}
	}
	resps = append(resps, network.Ordered(protocol.GameStart{Version: protocol.Version}, origin))

	s.logger.Info("Client authenticated", zap.String("client", req.Client.String()), zap.String("name", p.Name))
	return resps, nil
}

// LoadGame sends the world snapshot to the origin.
func (s *Service) LoadGame(_ context.Context, req dispatch.Request, _ protocol.LoadGame) (network.Responses, error) {
	origin := network.To(req.Client)
	lookup := s.factory.Lookup()
	spawn := s.factory.Defaults().SpawnCell()

	var resps network.Responses
	if ext, ok := lookup.Exterior(spawn); ok {
		resps = append(resps, network.Ordered(protocol.UpdateExterior{World: ext.World, X: ext.X, Y: ext.Y, Spawn: true}, origin))
	} else if name, ok := lookup.CellName(spawn); ok {
		resps = append(resps, network.Ordered(protocol.UpdateInterior{Cell: name, Spawn: true}, origin))
	} else {
		return nil, fmt.Errorf("spawn cell %08X: %w", spawn, world.ErrInvalidCell)
	}

	for _, e := range s.factory.Objects() {
		if item, ok := world.AsItem(e); ok && item.Holder() != 0 {
			continue
		}
		resps = append(resps, network.Ordered(protocol.NewObject(e), origin))
	}

	clock := s.globals.Clock()
	for _, g := range []struct {
		name  string
		value float64
	}{
		{protocol.GlobalGameYear, float64(clock.Year)},
		{protocol.GlobalGameMonth, float64(clock.Month)},
		{protocol.GlobalGameDay, float64(clock.Day)},
		{protocol.GlobalGameHour, clock.Hour},
	} {
		resps = append(resps, network.Ordered(protocol.GameGlobal{Global: g.name, Value: g.value}, origin))
	}
	resps = append(resps,
		network.Ordered(protocol.GameWeather{Weather: s.globals.Weather()}, origin),
		network.Ordered(protocol.GameLoad{}, origin),
	)
	return resps, nil
}

// Disconnect removes the client and its player.
func (s *Service) Disconnect(_ context.Context, req dispatch.Request, p protocol.Disconnect) (network.Responses, error) {
	client, ok := s.clients.Get(req.Client)
	if !ok {
		return nil, fmt.Errorf("%w: %s", network.ErrUnknownClient, req.Client)
	}

	s.notifier.Emit(script.Event{Kind: script.KindPlayerDisconnect, Entity: client.Player, Reason: uint8(p.Reason)})

	if _, err := s.clients.Remove(req.Client); err != nil {
		return nil, err
	}
	if err := s.factory.Destroy(client.Player); err != nil {
		return nil, fmt.Errorf("destroy player of %s: %w", req.Client, err)
	}

	s.logger.Info("Player left",
		zap.String("client", req.Client.String()),
		zap.Uint64("player", uint64(client.Player)),
		zap.Stringer("reason", p.Reason))

	return network.Responses{network.Ordered(protocol.ObjectRemove{ID: client.Player}, s.clients.NetworkList(nil))}, nil
}

// Chat relays a chat line to every client unless the hook vetoes it.
func (s *Service) Chat(_ context.Context, req dispatch.Request, p protocol.Chat) (network.Responses, error) {
	player, err := s.clients.PlayerOf(req.Client)
	if err != nil {
		return nil, err
	}

	message, ok := s.hooks.Chat(player, p.Message)
	if !ok || message == "" {
		return nil, nil
	}
	message = truncate(message, protocol.MaxChatLength)

	resp := network.Ordered(protocol.GameChat{Message: message}, s.clients.NetworkList(nil))
	resp.Channel = network.ChannelChat
	return network.Responses{resp}, nil
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// eligible reports whether a template may be handed to a new player.
func eligible(lookup records.Lookup) func(records.NPC) bool {
	return func(npc records.NPC) bool {
		if npc.IsDLC() || npc.Essential {
			return false
		}
		race, ok := lookup.Race(npc.Race)
		return ok && !race.Child
	}
}
