package network

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/beInDev/vaultmp/core/registry"
	"github.com/beInDev/vaultmp/core/world"
)

// ErrUnknownClient is returned for a GUID without a registered client.
var ErrUnknownClient = errors.New("network: unknown client")

// Client is one connected, spawned player.
type Client struct {
	GUID   GUID            `json:"guid"`
	Player world.NetworkID `json:"player"`
	Joined time.Time       `json:"joined"`
}

// Clients is the roster of connected players, in join order.
type Clients struct {
	g *registry.Guarded[[]Client]
}

// NewClients creates an empty roster.
func NewClients() *Clients {
	return &Clients{g: registry.NewGuarded[[]Client](nil)}
}

// Register adds guid as the owner of player. Registering a GUID twice rebinds it.
func (c *Clients) Register(guid GUID, player world.NetworkID) {
	c.g.Operate(func(cs *[]Client) {
		i := slices.IndexFunc(*cs, func(cl Client) bool { return cl.GUID == guid })
		if i >= 0 {
			(*cs)[i].Player = player
			return
		}
		*cs = append(*cs, Client{GUID: guid, Player: player, Joined: time.Now()})
	})
}

// Remove drops guid and returns the client it held.
func (c *Clients) Remove(guid GUID) (Client, error) {
	var (
		out Client
		err error
	)
	c.g.Operate(func(cs *[]Client) {
		i := slices.IndexFunc(*cs, func(cl Client) bool { return cl.GUID == guid })
		if i < 0 {
			err = fmt.Errorf("%w: %s", ErrUnknownClient, guid)
			return
		}
		out = (*cs)[i]
		*cs = slices.Delete(*cs, i, i+1)
	})
	return out, err
}

// Get returns the client for guid.
func (c *Clients) Get(guid GUID) (Client, bool) {
	var (
		out Client
		ok  bool
	)
	c.g.Read(func(cs []Client) {
		i := slices.IndexFunc(cs, func(cl Client) bool { return cl.GUID == guid })
		if i >= 0 {
			out, ok = cs[i], true
		}
	})
	return out, ok
}

// PlayerOf returns the player owned by guid.
func (c *Clients) PlayerOf(guid GUID) (world.NetworkID, error) {
	cl, ok := c.Get(guid)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownClient, guid)
	}
	return cl.Player, nil
}

// NetworkList returns every client GUID except exclude. A nil exclude returns the full roster.
func (c *Clients) NetworkList(exclude *GUID) []GUID {
	var out []GUID
	c.g.Read(func(cs []Client) {
		out = make([]GUID, 0, len(cs))
		for _, cl := range cs {
			if exclude != nil && cl.GUID == *exclude {
				continue
			}
			out = append(out, cl.GUID)
		}
	})
	return out
}

// Observers returns every client except origin.
func (c *Clients) Observers(origin GUID) []GUID {
	return c.NetworkList(&origin)
}

// All returns every client.
func (c *Clients) All() []GUID {
	return c.NetworkList(nil)
}

// List returns a copy of the roster.
func (c *Clients) List() []Client {
	var out []Client
	c.g.Read(func(cs []Client) {
		out = slices.Clone(cs)
	})
	return out
}

// Len returns the number of clients.
func (c *Clients) Len() int {
	var n int
	c.g.Read(func(cs []Client) {
		n = len(cs)
	})
	return n
}
