package script

import "github.com/beInDev/vaultmp/core/world"

// Hooks are questions whose answers change a handler's outcome.
type Hooks interface {
	// Authenticate decides whether a client may join.
	Authenticate(name, password string) bool
	// RequestGame picks the template for a new player; 0 lets the server choose.
	RequestGame(player world.NetworkID) uint32
	// Chat may rewrite a chat line or veto it.
	Chat(player world.NetworkID, message string) (string, bool)
}

// DefaultHooks accepts every client and message and never picks a template.
type DefaultHooks struct{}

var _ Hooks = DefaultHooks{}

func (DefaultHooks) Authenticate(string, string) bool { return true }

func (DefaultHooks) RequestGame(world.NetworkID) uint32 { return 0 }

func (DefaultHooks) Chat(_ world.NetworkID, message string) (string, bool) { return message, true }
