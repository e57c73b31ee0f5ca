package script

import (
	"fmt"
	"sync"

	"github.com/Shopify/go-lua"
	"go.uber.org/zap"

	"github.com/beInDev/vaultmp/core/world"
)

// Global function names a script may define to answer hooks.
const (
	LuaAuthenticate = "OnClientAuthenticate"
	LuaRequestGame  = "OnPlayerRequestGame"
	LuaChat         = "OnPlayerChat"
)

// LuaHost runs one Lua state. It answers Hooks and consumes events by calling
// the matching global functions when the script defines them.
// Calls are serialized; a Lua state is not safe for concurrent use.
type LuaHost struct {
	logger *zap.Logger

	mu    sync.Mutex
	state *lua.State
}

var (
	_ Hooks = (*LuaHost)(nil)
	_ Sink  = (*LuaHost)(nil)
)

// NewLuaHost creates a host with the standard libraries and the vaultmp table.
func NewLuaHost(logger *zap.Logger) *LuaHost {
	h := &LuaHost{logger: logger, state: lua.NewState()}
	lua.OpenLibraries(h.state)
	h.register()
	return h
}

// LoadLuaFile creates a host and runs the script at path.
func LoadLuaFile(path string, logger *zap.Logger) (*LuaHost, error) {
	h := NewLuaHost(logger)
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := lua.LoadFile(h.state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	if err := h.state.ProtectedCall(0, 0, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}
	return h, nil
}

// LoadString runs src in the host's state.
func (h *LuaHost) LoadString(src string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := lua.LoadString(h.state, src); err != nil {
		return fmt.Errorf("load lua: %w", err)
	}
	if err := h.state.ProtectedCall(0, 0, 0); err != nil {
		return fmt.Errorf("run lua: %w", err)
	}
	return nil
}

func (h *LuaHost) register() {
	h.state.NewTable()
	lua.SetFunctions(h.state, []lua.RegistryFunction{
		{Name: "log", Function: h.luaLog},
	}, 0)
	h.state.SetGlobal("vaultmp")
}

func (h *LuaHost) luaLog(state *lua.State) int {
	h.logger.Info("Script", zap.String("message", lua.CheckString(state, 1)))
	return 0
}

// Authenticate calls OnClientAuthenticate(name, password). Undefined accepts.
func (h *LuaHost) Authenticate(name, password string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	top := h.state.Top()
	defer h.state.SetTop(top)

	called, err := h.call(LuaAuthenticate, 1, func(s *lua.State) int {
		s.PushString(name)
		s.PushString(password)
		return 2
	})
	if err != nil {
		h.logger.Error("Script hook failed", zap.String("hook", LuaAuthenticate), zap.Error(err))
		return false
	}
	if !called {
		return true
	}
	return h.state.ToBoolean(-1)
}

// RequestGame calls OnPlayerRequestGame(id). Undefined or non-numeric results yield 0.
func (h *LuaHost) RequestGame(player world.NetworkID) uint32 {
	h.mu.Lock()
	defer h.mu.Unlock()

	top := h.state.Top()
	defer h.state.SetTop(top)

	called, err := h.call(LuaRequestGame, 1, func(s *lua.State) int {
		s.PushInteger(int(player))
		return 1
	})
	if err != nil {
		h.logger.Error("Script hook failed", zap.String("hook", LuaRequestGame), zap.Error(err))
		return 0
	}
	if !called {
		return 0
	}
	base, ok := h.state.ToInteger(-1)
	if !ok || base < 0 {
		return 0
	}
	return uint32(base)
}

// Chat calls OnPlayerChat(id, message). The script returns false to veto, or
// true and optionally a replacement message.
func (h *LuaHost) Chat(player world.NetworkID, message string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	top := h.state.Top()
	defer h.state.SetTop(top)

	called, err := h.call(LuaChat, 2, func(s *lua.State) int {
		s.PushInteger(int(player))
		s.PushString(message)
		return 2
	})
	if err != nil {
		h.logger.Error("Script hook failed", zap.String("hook", LuaChat), zap.Error(err))
		return message, true
	}
	if !called {
		return message, true
	}
	if !h.state.ToBoolean(-2) {
		return "", false
	}
	if replaced, ok := h.state.ToString(-1); ok {
		return replaced, true
	}
	return message, true
}

// Handle calls the event's global function with a table describing it.
func (h *LuaHost) Handle(e Event) {
	name, ok := luaHandlers[e.Kind]
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	top := h.state.Top()
	defer h.state.SetTop(top)

	if _, err := h.call(name, 0, func(s *lua.State) int {
		pushEvent(s, e)
		return 1
	}); err != nil {
		h.logger.Error("Script event handler failed", zap.String("handler", name), zap.Error(err))
	}
}

// call invokes global name when it is a function. The caller restores the stack.
func (h *LuaHost) call(name string, results int, push func(*lua.State) int) (bool, error) {
	h.state.Global(name)
	if !h.state.IsFunction(-1) {
		return false, nil
	}
	args := push(h.state)
	if err := h.state.ProtectedCall(args, results, 0); err != nil {
		return true, err
	}
	return true, nil
}

func pushEvent(s *lua.State, e Event) {
	s.NewTable()
	setString(s, "kind", e.Kind.String())
	setInt(s, "id", int(e.Entity))
	setInt(s, "base", int(e.Base))
	setInt(s, "count", e.Count)
	setNumber(s, "condition", e.Condition)
	setInt(s, "index", int(e.Index))
	setNumber(s, "value", e.Value)
	setBool(s, "flag", e.Flag)
	setInt(s, "limbs", int(e.Limbs))
	setInt(s, "cause", int(e.Cause))
	setInt(s, "reason", int(e.Reason))
	setInt(s, "cell", int(e.Cell))
}

func setString(s *lua.State, key, v string) {
	s.PushString(v)
	s.SetField(-2, key)
}

func setInt(s *lua.State, key string, v int) {
	s.PushInteger(v)
	s.SetField(-2, key)
}

func setNumber(s *lua.State, key string, v float64) {
	s.PushNumber(v)
	s.SetField(-2, key)
}

func setBool(s *lua.State, key string, v bool) {
	s.PushBoolean(v)
	s.SetField(-2, key)
}
