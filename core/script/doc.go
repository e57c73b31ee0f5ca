// Package script is the boundary between the reconciliation handlers and the
// scripting layer.
//
// Handlers report what happened by emitting Events on a Notifier after the
// state change is committed and the broadcast composed. The Bus fans every
// event out to its sinks: a zap LogSink, a Ring of recent events for the admin
// API, a zstd compressed Journal and the LuaHost.
//
// Hooks are the few questions handlers ask the scripting layer and whose answer
// changes the outcome: whether a client may join, which template a new player
// gets and whether a chat line is delivered. DefaultHooks accepts everything.
package script
