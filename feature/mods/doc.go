// Package mods publishes the list of mod files clients must load.
//
// Mods are objects stored under a prefix of the configured bucket. The Service
// lists them once at start and again on demand; the session feature sends one
// game_mod message per entry to every authenticated client, in name order.
//
// # HTTP Endpoints
//
//   - GET /mods : Returns the cached list.
//   - POST /mods/refresh : Lists the bucket again.
package mods
