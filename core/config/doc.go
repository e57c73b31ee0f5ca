// Package config loads the server configuration.
//
// Defaults come from the `default` struct tags of each section, a .env file is
// overloaded into the environment and SECTION_KEY variables override single
// keys (GAME_RESPAWN_MS sets game.respawn_ms).
//
// # Sections
//
//   - server: admin port, game port and path, api key, send queue limits
//   - game: respawn delay, spawn cell, console, clock, weather, record TTL
//   - database: record database driver and connection
//   - storage: MinIO endpoint and the mods bucket
//   - log: level and format
//   - script: Lua script, event journal, recent event ring
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
package config
