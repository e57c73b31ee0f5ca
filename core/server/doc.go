// Package server holds the listener configuration of the admin API and the
// game websocket endpoint.
//
// Config is embedded by core/config under the "server" section, so SERVER_PORT
// and SERVER_GAME_PORT override the ports.
package server
