// Package admin exposes the operator HTTP API.
//
// Routes, all mounted under the api key middleware:
//
//	GET  /status            player, connection and entity counts
//	GET  /players           connected clients with their player entity
//	GET  /entities/:id      full state of one entity
//	GET  /defaults          respawn delay, spawn cell and console flag
//	PUT  /defaults          partial update; the spawn cell is validated
//	GET  /globals           game clock and weather
//	PUT  /globals           partial update
//	GET  /events            recently emitted script events, ?kind= filters
//	POST /records/reload    drop the cached record table and load it again
//	GET  /records/schema    compare the record database with the models
package admin
