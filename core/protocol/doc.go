// Package protocol defines the JSON wire format between clients and the server.
//
// Every frame is an envelope {"type": ..., "payload": {...}}. Inbound envelopes
// are checked against an embedded JSON schema before their payload is decoded,
// then the typed payload validates its own field ranges. Outbound messages
// implement network.Message and are wrapped by Encode.
package protocol
