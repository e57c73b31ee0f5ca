// Package dispatch routes decoded inbound envelopes to reconciliation handlers.
//
// Features register one HandlerFunc per inbound kind on a Router. Typed
// handlers are wrapped with WithPayload, which decodes and validates the
// payload so handler bodies only ever see well-formed input.
package dispatch
