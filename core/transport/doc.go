// Package transport carries protocol frames between clients and the router
// over websockets.
//
// Every accepted connection gets a fresh GUID, a reader goroutine feeding the
// dispatch Router and a writer goroutine draining a bounded send queue. Hub.Send
// delivers handler responses after the handler returned, so no entity lock is
// ever held while a socket blocks.
//
// # Delivery
//
// Ordered responses wait up to the write timeout for queue space; a client that
// cannot keep up is disconnected. Sequenced responses are dropped when the queue
// is full since a later update supersedes them.
//
// When a connection closes the Hub dispatches a disconnect envelope with reason
// lost on its behalf, unless the client already disconnected explicitly.
package transport
