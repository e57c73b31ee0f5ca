// Package network composes outbound broadcast instructions.
//
// Handlers never write to connections. They return Responses: each Response
// carries one message, its priority, reliability and channel tags, and the GUIDs
// of the clients that must receive it. The transport sends them after the handler
// returned, so no entity lock is ever held during a send.
//
// Clients is the roster mapping connection GUIDs to player network ids. An
// entity's observers are every client except the one that originated the change.
package network
