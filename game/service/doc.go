// Package service exposes game operations behind a transport-neutral
// interface.
//
// The GameService interface is what transports (WebSocket, REST, MCP)
// program against. Every method validates on the server and returns an
// Outcome: an optional direct reply for the requester plus the ordered
// events to broadcast to the room. Transports never compute game state;
// they deliver frames.
//
// Errors returned by the service are the room package's sentinel errors
// and are meant for the requester only; a rejected request never produces
// a broadcast.
package service
