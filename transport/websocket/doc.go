// Package websocket provides the real-time transport for the game server.
//
// Each browser connection is wrapped in a Client with its own read and
// write pumps. The Hub tracks which clients belong to which room and fans
// broadcast events out to every member. Inbound frames carry a type and a
// JSON payload; the dispatcher translates them into GameService calls and
// routes the resulting events back out, replies to the requester only and
// broadcasts to the whole room.
package websocket
