package service

import (
	"github.com/wricardo/ludo-server/game/board"
	"github.com/wricardo/ludo-server/game/room"
)

// Outbound event types, matching the wire-level contract.
const (
	EventRoomCreated  = "room-created"
	EventJoinedRoom   = "joined-room"
	EventPlayerJoined = "player-joined"
	EventPlayerLeft   = "player-left"
	EventGameStarted  = "game-started"
	EventDiceRolled   = "dice-rolled"
	EventTurnSwitched = "turn-switched"
	EventPieceMoved   = "piece-moved"
	EventGameWon      = "game-won"
)

// Event is one outbound frame. Payloads are plain structs so the transport
// can marshal events without knowing their shape.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Outcome is the full result of a game operation: an optional direct reply
// for the requester and the events to broadcast to the room. RoomCode names
// the room the broadcast targets.
type Outcome struct {
	RoomCode string      `json:"room_code"`
	Room     *room.State `json:"room,omitempty"`
	Reply    *Event      `json:"reply,omitempty"`
	Events   []Event     `json:"events,omitempty"`
}

// RoomSummary is the lobby view of a room.
type RoomSummary struct {
	Code        string `json:"code"`
	PlayerCount int    `json:"player_count"`
	GameStarted bool   `json:"game_started"`
	GameOver    bool   `json:"game_over"`
}

// RoomPayload pairs a room snapshot with the player the event concerns.
type RoomPayload struct {
	Room   *room.State  `json:"room"`
	Player *room.Player `json:"player,omitempty"`
}

// TurnPayload announces whose turn it is after a forfeited roll.
type TurnPayload struct {
	RoomCode     string `json:"room_code"`
	NextPlayerID string `json:"next_player_id"`
}

// WinPayload names the winning color and player, broadcast exactly once.
type WinPayload struct {
	RoomCode   string      `json:"room_code"`
	Color      board.Color `json:"color"`
	PlayerID   string      `json:"player_id"`
	PlayerName string      `json:"player_name"`
}

// LeftPayload describes a departure and the room left behind.
type LeftPayload struct {
	*room.LeaveResult
	Room *room.State `json:"room,omitempty"`
}
