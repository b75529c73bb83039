package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/wricardo/ludo-server/game/room"
	"github.com/wricardo/ludo-server/game/service"
)

// Inbound message types.
const (
	actionCreateRoom = "create-room"
	actionJoinRoom   = "join-room"
	actionStartGame  = "start-game"
	actionRollDice   = "roll-dice"
	actionMovePiece  = "move-piece"
	actionLeaveRoom  = "leave-room"
)

// Message is one inbound WebSocket frame.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// errorPayload is what a rejected request sends back to the requester.
type errorPayload struct {
	Action  string `json:"action"`
	Message string `json:"message"`
}

// dispatch parses one inbound frame and routes it to the service. Errors
// are delivered to the requester only; they are never broadcast.
func (c *Client) dispatch(raw []byte) {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("", errors.New("malformed message"))
		return
	}

	ctx := context.Background()
	var out *service.Outcome
	var err error

	switch msg.Type {
	case actionCreateRoom:
		var p struct {
			Name string `json:"name"`
		}
		if !c.decodePayload(msg, &p) {
			return
		}
		out, err = c.hub.service.CreateRoom(ctx, c.playerID, p.Name)

	case actionJoinRoom:
		var p struct {
			Code string `json:"code"`
			Name string `json:"name"`
		}
		if !c.decodePayload(msg, &p) {
			return
		}
		out, err = c.hub.service.JoinRoom(ctx, c.playerID, p.Code, p.Name)

	case actionStartGame:
		var p struct {
			Code string `json:"code"`
		}
		if !c.decodePayload(msg, &p) {
			return
		}
		out, err = c.hub.service.StartGame(ctx, c.playerID, p.Code)

	case actionRollDice:
		var p struct {
			Code string `json:"code"`
		}
		if !c.decodePayload(msg, &p) {
			return
		}
		out, err = c.hub.service.RollDice(ctx, c.playerID, p.Code)

	case actionMovePiece:
		var p struct {
			Code  string `json:"code"`
			Piece int    `json:"piece"`
		}
		if !c.decodePayload(msg, &p) {
			return
		}
		out, err = c.hub.service.MovePiece(ctx, c.playerID, p.Code, p.Piece)

	case actionLeaveRoom:
		out, err = c.hub.service.LeaveRoom(ctx, c.playerID)

	default:
		// Unknown actions are silently ignored.
		return
	}

	if err != nil {
		c.sendError(msg.Type, err)
		return
	}

	switch msg.Type {
	case actionCreateRoom, actionJoinRoom:
		c.hub.joinRoom(c, out.RoomCode)
	case actionLeaveRoom:
		c.hub.leaveRoom(c)
	}

	c.deliver(out)
}

// decodePayload parses an action's payload. A payload that does not fit the
// action's shape is rejected just like an unparseable envelope, so a bad
// frame never reaches the service with zero-valued arguments.
func (c *Client) decodePayload(msg Message, v any) bool {
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		c.sendError(msg.Type, errors.New("malformed message"))
		return false
	}
	return true
}

// dispatchDisconnect removes the departed player from their room and
// notifies the remaining members. Called after the connection is gone.
func (c *Client) dispatchDisconnect() {
	out, err := c.hub.service.LeaveRoom(context.Background(), c.playerID)
	if err != nil {
		// Players idling in the lobby have no room to leave.
		if !errors.Is(err, room.ErrNotInRoom) {
			log.Printf("Disconnect cleanup for %s: %v", c.playerID, err)
		}
		return
	}
	for _, event := range out.Events {
		c.hub.BroadcastToRoom(out.RoomCode, event)
	}
}

// deliver sends the direct reply to the requester and broadcasts the
// outcome's events to the room.
func (c *Client) deliver(out *service.Outcome) {
	if out.Reply != nil {
		c.sendEvent(*out.Reply)
	}
	for _, event := range out.Events {
		c.hub.BroadcastToRoom(out.RoomCode, event)
	}
}

// sendError maps a rejected request onto the error frame the requester
// receives: room lifecycle failures become room-error, in-game failures
// game-error.
func (c *Client) sendError(action string, err error) {
	eventType := "room-error"
	switch action {
	case actionRollDice, actionMovePiece:
		eventType = "game-error"
	}
	c.sendEvent(service.Event{
		Type:    eventType,
		Payload: errorPayload{Action: action, Message: err.Error()},
	})
}
