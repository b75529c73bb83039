package service

import (
	"context"

	"github.com/wricardo/ludo-server/game/room"
)

// GameService defines every game operation a transport can invoke. All
// methods validate server-side; transports only carry events.
type GameService interface {
	// Room lifecycle
	CreateRoom(ctx context.Context, playerID, name string) (*Outcome, error)
	JoinRoom(ctx context.Context, playerID, code, name string) (*Outcome, error)
	StartGame(ctx context.Context, playerID, code string) (*Outcome, error)
	LeaveRoom(ctx context.Context, playerID string) (*Outcome, error)

	// Game actions
	RollDice(ctx context.Context, playerID, code string) (*Outcome, error)
	MovePiece(ctx context.Context, playerID, code string, slot int) (*Outcome, error)

	// Inspection
	GetRoom(ctx context.Context, code string) (*room.State, error)
	ListRooms(ctx context.Context) ([]*RoomSummary, error)
}
