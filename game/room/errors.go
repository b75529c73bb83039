package room

import "errors"

// Request-rejection errors. All of these are delivered only to the
// requesting participant and never corrupt room state; none are fatal to
// the room or the process.
var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomFull           = errors.New("room is full")
	ErrGameAlreadyStarted = errors.New("game already started")
	ErrNotAuthorized      = errors.New("only the host can do that")
	ErrNotEnoughPlayers   = errors.New("not enough players to start")
	ErrNotYourTurn        = errors.New("not your turn")
	ErrIllegalMove        = errors.New("illegal move")
	ErrNotInRoom          = errors.New("player is not in a room")
	ErrAlreadyInRoom      = errors.New("player is already in a room")
	ErrTooManyRooms       = errors.New("room limit reached")
)
