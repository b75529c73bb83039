package service

import (
	"context"

	"github.com/wricardo/ludo-server/game/room"
)

// gameServiceImpl implements GameService on top of an injected room
// registry. It holds no state of its own; all truth lives in the rooms and
// every room operation is serialized by the room itself.
type gameServiceImpl struct {
	registry *room.Registry
}

// NewGameService creates a game service backed by the given registry.
func NewGameService(registry *room.Registry) GameService {
	return &gameServiceImpl{registry: registry}
}

// CreateRoom allocates a fresh room with the caller as host.
func (s *gameServiceImpl) CreateRoom(ctx context.Context, playerID, name string) (*Outcome, error) {
	r, err := s.registry.Create(playerID, name)
	if err != nil {
		return nil, err
	}

	state := r.Snapshot()
	return &Outcome{
		RoomCode: r.Code(),
		Room:     state,
		Reply: &Event{
			Type:    EventRoomCreated,
			Payload: RoomPayload{Room: state, Player: &state.Players[0]},
		},
	}, nil
}

// JoinRoom seats the caller in an existing room.
func (s *gameServiceImpl) JoinRoom(ctx context.Context, playerID, code, name string) (*Outcome, error) {
	r, p, err := s.registry.Join(code, playerID, name)
	if err != nil {
		return nil, err
	}

	state := r.Snapshot()
	return &Outcome{
		RoomCode: r.Code(),
		Room:     state,
		Reply: &Event{
			Type:    EventJoinedRoom,
			Payload: RoomPayload{Room: state, Player: p},
		},
		Events: []Event{
			{Type: EventPlayerJoined, Payload: RoomPayload{Room: state, Player: p}},
		},
	}, nil
}

// StartGame begins play in the caller's room.
func (s *gameServiceImpl) StartGame(ctx context.Context, playerID, code string) (*Outcome, error) {
	r, err := s.registry.Get(code)
	if err != nil {
		return nil, err
	}
	if err := r.Start(playerID); err != nil {
		return nil, err
	}

	state := r.Snapshot()
	return &Outcome{
		RoomCode: r.Code(),
		Room:     state,
		Events: []Event{
			{Type: EventGameStarted, Payload: RoomPayload{Room: state}},
		},
	}, nil
}

// RollDice rolls for the current player. A roll that leaves no legal move
// forfeits the turn, which is announced as a separate turn switch.
func (s *gameServiceImpl) RollDice(ctx context.Context, playerID, code string) (*Outcome, error) {
	r, err := s.registry.Get(code)
	if err != nil {
		return nil, err
	}
	roll, err := r.Roll(playerID)
	if err != nil {
		return nil, err
	}

	out := &Outcome{
		RoomCode: r.Code(),
		Room:     r.Snapshot(),
		Events:   []Event{{Type: EventDiceRolled, Payload: roll}},
	}
	if roll.TurnPassed {
		out.Events = append(out.Events, Event{
			Type:    EventTurnSwitched,
			Payload: TurnPayload{RoomCode: r.Code(), NextPlayerID: roll.NextPlayerID},
		})
	}
	return out, nil
}

// MovePiece executes a pending move for the current player. A winning move
// additionally produces the one-shot game-won broadcast.
func (s *gameServiceImpl) MovePiece(ctx context.Context, playerID, code string, slot int) (*Outcome, error) {
	r, err := s.registry.Get(code)
	if err != nil {
		return nil, err
	}
	move, err := r.Move(playerID, slot)
	if err != nil {
		return nil, err
	}

	out := &Outcome{
		RoomCode: r.Code(),
		Room:     r.Snapshot(),
		Events:   []Event{{Type: EventPieceMoved, Payload: move}},
	}
	if move.Won {
		out.Events = append(out.Events, Event{
			Type: EventGameWon,
			Payload: WinPayload{
				RoomCode:   r.Code(),
				Color:      move.Color,
				PlayerID:   move.PlayerID,
				PlayerName: move.PlayerName,
			},
		})
	}
	return out, nil
}

// LeaveRoom removes the caller from whichever room they occupy; transports
// call this for explicit leaves and for disconnects alike.
func (s *gameServiceImpl) LeaveRoom(ctx context.Context, playerID string) (*Outcome, error) {
	r, res, err := s.registry.Leave(playerID)
	if err != nil {
		return nil, err
	}

	out := &Outcome{RoomCode: r.Code()}
	if !res.Empty {
		state := r.Snapshot()
		out.Room = state
		out.Events = []Event{
			{Type: EventPlayerLeft, Payload: LeftPayload{LeaveResult: res, Room: state}},
		}
	}
	return out, nil
}

// GetRoom returns a snapshot of the room with the given code.
func (s *gameServiceImpl) GetRoom(ctx context.Context, code string) (*room.State, error) {
	r, err := s.registry.Get(code)
	if err != nil {
		return nil, err
	}
	return r.Snapshot(), nil
}

// ListRooms returns lobby summaries for all live rooms.
func (s *gameServiceImpl) ListRooms(ctx context.Context) ([]*RoomSummary, error) {
	rooms := s.registry.List()
	result := make([]*RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		state := r.Snapshot()
		result = append(result, &RoomSummary{
			Code:        state.Code,
			PlayerCount: len(state.Players),
			GameStarted: state.GameStarted,
			GameOver:    state.GameOver,
		})
	}
	return result, nil
}
