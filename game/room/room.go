package room

import (
	"sync"

	"github.com/wricardo/ludo-server/game/board"
	"github.com/wricardo/ludo-server/game/engine"
)

// Player is one connected participant of a room.
type Player struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Color  board.Color `json:"color"`
	IsHost bool        `json:"is_host"`
}

// Room is one independent game session. It owns its players and pieces
// exclusively; nothing is shared across rooms. Every mutating operation
// takes the room mutex, so concurrent roll/move/join/leave requests on the
// same room are fully serialized while distinct rooms proceed in parallel.
type Room struct {
	code string
	roll engine.Roller

	mu           sync.Mutex
	players      []*Player // join order defines turn order
	pieces       map[board.Color][]*engine.Piece
	currentID    string // whose turn it is; a stable player ID, never an index
	gameStarted  bool
	gameOver     bool
	winner       board.Color
	lastDice     int
	canRollAgain bool
	movable      []int // pending movable slots; non-nil means a move is owed
	closed       bool  // set when the last player departs; the room accepts no more joins
}

// State is a deep snapshot of a room, safe to hand to transports and to
// serialize without holding the room lock.
type State struct {
	Code            string                         `json:"code"`
	Players         []Player                       `json:"players"`
	Pieces          map[board.Color][]engine.Piece `json:"pieces"`
	CurrentPlayerID string                         `json:"current_player_id,omitempty"`
	GameStarted     bool                           `json:"game_started"`
	GameOver        bool                           `json:"game_over"`
	Winner          board.Color                    `json:"winner,omitempty"`
	LastDice        int                            `json:"last_dice,omitempty"`
	CanRollAgain    bool                           `json:"can_roll_again"`
	Movable         []int                          `json:"movable,omitempty"`
}

// newRoom creates a room with its host seated as red. The Registry is the
// only caller; rooms are never constructed directly.
func newRoom(code string, roll engine.Roller, hostID, hostName string) *Room {
	r := &Room{
		code:   code,
		roll:   roll,
		pieces: make(map[board.Color][]*engine.Piece),
	}
	host := &Player{ID: hostID, Name: hostName, Color: board.Palette[0], IsHost: true}
	r.players = append(r.players, host)
	r.pieces[host.Color] = engine.NewPieces()
	return r
}

// Code returns the room's shareable identifier.
func (r *Room) Code() string {
	return r.code
}

// Join seats a new participant, assigning the first unused color in palette
// order. It fails once play has begun, all four seats are taken, or the
// room has already emptied out.
func (r *Room) Join(playerID, name string) (*Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrRoomNotFound
	}
	if r.gameStarted {
		return nil, ErrGameAlreadyStarted
	}
	if len(r.players) >= board.MaxPlayers {
		return nil, ErrRoomFull
	}

	color, ok := r.nextColor()
	if !ok {
		return nil, ErrRoomFull
	}

	p := &Player{ID: playerID, Name: name, Color: color}
	r.players = append(r.players, p)
	r.pieces[color] = engine.NewPieces()
	return p, nil
}

// Start begins play. Only the host may start, at least two players must be
// seated, and the flag flips exactly once. The first joiner takes the first
// turn.
func (r *Room) Start(requesterID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.playerByID(requesterID)
	if p == nil || !p.IsHost {
		return ErrNotAuthorized
	}
	if r.gameStarted {
		return ErrGameAlreadyStarted
	}
	if len(r.players) < 2 {
		return ErrNotEnoughPlayers
	}

	r.gameStarted = true
	r.currentID = r.players[0].ID
	return nil
}

// RollResult describes the outcome of a dice roll.
type RollResult struct {
	PlayerID     string      `json:"player_id"`
	PlayerName   string      `json:"player_name"`
	Color        board.Color `json:"color"`
	Die          int         `json:"die"`
	Movable      []int       `json:"movable"`
	RollAgain    bool        `json:"roll_again"`
	TurnPassed   bool        `json:"turn_passed"`
	NextPlayerID string      `json:"next_player_id,omitempty"`
}

// Roll rolls the die for the current player and computes which of their
// pieces can move. With no legal move the turn is forfeited on the spot and
// passes on, except that a maximum-face roll keeps the turn (the roll-again
// extension) even when nothing could move.
func (r *Room) Roll(playerID string) (*RollResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.gameStarted || r.gameOver {
		return nil, ErrIllegalMove
	}
	if playerID != r.currentID {
		return nil, ErrNotYourTurn
	}
	if r.movable != nil {
		// A move is still owed for the previous roll.
		return nil, ErrIllegalMove
	}

	p := r.playerByID(playerID)
	die := r.roll()
	r.lastDice = die
	r.canRollAgain = false

	res := &RollResult{
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Color:      p.Color,
		Die:        die,
		Movable:    engine.MovableSlots(r.pieces[p.Color], die, p.Color),
	}

	if len(res.Movable) > 0 {
		r.movable = res.Movable
		return res, nil
	}

	if die == board.MaxDie {
		r.canRollAgain = true
		res.RollAgain = true
		return res, nil
	}

	next := r.advanceTurn()
	res.TurnPassed = true
	res.NextPlayerID = next.ID
	return res, nil
}

// MoveResult describes the outcome of an executed move.
type MoveResult struct {
	PlayerID     string          `json:"player_id"`
	PlayerName   string          `json:"player_name"`
	Color        board.Color     `json:"color"`
	Slot         int             `json:"slot"`
	Die          int             `json:"die"`
	From         engine.Location `json:"from"`
	To           engine.Location `json:"to"`
	Captured     *engine.Capture `json:"captured,omitempty"`
	Won          bool            `json:"won"`
	RollAgain    bool            `json:"roll_again"`
	NextPlayerID string          `json:"next_player_id,omitempty"`
}

// Move executes a pending move for the current player. The slot must be in
// the movable set computed by the preceding roll. Capture and win are
// resolved here; the player keeps the turn on a maximum-face roll or a
// capture, unless the move completed their win.
func (r *Room) Move(playerID string, slot int) (*MoveResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.gameStarted || r.gameOver {
		return nil, ErrIllegalMove
	}
	if playerID != r.currentID {
		return nil, ErrNotYourTurn
	}
	if r.movable == nil || !containsSlot(r.movable, slot) {
		return nil, ErrIllegalMove
	}

	p := r.playerByID(playerID)
	piece := r.pieces[p.Color][slot]
	from := piece.Location()

	engine.ApplyMove(piece, r.lastDice, p.Color)
	r.movable = nil

	var captured *engine.Capture
	if !piece.InHomeStretch {
		captured = engine.ResolveCapture(r.pieces, p.Color, piece.Position)
	}
	won := engine.HasWon(r.pieces[p.Color])

	res := &MoveResult{
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Color:      p.Color,
		Slot:       slot,
		Die:        r.lastDice,
		From:       from,
		To:         piece.Location(),
		Captured:   captured,
		Won:        won,
	}

	if won {
		r.gameOver = true
		r.winner = p.Color
		return res, nil
	}

	if engine.ExtendsTurn(r.lastDice, captured != nil, won) {
		r.canRollAgain = true
		res.RollAgain = true
		return res, nil
	}

	next := r.advanceTurn()
	res.NextPlayerID = next.ID
	return res, nil
}

// LeaveResult describes the membership change after a departure.
type LeaveResult struct {
	PlayerID     string      `json:"player_id"`
	PlayerName   string      `json:"player_name"`
	Color        board.Color `json:"color"`
	WasHost      bool        `json:"was_host"`
	NewHostID    string      `json:"new_host_id,omitempty"`
	NextPlayerID string      `json:"next_player_id,omitempty"`
	Empty        bool        `json:"empty"`
}

// Leave removes a participant. Their pieces leave the board, host status
// transfers to the earliest remaining joiner, and if the departing player
// held the turn it passes to the next player in join order. The caller
// destroys the room when Empty is reported.
func (r *Room) Leave(playerID string) (*LeaveResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, p := range r.players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotInRoom
	}

	p := r.players[idx]
	res := &LeaveResult{
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Color:      p.Color,
		WasHost:    p.IsHost,
	}

	r.players = append(r.players[:idx], r.players[idx+1:]...)
	delete(r.pieces, p.Color)

	if len(r.players) == 0 {
		r.closed = true
		res.Empty = true
		return res, nil
	}

	if p.IsHost {
		r.players[0].IsHost = true
		res.NewHostID = r.players[0].ID
	}

	// Turn ownership is tracked by player ID, so remaining turns are
	// unaffected by the index shift. Only a departing turn-holder needs a
	// successor: the player who followed them in join order.
	if r.gameStarted && !r.gameOver && r.currentID == p.ID {
		next := r.players[idx%len(r.players)]
		r.currentID = next.ID
		r.movable = nil
		r.canRollAgain = false
		res.NextPlayerID = next.ID
	}

	return res, nil
}

// Snapshot returns a deep copy of the room state.
func (r *Room) Snapshot() *State {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := &State{
		Code:            r.code,
		Players:         make([]Player, len(r.players)),
		Pieces:          make(map[board.Color][]engine.Piece, len(r.pieces)),
		CurrentPlayerID: r.currentID,
		GameStarted:     r.gameStarted,
		GameOver:        r.gameOver,
		Winner:          r.winner,
		LastDice:        r.lastDice,
		CanRollAgain:    r.canRollAgain,
	}
	for i, p := range r.players {
		s.Players[i] = *p
	}
	for c, pieces := range r.pieces {
		cp := make([]engine.Piece, len(pieces))
		for i, piece := range pieces {
			cp[i] = *piece
		}
		s.Pieces[c] = cp
	}
	if r.movable != nil {
		s.Movable = append([]int(nil), r.movable...)
	}
	return s
}

// PlayerCount returns the current number of seated players.
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// advanceTurn hands the turn to the next player in join order, wrapping
// around the live player sequence. Callers hold the room lock.
func (r *Room) advanceTurn() *Player {
	idx := 0
	for i, p := range r.players {
		if p.ID == r.currentID {
			idx = i
			break
		}
	}
	next := r.players[(idx+1)%len(r.players)]
	r.currentID = next.ID
	r.canRollAgain = false
	r.movable = nil
	return next
}

// playerByID returns the seated player with the given ID, or nil. Callers
// hold the room lock.
func (r *Room) playerByID(id string) *Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// nextColor returns the first palette color not yet taken. Callers hold the
// room lock.
func (r *Room) nextColor() (board.Color, bool) {
	for _, c := range board.Palette {
		taken := false
		for _, p := range r.players {
			if p.Color == c {
				taken = true
				break
			}
		}
		if !taken {
			return c, true
		}
	}
	return "", false
}

func containsSlot(slots []int, slot int) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}
