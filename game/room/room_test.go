package room

import (
	"errors"
	"testing"

	"github.com/wricardo/ludo-server/game/board"
	"github.com/wricardo/ludo-server/game/engine"
)

// scriptedRoller cycles through the given faces so turn flow is exact.
func scriptedRoller(rolls ...int) engine.Roller {
	i := 0
	return func() int {
		v := rolls[i%len(rolls)]
		i++
		return v
	}
}

func newTestRoom(t *testing.T, g *Registry) *Room {
	t.Helper()
	r, err := g.Create("alice", "Alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return r
}

func TestCreate_HostIsRed(t *testing.T) {
	g := NewRegistry()
	r := newTestRoom(t, g)

	s := r.Snapshot()
	if len(s.Players) != 1 {
		t.Fatalf("player count = %d, want 1", len(s.Players))
	}
	host := s.Players[0]
	if host.Name != "Alice" || host.Color != board.Red || !host.IsHost {
		t.Errorf("host = %+v, want Alice/red/host", host)
	}
	if s.GameStarted {
		t.Error("game should not be started at creation")
	}
	if got := len(s.Pieces[board.Red]); got != board.PiecesPerColor {
		t.Errorf("red pieces = %d, want %d", got, board.PiecesPerColor)
	}
	for _, p := range s.Pieces[board.Red] {
		if p.Position != engine.AtHome {
			t.Errorf("piece %d not at home: %+v", p.HomeSlot, p)
		}
	}
}

func TestJoin_ColorAssignmentOrder(t *testing.T) {
	g := NewRegistry()
	r := newTestRoom(t, g)

	want := []board.Color{board.Green, board.Yellow, board.Blue}
	for i, c := range want {
		_, p, err := g.Join(r.Code(), string(rune('b'+i)), "P")
		if err != nil {
			t.Fatalf("Join %d: %v", i, err)
		}
		if p.Color != c {
			t.Errorf("joiner %d got %s, want %s", i, p.Color, c)
		}
	}

	if _, _, err := g.Join(r.Code(), "extra", "Late"); !errors.Is(err, ErrRoomFull) {
		t.Errorf("fifth join err = %v, want ErrRoomFull", err)
	}
}

func TestJoin_AfterStartRejected(t *testing.T) {
	g := NewRegistry()
	r := newTestRoom(t, g)
	if _, _, err := g.Join(r.Code(), "bob", "Bob"); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if err := r.Start("alice"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, _, err := g.Join(r.Code(), "carol", "Carol"); !errors.Is(err, ErrGameAlreadyStarted) {
		t.Errorf("join after start err = %v, want ErrGameAlreadyStarted", err)
	}
}

func TestStart_Authorization(t *testing.T) {
	g := NewRegistry()
	r := newTestRoom(t, g)

	if err := r.Start("alice"); !errors.Is(err, ErrNotEnoughPlayers) {
		t.Errorf("solo start err = %v, want ErrNotEnoughPlayers", err)
	}

	if _, _, err := g.Join(r.Code(), "bob", "Bob"); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if err := r.Start("bob"); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("non-host start err = %v, want ErrNotAuthorized", err)
	}
	if err := r.Start("alice"); err != nil {
		t.Fatalf("host start: %v", err)
	}
	if err := r.Start("alice"); !errors.Is(err, ErrGameAlreadyStarted) {
		t.Errorf("second start err = %v, want ErrGameAlreadyStarted", err)
	}
	if s := r.Snapshot(); s.CurrentPlayerID != "alice" {
		t.Errorf("first turn = %s, want alice", s.CurrentPlayerID)
	}
}

// The create/join/start/roll/move walkthrough: Alice hosts as red, Bob joins
// as green, Alice rolls a six, frees piece 0 onto the red entry cell, and
// keeps the turn.
func TestScenario_FirstEntryWithExtension(t *testing.T) {
	g := NewRegistry(WithRoller(scriptedRoller(6)))
	r := newTestRoom(t, g)

	_, bob, err := g.Join(r.Code(), "bob", "Bob")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if bob.Color != board.Green {
		t.Fatalf("Bob color = %s, want green", bob.Color)
	}
	if err := r.Start("alice"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	roll, err := r.Roll("alice")
	if err != nil {
		t.Fatalf("Roll: %v", err)
	}
	if roll.Die != 6 {
		t.Fatalf("die = %d, want 6", roll.Die)
	}
	if len(roll.Movable) != board.PiecesPerColor {
		t.Errorf("movable = %v, want all four home pieces", roll.Movable)
	}

	move, err := r.Move("alice", 0)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if move.To.Position != board.EntryCell(board.Red) || move.To.InHomeStretch {
		t.Errorf("piece landed at %+v, want red entry cell", move.To)
	}
	if !move.RollAgain {
		t.Error("a six should grant another roll")
	}
	if s := r.Snapshot(); s.CurrentPlayerID != "alice" || !s.CanRollAgain {
		t.Errorf("turn state = %s/%v, want alice with roll-again", s.CurrentPlayerID, s.CanRollAgain)
	}
}

func TestRoll_TurnForfeitedWhenNothingMoves(t *testing.T) {
	g := NewRegistry(WithRoller(scriptedRoller(3)))
	r := newTestRoom(t, g)
	if _, _, err := g.Join(r.Code(), "bob", "Bob"); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if err := r.Start("alice"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// All of Alice's pieces are at home and the face is not a six.
	roll, err := r.Roll("alice")
	if err != nil {
		t.Fatalf("Roll: %v", err)
	}
	if len(roll.Movable) != 0 || !roll.TurnPassed || roll.NextPlayerID != "bob" {
		t.Errorf("roll = %+v, want forfeit passing to bob", roll)
	}
	if s := r.Snapshot(); s.CurrentPlayerID != "bob" {
		t.Errorf("current = %s, want bob", s.CurrentPlayerID)
	}
}

func TestRoll_MaxFaceKeepsTurnEvenWithoutMoves(t *testing.T) {
	g := NewRegistry(WithRoller(scriptedRoller(6)))
	r := newTestRoom(t, g)
	if _, _, err := g.Join(r.Code(), "bob", "Bob"); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if err := r.Start("alice"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Freeze every red piece on the final stretch cell except one stuck at
	// index 5; a six cannot move anything.
	r.mu.Lock()
	for slot, p := range r.pieces[board.Red] {
		p.InHomeStretch = true
		p.Position = board.StretchEnd
		if slot == 3 {
			p.Position = 5
		}
	}
	r.mu.Unlock()

	roll, err := r.Roll("alice")
	if err != nil {
		t.Fatalf("Roll: %v", err)
	}
	if len(roll.Movable) != 0 {
		t.Fatalf("movable = %v, want none", roll.Movable)
	}
	if !roll.RollAgain || roll.TurnPassed {
		t.Errorf("roll = %+v, want roll-again without passing", roll)
	}
	if s := r.Snapshot(); s.CurrentPlayerID != "alice" {
		t.Errorf("current = %s, want alice", s.CurrentPlayerID)
	}
}

func TestRoll_OrderEnforced(t *testing.T) {
	g := NewRegistry(WithRoller(scriptedRoller(6)))
	r := newTestRoom(t, g)
	if _, _, err := g.Join(r.Code(), "bob", "Bob"); err != nil {
		t.Fatalf("Join: %v", err)
	}

	if _, err := r.Roll("alice"); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("roll before start err = %v, want ErrIllegalMove", err)
	}

	if err := r.Start("alice"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := r.Roll("bob"); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("out-of-turn roll err = %v, want ErrNotYourTurn", err)
	}

	if _, err := r.Roll("alice"); err != nil {
		t.Fatalf("Roll: %v", err)
	}
	// A move is owed; rolling again now is rejected.
	if _, err := r.Roll("alice"); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("roll while move owed err = %v, want ErrIllegalMove", err)
	}
}

func TestMove_Validation(t *testing.T) {
	g := NewRegistry(WithRoller(scriptedRoller(6)))
	r := newTestRoom(t, g)
	if _, _, err := g.Join(r.Code(), "bob", "Bob"); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if err := r.Start("alice"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if _, err := r.Move("alice", 0); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("move without roll err = %v, want ErrIllegalMove", err)
	}

	if _, err := r.Roll("alice"); err != nil {
		t.Fatalf("Roll: %v", err)
	}
	if _, err := r.Move("bob", 0); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("out-of-turn move err = %v, want ErrNotYourTurn", err)
	}
	if _, err := r.Move("alice", 9); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("bad slot err = %v, want ErrIllegalMove", err)
	}
}

// Bob lands exactly on Alice's piece on a non-safe cell: the piece goes
// home and Bob keeps the turn (capture extension).
func TestScenario_CaptureGrantsExtraTurn(t *testing.T) {
	g := NewRegistry(WithRoller(scriptedRoller(3)))
	r := newTestRoom(t, g)
	if _, _, err := g.Join(r.Code(), "bob", "Bob"); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if err := r.Start("alice"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	r.mu.Lock()
	r.pieces[board.Red][1].Position = 20 // non-safe cell
	r.pieces[board.Green][0].Position = 17
	r.currentID = "bob"
	r.mu.Unlock()

	roll, err := r.Roll("bob")
	if err != nil {
		t.Fatalf("Roll: %v", err)
	}
	if !containsSlot(roll.Movable, 0) {
		t.Fatalf("movable = %v, want slot 0", roll.Movable)
	}

	move, err := r.Move("bob", 0)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if move.Captured == nil || move.Captured.Color != board.Red || move.Captured.Slot != 1 {
		t.Fatalf("captured = %+v, want red slot 1", move.Captured)
	}
	if !move.RollAgain {
		t.Error("capture should grant another roll")
	}

	s := r.Snapshot()
	if s.Pieces[board.Red][1].Position != engine.AtHome {
		t.Errorf("captured piece at %d, want home", s.Pieces[board.Red][1].Position)
	}
	if s.CurrentPlayerID != "bob" {
		t.Errorf("current = %s, want bob", s.CurrentPlayerID)
	}
}

func TestMove_SafeCellNoCaptureNoExtension(t *testing.T) {
	g := NewRegistry(WithRoller(scriptedRoller(3)))
	r := newTestRoom(t, g)
	if _, _, err := g.Join(r.Code(), "bob", "Bob"); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if err := r.Start("alice"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	r.mu.Lock()
	r.pieces[board.Red][0].Position = 21 // safe star cell
	r.pieces[board.Green][0].Position = 18
	r.currentID = "bob"
	r.mu.Unlock()

	if _, err := r.Roll("bob"); err != nil {
		t.Fatalf("Roll: %v", err)
	}
	move, err := r.Move("bob", 0)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if move.Captured != nil {
		t.Errorf("captured on safe cell: %+v", move.Captured)
	}
	if move.RollAgain {
		t.Error("plain move should not extend the turn")
	}
	if move.NextPlayerID != "alice" {
		t.Errorf("next = %s, want alice", move.NextPlayerID)
	}

	s := r.Snapshot()
	if s.Pieces[board.Red][0].Position != 21 || s.Pieces[board.Green][0].Position != 21 {
		t.Error("both pieces should coexist on the safe cell")
	}
}

// The fourth piece reaching the final stretch cell wins: the win flag fires,
// the game ends, and the turn never advances again.
func TestScenario_WinEndsGame(t *testing.T) {
	g := NewRegistry(WithRoller(scriptedRoller(2)))
	r := newTestRoom(t, g)
	if _, _, err := g.Join(r.Code(), "bob", "Bob"); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if err := r.Start("alice"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	r.mu.Lock()
	for slot, p := range r.pieces[board.Red] {
		p.InHomeStretch = true
		p.Position = board.StretchEnd
		if slot == 3 {
			p.Position = 4
		}
	}
	r.mu.Unlock()

	if _, err := r.Roll("alice"); err != nil {
		t.Fatalf("Roll: %v", err)
	}
	move, err := r.Move("alice", 3)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if !move.Won {
		t.Fatal("expected the winning move to report the win")
	}
	if move.RollAgain || move.NextPlayerID != "" {
		t.Errorf("winning move = %+v, want neither extension nor hand-off", move)
	}

	s := r.Snapshot()
	if !s.GameOver || s.Winner != board.Red {
		t.Errorf("game over = %v winner = %s, want red win", s.GameOver, s.Winner)
	}
	if _, err := r.Roll("bob"); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("roll after win err = %v, want ErrIllegalMove", err)
	}
}

func TestLeave_HostMigrationAndTurnHandOff(t *testing.T) {
	g := NewRegistry(WithRoller(scriptedRoller(3)))
	r := newTestRoom(t, g)
	for _, id := range []string{"bob", "carol"} {
		if _, _, err := g.Join(r.Code(), id, id); err != nil {
			t.Fatalf("Join %s: %v", id, err)
		}
	}
	if err := r.Start("alice"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Alice holds the turn and the host seat; her departure hands both to
	// Bob, the earliest remaining joiner.
	_, res, err := g.Leave("alice")
	if err != nil {
		t.Fatalf("Leave: %v", err)
	}
	if !res.WasHost || res.NewHostID != "bob" {
		t.Errorf("leave = %+v, want host migrated to bob", res)
	}
	if res.NextPlayerID != "bob" {
		t.Errorf("next = %s, want bob", res.NextPlayerID)
	}

	s := r.Snapshot()
	if len(s.Players) != 2 || s.CurrentPlayerID != "bob" {
		t.Errorf("state = %d players current %s, want 2/bob", len(s.Players), s.CurrentPlayerID)
	}
	if !s.Players[0].IsHost {
		t.Error("earliest remaining joiner should be host")
	}
	if _, ok := s.Pieces[board.Red]; ok {
		t.Error("departed player's pieces should leave the board")
	}
}

func TestLeave_MidTurnOfAnotherPlayer(t *testing.T) {
	g := NewRegistry(WithRoller(scriptedRoller(3)))
	r := newTestRoom(t, g)
	for _, id := range []string{"bob", "carol"} {
		if _, _, err := g.Join(r.Code(), id, id); err != nil {
			t.Fatalf("Join %s: %v", id, err)
		}
	}
	if err := r.Start("alice"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Carol leaves while Alice holds the turn; turn ownership is untouched.
	if _, res, err := g.Leave("carol"); err != nil || res.NextPlayerID != "" {
		t.Fatalf("Leave carol: res=%+v err=%v", res, err)
	}
	if s := r.Snapshot(); s.CurrentPlayerID != "alice" {
		t.Errorf("current = %s, want alice", s.CurrentPlayerID)
	}
}

func TestLeave_LastPlayerDestroysRoom(t *testing.T) {
	g := NewRegistry()
	r := newTestRoom(t, g)
	code := r.Code()

	if _, _, err := g.Join(code, "bob", "Bob"); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if g.Count() != 1 {
		t.Fatalf("room count = %d, want 1", g.Count())
	}

	if _, res, err := g.Leave("bob"); err != nil || res.Empty {
		t.Fatalf("first leave: res=%+v err=%v", res, err)
	}
	if g.Count() != 1 {
		t.Error("room must survive while players remain")
	}

	_, res, err := g.Leave("alice")
	if err != nil {
		t.Fatalf("last leave: %v", err)
	}
	if !res.Empty {
		t.Error("last departure should report an empty room")
	}
	if g.Count() != 0 {
		t.Errorf("room count = %d, want 0 after destruction", g.Count())
	}
	if _, err := g.Get(code); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("destroyed room lookup err = %v, want ErrRoomNotFound", err)
	}
}

func TestLeave_PendingMoveCleared(t *testing.T) {
	g := NewRegistry(WithRoller(scriptedRoller(6, 6)))
	r := newTestRoom(t, g)
	for _, id := range []string{"bob", "carol"} {
		if _, _, err := g.Join(r.Code(), id, id); err != nil {
			t.Fatalf("Join %s: %v", id, err)
		}
	}
	if err := r.Start("alice"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := r.Roll("alice"); err != nil {
		t.Fatalf("Roll: %v", err)
	}

	// Alice owes a move but disconnects; Bob starts fresh at the roll phase.
	if _, _, err := g.Leave("alice"); err != nil {
		t.Fatalf("Leave: %v", err)
	}
	if _, err := r.Roll("bob"); err != nil {
		t.Errorf("Bob's roll after hand-off: %v", err)
	}
}
