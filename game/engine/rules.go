package engine

import "github.com/wricardo/ludo-server/game/board"

// trackAdvance computes where a main-track piece of the given color lands
// after die steps. When the move crosses the color's stretch boundary the
// returned position is a home-stretch index and entersStretch is true.
// ok is false when the crossing would overshoot the final stretch cell;
// such a move is illegal and must be rejected, never clamped.
//
// Both CanMove and ApplyMove go through this single predicate so they can
// never disagree about boundary crossings.
func trackAdvance(cell, die int, c board.Color) (pos int, entersStretch, ok bool) {
	dist := board.DistanceToBoundary(cell, c)
	if die <= dist {
		return (cell + die) % board.TrackSize, false, true
	}
	idx := die - dist // steps past the boundary cell
	if idx > board.StretchEnd {
		return 0, false, false
	}
	return idx, true, true
}

// CanMove reports whether the piece may legally move by die. A piece at home
// needs the maximum face to enter the track. A piece on the main track can
// always move (wrapping is legal) unless the move would cross its stretch
// boundary and overshoot the finish. A piece in the home stretch may only
// move if it lands on or before the final cell.
func CanMove(p *Piece, die int, c board.Color) bool {
	if p.Finished() {
		return false
	}
	if p.AtStart() {
		return die == board.MaxDie
	}
	if p.InHomeStretch {
		return p.Position+die <= board.StretchEnd
	}
	_, _, ok := trackAdvance(p.Position, die, c)
	return ok
}

// ApplyMove executes a move in place and reports whether the piece moved.
// Callers must have screened the move with CanMove; an illegal move is a
// contract violation and leaves the piece untouched.
func ApplyMove(p *Piece, die int, c board.Color) bool {
	if !CanMove(p, die, c) {
		return false
	}
	switch {
	case p.AtStart():
		p.Position = board.EntryCell(c)
	case p.InHomeStretch:
		p.Position += die
	default:
		pos, enters, _ := trackAdvance(p.Position, die, c)
		p.Position = pos
		p.InHomeStretch = enters
	}
	return true
}

// ResolveCapture scans every other color's pieces for one resting at
// landedCell on the main track and sends it home. Safe cells are exempt:
// any number of pieces may coexist there. Pieces in their own home stretch
// are never capturable. At most one piece is captured per move; when more
// than one candidate occupies the cell the first in palette-then-slot order
// is taken, which keeps resolution deterministic.
func ResolveCapture(pieces map[board.Color][]*Piece, moving board.Color, landedCell int) *Capture {
	if board.IsSafeCell(landedCell) {
		return nil
	}
	for _, c := range board.Palette {
		if c == moving {
			continue
		}
		for _, p := range pieces[c] {
			if p.AtStart() || p.InHomeStretch {
				continue
			}
			if p.Position == landedCell {
				p.sendHome()
				return &Capture{Color: c, Slot: p.HomeSlot}
			}
		}
	}
	return nil
}

// HasWon reports whether every piece of the set has finished.
func HasWon(pieces []*Piece) bool {
	for _, p := range pieces {
		if !p.Finished() {
			return false
		}
	}
	return len(pieces) > 0
}

// MovableSlots returns the home slots of all pieces that can legally move
// by die, in slot order.
func MovableSlots(pieces []*Piece, die int, c board.Color) []int {
	var slots []int
	for _, p := range pieces {
		if CanMove(p, die, c) {
			slots = append(slots, p.HomeSlot)
		}
	}
	return slots
}

// ExtendsTurn reports whether the acting player keeps the turn after a move:
// a maximum-face roll or a capture grants another roll, but winning always
// ends the turn.
func ExtendsTurn(die int, captured, won bool) bool {
	if won {
		return false
	}
	return die == board.MaxDie || captured
}
