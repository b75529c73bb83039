package engine

import "github.com/wricardo/ludo-server/game/board"

// AtHome marks a piece that has not yet entered the main track.
const AtHome = -1

// Piece is one of the four movable tokens of a color. Position is semantic:
// AtHome, a main-track cell (0..51) when InHomeStretch is false, or a
// home-stretch index (0..6) when InHomeStretch is true. HomeSlot is a fixed
// identity index used for addressing; it never changes.
type Piece struct {
	Position      int  `json:"position"`
	InHomeStretch bool `json:"in_home_stretch"`
	HomeSlot      int  `json:"home_slot"`
}

// Location is a broadcast-friendly snapshot of a piece position.
type Location struct {
	Position      int  `json:"position"`
	InHomeStretch bool `json:"in_home_stretch"`
}

// Capture identifies a piece sent back home by an opposing move.
type Capture struct {
	Color board.Color `json:"color"`
	Slot  int         `json:"slot"`
}

// NewPieces creates the four pieces of one color, all at home.
func NewPieces() []*Piece {
	pieces := make([]*Piece, board.PiecesPerColor)
	for slot := range pieces {
		pieces[slot] = &Piece{Position: AtHome, HomeSlot: slot}
	}
	return pieces
}

// AtStart reports whether the piece has not yet entered the track.
func (p *Piece) AtStart() bool {
	return !p.InHomeStretch && p.Position == AtHome
}

// Finished reports whether the piece has reached the final stretch cell.
// Finished pieces are never moved or captured again.
func (p *Piece) Finished() bool {
	return p.InHomeStretch && p.Position == board.StretchEnd
}

// Location returns the piece's current position snapshot.
func (p *Piece) Location() Location {
	return Location{Position: p.Position, InHomeStretch: p.InHomeStretch}
}

// sendHome resets a captured piece to its unplaced state.
func (p *Piece) sendHome() {
	p.Position = AtHome
	p.InHomeStretch = false
}
