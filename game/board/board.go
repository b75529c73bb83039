package board

// Color identifies one of the four player colors.
type Color string

const (
	Red    Color = "red"
	Green  Color = "green"
	Yellow Color = "yellow"
	Blue   Color = "blue"
)

// Palette lists all colors in assignment and turn-seating order.
// The creator of a room is always Red; later joiners take the first
// unused color in this order.
var Palette = []Color{Red, Green, Yellow, Blue}

const (
	// TrackSize is the number of cells on the shared main track.
	TrackSize = 52

	// StretchEnd is the terminal home-stretch index; a piece there is finished.
	StretchEnd = 6

	// PiecesPerColor is the number of tokens each player controls.
	PiecesPerColor = 4

	// MaxDie is the highest die face. Rolling it unlocks pieces from home
	// and grants another roll.
	MaxDie = 6

	// MaxPlayers is the seat limit per room, one per color.
	MaxPlayers = 4
)

// entryCells maps each color to the main-track cell where its pieces enter
// from home. Entries are spaced a quarter track apart.
var entryCells = map[Color]int{
	Red:    0,
	Green:  13,
	Yellow: 26,
	Blue:   39,
}

// safeCells are the main-track cells where no capture can occur. The set is
// the four entry cells plus the four star cells, shared by all colors.
var safeCells = map[int]bool{
	0:  true,
	8:  true,
	13: true,
	21: true,
	26: true,
	34: true,
	39: true,
	47: true,
}

// Valid reports whether c is one of the four playable colors.
func (c Color) Valid() bool {
	_, ok := entryCells[c]
	return ok
}

// EntryCell returns the main-track cell where pieces of the given color
// enter from home.
func EntryCell(c Color) int {
	return entryCells[c]
}

// StretchBoundary returns the last main-track cell a piece of the given
// color occupies before turning into its private home stretch. It is the
// cell immediately before the color's entry cell.
func StretchBoundary(c Color) int {
	return (entryCells[c] + TrackSize - 1) % TrackSize
}

// IsSafeCell reports whether a main-track cell is capture-exempt.
func IsSafeCell(cell int) bool {
	return safeCells[cell]
}

// DistanceToBoundary returns how many forward steps a piece at the given
// main-track cell is from its color's stretch boundary. Zero means the piece
// sits on the boundary itself; the next step past it enters the stretch.
func DistanceToBoundary(cell int, c Color) int {
	return (StretchBoundary(c) - cell + TrackSize) % TrackSize
}
