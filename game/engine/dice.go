package engine

import (
	"math/rand/v2"

	"github.com/wricardo/ludo-server/game/board"
)

// Roller produces a die value in [1, MaxDie]. Rooms take a Roller so tests
// and simulations can script exact sequences.
type Roller func() int

// NewRoller returns a uniformly random roller.
func NewRoller() Roller {
	return func() int {
		return rand.IntN(board.MaxDie) + 1
	}
}

// NewSeededRoller returns a deterministic roller for reproducible runs.
func NewSeededRoller(seed uint64) Roller {
	rng := rand.New(rand.NewPCG(seed, 0))
	return func() int {
		return rng.IntN(board.MaxDie) + 1
	}
}
