// Command simulate runs headless self-play games and prints seat statistics.
// Every player follows the same greedy policy (always move the lowest movable
// slot), so the results expose how much the seat order and the roll-again
// rules matter on their own.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/ludo-server/game/engine"
	"github.com/wricardo/ludo-server/game/room"
)

const maxTurnsPerGame = 100000

func main() {
	cmd := &cli.Command{
		Name:  "simulate",
		Usage: "run headless self-play games and report seat win rates",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "games",
				Value: 100,
				Usage: "number of games to play",
			},
			&cli.IntFlag{
				Name:  "players",
				Value: 4,
				Usage: "players per game (2-4)",
			},
			&cli.UintFlag{
				Name:  "seed",
				Value: 1,
				Usage: "dice seed for the first game; later games increment it",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "print the winner of every game",
			},
		},
		Action: runSimulation,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func runSimulation(ctx context.Context, cmd *cli.Command) error {
	games := int(cmd.Int("games"))
	players := int(cmd.Int("players"))
	seed := uint64(cmd.Uint("seed"))
	verbose := cmd.Bool("verbose")

	if players < 2 || players > 4 {
		return fmt.Errorf("players must be between 2 and 4, got %d", players)
	}
	if games < 1 {
		return fmt.Errorf("games must be positive, got %d", games)
	}

	wins := make(map[string]int, players)
	totalTurns := 0

	for i := 0; i < games; i++ {
		result, err := playGame(players, seed+uint64(i))
		if err != nil {
			return fmt.Errorf("game %d: %w", i+1, err)
		}
		wins[result.winner]++
		totalTurns += result.turns
		if verbose {
			fmt.Printf("game %d: %s won after %d turns\n", i+1, result.winner, result.turns)
		}
	}

	fmt.Printf("\nPlayed %d games with %d players (avg %.1f turns per game)\n\n",
		games, players, float64(totalTurns)/float64(games))
	for i := 0; i < players; i++ {
		name := seatName(i)
		pct := 100 * float64(wins[name]) / float64(games)
		fmt.Printf("  %-8s %5d wins (%5.1f%%)\n", name, wins[name], pct)
	}
	return nil
}

type gameResult struct {
	winner string
	turns  int
}

// playGame drives one full game with every seat playing the same greedy
// policy. The turn count includes forfeited turns.
func playGame(players int, seed uint64) (*gameResult, error) {
	reg := room.NewRegistry(room.WithRoller(engine.NewSeededRoller(seed)))

	r, err := reg.Create("seat-0", seatName(0))
	if err != nil {
		return nil, err
	}
	for i := 1; i < players; i++ {
		if _, _, err := reg.Join(r.Code(), fmt.Sprintf("seat-%d", i), seatName(i)); err != nil {
			return nil, err
		}
	}
	if err := r.Start("seat-0"); err != nil {
		return nil, err
	}

	current := "seat-0"
	for turn := 0; turn < maxTurnsPerGame; turn++ {
		roll, err := r.Roll(current)
		if err != nil {
			return nil, err
		}
		if len(roll.Movable) == 0 {
			if roll.TurnPassed {
				current = roll.NextPlayerID
			}
			continue
		}

		move, err := r.Move(current, roll.Movable[0])
		if err != nil {
			return nil, err
		}
		if move.Won {
			return &gameResult{winner: move.PlayerName, turns: turn + 1}, nil
		}
		if !move.RollAgain {
			current = move.NextPlayerID
		}
	}
	return nil, fmt.Errorf("no winner after %d turns", maxTurnsPerGame)
}

func seatName(i int) string {
	return fmt.Sprintf("seat-%d", i+1)
}
