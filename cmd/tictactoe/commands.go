package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"ctchen222/bitboard-tic-tac-toe/internal/arena"
	"ctchen222/bitboard-tic-tac-toe/internal/bot"
	"ctchen222/bitboard-tic-tac-toe/internal/config"
	"ctchen222/bitboard-tic-tac-toe/internal/console"
	"ctchen222/bitboard-tic-tac-toe/internal/game"
	"ctchen222/bitboard-tic-tac-toe/internal/player"
	"ctchen222/bitboard-tic-tac-toe/internal/room"
)

// play runs one game on the terminal, seating the computer as configured.
func play(ctx context.Context, cfg *config.Config, engine *bot.Engine, in io.Reader, out io.Writer, logger *slog.Logger) error {
	prompt := console.NewPrompt(in, out)

	seat := func(m game.PlayerMark) *player.Player {
		if cfg.ComputerPlays(m) {
			p := player.NewPlayer("computer-"+string(m), "Computer", m, engine)
			p.IsBot = true
			return p
		}
		return player.NewPlayer("human-"+string(m), "Human", m, prompt)
	}

	r := room.NewRoom(seat(game.PlayerX), seat(game.PlayerO), cfg.FirstMark(), console.NewRenderer(out, cfg.Color), logger)
	res, err := r.Run(ctx)
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(out, "Game interrupted")
		return nil
	}
	if err != nil {
		return err
	}
	if res.Abandoned {
		fmt.Fprintf(out, "Player %s quit\n", res.QuitBy)
	}
	return nil
}

// selfplay runs the engine, seated as X, through a batch of games and prints
// the tally. lost reports whether the engine lost any of them.
func selfplay(ctx context.Context, engine *bot.Engine, args []string, out io.Writer, logger *slog.Logger) (lost bool, err error) {
	fs := flag.NewFlagSet("selfplay", flag.ContinueOnError)
	fs.SetOutput(out)
	games := fs.Int("games", 100, "number of games to play")
	workers := fs.Int("workers", runtime.NumCPU(), "games played at once")
	opponent := fs.String("opponent", "minimax", "opponent seated as O: minimax or random")
	seed := fs.Uint64("seed", 1, "seed for the random opponent")
	if err := fs.Parse(args); err != nil {
		return false, err
	}

	engineSeat := func(int) player.Mover { return engine }
	var opponentSeat arena.Factory
	switch *opponent {
	case "minimax":
		opponentSeat = engineSeat
	case "random":
		opponentSeat = func(i int) player.Mover { return arena.NewRandomMover(*seed + uint64(i)) }
	default:
		return false, fmt.Errorf("unknown opponent %q", *opponent)
	}

	sum, err := arena.New(engineSeat, opponentSeat,
		arena.WithGames(*games),
		arena.WithWorkers(*workers),
		arena.WithLogger(logger),
	).Run(ctx)
	if err != nil {
		return false, err
	}

	fmt.Fprintf(out, "games: %d\n", sum.Games)
	fmt.Fprintf(out, "X wins: %d\n", sum.XWins)
	fmt.Fprintf(out, "O wins: %d\n", sum.OWins)
	fmt.Fprintf(out, "draws: %d\n", sum.Draws)
	fmt.Fprintf(out, "first to move wins: %d\n", sum.FirstToMoveWins)
	fmt.Fprintf(out, "second to move wins: %d\n", sum.SecondToMoveWins)

	if *opponent == "minimax" {
		return sum.XWins+sum.OWins > 0, nil
	}
	return sum.OWins > 0, nil
}

// analyze searches one position, given as three rows joined by '/', and
// prints the chosen move with the score of every legal move.
func analyze(ctx context.Context, engine *bot.Engine, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(out)
	turn := fs.String("turn", "X", "side to move: X or O")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New(`analyze needs one position such as "XX./OO./..."`)
	}

	mark := game.PlayerMark(strings.ToUpper(*turn))
	if !mark.Valid() {
		return fmt.Errorf("unknown side to move %q", *turn)
	}
	b, err := game.FromRows(mark, strings.Split(fs.Arg(0), "/")...)
	if err != nil {
		return err
	}

	res, err := engine.Analyze(ctx, b)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, b)
	fmt.Fprintf(out, "best move: %s (score %d)\n", res.Move, res.Score)
	for _, cs := range res.Scores {
		fmt.Fprintf(out, "  %s %3d\n", cs.Cell, cs.Score)
	}
	fmt.Fprintf(out, "nodes: %d, cutoffs: %d\n", res.Nodes, res.Cutoffs)
	return nil
}
