package arena

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"

	"ctchen222/bitboard-tic-tac-toe/internal/game"
	"ctchen222/bitboard-tic-tac-toe/internal/player"
	"ctchen222/bitboard-tic-tac-toe/internal/room"

	"golang.org/x/sync/errgroup"
)

const defaultGames = 100

// Factory returns the mover for one seat of game n.
type Factory func(n int) player.Mover

// Summary tallies the finished games of a run.
type Summary struct {
	Games            int
	XWins            int
	OWins            int
	Draws            int
	FirstToMoveWins  int
	SecondToMoveWins int
}

// Arena plays a batch of games between the same two seats.
type Arena struct {
	x, o    Factory
	games   int
	workers int
	logger  *slog.Logger
}

type Option func(*Arena)

func WithGames(n int) Option {
	return func(a *Arena) { a.games = n }
}

func WithWorkers(n int) Option {
	return func(a *Arena) { a.workers = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *Arena) { a.logger = l }
}

// New creates an arena seating x's movers as X and o's movers as O.
func New(x, o Factory, opts ...Option) *Arena {
	a := &Arena{
		x:       x,
		o:       o,
		games:   defaultGames,
		workers: runtime.NumCPU(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.workers < 1 {
		a.workers = 1
	}
	a.logger = a.logger.With("component", "arena")
	return a
}

type tally struct {
	games, xWins, oWins, draws, firstWins, secondWins atomic.Int64
}

func (t *tally) record(res room.Result, first game.PlayerMark) {
	t.games.Add(1)
	switch res.Winner {
	case game.PlayerX:
		t.xWins.Add(1)
	case game.PlayerO:
		t.oWins.Add(1)
	default:
		t.draws.Add(1)
		return
	}
	if res.Winner == first {
		t.firstWins.Add(1)
	} else {
		t.secondWins.Add(1)
	}
}

func (t *tally) summary() Summary {
	return Summary{
		Games:            int(t.games.Load()),
		XWins:            int(t.xWins.Load()),
		OWins:            int(t.oWins.Load()),
		Draws:            int(t.draws.Load()),
		FirstToMoveWins:  int(t.firstWins.Load()),
		SecondToMoveWins: int(t.secondWins.Load()),
	}
}

// Run plays every game and returns the tally. Even-numbered games start with
// X, odd-numbered ones with O. Once ctx is canceled no further games are
// started and the tally of the finished ones is returned with the error.
func (a *Arena) Run(ctx context.Context) (Summary, error) {
	var t tally

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)

	for i := range a.games {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return a.play(gctx, i, &t)
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	sum := t.summary()
	a.logger.Info("arena finished", "games", sum.Games, "x_wins", sum.XWins, "o_wins", sum.OWins, "draws", sum.Draws)
	return sum, err
}

func (a *Arena) play(ctx context.Context, i int, t *tally) error {
	first := game.PlayerX
	if i%2 == 1 {
		first = game.PlayerO
	}

	x := player.NewPlayer(fmt.Sprintf("x-%d", i), "X", game.PlayerX, a.x(i))
	x.IsBot = true
	o := player.NewPlayer(fmt.Sprintf("o-%d", i), "O", game.PlayerO, a.o(i))
	o.IsBot = true

	res, err := room.NewRoom(x, o, first, nil, a.logger).Run(ctx)
	if err != nil {
		return fmt.Errorf("game %d: %w", i, err)
	}
	if res.Abandoned {
		return fmt.Errorf("game %d: abandoned by %s", i, res.QuitBy)
	}

	t.record(res, first)
	a.logger.Debug("game recorded", "game", i, "room.id", res.RoomID, "first", first, "status", res.Status, "winner", res.Winner)
	return nil
}
