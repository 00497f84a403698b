package arena

import (
	"context"
	"testing"

	"ctchen222/bitboard-tic-tac-toe/internal/bot"
	"ctchen222/bitboard-tic-tac-toe/internal/game"
	"ctchen222/bitboard-tic-tac-toe/internal/player"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func engineFactory() Factory {
	e := bot.NewEngine(bot.DefaultOptions())
	return func(int) player.Mover { return e }
}

func randomFactory(seed uint64) Factory {
	return func(i int) player.Mover { return NewRandomMover(seed + uint64(i)) }
}

func TestArena_EngineAgainstItselfAlwaysDraws(t *testing.T) {
	a := New(engineFactory(), engineFactory(), WithGames(6), WithWorkers(3))

	sum, err := a.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, Summary{Games: 6, Draws: 6}, sum)
}

func TestArena_EngineNeverLosesToRandom(t *testing.T) {
	tests := []struct {
		name   string
		x, o   Factory
		engine game.PlayerMark
	}{
		{name: "Engine as X", x: engineFactory(), o: randomFactory(1), engine: game.PlayerX},
		{name: "Engine as O", x: randomFactory(99), o: engineFactory(), engine: game.PlayerO},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum, err := New(tt.x, tt.o, WithGames(20), WithWorkers(4)).Run(context.Background())

			require.NoError(t, err)
			assert.Equal(t, 20, sum.Games)
			assert.Equal(t, sum.Games, sum.XWins+sum.OWins+sum.Draws)
			assert.Equal(t, sum.XWins+sum.OWins, sum.FirstToMoveWins+sum.SecondToMoveWins)
			if tt.engine == game.PlayerX {
				assert.Zero(t, sum.OWins)
			} else {
				assert.Zero(t, sum.XWins)
			}
		})
	}
}

func TestArena_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum, err := New(engineFactory(), engineFactory(), WithGames(10)).Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, sum.Games)
}

func TestNew_ClampsWorkers(t *testing.T) {
	a := New(engineFactory(), engineFactory(), WithWorkers(0))

	assert.Equal(t, 1, a.workers)
	assert.Equal(t, defaultGames, a.games)
}

func TestRandomMover(t *testing.T) {
	t.Run("Picks only empty cells", func(t *testing.T) {
		b, err := game.FromRows(game.PlayerX, "XOX", "OXO", "O..")
		require.NoError(t, err)
		m := NewRandomMover(7)

		for range 50 {
			c, err := m.NextMove(context.Background(), b)
			require.NoError(t, err)
			assert.True(t, b.IsEmpty(c), "picked occupied cell %s", c)
		}
	})

	t.Run("Same seed gives same moves", func(t *testing.T) {
		a, b := NewRandomMover(42), NewRandomMover(42)
		for range 10 {
			ca, _ := a.NextMove(context.Background(), game.NewBoard())
			cb, _ := b.NextMove(context.Background(), game.NewBoard())
			assert.Equal(t, ca, cb)
		}
	})

	t.Run("Full board", func(t *testing.T) {
		b, err := game.FromRows(game.PlayerO, "XOX", "XOO", "OXX")
		require.NoError(t, err)

		_, err = NewRandomMover(1).NextMove(context.Background(), b)

		assert.ErrorIs(t, err, ErrBoardFull)
	})
}
