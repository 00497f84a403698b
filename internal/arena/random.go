package arena

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"

	"ctchen222/bitboard-tic-tac-toe/internal/game"
	"ctchen222/bitboard-tic-tac-toe/internal/player"
)

var ErrBoardFull = errors.New("no empty cells left")

var _ player.Mover = (*RandomMover)(nil)

// RandomMover plays a uniformly random empty cell. It is safe for concurrent use.
type RandomMover struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomMover(seed uint64) *RandomMover {
	return &RandomMover{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (m *RandomMover) NextMove(ctx context.Context, b game.Board) (game.Cell, error) {
	if err := ctx.Err(); err != nil {
		return game.Cell{}, err
	}
	empty := b.EmptyCells()
	if len(empty) == 0 {
		return game.Cell{}, ErrBoardFull
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return empty[m.rng.IntN(len(empty))], nil
}
