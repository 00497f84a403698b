package player

//go:generate mockgen -source=player.go -destination=../mocks/mock_player.go -package=mocks

import (
	"context"
	"errors"

	"ctchen222/bitboard-tic-tac-toe/internal/game"
)

// ErrQuit is returned by a Mover whose player walked away from the game.
var ErrQuit = errors.New("player quit")

// Mover is an interface that abstracts where a player's moves come from:
// the console for a human, the search engine for the computer.
type Mover interface {
	NextMove(ctx context.Context, b game.Board) (game.Cell, error)
}

// Player represents one seat in a game.
type Player struct {
	ID    string
	Name  string
	Mark  game.PlayerMark
	IsBot bool
	Mover Mover
}

// NewPlayer creates a player seated as mark.
func NewPlayer(id, name string, mark game.PlayerMark, mover Mover) *Player {
	return &Player{
		ID:    id,
		Name:  name,
		Mark:  mark,
		Mover: mover,
	}
}
