package game

import (
	"errors"
	"fmt"
)

var (
	ErrGameFinished = errors.New("game already finished")
	ErrCellOccupied = errors.New("cell already occupied")
)

// Status is the state of a game: in progress, won or drawn.
type Status int

const (
	StatusInProgress Status = iota
	StatusWon
	StatusDrawn
)

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in_progress"
	case StatusWon:
		return "won"
	case StatusDrawn:
		return "drawn"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Game drives a Board through validated moves and tracks the outcome.
type Game struct {
	board   Board
	status  Status
	winner  PlayerMark
	history []Cell
}

// NewGame starts an empty game with first to move. Anything other than
// PlayerO starts with X.
func NewGame(first PlayerMark) *Game {
	b := NewBoard()
	if first == PlayerO {
		b.SwitchTurn()
	}
	return &Game{
		board:   b,
		status:  StatusInProgress,
		winner:  None,
		history: make([]Cell, 0, Size*Size),
	}
}

// Move plays the current player's mark at c.
func (g *Game) Move(c Cell) error {
	if g.status != StatusInProgress {
		return ErrGameFinished
	}
	if !c.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidCell, c)
	}
	if !g.board.IsEmpty(c) {
		return fmt.Errorf("%w: %s", ErrCellOccupied, c)
	}

	g.board.Place(c)
	g.history = append(g.history, c)

	switch {
	case g.board.HasWinner():
		g.status = StatusWon
		g.winner = g.board.Turn()
	case g.board.IsFull():
		g.status = StatusDrawn
	default:
		g.board.SwitchTurn()
	}
	return nil
}

// Board returns a copy of the current board.
func (g *Game) Board() Board {
	return g.board
}

// Turn returns the mark to move. Once the game is over it is the mark that
// made the last move.
func (g *Game) Turn() PlayerMark {
	return g.board.Turn()
}

func (g *Game) Status() Status {
	return g.status
}

// Winner is None unless the game is won.
func (g *Game) Winner() PlayerMark {
	return g.winner
}

// IsFinished reports whether the game has been won or drawn.
func (g *Game) IsFinished() bool {
	return g.status != StatusInProgress
}

// History returns the cells played so far, in order.
func (g *Game) History() []Cell {
	return append([]Cell(nil), g.history...)
}
