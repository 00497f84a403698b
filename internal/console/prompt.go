package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"ctchen222/bitboard-tic-tac-toe/internal/game"
	"ctchen222/bitboard-tic-tac-toe/internal/player"
)

const quitCommand = "q"

var _ player.Mover = (*Prompt)(nil)

// Prompt reads a human player's moves, one per line, in the "A2" notation.
// Bad or occupied cells are reported and the line is read again, so every
// move it returns is legal on the board it was asked about.
//
// Lines are read on a background goroutine so a wait for input can be
// canceled. A line read after a cancellation is kept for the next call.
type Prompt struct {
	scanner *bufio.Scanner
	out     io.Writer

	once  sync.Once
	lines chan inputLine
}

type inputLine struct {
	text string
	err  error
}

// NewPrompt creates a prompt reading from r and writing hints to w.
func NewPrompt(r io.Reader, w io.Writer) *Prompt {
	return &Prompt{
		scanner: bufio.NewScanner(r),
		out:     w,
		lines:   make(chan inputLine),
	}
}

func (p *Prompt) read() {
	defer close(p.lines)
	for p.scanner.Scan() {
		p.lines <- inputLine{text: p.scanner.Text()}
	}
	if err := p.scanner.Err(); err != nil {
		p.lines <- inputLine{err: err}
	}
}

// NextMove implements player.Mover. It returns player.ErrQuit when the user
// types "q" or the input ends, and ctx.Err() as soon as ctx is done.
func (p *Prompt) NextMove(ctx context.Context, b game.Board) (game.Cell, error) {
	p.once.Do(func() { go p.read() })

	fmt.Fprintln(p.out, `Input positions like this "A2"`)

	for {
		if err := ctx.Err(); err != nil {
			return game.Cell{}, err
		}

		var in inputLine
		var ok bool
		select {
		case <-ctx.Done():
			return game.Cell{}, ctx.Err()
		case in, ok = <-p.lines:
		}
		if !ok {
			return game.Cell{}, player.ErrQuit
		}
		if in.err != nil {
			return game.Cell{}, fmt.Errorf("failed to read move: %w", in.err)
		}

		line := strings.TrimSpace(in.text)
		if strings.EqualFold(line, quitCommand) {
			return game.Cell{}, player.ErrQuit
		}

		c, err := game.ParseCell(line)
		if err != nil {
			fmt.Fprintf(p.out, "Invalid position %s\n", line)
			continue
		}
		if !b.IsEmpty(c) {
			fmt.Fprintf(p.out, "Position %s has already been played\n", line)
			continue
		}
		return c, nil
	}
}
