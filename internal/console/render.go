package console

import (
	"fmt"
	"io"
	"strings"

	"ctchen222/bitboard-tic-tac-toe/internal/game"

	"github.com/muesli/termenv"
)

const title = "TicTacToe"

// Renderer draws the board on a terminal. It implements room.View.
type Renderer struct {
	out   *termenv.Output
	clear bool
}

// NewRenderer creates a renderer writing to w. With color off, or when w is
// not a terminal, marks are printed without escape codes.
func NewRenderer(w io.Writer, color bool) *Renderer {
	opts := []termenv.OutputOption{}
	if !color {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	return &Renderer{
		out:   termenv.NewOutput(w, opts...),
		clear: true,
	}
}

// WithoutClear stops the renderer from clearing the screen between frames.
func (r *Renderer) WithoutClear() *Renderer {
	r.clear = false
	return r
}

// Render clears the screen and draws the board.
func (r *Renderer) Render(g *game.Game) error {
	if r.clear {
		r.out.ClearScreen()
	}
	_, err := io.WriteString(r.out, r.Frame(g.Board()))
	return err
}

// Announce prints the result of a finished game.
func (r *Renderer) Announce(g *game.Game) error {
	var msg string
	switch g.Status() {
	case game.StatusWon:
		msg = fmt.Sprintf("Player %s wins!", r.mark(g.Winner()))
	case game.StatusDrawn:
		msg = "Board is full"
	default:
		return nil
	}
	_, err := fmt.Fprintln(r.out, msg)
	return err
}

// Frame returns the text of one board frame:
//
//	TicTacToe
//	  | A | B | C |
//	1 | X |   |   |
//	2 |   | O |   |
//	3 |   |   |   |
func (r *Renderer) Frame(b game.Board) string {
	var sb strings.Builder
	sb.WriteString(title + "\n")
	sb.WriteString("  | A | B | C |\n")

	for row := range game.Size {
		fmt.Fprintf(&sb, "%d |", row+1)
		for col := range game.Size {
			fmt.Fprintf(&sb, " %s |", r.mark(b.Owner(game.Cell{Col: col, Row: row})))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (r *Renderer) mark(m game.PlayerMark) string {
	switch m {
	case game.PlayerX:
		return r.out.String(string(m)).Foreground(r.out.Color("1")).Bold().String()
	case game.PlayerO:
		return r.out.String(string(m)).Foreground(r.out.Color("4")).Bold().String()
	default:
		return " "
	}
}
