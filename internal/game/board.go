package game

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

var ErrInvalidBoard = errors.New("invalid board")

// Board packs the grid into 18 bits, two per cell: bit 2i marks the cell as
// occupied and bit 2i+1 holds the owner (0 = X, 1 = O), where i = row*3+col.
// The owner bit is meaningless while the cell is empty.
//
// Board is a value: copies are independent. The zero value is an empty board
// with X to move.
type Board struct {
	data    uint32
	oToMove bool
}

// line is one winning line: occ has the occupied bit of each of its cells set.
type line struct {
	occ uint32
}

func (l line) own() uint32 { return l.occ << 1 }

const (
	occupiedMask uint32 = 0b010101010101010101
	rowMask      uint32 = 0b010101
	colMask      uint32 = 0b000001000001000001
	diagMask     uint32 = 0b010000000100000001
	antiDiagMask uint32 = 0b000001000100010000
)

// Rows, then columns, then the two diagonals.
var winningLines = [8]line{
	{rowMask}, {rowMask << 6}, {rowMask << 12},
	{colMask}, {colMask << 2}, {colMask << 4},
	{diagMask}, {antiDiagMask},
}

// NewBoard returns an empty board with X to move.
func NewBoard() Board {
	return Board{}
}

func occupiedBit(c Cell) uint32 { return 1 << (c.index() * 2) }
func ownerBit(c Cell) uint32    { return 1 << (c.index()*2 + 1) }

// Turn returns the mark whose turn it is.
func (b Board) Turn() PlayerMark {
	if b.oToMove {
		return PlayerO
	}
	return PlayerX
}

// IsEmpty reports whether no mark occupies c.
func (b Board) IsEmpty(c Cell) bool {
	return b.data&occupiedBit(c) == 0
}

// Owner returns the mark occupying c, or None.
func (b Board) Owner(c Cell) PlayerMark {
	if b.IsEmpty(c) {
		return None
	}
	if b.data&ownerBit(c) != 0 {
		return PlayerO
	}
	return PlayerX
}

// Place puts the current player's mark on c without advancing the turn.
// Placing on an occupied or off-board cell is a caller bug and panics.
func (b *Board) Place(c Cell) {
	if !c.Valid() {
		panic(fmt.Sprintf("game: place on off-board cell %s", c))
	}
	if !b.IsEmpty(c) {
		panic(fmt.Sprintf("game: place on occupied cell %s", c))
	}

	b.data |= occupiedBit(c)
	if b.Turn() == PlayerO {
		b.data |= ownerBit(c)
	}
}

// SwitchTurn hands the move to the other player.
func (b *Board) SwitchTurn() {
	b.oToMove = !b.oToMove
}

// HasWinner reports whether the current player holds a full line.
func (b Board) HasWinner() bool {
	return b.holdsLine(b.Turn())
}

func (b Board) holdsLine(m PlayerMark) bool {
	for _, l := range winningLines {
		mask := l.occ | l.own()
		want := l.occ
		if m == PlayerO {
			want = mask
		}
		if b.data&mask == want {
			return true
		}
	}
	return false
}

// Winner returns the mark holding a full line regardless of whose turn it is,
// or None.
func (b Board) Winner() PlayerMark {
	switch {
	case b.holdsLine(PlayerX):
		return PlayerX
	case b.holdsLine(PlayerO):
		return PlayerO
	}
	return None
}

// IsFull reports whether every cell is occupied.
func (b Board) IsFull() bool {
	return b.data&occupiedMask == occupiedMask
}

// Count returns how many cells m holds.
func (b Board) Count(m PlayerMark) int {
	occ := b.data & occupiedMask
	own := (b.data >> 1) & occupiedMask
	switch m {
	case PlayerX:
		return bits.OnesCount32(occ &^ own)
	case PlayerO:
		return bits.OnesCount32(occ & own)
	default:
		return Size*Size - bits.OnesCount32(occ)
	}
}

// EmptyCells lists the empty cells in row-major order.
func (b Board) EmptyCells() []Cell {
	cells := make([]Cell, 0, Size*Size)
	for _, c := range AllCells() {
		if b.IsEmpty(c) {
			cells = append(cells, c)
		}
	}
	return cells
}

// Rows renders the board as three strings of X, O and '.'.
func (b Board) Rows() []string {
	rows := make([]string, Size)
	for r := range Size {
		var sb strings.Builder
		for c := range Size {
			switch b.Owner(Cell{Col: c, Row: r}) {
			case PlayerX:
				sb.WriteByte('X')
			case PlayerO:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		rows[r] = sb.String()
	}
	return rows
}

func (b Board) String() string {
	return strings.Join(b.Rows(), "/") + " " + string(b.Turn()) + " to move"
}

// FromRows builds a board from three rows of X, O and '.', '_' or ' ' for
// empty cells, with turn to move. The position must be reachable by
// alternating moves: the side that just moved holds as many cells as the
// side to move, or one more.
func FromRows(turn PlayerMark, rows ...string) (Board, error) {
	if !turn.Valid() {
		return Board{}, fmt.Errorf("%w: unknown turn %q", ErrInvalidBoard, turn)
	}
	if len(rows) != Size {
		return Board{}, fmt.Errorf("%w: want %d rows, got %d", ErrInvalidBoard, Size, len(rows))
	}

	b := Board{oToMove: turn == PlayerO}
	for r, row := range rows {
		if len(row) != Size {
			return Board{}, fmt.Errorf("%w: row %d has %d cells", ErrInvalidBoard, r+1, len(row))
		}
		for col := range Size {
			c := Cell{Col: col, Row: r}
			switch row[col] {
			case 'X', 'x':
				b.data |= occupiedBit(c)
			case 'O', 'o':
				b.data |= occupiedBit(c) | ownerBit(c)
			case '.', '_', ' ':
			default:
				return Board{}, fmt.Errorf("%w: unexpected %q at %s", ErrInvalidBoard, row[col], c)
			}
		}
	}

	if diff := b.Count(turn.Opponent()) - b.Count(turn); diff < 0 || diff > 1 {
		return Board{}, fmt.Errorf("%w: %d X and %d O with %s to move", ErrInvalidBoard, b.Count(PlayerX), b.Count(PlayerO), turn)
	}
	if b.holdsLine(turn) {
		return Board{}, fmt.Errorf("%w: %s already has a line but is to move", ErrInvalidBoard, turn)
	}
	return b, nil
}
