package game

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidCell = errors.New("invalid cell")

// Cell is a board coordinate. Columns are lettered A-C, rows numbered 1-3.
type Cell struct {
	Col int
	Row int
}

// Valid reports whether the cell lies on the board.
func (c Cell) Valid() bool {
	return c.Col >= BorderMin && c.Col <= BorderMax && c.Row >= BorderMin && c.Row <= BorderMax
}

// index is the row-major position of the cell, 0..8.
func (c Cell) index() uint {
	return uint(c.Row*Size + c.Col)
}

// String renders the cell in the "A2" notation used by the console.
func (c Cell) String() string {
	if !c.Valid() {
		return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
	}
	return fmt.Sprintf("%c%d", 'A'+c.Col, c.Row+1)
}

// ParseCell parses the "A2" notation: a column letter (case-insensitive)
// followed by a row digit.
func ParseCell(s string) (Cell, error) {
	s = strings.TrimSpace(s)
	if len(s) != 2 {
		return Cell{}, fmt.Errorf("%w: %q", ErrInvalidCell, s)
	}

	col := int(strings.ToUpper(s[:1])[0]) - 'A'
	row := int(s[1]) - '1'

	c := Cell{Col: col, Row: row}
	if !c.Valid() {
		return Cell{}, fmt.Errorf("%w: %q", ErrInvalidCell, s)
	}
	return c, nil
}

// AllCells returns every cell in row-major order.
func AllCells() []Cell {
	cells := make([]Cell, 0, Size*Size)
	for r := range Size {
		for c := range Size {
			cells = append(cells, Cell{Col: c, Row: r})
		}
	}
	return cells
}
