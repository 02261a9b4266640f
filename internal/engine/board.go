// Package engine implements the sliding-tile puzzle model: the board, the
// per-direction move resolver, the serialized move queue, random tile
// insertion and win/loss detection.
//
// The engine has no knowledge of rendering. Presentation code registers a
// Listener and receives one event per tile relocation, merge, insertion and
// score change.
package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrOutOfBounds is returned for board access outside [0, dimension).
	ErrOutOfBounds = errors.New("engine: coordinate out of bounds")

	// ErrInvalidValue is returned when a tile value is not a power of two >= 2.
	ErrInvalidValue = errors.New("engine: invalid tile value")

	// ErrNotSquare is returned when rows passed to NewBoardFromRows do not form a square.
	ErrNotSquare = errors.New("engine: board is not square")
)

// Coord addresses a cell by row and column.
type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Board is a square grid of tile values. Zero marks an empty cell.
type Board struct {
	dim   int
	cells []int
}

// NewBoard creates an empty board. Dimensions below MinDimension are raised to it.
func NewBoard(dimension int) *Board {
	if dimension < MinDimension {
		dimension = MinDimension
	}
	return &Board{
		dim:   dimension,
		cells: make([]int, dimension*dimension),
	}
}

// NewBoardFromRows builds a board from row-major values (0 = empty).
func NewBoardFromRows(rows [][]int) (*Board, error) {
	n := len(rows)
	if n < MinDimension {
		return nil, fmt.Errorf("%w: %d rows", ErrNotSquare, n)
	}

	b := NewBoard(n)
	for r, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNotSquare, r, len(row), n)
		}
		for c, v := range row {
			if err := b.Set(r, c, v); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

// Dimension returns the number of rows (and columns).
func (b *Board) Dimension() int {
	return b.dim
}

// Get returns the value at (row, col), 0 when the cell is empty.
func (b *Board) Get(row, col int) (int, error) {
	if !b.inBounds(row, col) {
		return 0, fmt.Errorf("%w: (%d,%d) on %dx%d board", ErrOutOfBounds, row, col, b.dim, b.dim)
	}
	return b.cells[row*b.dim+col], nil
}

// Set places value at (row, col). A value of 0 clears the cell.
func (b *Board) Set(row, col, value int) error {
	if !b.inBounds(row, col) {
		return fmt.Errorf("%w: (%d,%d) on %dx%d board", ErrOutOfBounds, row, col, b.dim, b.dim)
	}
	if value != 0 && !ValidTileValue(value) {
		return fmt.Errorf("%w: %d", ErrInvalidValue, value)
	}
	b.cells[row*b.dim+col] = value
	return nil
}

// IsFull reports whether every cell is occupied.
func (b *Board) IsFull() bool {
	for _, v := range b.cells {
		if v == 0 {
			return false
		}
	}
	return true
}

// EmptyCells returns the empty coordinates in row-major order.
func (b *Board) EmptyCells() []Coord {
	var cells []Coord
	for i, v := range b.cells {
		if v == 0 {
			cells = append(cells, Coord{Row: i / b.dim, Col: i % b.dim})
		}
	}
	return cells
}

// MaxTile returns the largest value on the board.
func (b *Board) MaxTile() int {
	maxVal := 0
	for _, v := range b.cells {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// Clear empties every cell.
func (b *Board) Clear() {
	for i := range b.cells {
		b.cells[i] = 0
	}
}

// Clone returns an independent copy.
func (b *Board) Clone() *Board {
	cells := make([]int, len(b.cells))
	copy(cells, b.cells)
	return &Board{dim: b.dim, cells: cells}
}

// Equal reports whether both boards have the same dimension and values.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.dim != other.dim {
		return false
	}
	for i, v := range b.cells {
		if other.cells[i] != v {
			return false
		}
	}
	return true
}

// Rows returns a row-major copy of the cells.
func (b *Board) Rows() [][]int {
	rows := make([][]int, b.dim)
	for r := range rows {
		rows[r] = make([]int, b.dim)
		copy(rows[r], b.cells[r*b.dim:(r+1)*b.dim])
	}
	return rows
}

// String renders the board as space-separated rows, "." for empty cells.
func (b *Board) String() string {
	var sb strings.Builder
	for r := range b.dim {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range b.dim {
			if c > 0 {
				sb.WriteByte(' ')
			}
			v := b.cells[r*b.dim+c]
			if v == 0 {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(strconv.Itoa(v))
		}
	}
	return sb.String()
}

func (b *Board) inBounds(row, col int) bool {
	return row >= 0 && row < b.dim && col >= 0 && col < b.dim
}

// at and put skip bounds checks; callers iterate within the dimension.
func (b *Board) at(c Coord) int {
	return b.cells[c.Row*b.dim+c.Col]
}

func (b *Board) put(c Coord, value int) {
	b.cells[c.Row*b.dim+c.Col] = value
}

// ValidTileValue reports whether v is a power of two >= 2.
func ValidTileValue(v int) bool {
	return v >= 2 && v&(v-1) == 0
}
