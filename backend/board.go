package main

import "fmt"

type Side int

const (
	SideNone Side = iota
	SideX
	SideO
)

const (
	MinEdgeSize = 3
	MaxEdgeSize = 15
)

type Board struct {
	size  int
	cells []Side
}

func NewBoard(edgeSize int) Board {
	b := Board{}
	b.Reset(edgeSize)
	return b
}

func (b *Board) Reset(edgeSize int) {
	b.size = edgeSize
	b.cells = make([]Side, edgeSize*edgeSize)
}

func (b Board) At(row, col int) Side {
	return b.cells[b.index(row, col)]
}

func (b *Board) Set(row, col int, value Side) {
	b.cells[b.index(row, col)] = value
}

func (b *Board) Remove(row, col int) {
	b.cells[b.index(row, col)] = SideNone
}

func (b Board) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < b.size && col < b.size
}

// CanPlace reports whether (row, col) is on the board and still empty.
func (b Board) CanPlace(row, col int) bool {
	return b.InBounds(row, col) && b.At(row, col) == SideNone
}

// ApplyMove places move.Side at the move's cell. The board is left untouched
// and false is returned when the cell cannot take a stone.
func (b *Board) ApplyMove(move Move) bool {
	if !move.Side.Playable() || !b.CanPlace(move.Row, move.Col) {
		return false
	}
	b.Set(move.Row, move.Col, move.Side)
	return true
}

// Snapshot returns a copy that shares no storage with b.
func (b Board) Snapshot() Board {
	return b.Clone()
}

func (b Board) CountEmpty() int {
	count := 0
	for _, cell := range b.cells {
		if cell == SideNone {
			count++
		}
	}
	return count
}

func (b Board) HasEmpty() bool {
	for _, cell := range b.cells {
		if cell == SideNone {
			return true
		}
	}
	return false
}

func (b Board) Size() int {
	return b.size
}

func (b Board) CellCount() int {
	return len(b.cells)
}

func (b Board) Center() (int, int) {
	return b.size / 2, b.size / 2
}

func (b Board) Corners() [4][2]int {
	last := b.size - 1
	return [4][2]int{{0, 0}, {0, last}, {last, 0}, {last, last}}
}

func (b Board) Clone() Board {
	clone := Board{size: b.size}
	clone.cells = make([]Side, len(b.cells))
	copy(clone.cells, b.cells)
	return clone
}

func (b Board) index(row, col int) int {
	return row*b.size + col
}

func (s Side) String() string {
	switch s {
	case SideX:
		return "X"
	case SideO:
		return "O"
	default:
		return "None"
	}
}

func (s Side) Playable() bool {
	return s == SideX || s == SideO
}

// Opposite swaps X and O. It is only meaningful for playable sides.
func Opposite(s Side) Side {
	if s == SideX {
		return SideO
	}
	return SideX
}

func ValidEdgeSize(edgeSize int) bool {
	return edgeSize >= MinEdgeSize && edgeSize <= MaxEdgeSize
}

// BoardFromRows builds a board from a square grid of side codes (0 empty,
// 1 X, 2 O).
func BoardFromRows(rows [][]int) (Board, error) {
	size := len(rows)
	if !ValidEdgeSize(size) {
		return Board{}, fmt.Errorf("edge size %d out of range [%d,%d]", size, MinEdgeSize, MaxEdgeSize)
	}
	board := NewBoard(size)
	for r, row := range rows {
		if len(row) != size {
			return Board{}, fmt.Errorf("row %d has %d cells, want %d", r, len(row), size)
		}
		for c, value := range row {
			side, err := sideFromInt(value)
			if err != nil {
				return Board{}, fmt.Errorf("cell (%d,%d): %w", r, c, err)
			}
			board.Set(r, c, side)
		}
	}
	return board, nil
}

func boardToRows(board Board) [][]int {
	size := board.Size()
	rows := make([][]int, size)
	for r := 0; r < size; r++ {
		rows[r] = make([]int, size)
		for c := 0; c < size; c++ {
			rows[r][c] = sideToInt(board.At(r, c))
		}
	}
	return rows
}

func sideToInt(side Side) int {
	switch side {
	case SideX:
		return 1
	case SideO:
		return 2
	default:
		return 0
	}
}

func sideFromInt(value int) (Side, error) {
	switch value {
	case 0:
		return SideNone, nil
	case 1:
		return SideX, nil
	case 2:
		return SideO, nil
	default:
		return SideNone, fmt.Errorf("unknown side code %d", value)
	}
}
