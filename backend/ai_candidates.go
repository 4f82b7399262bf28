package main

import (
	"math/rand"
	"sort"
)

func enumerateEmptyMoves(board Board) []Cell {
	size := board.Size()
	moves := make([]Cell, 0, board.CellCount())
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if board.At(r, c) == SideNone {
				moves = append(moves, Cell{Row: r, Col: c})
			}
		}
	}
	return moves
}

// enumerateCandidateMoves keeps only empty cells within radius (Chebyshev) of
// an existing stone. The result is shuffled, capped at maxCount and then
// ordered center first.
func enumerateCandidateMoves(board Board, rng *rand.Rand, radius, maxCount int) []Cell {
	size := board.Size()
	minR, minC, maxR, maxC := size, size, -1, -1
	occupied := false
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if board.At(r, c) == SideNone {
				continue
			}
			occupied = true
			minR = min(minR, r)
			maxR = max(maxR, r)
			minC = min(minC, c)
			maxC = max(maxC, c)
		}
	}
	if !occupied {
		cr, cc := board.Center()
		return []Cell{{Row: cr, Col: cc}}
	}

	r0 := max(0, minR-radius)
	r1 := min(size-1, maxR+radius)
	c0 := max(0, minC-radius)
	c1 := min(size-1, maxC+radius)

	moves := []Cell{}
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			if board.At(r, c) != SideNone {
				continue
			}
			if hasNeighborWithin(board, r, c, radius) {
				moves = append(moves, Cell{Row: r, Col: c})
			}
		}
	}
	if len(moves) == 0 {
		moves = enumerateEmptyMoves(board)
	}
	shuffleCells(rng, moves)
	if len(moves) > maxCount {
		moves = moves[:maxCount]
	}
	orderByCenterDistance(moves, size)
	return moves
}

func hasNeighborWithin(board Board, row, col, radius int) bool {
	for dr := -radius; dr <= radius; dr++ {
		for dc := -radius; dc <= radius; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if board.InBounds(row+dr, col+dc) && board.At(row+dr, col+dc) != SideNone {
				return true
			}
		}
	}
	return false
}

func orderByCenterDistance(moves []Cell, size int) {
	center := size / 2
	sort.SliceStable(moves, func(i, j int) bool {
		return chebyshev(moves[i].Row, moves[i].Col, center, center) < chebyshev(moves[j].Row, moves[j].Col, center, center)
	})
}

func shuffleCells(rng *rand.Rand, cells []Cell) {
	rng.Shuffle(len(cells), func(i, j int) {
		cells[i], cells[j] = cells[j], cells[i]
	})
}

func chebyshev(r1, c1, r2, c2 int) int {
	return max(abs(r1-r2), abs(c1-c2))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
