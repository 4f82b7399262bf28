package main

import (
	"math/rand"
	"testing"
)

func TestCandidateMovesOnEmptyBoardIsCenter(t *testing.T) {
	board := NewBoard(15)
	moves := enumerateCandidateMoves(board, rand.New(rand.NewSource(1)), 2, 48)
	if len(moves) != 1 || moves[0] != (Cell{Row: 7, Col: 7}) {
		t.Fatalf("expected only the center, got %v", moves)
	}
}

func TestCandidateMovesStayNearStones(t *testing.T) {
	board := NewBoard(15)
	board.Set(2, 2, SideX)
	board.Set(3, 3, SideO)
	board.Set(12, 12, SideX)

	const radius = 2
	moves := enumerateCandidateMoves(board, rand.New(rand.NewSource(7)), radius, 48)
	if len(moves) == 0 || len(moves) > 48 {
		t.Fatalf("expected between 1 and 48 candidates, got %d", len(moves))
	}
	seen := map[Cell]bool{}
	for i, cell := range moves {
		if !board.CanPlace(cell.Row, cell.Col) {
			t.Fatalf("candidate (%d,%d) is not an empty cell", cell.Row, cell.Col)
		}
		if !hasNeighborWithin(board, cell.Row, cell.Col, radius) {
			t.Fatalf("candidate (%d,%d) has no stone within %d", cell.Row, cell.Col, radius)
		}
		if seen[cell] {
			t.Fatalf("duplicate candidate (%d,%d)", cell.Row, cell.Col)
		}
		seen[cell] = true
		if i > 0 && chebyshev(moves[i-1].Row, moves[i-1].Col, 7, 7) > chebyshev(cell.Row, cell.Col, 7, 7) {
			t.Fatalf("candidates not ordered by distance to center: %v", moves)
		}
	}
}

func TestCandidateMovesRespectCap(t *testing.T) {
	board := NewBoard(15)
	for c := 0; c < 15; c += 2 {
		board.Set(7, c, SideX)
	}
	moves := enumerateCandidateMoves(board, rand.New(rand.NewSource(3)), 2, 10)
	if len(moves) != 10 {
		t.Fatalf("expected the cap of 10 candidates, got %d", len(moves))
	}
}

func TestCandidateMovesOnNearlyFullBoard(t *testing.T) {
	board, err := BoardFromRows([][]int{
		{1, 2, 1},
		{2, 0, 2},
		{1, 2, 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	moves := enumerateCandidateMoves(board, rand.New(rand.NewSource(1)), 1, 48)
	if len(moves) != 1 || moves[0] != (Cell{Row: 1, Col: 1}) {
		t.Fatalf("expected the single empty cell, got %v", moves)
	}
}

func TestOrderByCenterDistanceIsStable(t *testing.T) {
	moves := []Cell{{0, 0}, {2, 2}, {0, 4}, {1, 2}, {4, 4}}
	orderByCenterDistance(moves, 5)
	want := []Cell{{2, 2}, {1, 2}, {0, 0}, {0, 4}, {4, 4}}
	for i := range want {
		if moves[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, moves)
		}
	}
}
