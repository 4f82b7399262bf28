package main

import "testing"

func TestApplyMoveRejectsOccupiedAndOutOfBounds(t *testing.T) {
	board := NewBoard(3)
	if !board.ApplyMove(NewMove(1, 1, SideX)) {
		t.Fatalf("expected first move to apply")
	}
	if board.ApplyMove(NewMove(1, 1, SideO)) {
		t.Fatalf("expected occupied cell to be rejected")
	}
	if board.At(1, 1) != SideX {
		t.Fatalf("rejected move changed the board: got %s", board.At(1, 1))
	}
	for _, move := range []Move{NewMove(-1, 0, SideO), NewMove(0, 3, SideO), NewMove(3, 3, SideO)} {
		if board.ApplyMove(move) {
			t.Fatalf("expected out of bounds move (%d,%d) to be rejected", move.Row, move.Col)
		}
	}
	if board.ApplyMove(NewMove(0, 0, SideNone)) {
		t.Fatalf("expected move without a side to be rejected")
	}
	if got := board.CountEmpty(); got != 8 {
		t.Fatalf("expected 8 empty cells, got %d", got)
	}
}

func TestSnapshotSharesNoStorage(t *testing.T) {
	board := NewBoard(4)
	board.Set(0, 0, SideX)
	snap := board.Snapshot()
	snap.Set(3, 3, SideO)
	snap.Remove(0, 0)

	if board.At(3, 3) != SideNone || board.At(0, 0) != SideX {
		t.Fatalf("mutating the snapshot leaked into the original board")
	}
	if snap.Size() != 4 || snap.CellCount() != 16 {
		t.Fatalf("unexpected snapshot shape %dx%d", snap.Size(), snap.CellCount())
	}
}

func TestBoardFromRows(t *testing.T) {
	board, err := BoardFromRows([][]int{
		{1, 0, 2},
		{0, 1, 0},
		{2, 0, 0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if board.At(0, 0) != SideX || board.At(0, 2) != SideO || board.At(2, 0) != SideO || board.At(1, 1) != SideX {
		t.Fatalf("cells decoded incorrectly: %v", boardToRows(board))
	}
	if board.CountEmpty() != 5 {
		t.Fatalf("expected 5 empty cells, got %d", board.CountEmpty())
	}

	bad := map[string][][]int{
		"too small":  {{0, 0}, {0, 0}},
		"ragged":     {{0, 0, 0}, {0, 0}, {0, 0, 0}},
		"bad code":   {{0, 0, 0}, {0, 3, 0}, {0, 0, 0}},
		"empty grid": {},
	}
	for name, rows := range bad {
		if _, err := BoardFromRows(rows); err == nil {
			t.Fatalf("%s: expected an error", name)
		}
	}
}

func TestCenterAndCorners(t *testing.T) {
	board := NewBoard(4)
	if r, c := board.Center(); r != 2 || c != 2 {
		t.Fatalf("expected floor center (2,2), got (%d,%d)", r, c)
	}
	want := [4][2]int{{0, 0}, {0, 3}, {3, 0}, {3, 3}}
	if got := board.Corners(); got != want {
		t.Fatalf("expected corners %v, got %v", want, got)
	}
}
