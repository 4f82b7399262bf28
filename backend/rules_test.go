package main

import "testing"

func placeAll(board *Board, side Side, cells ...Cell) {
	for _, cell := range cells {
		board.Set(cell.Row, cell.Col, side)
	}
}

func assertWinningSegment(t *testing.T, result GameResult, last Move, k int) {
	t.Helper()
	if len(result.Line) != k {
		t.Fatalf("expected %d cells in winning line, got %d: %v", k, len(result.Line), result.Line)
	}
	dr := result.Line[1].Row - result.Line[0].Row
	dc := result.Line[1].Col - result.Line[0].Col
	if abs(dr) > 1 || abs(dc) > 1 || (dr == 0 && dc == 0) {
		t.Fatalf("line cells are not adjacent: %v", result.Line)
	}
	found := false
	for i, cell := range result.Line {
		if i > 0 {
			prev := result.Line[i-1]
			if cell.Row-prev.Row != dr || cell.Col-prev.Col != dc {
				t.Fatalf("line is not collinear and contiguous: %v", result.Line)
			}
		}
		if cell.Row == last.Row && cell.Col == last.Col {
			found = true
		}
	}
	if !found {
		t.Fatalf("winning line %v does not contain last move (%d,%d)", result.Line, last.Row, last.Col)
	}
}

func TestCheckWinConditionAllDirections(t *testing.T) {
	cases := []struct {
		name  string
		cells []Cell
		last  Cell
	}{
		{"horizontal", []Cell{{2, 0}, {2, 1}, {2, 2}, {2, 3}}, Cell{2, 1}},
		{"vertical", []Cell{{0, 4}, {1, 4}, {2, 4}, {3, 4}}, Cell{3, 4}},
		{"diagonal", []Cell{{1, 1}, {2, 2}, {3, 3}, {4, 4}}, Cell{1, 1}},
		{"anti-diagonal", []Cell{{0, 4}, {1, 3}, {2, 2}, {3, 1}}, Cell{2, 2}},
	}
	rules := NewRules(4)
	for _, tc := range cases {
		board := NewBoard(5)
		placeAll(&board, SideO, tc.cells...)
		last := NewMove(tc.last.Row, tc.last.Col, SideO)
		ended, result := rules.CheckWinCondition(board, last)
		if !ended || result.Kind != ResultWin || result.Winner != SideO {
			t.Fatalf("%s: expected O to win, got ended=%v result=%+v", tc.name, ended, result)
		}
		assertWinningSegment(t, result, last, 4)
	}
}

func TestCheckWinConditionCutsLongRunToWinLength(t *testing.T) {
	board := NewBoard(5)
	placeAll(&board, SideX, Cell{0, 0}, Cell{0, 1}, Cell{0, 2}, Cell{0, 3}, Cell{0, 4})
	rules := NewRules(3)

	for col := 0; col < 5; col++ {
		last := NewMove(0, col, SideX)
		ended, result := rules.CheckWinCondition(board, last)
		if !ended || result.Kind != ResultWin {
			t.Fatalf("col %d: expected a win", col)
		}
		assertWinningSegment(t, result, last, 3)
	}

	ended, result := rules.CheckWinCondition(board, NewMove(0, 2, SideX))
	if !ended {
		t.Fatalf("expected a win")
	}
	if result.Line[0] != (Cell{0, 0}) || result.Line[2] != (Cell{0, 2}) {
		t.Fatalf("expected window ending at the last move, got %v", result.Line)
	}
}

func TestCheckWinConditionNoFalsePositive(t *testing.T) {
	board := NewBoard(5)
	placeAll(&board, SideX, Cell{1, 0}, Cell{1, 1}, Cell{1, 2})
	placeAll(&board, SideO, Cell{1, 3})
	rules := NewRules(4)
	ended, result := rules.CheckWinCondition(board, NewMove(1, 2, SideX))
	if ended {
		t.Fatalf("expected no result with %d in a row, got %+v", rules.WinLength()-1, result)
	}
	if rules.IsWinningMove(board, NewMove(1, 2, SideX)) {
		t.Fatalf("IsWinningMove reported a short run as a win")
	}
}

func TestCheckWinConditionDraw(t *testing.T) {
	board, err := BoardFromRows([][]int{
		{1, 2, 1},
		{1, 2, 2},
		{2, 1, 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ended, result := NewRules(3).CheckWinCondition(board, NewMove(2, 2, SideX))
	if !ended || result.Kind != ResultDraw {
		t.Fatalf("expected a draw, got ended=%v result=%+v", ended, result)
	}
	if result.Winner != SideNone || len(result.Line) != 0 {
		t.Fatalf("draw should have no winner and an empty line, got %+v", result)
	}
}

func TestCheckWinConditionWinOnLastCellIsNotDraw(t *testing.T) {
	board, err := BoardFromRows([][]int{
		{1, 2, 1},
		{2, 1, 2},
		{2, 1, 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ended, result := NewRules(3).CheckWinCondition(board, NewMove(2, 2, SideX))
	if !ended || result.Kind != ResultWin || result.Winner != SideX {
		t.Fatalf("expected X to win on a full board, got %+v", result)
	}
}

func TestRulesString(t *testing.T) {
	if got := NewRules(4).String(); got != "Rules{win=4}" {
		t.Fatalf("unexpected rules string %q", got)
	}
}
