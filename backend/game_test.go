package main

import "testing"

func humanSettings(edge, win int) GameSettings {
	settings := DefaultGameSettings()
	settings.EdgeSize = edge
	settings.WinLength = win
	settings.XType = PlayerHuman
	settings.OType = PlayerHuman
	return settings
}

func TestHumanGameEndsWithWinningLine(t *testing.T) {
	controller := NewGameController("g1", humanSettings(3, 3), DefaultConfig())
	controller.StartGame(humanSettings(3, 3))

	moves := []Move{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 0, Col: 2}}
	for i, move := range moves {
		if applied, reason := controller.ApplyHumanMove(move); !applied {
			t.Fatalf("move %d: expected to apply: %s", i, reason)
		}
	}

	state := controller.State()
	if state.Status != StatusXWon {
		t.Fatalf("expected X to win, got %s", statusToString(state.Status))
	}
	if len(state.Result.Line) != 3 {
		t.Fatalf("expected a 3-cell winning line, got %v", state.Result.Line)
	}
	if controller.History().Size() != 5 {
		t.Fatalf("expected 5 history entries, got %d", controller.History().Size())
	}
	if applied, _ := controller.ApplyHumanMove(Move{Row: 2, Col: 2}); applied {
		t.Fatalf("expected moves after the end to be rejected")
	}
}

func TestIllegalMovesKeepTurn(t *testing.T) {
	controller := NewGameController("g2", humanSettings(3, 3), DefaultConfig())
	controller.StartGame(humanSettings(3, 3))

	if applied, _ := controller.ApplyHumanMove(Move{Row: 1, Col: 1}); !applied {
		t.Fatalf("expected first move to apply")
	}
	applied, reason := controller.ApplyHumanMove(Move{Row: 1, Col: 1})
	if applied || reason != "Illegal move: occupied" {
		t.Fatalf("expected occupied rejection, got applied=%v reason=%q", applied, reason)
	}
	applied, reason = controller.ApplyHumanMove(Move{Row: 3, Col: 0})
	if applied || reason != "Illegal move: out of bounds" {
		t.Fatalf("expected out of bounds rejection, got applied=%v reason=%q", applied, reason)
	}
	if state := controller.State(); state.ToMove != SideO {
		t.Fatalf("expected O to still be on move, got %s", state.ToMove)
	}
}

func TestHumanVsAITickPlaysReply(t *testing.T) {
	settings := DefaultGameSettings()
	controller := NewGameController("g3", settings, DefaultConfig())
	controller.StartGame(settings)

	if controller.Tick() {
		t.Fatalf("tick should wait for the human on move")
	}
	if applied, reason := controller.ApplyHumanMove(Move{Row: 0, Col: 0}); !applied {
		t.Fatalf("expected human move to apply: %s", reason)
	}
	if applied, _ := controller.ApplyHumanMove(Move{Row: 0, Col: 1}); applied {
		t.Fatalf("expected human move on the AI's turn to be rejected")
	}
	if !controller.Tick() {
		t.Fatalf("expected the AI to reply on tick")
	}
	entry, ok := controller.LatestHistoryEntry()
	if !ok || !entry.IsAi || entry.Move.Side != SideO {
		t.Fatalf("expected an AI entry for O, got %+v", entry)
	}
	if entry.Move.Row != 1 || entry.Move.Col != 1 {
		t.Fatalf("expected the AI to answer a corner with the center, got (%d,%d)", entry.Move.Row, entry.Move.Col)
	}
	if controller.State().ToMove != SideX {
		t.Fatalf("expected the turn to pass back to X")
	}
}

func TestAIVsAIStandardDrawsOnThreeByThree(t *testing.T) {
	settings := DefaultGameSettings()
	settings.XType = PlayerAI
	settings.OType = PlayerAI
	config := DefaultConfig()
	config.AiTimeBudgetMs = 5000

	controller := NewGameController("g4", settings, config)
	controller.StartGame(settings)
	for i := 0; i < 9 && !controller.State().Finished(); i++ {
		if !controller.Tick() {
			t.Fatalf("tick %d: expected an AI move", i)
		}
	}
	state := controller.State()
	if state.Status != StatusDraw {
		t.Fatalf("expected perfect play to draw, got %s", statusToString(state.Status))
	}
	if controller.History().Size() != 9 {
		t.Fatalf("expected 9 moves, got %d", controller.History().Size())
	}
}

func TestRestartClearsBoardAndHistory(t *testing.T) {
	controller := NewGameController("g5", humanSettings(4, 3), DefaultConfig())
	controller.StartGame(humanSettings(4, 3))
	controller.ApplyHumanMove(Move{Row: 0, Col: 0})
	controller.Restart()

	state := controller.State()
	if state.Status != StatusRunning || state.ToMove != SideX {
		t.Fatalf("expected a running game with X on move, got status=%s to_move=%s", statusToString(state.Status), state.ToMove)
	}
	if state.Board.CountEmpty() != 16 || controller.History().Size() != 0 {
		t.Fatalf("expected an empty 4x4 board and history after restart")
	}
}

func TestFirstEmptyCell(t *testing.T) {
	board := mustBoard(t, [][]int{
		{1, 2, 1},
		{2, 0, 0},
		{0, 0, 0},
	})
	cell, ok := firstEmptyCell(board)
	if !ok || cell != (Cell{Row: 1, Col: 1}) {
		t.Fatalf("expected (1,1), got %v ok=%v", cell, ok)
	}
	board.Set(1, 1, SideX)
	board.Set(1, 2, SideX)
	for c := 0; c < 3; c++ {
		board.Set(2, c, SideO)
	}
	if _, ok := firstEmptyCell(board); ok {
		t.Fatalf("expected no empty cell on a full board")
	}
}

func TestQueuedClickPlaysOnTick(t *testing.T) {
	controller := NewGameController("g6", humanSettings(3, 3), DefaultConfig())
	controller.StartGame(humanSettings(3, 3))

	controller.OnCellClicked(0, 0)
	controller.OnCellClicked(2, 2)
	if !controller.Tick() {
		t.Fatalf("expected the queued click to be played")
	}
	if controller.Tick() {
		t.Fatalf("expected the queue to be empty after one tick")
	}
	state := controller.State()
	if state.Board.At(2, 2) != SideX || state.Board.At(0, 0) != SideNone {
		t.Fatalf("expected only the latest click to be played")
	}
	history := controller.History()
	if history.Count(SideX) != 1 || history.Count(SideO) != 0 {
		t.Fatalf("unexpected per-side counts: x=%d o=%d", history.Count(SideX), history.Count(SideO))
	}
}

func TestClickOnAITurnIsIgnored(t *testing.T) {
	settings := DefaultGameSettings()
	controller := NewGameController("g7", settings, DefaultConfig())
	controller.StartGame(settings)
	controller.ApplyHumanMove(Move{Row: 0, Col: 0})

	controller.OnCellClicked(2, 2)
	if !controller.Tick() {
		t.Fatalf("expected the AI to move")
	}
	entry, _ := controller.LatestHistoryEntry()
	if !entry.IsAi {
		t.Fatalf("expected the click on the AI turn to be dropped, got %+v", entry)
	}
}

func TestWinLongerThanEdgeAlwaysDraws(t *testing.T) {
	settings := humanSettings(3, 4)
	controller := NewGameController("g8", settings, DefaultConfig())
	controller.StartGame(settings)

	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if applied, reason := controller.ApplyHumanMove(Move{Row: r, Col: c}); !applied {
				t.Fatalf("(%d,%d): expected to apply: %s", r, c, reason)
			}
		}
	}
	if state := controller.State(); state.Status != StatusDraw {
		t.Fatalf("expected a draw, got %s", statusToString(state.Status))
	}
}
