package main

type GameStatus int

const (
	StatusNotStarted GameStatus = iota
	StatusRunning
	StatusXWon
	StatusOWon
	StatusDraw
)

type GameState struct {
	Board       Board
	ToMove      Side
	Status      GameStatus
	HasLastMove bool
	LastMove    Move
	Result      GameResult
	LastMessage string
}

// Reset empties the board; X always opens.
func (s *GameState) Reset(settings GameSettings) {
	s.Board = NewBoard(settings.EdgeSize)
	s.ToMove = SideX
	s.Status = StatusNotStarted
	s.HasLastMove = false
	s.LastMove = NoMove(SideNone)
	s.Result = GameResult{}
	s.LastMessage = ""
}

func (s GameState) Clone() GameState {
	clone := s
	clone.Board = s.Board.Clone()
	clone.Result.Line = append([]Cell(nil), s.Result.Line...)
	return clone
}

func (s GameState) Finished() bool {
	return s.Status == StatusXWon || s.Status == StatusOWon || s.Status == StatusDraw
}

func statusFromResult(result GameResult) GameStatus {
	if result.Kind == ResultDraw {
		return StatusDraw
	}
	if result.Winner == SideX {
		return StatusXWon
	}
	return StatusOWon
}

func statusToString(status GameStatus) string {
	switch status {
	case StatusNotStarted:
		return "not_started"
	case StatusXWon:
		return "x_won"
	case StatusOWon:
		return "o_won"
	case StatusDraw:
		return "draw"
	default:
		return "running"
	}
}

func winnerFromStatus(status GameStatus) int {
	switch status {
	case StatusXWon:
		return 1
	case StatusOWon:
		return 2
	default:
		return 0
	}
}
