package main

import "fmt"

type ResultKind int

const (
	ResultNone ResultKind = iota
	ResultWin
	ResultDraw
)

type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type GameResult struct {
	Kind   ResultKind `json:"kind"`
	Winner Side       `json:"winner"`
	Line   []Cell     `json:"line"`
}

type Rules struct {
	winLength int
}

var lineDirections = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

func NewRules(winLength int) Rules {
	return Rules{winLength: winLength}
}

func (r Rules) WinLength() int {
	return r.winLength
}

// CheckWinCondition decides whether lastMove ended the game. Only the lines
// through lastMove are inspected; a draw needs a full scan for empty cells.
func (r Rules) CheckWinCondition(board Board, lastMove Move) (bool, GameResult) {
	if lastMove.Side.Playable() && lastMove.IsValid(board.Size()) {
		for i := 0; i < 4; i++ {
			dr := lineDirections[i][0]
			dc := lineDirections[i][1]
			line, anchor := r.collectLine(board, lastMove, dr, dc)
			if len(line) >= r.winLength {
				return true, GameResult{
					Kind:   ResultWin,
					Winner: lastMove.Side,
					Line:   extractSegment(line, anchor, r.winLength),
				}
			}
		}
	}
	if board.HasEmpty() {
		return false, GameResult{}
	}
	return true, GameResult{Kind: ResultDraw, Winner: SideNone, Line: []Cell{}}
}

// IsWinningMove reports whether the stone at move completes a line. It does
// not look for draws.
func (r Rules) IsWinningMove(board Board, move Move) bool {
	for i := 0; i < 4; i++ {
		dr := lineDirections[i][0]
		dc := lineDirections[i][1]
		count := 1
		count += countDirection(board, move, dr, dc)
		count += countDirection(board, move, -dr, -dc)
		if count >= r.winLength {
			return true
		}
	}
	return false
}

func (r Rules) collectLine(board Board, start Move, dr, dc int) ([]Cell, int) {
	side := start.Side
	row := start.Row
	col := start.Col
	for board.InBounds(row-dr, col-dc) && board.At(row-dr, col-dc) == side {
		row -= dr
		col -= dc
	}
	line := []Cell{}
	anchor := 0
	for {
		if row == start.Row && col == start.Col {
			anchor = len(line)
			line = append(line, Cell{Row: row, Col: col})
		} else if board.InBounds(row, col) && board.At(row, col) == side {
			line = append(line, Cell{Row: row, Col: col})
		} else {
			break
		}
		row += dr
		col += dc
	}
	return line, anchor
}

// extractSegment cuts a window of k cells containing the anchor, keeping the
// anchor as close to the window's end as the run allows.
func extractSegment(line []Cell, anchor, k int) []Cell {
	if len(line) == k {
		return line
	}
	start := anchor - (k - 1)
	if start < 0 {
		start = 0
	}
	if start > len(line)-k {
		start = len(line) - k
	}
	return append([]Cell(nil), line[start:start+k]...)
}

func countDirection(board Board, start Move, dr, dc int) int {
	row := start.Row + dr
	col := start.Col + dc
	count := 0
	for board.InBounds(row, col) && board.At(row, col) == start.Side {
		count++
		row += dr
		col += dc
	}
	return count
}

func (k ResultKind) String() string {
	switch k {
	case ResultWin:
		return "win"
	case ResultDraw:
		return "draw"
	default:
		return "none"
	}
}

func (r Rules) String() string {
	return fmt.Sprintf("Rules{win=%d}", r.winLength)
}
