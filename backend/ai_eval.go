package main

const (
	winScore = 1000
	evalInf  = 1 << 30
)

// isLargeRegime covers gomoku-scale play: more than 9x9 cells or five in a row.
func isLargeRegime(cellCount, winLength int) bool {
	return cellCount > 81 || winLength >= 5
}

func isSmallRegime(cellCount, winLength int) bool {
	return cellCount <= 9 && winLength == 3
}

// EvaluateBoard scores the position from me's point of view.
func EvaluateBoard(board Board, me Side, winLength int) int {
	if isLargeRegime(board.CellCount(), winLength) {
		return evaluateLarge(board, me)
	}
	return evaluateSmall(board, me)
}

func evaluateSmall(board Board, me Side) int {
	opp := Opposite(me)
	score := 0
	cr, cc := board.Center()
	switch board.At(cr, cc) {
	case me:
		score += 2
	case opp:
		score -= 2
	}
	for _, corner := range board.Corners() {
		switch board.At(corner[0], corner[1]) {
		case me:
			score++
		case opp:
			score--
		}
	}
	return score
}

// evaluateLarge rewards central stones and the longest run through each one.
// Base is floored at -3; chains weigh double.
func evaluateLarge(board Board, me Side) int {
	size := board.Size()
	cr, cc := board.Center()
	score := 0
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			side := board.At(r, c)
			if side == SideNone {
				continue
			}
			base := 3 - chebyshev(r, c, cr, cc)
			if base < -3 {
				base = -3
			}
			v := base + 2*longestChainFrom(board, r, c, side)
			if side == me {
				score += v
			} else {
				score -= v
			}
		}
	}
	return score
}

// longestChainFrom walks forward in each direction from (row, col) only.
func longestChainFrom(board Board, row, col int, side Side) int {
	if board.At(row, col) != side {
		return 0
	}
	best := 1
	for _, dir := range lineDirections {
		count := 1
		r := row + dir[0]
		c := col + dir[1]
		for board.InBounds(r, c) && board.At(r, c) == side {
			count++
			r += dir[0]
			c += dir[1]
		}
		best = max(best, count)
	}
	return best
}
