package main

type searchContext struct {
	board         Board
	rules         Rules
	me            Side
	maxDepth      int
	useCandidates bool
	regime        string
}

func (a *AIAgent) expired() bool {
	return !a.now().Before(a.deadline)
}

// searchRoot runs a full-window minimax below every root candidate and keeps
// the first best. ok is false when the deadline hit before any candidate.
func (a *AIAgent) searchRoot(ctx *searchContext, rootMoves []Cell) (Cell, int, bool) {
	opp := Opposite(ctx.me)
	bestScore := -evalInf
	best := Cell{Row: -1, Col: -1}
	for _, cell := range rootMoves {
		if a.expired() {
			a.stats.DeadlineHit = true
			break
		}
		move := NewMove(cell.Row, cell.Col, ctx.me)
		ctx.board.Set(cell.Row, cell.Col, ctx.me)
		score := a.minimax(ctx, move, opp, false, 1, -evalInf, evalInf)
		ctx.board.Remove(cell.Row, cell.Col)
		a.stats.RootCompleted++

		if score > bestScore {
			bestScore = score
			best = cell
		}
	}
	if best.Row < 0 {
		return Cell{}, 0, false
	}
	return best, bestScore, true
}

// minimax scores the position after last was played, from ctx.me's point of
// view. Every trial stone is removed again before returning.
func (a *AIAgent) minimax(ctx *searchContext, last Move, sideToMove Side, isMax bool, depth, alpha, beta int) int {
	a.stats.Nodes++
	if a.expired() {
		a.stats.DeadlineHit = true
		return EvaluateBoard(ctx.board, ctx.me, ctx.rules.WinLength())
	}
	if ended, result := ctx.rules.CheckWinCondition(ctx.board, last); ended {
		switch result.Winner {
		case ctx.me:
			return winScore - depth
		case SideNone:
			return 0
		default:
			return depth - winScore
		}
	}
	if depth >= ctx.maxDepth {
		return EvaluateBoard(ctx.board, ctx.me, ctx.rules.WinLength())
	}

	var moves []Cell
	if ctx.useCandidates {
		moves = enumerateCandidateMoves(ctx.board, a.rng, 2, 48)
	} else {
		moves = enumerateEmptyMoves(ctx.board)
	}
	if len(moves) == 0 {
		return EvaluateBoard(ctx.board, ctx.me, ctx.rules.WinLength())
	}
	orderByCenterDistance(moves, ctx.board.Size())

	best := evalInf
	if isMax {
		best = -evalInf
	}
	searched := 0
	for _, cell := range moves {
		if a.expired() {
			a.stats.DeadlineHit = true
			break
		}
		move := NewMove(cell.Row, cell.Col, sideToMove)
		ctx.board.Set(cell.Row, cell.Col, sideToMove)
		score := a.minimax(ctx, move, Opposite(sideToMove), !isMax, depth+1, alpha, beta)
		ctx.board.Remove(cell.Row, cell.Col)
		searched++

		if isMax {
			best = max(best, score)
			alpha = max(alpha, best)
		} else {
			best = min(best, score)
			beta = min(beta, best)
		}
		if beta <= alpha {
			a.stats.Cutoffs++
			break
		}
	}
	if searched == 0 {
		return EvaluateBoard(ctx.board, ctx.me, ctx.rules.WinLength())
	}
	return best
}
