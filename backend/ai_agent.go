package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyStandard
)

const DefaultTimeBudget = 80 * time.Millisecond

// Decision reasons reported in SearchStats.
const (
	reasonNoMove   = "no_move"
	reasonWin      = "win"
	reasonBlock    = "block"
	reasonCenter   = "center"
	reasonCorner   = "corner"
	reasonRandom   = "random"
	reasonSearch   = "search"
	reasonFallback = "fallback"
)

type AgentOptions struct {
	// Seed drives corner/random picks and candidate shuffling. Zero seeds
	// from the clock.
	Seed       int64
	TimeBudget time.Duration
	Clock      func() time.Time
}

type SearchStats struct {
	Start          time.Time
	Elapsed        time.Duration
	Difficulty     Difficulty
	Reason         string
	Regime         string
	MaxDepth       int
	RootCandidates int
	RootCompleted  int
	Nodes          int
	Cutoffs        int
	DeadlineHit    bool
}

// AIAgent picks moves for one side of a line game. It keeps no state between
// Decide calls apart from its random source, so it must not be shared between
// goroutines.
type AIAgent struct {
	rng      *rand.Rand
	budget   time.Duration
	now      func() time.Time
	deadline time.Time
	stats    SearchStats
}

func NewAIAgent(opts AgentOptions) *AIAgent {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	budget := opts.TimeBudget
	if budget <= 0 {
		budget = DefaultTimeBudget
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &AIAgent{
		rng:    rand.New(rand.NewSource(seed)),
		budget: budget,
		now:    clock,
	}
}

// Decide returns a move for side on board. The board is copied before any
// trial placement, so the caller's grid is never touched. A full board yields
// NoMove(side).
func (a *AIAgent) Decide(board Board, side Side, level Difficulty, winLength int) Move {
	if winLength <= 0 {
		winLength = 3
	}
	a.stats = SearchStats{Start: a.now(), Difficulty: level}
	defer func() {
		a.stats.Elapsed = a.now().Sub(a.stats.Start)
	}()

	if !board.HasEmpty() {
		a.stats.Reason = reasonNoMove
		return NoMove(side)
	}
	scratch := board.Snapshot()
	rules := NewRules(winLength)
	if level == DifficultyEasy {
		return a.decideEasy(scratch, side, rules)
	}
	a.deadline = a.stats.Start.Add(a.budget)
	return a.decideStandard(scratch, side, rules)
}

func (a *AIAgent) LastStats() SearchStats {
	return a.stats
}

// decideEasy: win > block > center > random corner > random empty cell.
func (a *AIAgent) decideEasy(board Board, me Side, rules Rules) Move {
	if move, ok := findWinningMove(board, me, rules); ok {
		a.stats.Reason = reasonWin
		return move
	}
	if block, ok := findWinningMove(board, Opposite(me), rules); ok {
		a.stats.Reason = reasonBlock
		return NewMove(block.Row, block.Col, me)
	}
	cr, cc := board.Center()
	if board.CanPlace(cr, cc) {
		a.stats.Reason = reasonCenter
		return NewMove(cr, cc, me)
	}
	corners := []Cell{}
	for _, corner := range board.Corners() {
		if board.CanPlace(corner[0], corner[1]) {
			corners = append(corners, Cell{Row: corner[0], Col: corner[1]})
		}
	}
	if len(corners) > 0 {
		pick := corners[a.rng.Intn(len(corners))]
		a.stats.Reason = reasonCorner
		return NewMove(pick.Row, pick.Col, me)
	}
	moves := enumerateEmptyMoves(board)
	pick := moves[a.rng.Intn(len(moves))]
	a.stats.Reason = reasonRandom
	return NewMove(pick.Row, pick.Col, me)
}

func (a *AIAgent) decideStandard(board Board, me Side, rules Rules) Move {
	if move, ok := findWinningMove(board, me, rules); ok {
		a.stats.Reason = reasonWin
		return move
	}
	if block, ok := findWinningMove(board, Opposite(me), rules); ok {
		a.stats.Reason = reasonBlock
		return NewMove(block.Row, block.Col, me)
	}

	cells := board.CellCount()
	winLength := rules.WinLength()
	ctx := searchContext{board: board, rules: rules, me: me}
	var rootMoves []Cell
	switch {
	case isSmallRegime(cells, winLength):
		ctx.regime = "small"
		rootMoves = enumerateEmptyMoves(board)
		ctx.maxDepth = min(9, board.CountEmpty())
	case isLargeRegime(cells, winLength):
		ctx.regime = "large"
		ctx.useCandidates = true
		rootMoves = enumerateCandidateMoves(board, a.rng, 2, 48)
		switch {
		case len(rootMoves) <= 12:
			ctx.maxDepth = 4
		case len(rootMoves) <= 24:
			ctx.maxDepth = 3
		default:
			ctx.maxDepth = 2
		}
	default:
		ctx.regime = "medium"
		rootMoves = enumerateCandidateMoves(board, a.rng, 1, 64)
		ctx.maxDepth = min(5, board.CountEmpty())
	}
	a.stats.Regime = ctx.regime
	a.stats.MaxDepth = ctx.maxDepth
	a.stats.RootCandidates = len(rootMoves)

	if len(rootMoves) == 0 {
		cr, cc := board.Center()
		a.stats.Reason = reasonCenter
		return NewMove(cr, cc, me)
	}
	orderByCenterDistance(rootMoves, board.Size())

	best, _, ok := a.searchRoot(&ctx, rootMoves)
	if !ok {
		a.stats.Reason = reasonFallback
		return NewMove(rootMoves[0].Row, rootMoves[0].Col, me)
	}
	a.stats.Reason = reasonSearch
	return NewMove(best.Row, best.Col, me)
}

// findWinningMove tries every empty cell in row-major order and returns the
// first one that completes a line for side.
func findWinningMove(board Board, side Side, rules Rules) (Move, bool) {
	size := board.Size()
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if board.At(r, c) != SideNone {
				continue
			}
			move := NewMove(r, c, side)
			board.Set(r, c, side)
			win := rules.IsWinningMove(board, move)
			board.Remove(r, c)
			if win {
				return move, true
			}
		}
	}
	return Move{}, false
}

func ParseDifficulty(raw string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "easy":
		return DifficultyEasy, nil
	case "", "standard":
		return DifficultyStandard, nil
	default:
		return DifficultyStandard, fmt.Errorf("unknown difficulty %q", raw)
	}
}

func (d Difficulty) String() string {
	if d == DifficultyEasy {
		return "easy"
	}
	return "standard"
}

func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
