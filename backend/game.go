package main

import (
	"log/slog"
	"time"
)

type Game struct {
	id        string
	settings  GameSettings
	config    Config
	rules     Rules
	state     GameState
	history   MoveHistory
	xPlayer   Player
	oPlayer   Player
	turnStart time.Time
	logger    *slog.Logger
}

func NewGame(id string, settings GameSettings, config Config) Game {
	g := Game{id: id, config: config}
	g.logger = slog.Default().With("component", "game", "game_id", id)
	g.Reset(settings)
	return g
}

func (g *Game) Reset(settings GameSettings) {
	g.settings = settings
	g.rules = NewRules(settings.WinLength)
	g.state.Reset(settings)
	g.history.Clear()
	g.createPlayers()
	g.turnStart = time.Now()
	g.logger.Info("game reset",
		"mode", settings.Mode(),
		"edge_size", settings.EdgeSize,
		"rules", g.rules.String(),
	)
}

func (g *Game) Start() {
	if g.state.Status == StatusNotStarted {
		g.state.Status = StatusRunning
		g.turnStart = time.Now()
	}
}

func (g *Game) ID() string {
	return g.id
}

func (g *Game) Settings() GameSettings {
	return g.settings
}

func (g *Game) State() GameState {
	return g.state.Clone()
}

func (g *Game) History() MoveHistory {
	return MoveHistory(g.history.All())
}

func (g *Game) TurnStartedAtMs() int64 {
	if g.turnStart.IsZero() {
		return 0
	}
	return g.turnStart.UnixMilli()
}

// TryApplyMove places a stone for the side to move at (move.Row, move.Col),
// judges the result and hands the turn over.
func (g *Game) TryApplyMove(move Move) (bool, string) {
	return g.applyMove(move, HistoryEntry{})
}

func (g *Game) applyMove(move Move, entry HistoryEntry) (bool, string) {
	if g.state.Status != StatusRunning {
		return false, "game not running"
	}
	move.Side = g.state.ToMove
	if !g.state.Board.ApplyMove(move) {
		if !move.IsValid(g.state.Board.Size()) {
			g.state.LastMessage = "Illegal move: out of bounds"
		} else {
			g.state.LastMessage = "Illegal move: occupied"
		}
		return false, g.state.LastMessage
	}
	g.state.LastMessage = ""
	g.state.LastMove = move
	g.state.HasLastMove = true

	entry.Move = move
	entry.ElapsedMs = float64(time.Since(g.turnStart).Milliseconds())
	g.history.Push(entry)
	g.logger.Debug("move played",
		"side", move.Side.String(),
		"row", move.Row,
		"col", move.Col,
		"ai", entry.IsAi,
		"elapsed_ms", entry.ElapsedMs,
	)

	if ended, result := g.rules.CheckWinCondition(g.state.Board, move); ended {
		g.state.Result = result
		g.state.Status = statusFromResult(result)
		observeGameFinished(g.state.Status)
		g.logger.Info("game over",
			"status", statusToString(g.state.Status),
			"moves", g.history.Size(),
			"x_moves", g.history.Count(SideX),
			"o_moves", g.history.Count(SideO),
		)
		return true, ""
	}
	g.state.ToMove = Opposite(g.state.ToMove)
	g.turnStart = time.Now()
	return true, ""
}

// Tick advances the game by at most one move. It returns true when a move was
// applied. A human side plays its queued click; an AI side searches.
func (g *Game) Tick() bool {
	if g.state.Status != StatusRunning {
		return false
	}
	player := g.currentPlayer()
	if player == nil {
		return false
	}
	move := player.ChooseMove(g.state.Clone(), g.rules)
	if player.Type() == PlayerHuman {
		if move.IsNone() {
			return false
		}
		applied, _ := g.TryApplyMove(move)
		return applied
	}

	entry := HistoryEntry{IsAi: true}
	if ai, ok := player.(*AIPlayer); ok {
		stats := ai.LastStats()
		entry.Reason = stats.Reason
		entry.Depth = stats.MaxDepth
		g.logger.Debug("ai decided",
			"difficulty", ai.Difficulty().String(),
			"reason", stats.Reason,
			"nodes", stats.Nodes,
			"deadline_hit", stats.DeadlineHit,
		)
	}
	if move.IsNone() || !g.state.Board.CanPlace(move.Row, move.Col) {
		fallback, ok := firstEmptyCell(g.state.Board)
		if !ok {
			return false
		}
		g.logger.Warn("ai returned unplayable move, using first empty cell",
			"row", move.Row, "col", move.Col)
		move = NewMove(fallback.Row, fallback.Col, g.state.ToMove)
		entry.Reason = reasonFallback
	}
	applied, _ := g.applyMove(move, entry)
	return applied
}

// QueueHumanMove stores a click for the next tick. It reports false when the
// side on move is not human.
func (g *Game) QueueHumanMove(row, col int) bool {
	human, ok := g.currentPlayer().(*HumanPlayer)
	if !ok {
		return false
	}
	human.Queue(row, col)
	return true
}

func (g *Game) CurrentPlayerIsHuman() bool {
	player := g.currentPlayer()
	return player != nil && player.Type() == PlayerHuman
}

func (g *Game) currentPlayer() Player {
	return g.playerForSide(g.state.ToMove)
}

func (g *Game) playerForSide(side Side) Player {
	if side == SideX {
		return g.xPlayer
	}
	return g.oPlayer
}

func (g *Game) createPlayers() {
	g.xPlayer = g.newPlayer(SideX)
	g.oPlayer = g.newPlayer(SideO)
}

func (g *Game) newPlayer(side Side) Player {
	if g.settings.TypeFor(side) == PlayerHuman {
		return NewHumanPlayer()
	}
	return NewAIPlayer(g.settings.DifficultyFor(side), g.config)
}

func firstEmptyCell(board Board) (Cell, bool) {
	size := board.Size()
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if board.CanPlace(r, c) {
				return Cell{Row: r, Col: c}, true
			}
		}
	}
	return Cell{}, false
}
