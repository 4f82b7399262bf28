package main

import "sync"

// GameController serializes access to one Game. HTTP handlers, websocket
// readers and the ticker all go through it.
type GameController struct {
	mu   sync.Mutex
	game Game
}

// GameSnapshot is a consistent view of a session taken under one lock.
type GameSnapshot struct {
	ID              string
	Settings        GameSettings
	State           GameState
	History         MoveHistory
	TurnStartedAtMs int64
}

func NewGameController(id string, settings GameSettings, config Config) *GameController {
	return &GameController{game: NewGame(id, settings, config)}
}

func (gc *GameController) locked(fn func(g *Game)) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	fn(&gc.game)
}

func (gc *GameController) ID() (id string) {
	gc.locked(func(g *Game) { id = g.ID() })
	return id
}

// OnCellClicked queues a click for the next tick. Clicks on an AI turn are
// dropped.
func (gc *GameController) OnCellClicked(row, col int) {
	gc.locked(func(g *Game) { g.QueueHumanMove(row, col) })
}

// ApplyHumanMove plays a human move immediately instead of waiting for a tick.
func (gc *GameController) ApplyHumanMove(move Move) (applied bool, reason string) {
	gc.locked(func(g *Game) {
		switch {
		case g.state.Status != StatusRunning:
			reason = "game not running"
		case !g.CurrentPlayerIsHuman():
			reason = "not human turn"
		default:
			applied, reason = g.TryApplyMove(move)
		}
	})
	return applied, reason
}

func (gc *GameController) Tick() (moved bool) {
	gc.locked(func(g *Game) { moved = g.Tick() })
	return moved
}

func (gc *GameController) State() (state GameState) {
	gc.locked(func(g *Game) { state = g.State() })
	return state
}

func (gc *GameController) History() (history MoveHistory) {
	gc.locked(func(g *Game) { history = g.History() })
	return history
}

func (gc *GameController) LatestHistoryEntry() (entry HistoryEntry, ok bool) {
	gc.locked(func(g *Game) { entry, ok = g.history.Last() })
	return entry, ok
}

func (gc *GameController) Snapshot() (snap GameSnapshot) {
	gc.locked(func(g *Game) {
		snap = GameSnapshot{
			ID:              g.ID(),
			Settings:        g.Settings(),
			State:           g.State(),
			History:         g.History(),
			TurnStartedAtMs: g.TurnStartedAtMs(),
		}
	})
	return snap
}

// StartGame resets the board with settings and opens play.
func (gc *GameController) StartGame(settings GameSettings) {
	gc.locked(func(g *Game) {
		g.Reset(settings)
		g.Start()
	})
}

// Restart replays the current settings from an empty board.
func (gc *GameController) Restart() {
	gc.locked(func(g *Game) {
		g.Reset(g.Settings())
		g.Start()
	})
}
