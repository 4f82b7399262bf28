package main

import (
	"log/slog"
	"time"
)

// AIPlayer plays one side of a session with its own agent.
type AIPlayer struct {
	agent      *AIAgent
	difficulty Difficulty
	lastStats  SearchStats
}

func NewAIPlayer(difficulty Difficulty, config Config) *AIPlayer {
	return &AIPlayer{
		agent: NewAIAgent(AgentOptions{
			Seed:       config.AiSeed,
			TimeBudget: config.AiTimeBudget(),
		}),
		difficulty: difficulty,
	}
}

func (a *AIPlayer) Type() PlayerType {
	return PlayerAI
}

func (a *AIPlayer) ChooseMove(state GameState, rules Rules) Move {
	move := a.agent.Decide(state.Board, state.ToMove, a.difficulty, rules.WinLength())
	a.lastStats = a.agent.LastStats()
	observeDecision(a.lastStats)
	if GetConfig().AiLogSearchStats {
		logSearchStats("choose", a.lastStats)
	}
	return move
}

func (a *AIPlayer) Difficulty() Difficulty {
	return a.difficulty
}

func (a *AIPlayer) LastStats() SearchStats {
	return a.lastStats
}

func logSearchStats(tag string, stats SearchStats) {
	nps := 0.0
	if stats.Elapsed > 0 {
		nps = float64(stats.Nodes) / stats.Elapsed.Seconds()
	}
	slog.Debug("search stats",
		"component", "ai",
		"tag", tag,
		"difficulty", stats.Difficulty.String(),
		"reason", stats.Reason,
		"regime", stats.Regime,
		"max_depth", stats.MaxDepth,
		"root", stats.RootCandidates,
		"root_completed", stats.RootCompleted,
		"nodes", stats.Nodes,
		"nps", int64(nps),
		"cutoffs", stats.Cutoffs,
		"deadline_hit", stats.DeadlineHit,
		"elapsed", stats.Elapsed.Round(time.Microsecond),
	)
}
