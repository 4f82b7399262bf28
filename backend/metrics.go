package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// decisionsTotal counts engine decisions by tier, board regime and the
	// rule that produced the move.
	decisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kuro_ai_decisions_total",
		Help: "Engine decisions by difficulty, regime and reason",
	}, []string{"difficulty", "regime", "reason"})

	decisionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kuro_ai_decision_duration_seconds",
		Help:    "Wall-clock time spent in one decision",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 10), // 0.5ms to ~256ms
	}, []string{"difficulty"})

	searchNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "kuro_ai_search_nodes",
		Help:    "Minimax nodes visited per Standard decision",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	deadlineHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kuro_ai_deadline_hits_total",
		Help: "Standard decisions cut short by the time budget",
	})

	gamesFinishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kuro_games_finished_total",
		Help: "Finished games by outcome",
	}, []string{"outcome"})

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "kuro_active_sessions",
		Help: "Game sessions currently held in memory",
	})
)

func observeDecision(stats SearchStats) {
	regime := stats.Regime
	if regime == "" {
		regime = "none"
	}
	difficulty := stats.Difficulty.String()
	decisionsTotal.WithLabelValues(difficulty, regime, stats.Reason).Inc()
	decisionDuration.WithLabelValues(difficulty).Observe(stats.Elapsed.Seconds())
	if stats.Reason == reasonSearch || stats.Reason == reasonFallback {
		searchNodes.Observe(float64(stats.Nodes))
	}
	if stats.DeadlineHit {
		deadlineHitsTotal.Inc()
	}
}

func observeGameFinished(status GameStatus) {
	gamesFinishedTotal.WithLabelValues(statusToString(status)).Inc()
}
