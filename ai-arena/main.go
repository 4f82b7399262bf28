package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

// arena pits two difficulties against each other through the backend API,
// swapping colors every game.
type arena struct {
	client       *http.Client
	baseURL      string
	pollInterval time.Duration
	gameTimeout  time.Duration
	logger       *slog.Logger

	games     int
	parallel  int
	edgeSize  int
	winLength int
	first     string
	second    string
}

type gameSettings struct {
	Mode        string `json:"mode"`
	EdgeSize    int    `json:"edge_size"`
	WinLength   int    `json:"win_length"`
	XDifficulty string `json:"x_difficulty"`
	ODifficulty string `json:"o_difficulty"`
}

type statusResponse struct {
	ID      string            `json:"id"`
	Status  string            `json:"status"`
	Winner  int               `json:"winner"`
	History []json.RawMessage `json:"history"`
}

type tally struct {
	mu          sync.Mutex
	FirstWins   int `json:"first_wins"`
	SecondWins  int `json:"second_wins"`
	Draws       int `json:"draws"`
	TotalMoves  int `json:"total_moves"`
	GamesPlayed int `json:"games_played"`
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil)).With("component", "arena")

	a := &arena{
		client:       &http.Client{Timeout: 10 * time.Second},
		baseURL:      getenv("ARENA_BACKEND_URL", "http://localhost:8080"),
		pollInterval: time.Duration(getenvInt("ARENA_POLL_INTERVAL_MS", 100)) * time.Millisecond,
		gameTimeout:  time.Duration(getenvInt("ARENA_GAME_TIMEOUT_SEC", 60)) * time.Second,
		logger:       logger,
		games:        getenvInt("ARENA_GAMES", 10),
		parallel:     getenvInt("ARENA_PARALLEL", 2),
		edgeSize:     getenvInt("ARENA_EDGE_SIZE", 3),
		winLength:    getenvInt("ARENA_WIN_LENGTH", 3),
		first:        getenv("ARENA_FIRST", "standard"),
		second:       getenv("ARENA_SECOND", "easy"),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := a.run(ctx)
	logger.Info("arena finished",
		"first", a.first,
		"second", a.second,
		"games", result.GamesPlayed,
		"first_wins", result.FirstWins,
		"second_wins", result.SecondWins,
		"draws", result.Draws,
		"total_moves", result.TotalMoves,
	)
	if err != nil {
		logger.Error("arena stopped early", "error", err)
		os.Exit(1)
	}
}

func (a *arena) run(ctx context.Context) (*tally, error) {
	result := &tally{}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(a.parallel, 1))
	for i := 0; i < a.games; i++ {
		i := i
		firstIsX := i%2 == 0
		g.Go(func() error {
			status, err := a.playGame(ctx, firstIsX)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			result.record(status, firstIsX)
			a.logger.Info("game finished",
				"index", i,
				"id", status.ID,
				"status", status.Status,
				"moves", len(status.History),
				"first_is_x", firstIsX,
			)
			return nil
		})
	}
	err := g.Wait()
	return result, err
}

func (a *arena) playGame(ctx context.Context, firstIsX bool) (statusResponse, error) {
	settings := gameSettings{
		Mode:        "ai_vs_ai",
		EdgeSize:    a.edgeSize,
		WinLength:   a.winLength,
		XDifficulty: a.first,
		ODifficulty: a.second,
	}
	if !firstIsX {
		settings.XDifficulty, settings.ODifficulty = a.second, a.first
	}
	var created statusResponse
	if err := a.postJSON(ctx, "/api/games", map[string]any{"settings": settings}, &created); err != nil {
		return statusResponse{}, err
	}
	defer a.deleteGame(created.ID)

	deadline := time.Now().Add(a.gameTimeout)
	for {
		var status statusResponse
		if err := a.getJSON(ctx, "/api/games/"+created.ID, &status); err != nil {
			return statusResponse{}, err
		}
		if status.Status != "running" {
			return status, nil
		}
		if a.gameTimeout > 0 && time.Now().After(deadline) {
			return statusResponse{}, fmt.Errorf("game %s timeout after %s", created.ID, a.gameTimeout)
		}
		if !sleepWithContext(ctx, a.pollInterval) {
			return statusResponse{}, ctx.Err()
		}
	}
}

func (a *arena) deleteGame(id string) {
	req, err := http.NewRequest(http.MethodDelete, a.baseURL+"/api/games/"+id, nil)
	if err != nil {
		return
	}
	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Warn("delete game failed", "id", id, "error", err)
		return
	}
	_ = resp.Body.Close()
}

func (t *tally) record(status statusResponse, firstIsX bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.GamesPlayed++
	t.TotalMoves += len(status.History)
	switch {
	case status.Winner == 0:
		t.Draws++
	case (status.Winner == 1) == firstIsX:
		t.FirstWins++
	default:
		t.SecondWins++
	}
}

func (a *arena) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+path, nil)
	if err != nil {
		return err
	}
	return a.do(req, out)
}

func (a *arena) postJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return a.do(req, out)
}

func (a *arena) do(req *http.Request, out any) error {
	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%s %s -> %d: %s", req.Method, req.URL.Path, resp.StatusCode, string(body))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var parsed int
	if _, err := fmt.Sscanf(value, "%d", &parsed); err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
