package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

type StatusResponse struct {
	ID              string            `json:"id"`
	Settings        GameSettingsDTO   `json:"settings"`
	NextPlayer      int               `json:"next_player"`
	Winner          int               `json:"winner"`
	EdgeSize        int               `json:"edge_size"`
	WinLength       int               `json:"win_length"`
	Status          string            `json:"status"`
	Board           [][]int           `json:"board"`
	History         []historyEntryDTO `json:"history"`
	WinningLine     []Cell            `json:"winning_line"`
	LastMessage     string            `json:"last_message,omitempty"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type historyEntryDTO struct {
	Row       int     `json:"row"`
	Col       int     `json:"col"`
	Player    int     `json:"player"`
	ElapsedMs float64 `json:"elapsed_ms"`
	IsAi      bool    `json:"is_ai"`
	Reason    string  `json:"reason,omitempty"`
	Depth     int     `json:"depth,omitempty"`
}

type historyPayload struct {
	GameID  string            `json:"game_id"`
	History []historyEntryDTO `json:"history"`
}

type apiMove struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type decideRequest struct {
	Board      [][]int `json:"board"`
	Side       int     `json:"side"`
	Difficulty string  `json:"difficulty"`
	WinLength  int     `json:"win_length"`
}

type decideResponse struct {
	Row         int     `json:"row"`
	Col         int     `json:"col"`
	Side        int     `json:"side"`
	Reason      string  `json:"reason"`
	Regime      string  `json:"regime,omitempty"`
	Depth       int     `json:"depth,omitempty"`
	Nodes       int     `json:"nodes"`
	ElapsedMs   float64 `json:"elapsed_ms"`
	DeadlineHit bool    `json:"deadline_hit"`
}

type Server struct {
	sessions *SessionStore
	hub      *Hub
	limiter  *rate.Limiter
}

func NewServer(config Config) *Server {
	limit := rate.Inf
	if config.DecideRatePerSec > 0 {
		limit = rate.Limit(config.DecideRatePerSec)
	}
	burst := config.DecideBurst
	if burst <= 0 {
		burst = 1
	}
	return &Server{
		sessions: NewSessionStore(config.MaxSessions),
		hub:      NewHub(),
		limiter:  rate.NewLimiter(limit, burst),
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.With(s.rateLimited).Post("/api/decide", s.handleDecide)

	r.Route("/api/games", func(r chi.Router) {
		r.Get("/", s.handleListGames)
		r.Post("/", s.handleCreateGame)
		r.Get("/{id}", s.handleGameStatus)
		r.Delete("/{id}", s.handleDeleteGame)
		r.Post("/{id}/move", s.handleMove)
		r.Post("/{id}/restart", s.handleRestart)
	})

	r.Get("/ws/", s.serveWS)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// RunTicker plays pending AI turns until ctx is done.
func (s *Server) RunTicker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Server) tick() {
	for _, controller := range s.sessions.TickAll() {
		s.publishMove(controller)
	}
}

func (s *Server) publishMove(controller *GameController) {
	if entry, ok := controller.LatestHistoryEntry(); ok {
		s.hub.PublishHistory(historyPayload{
			GameID:  controller.ID(),
			History: []historyEntryDTO{historyEntryToDTO(entry)},
		})
	}
	s.hub.PublishStatus(controllerStatus(controller))
}

func (s *Server) rateLimited(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleDecide(w http.ResponseWriter, r *http.Request) {
	var payload decideRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	response, err := decide(payload, GetConfig())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// decide runs one stateless decision with a fresh agent.
func decide(payload decideRequest, config Config) (decideResponse, error) {
	board, side, level, winLength, err := parseDecideRequest(payload)
	if err != nil {
		return decideResponse{}, err
	}
	agent := NewAIAgent(AgentOptions{Seed: config.AiSeed, TimeBudget: config.AiTimeBudget()})
	move := agent.Decide(board, side, level, winLength)
	stats := agent.LastStats()
	observeDecision(stats)
	if config.AiLogSearchStats {
		logSearchStats("decide", stats)
	}
	return decideResponse{
		Row:         move.Row,
		Col:         move.Col,
		Side:        sideToInt(move.Side),
		Reason:      stats.Reason,
		Regime:      stats.Regime,
		Depth:       stats.MaxDepth,
		Nodes:       stats.Nodes,
		ElapsedMs:   float64(stats.Elapsed.Microseconds()) / 1000.0,
		DeadlineHit: stats.DeadlineHit,
	}, nil
}

func parseDecideRequest(payload decideRequest) (Board, Side, Difficulty, int, error) {
	board, err := BoardFromRows(payload.Board)
	if err != nil {
		return Board{}, SideNone, 0, 0, fmt.Errorf("board: %w", err)
	}
	side, err := sideFromInt(payload.Side)
	if err != nil || !side.Playable() {
		return Board{}, SideNone, 0, 0, fmt.Errorf("side must be 1 (X) or 2 (O), got %d", payload.Side)
	}
	level, err := ParseDifficulty(payload.Difficulty)
	if err != nil {
		return Board{}, SideNone, 0, 0, err
	}
	winLength := payload.WinLength
	if winLength == 0 {
		winLength = 3
	}
	if winLength < 3 {
		return Board{}, SideNone, 0, 0, fmt.Errorf("win_length %d must be at least 3", winLength)
	}
	return board, side, level, winLength, nil
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"games": s.sessions.IDs()})
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Settings GameSettingsDTO `json:"settings"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	config := GetConfig()
	settings, err := settingsFromDTO(payload.Settings, config.Game)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	controller, err := s.sessions.Create(settings, config)
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
	slog.Info("game created",
		"component", "http",
		"game_id", controller.ID(),
		"mode", settings.Mode(),
		"active", s.sessions.Len(),
	)
	status := controllerStatus(controller)
	s.hub.PublishReset(status)
	writeJSON(w, http.StatusCreated, status)
}

func (s *Server) handleGameStatus(w http.ResponseWriter, r *http.Request) {
	controller, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, controllerStatus(controller))
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.sessions.Delete(id); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	slog.Info("game deleted", "component", "http", "game_id", id, "active", s.sessions.Len())
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "id": id})
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	controller, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var payload apiMove
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	applied, errMsg := controller.ApplyHumanMove(Move{Row: payload.Row, Col: payload.Col})
	if !applied {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
		return
	}
	s.publishMove(controller)
	writeJSON(w, http.StatusOK, controllerStatus(controller))
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	controller, ok := s.lookup(w, r)
	if !ok {
		return
	}
	controller.Restart()
	status := controllerStatus(controller)
	s.hub.PublishReset(status)
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*GameController, bool) {
	controller, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrSessionNotFound) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return nil, false
	}
	return controller, true
}

func controllerStatus(controller *GameController) StatusResponse {
	snap := controller.Snapshot()
	state := snap.State
	line := state.Result.Line
	if line == nil {
		line = []Cell{}
	}
	return StatusResponse{
		ID:              snap.ID,
		Settings:        settingsToDTO(snap.Settings),
		NextPlayer:      sideToInt(state.ToMove),
		Winner:          winnerFromStatus(state.Status),
		EdgeSize:        state.Board.Size(),
		WinLength:       snap.Settings.WinLength,
		Status:          statusToString(state.Status),
		Board:           boardToRows(state.Board),
		History:         historyToDTO(snap.History),
		WinningLine:     line,
		LastMessage:     state.LastMessage,
		TurnStartedAtMs: snap.TurnStartedAtMs,
	}
}

func historyToDTO(history MoveHistory) []historyEntryDTO {
	result := make([]historyEntryDTO, 0, len(history))
	for _, entry := range history {
		result = append(result, historyEntryToDTO(entry))
	}
	return result
}

func historyEntryToDTO(entry HistoryEntry) historyEntryDTO {
	return historyEntryDTO{
		Row:       entry.Move.Row,
		Col:       entry.Move.Col,
		Player:    sideToInt(entry.Move.Side),
		ElapsedMs: entry.ElapsedMs,
		IsAi:      entry.IsAi,
		Reason:    entry.Reason,
		Depth:     entry.Depth,
	}
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("marshal failed", "error", err)
	}
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
