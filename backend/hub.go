package main

import (
	"encoding/json"
	"log/slog"
	"sync"
)

const hubQueueSize = 64

// Hub fans game updates out to websocket clients. Clients are grouped into
// rooms by game id; the "" room receives every game.
type Hub struct {
	mu       sync.Mutex
	rooms    map[string]map[*Client]struct{}
	outbound chan wsMessage
}

type Client struct {
	gameID string
	send   chan []byte
}

type wsMessage struct {
	Type    string          `json:"type"`
	GameID  string          `json:"game_id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewHub() *Hub {
	return &Hub{
		rooms:    make(map[string]map[*Client]struct{}),
		outbound: make(chan wsMessage, hubQueueSize),
	}
}

func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case msg := <-h.outbound:
			h.broadcast(msg)
		}
	}
}

func (h *Hub) broadcast(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("encode ws message failed", "component", "hub", "type", msg.Type, "error", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.rooms[msg.GameID] {
		client.deliver(data)
	}
	if msg.GameID == "" {
		return
	}
	for client := range h.rooms[""] {
		client.deliver(data)
	}
}

// enqueue never blocks the caller; a full queue drops the update.
func (h *Hub) enqueue(kind, gameID string, payload any) {
	msg := wsMessage{Type: kind, GameID: gameID, Payload: mustMarshal(payload)}
	select {
	case h.outbound <- msg:
	default:
		slog.Debug("ws update dropped", "component", "hub", "type", kind, "game_id", gameID)
	}
}

func (h *Hub) PublishStatus(status StatusResponse) {
	h.enqueue("status", status.ID, status)
}

func (h *Hub) PublishHistory(payload historyPayload) {
	h.enqueue("history", payload.GameID, payload)
}

func (h *Hub) PublishReset(status StatusResponse) {
	h.enqueue("reset", status.ID, status)
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[c.gameID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[c.gameID] = room
	}
	room[c] = struct{}{}
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.rooms[c.gameID]
	if _, ok := room[c]; !ok {
		return
	}
	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, c.gameID)
	}
	close(c.send)
}

func (c *Client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	c.deliver(data)
}

// deliver drops data when the client's buffer is full.
func (c *Client) deliver(data []byte) {
	select {
	case c.send <- data:
	default:
	}
}
