package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsIdlePingInterval = 30 * time.Second
	wsWriteTimeout     = 5 * time.Second
)

var wsUpgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// serveWS streams game updates. ?game=<id> narrows the stream to one game.
func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "component", "hub", "error", err)
		return
	}
	client := &Client{gameID: r.URL.Query().Get("game"), send: make(chan []byte, 16)}
	s.hub.Register(client)

	if client.gameID != "" {
		if controller, err := s.sessions.Get(client.gameID); err == nil {
			client.sendJSON(wsMessage{Type: "status", GameID: client.gameID, Payload: mustMarshal(controllerStatus(controller))})
		}
	}

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send); err != nil {
			slog.Debug("websocket writer stopped", "component", "hub", "error", err)
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			s.hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_status":
			id := msg.GameID
			if id == "" {
				id = client.gameID
			}
			controller, err := s.sessions.Get(id)
			if err != nil {
				client.sendJSON(wsMessage{Type: "error", GameID: id, Payload: mustMarshal(map[string]string{"error": err.Error()})})
				continue
			}
			client.sendJSON(wsMessage{Type: "status", GameID: id, Payload: mustMarshal(controllerStatus(controller))})
		case "move":
			// Queued for the next tick, which also broadcasts the result.
			var move apiMove
			if err := json.Unmarshal(msg.Payload, &move); err != nil {
				continue
			}
			controller, err := s.sessions.Get(client.gameID)
			if err != nil {
				continue
			}
			controller.OnCellClicked(move.Row, move.Col)
		}
	}
}

func writeWSWithHeartbeat(conn *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(wsIdlePingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(wsWriteTimeout))
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < wsIdlePingInterval {
				continue
			}
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteTimeout)); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
