package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub, gameID string) *Client {
	client := &Client{gameID: gameID, send: make(chan []byte, 4)}
	hub.Register(client)
	return client
}

func TestHubRoutesByGame(t *testing.T) {
	hub := NewHub()
	watcherA := newTestClient(hub, "a")
	watcherB := newTestClient(hub, "b")
	everyone := newTestClient(hub, "")

	hub.PublishStatus(StatusResponse{ID: "a", Status: "running"})
	hub.broadcast(<-hub.outbound)

	require.Len(t, watcherA.send, 1)
	assert.Empty(t, watcherB.send)
	require.Len(t, everyone.send, 1)

	var msg wsMessage
	require.NoError(t, json.Unmarshal(<-watcherA.send, &msg))
	assert.Equal(t, "status", msg.Type)
	assert.Equal(t, "a", msg.GameID)
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "a")
	hub.Unregister(client)
	hub.Unregister(client)

	_, open := <-client.send
	assert.False(t, open)
	assert.Empty(t, hub.rooms)
}

func TestHubDropsWhenQueueFull(t *testing.T) {
	hub := NewHub()
	for i := 0; i < hubQueueSize+5; i++ {
		hub.PublishReset(StatusResponse{ID: "a"})
	}
	assert.Len(t, hub.outbound, hubQueueSize)
}
