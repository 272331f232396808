package sse

import (
	"net/http"
	"time"

	"github.com/shadowgame/impostor-server/internal/model"
)

const (
	// Time between keepalive pings
	pingPeriod = 30 * time.Second

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

// Client represents a connected SSE client
type Client struct {
	hub         *Hub
	wallet      model.Wallet
	send        chan []byte
	connectedAt time.Time
}

// NewClient creates a new SSE client
func NewClient(hub *Hub, wallet model.Wallet) *Client {
	return &Client{
		hub:         hub,
		wallet:      wallet,
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
	}
}

// ServeSSE handles an SSE connection until the client disconnects or
// the hub shuts down. The optional initial payload is written first so
// a fresh subscriber starts from the current state.
func ServeSSE(w http.ResponseWriter, r *http.Request, hub *Hub, wallet model.Wallet, initial []byte) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	client := NewClient(hub, wallet)
	hub.Register(client)
	defer func() {
		hub.Unregister(client)
	}()

	if len(initial) > 0 {
		if _, err := w.Write(initial); err != nil {
			return
		}
	} else {
		_, _ = w.Write([]byte("event: connected\ndata: {\"status\":\"connected\"}\n\n"))
	}
	flusher.Flush()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-client.send:
			if !ok {
				// Hub closed the channel
				return
			}
			if _, err := w.Write(message); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
