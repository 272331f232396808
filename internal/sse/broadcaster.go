package sse

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/shadowgame/impostor-server/internal/api/response"
	"github.com/shadowgame/impostor-server/internal/model"
)

// SnapshotProvider supplies the room view pushed to observers
type SnapshotProvider interface {
	Snapshot(ctx context.Context, roomID model.RoomID, viewerWallet model.Wallet) (*model.RoomSnapshot, error)
}

// Broadcaster pushes room state to SSE clients. Broadcasts always carry
// the public snapshot: roles stay hidden on the wire until the room has
// ended, whoever is listening.
type Broadcaster struct {
	hubManager *HubManager
	snapshots  SnapshotProvider
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, snapshots SnapshotProvider, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		snapshots:  snapshots,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// BroadcastRoomUpdate pushes the public snapshot to every client of the room
func (b *Broadcaster) BroadcastRoomUpdate(ctx context.Context, roomID model.RoomID) {
	hub := b.hubManager.GetHub(roomID)
	if hub == nil {
		return
	}

	snapshot, err := b.snapshots.Snapshot(ctx, roomID, "")
	if err != nil {
		b.logger.Error("sse failed to build snapshot",
			slog.String("room_id", string(roomID)),
			slog.Any("error", err))
		return
	}

	data, err := json.Marshal(response.SnapshotFromModel(snapshot))
	if err != nil {
		b.logger.Error("sse failed to marshal snapshot",
			slog.String("room_id", string(roomID)),
			slog.Any("error", err))
		return
	}
	hub.BroadcastEvent(string(model.EventRoomUpdate), string(data))
}

// BroadcastEvent pushes a typed game event to every client of the room
func (b *Broadcaster) BroadcastEvent(roomID model.RoomID, eventType model.EventType, payload any) {
	hub := b.hubManager.GetHub(roomID)
	if hub == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		b.logger.Error("sse failed to marshal event payload",
			slog.String("room_id", string(roomID)),
			slog.String("event_type", string(eventType)),
			slog.Any("error", err))
		return
	}
	hub.BroadcastEvent(string(eventType), string(data))
}

// BroadcastChat pushes a chat message to every client of the room
func (b *Broadcaster) BroadcastChat(msg *model.ChatMessage) {
	b.BroadcastEvent(msg.RoomID, model.EventChat, response.ChatMessageFromModel(msg))
}

// InitialSnapshotMessage renders the snapshot event a fresh subscriber
// receives on connect
func (b *Broadcaster) InitialSnapshotMessage(ctx context.Context, roomID model.RoomID, viewerWallet model.Wallet) []byte {
	snapshot, err := b.snapshots.Snapshot(ctx, roomID, viewerWallet)
	if err != nil {
		return nil
	}
	data, err := json.Marshal(response.SnapshotFromModel(snapshot))
	if err != nil {
		return nil
	}
	return formatSSEMessage(string(model.EventRoomUpdate), string(data))
}
