package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/shadowgame/impostor-server/internal/api/middleware"
	"github.com/shadowgame/impostor-server/internal/api/request"
	"github.com/shadowgame/impostor-server/internal/api/response"
	"github.com/shadowgame/impostor-server/internal/model"
	"github.com/shadowgame/impostor-server/internal/services/room"
	"github.com/shadowgame/impostor-server/internal/sse"
)

// RoomHandler handles lobby and room lifecycle endpoints
type RoomHandler struct {
	rooms       *room.Controller
	hubManager  *sse.HubManager
	broadcaster *sse.Broadcaster
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(rooms *room.Controller, hubManager *sse.HubManager, broadcaster *sse.Broadcaster) *RoomHandler {
	return &RoomHandler{
		rooms:       rooms,
		hubManager:  hubManager,
		broadcaster: broadcaster,
	}
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	wallet := middleware.MustGetWallet(r.Context())

	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Nickname == "" {
		WriteError(w, NewInvalidRequestError("nickname is required"))
		return
	}

	created, host, err := h.rooms.CreateRoom(r.Context(), wallet, req.Nickname)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.JoinedRoom{
		RoomID:   string(created.ID),
		Code:     string(created.Code),
		PlayerID: string(host.ID),
	})
}

// Join handles POST /api/v1/rooms/{code}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	wallet := middleware.MustGetWallet(r.Context())
	code := model.RoomCode(mux.Vars(r)["code"])

	var req request.JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Nickname == "" {
		WriteError(w, NewInvalidRequestError("nickname is required"))
		return
	}

	joined, player, err := h.rooms.JoinRoom(r.Context(), code, wallet, req.Nickname)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.BroadcastRoomUpdate(r.Context(), joined.ID)
	response.JSON(w, http.StatusOK, response.JoinedRoom{
		RoomID:   string(joined.ID),
		Code:     string(joined.Code),
		PlayerID: string(player.ID),
	})
}

// Get handles GET /api/v1/rooms/{room_id}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	wallet := middleware.MustGetWallet(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	snapshot, err := h.rooms.Snapshot(r.Context(), roomID, wallet)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SnapshotFromModel(snapshot))
}

// SetReady handles POST /api/v1/rooms/{room_id}/ready
func (h *RoomHandler) SetReady(w http.ResponseWriter, r *http.Request) {
	wallet := middleware.MustGetWallet(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	var req request.SetReadyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if _, err := h.rooms.SetReady(r.Context(), roomID, wallet, req.Ready); err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.BroadcastRoomUpdate(r.Context(), roomID)
	response.NoContent(w)
}

// Start handles POST /api/v1/rooms/{room_id}/start
func (h *RoomHandler) Start(w http.ResponseWriter, r *http.Request) {
	wallet := middleware.MustGetWallet(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	started, err := h.rooms.Start(r.Context(), roomID, wallet)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.BroadcastEvent(roomID, model.EventPhaseChange, model.PhaseChangePayload{
		Status: started.Status,
		Phase:  started.Phase,
	})
	h.broadcaster.BroadcastRoomUpdate(r.Context(), roomID)

	snapshot, err := h.rooms.Snapshot(r.Context(), roomID, wallet)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SnapshotFromModel(snapshot))
}

// Events handles GET /api/v1/rooms/{room_id}/events (SSE)
func (h *RoomHandler) Events(w http.ResponseWriter, r *http.Request) {
	wallet := middleware.MustGetWallet(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	// Reject subscriptions to rooms that do not exist
	if _, err := h.rooms.Snapshot(r.Context(), roomID, wallet); err != nil {
		WriteError(w, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(roomID)
	initial := h.broadcaster.InitialSnapshotMessage(r.Context(), roomID, wallet)
	sse.ServeSSE(w, r, hub, wallet, initial)
}
