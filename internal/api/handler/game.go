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

// GameHandler handles in-game endpoints: actions, votes, transitions, chat
type GameHandler struct {
	rooms       *room.Controller
	broadcaster *sse.Broadcaster
}

// NewGameHandler creates a new game handler
func NewGameHandler(rooms *room.Controller, broadcaster *sse.Broadcaster) *GameHandler {
	return &GameHandler{
		rooms:       rooms,
		broadcaster: broadcaster,
	}
}

// SubmitAction handles POST /api/v1/rooms/{room_id}/actions
func (h *GameHandler) SubmitAction(w http.ResponseWriter, r *http.Request) {
	wallet := middleware.MustGetWallet(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	var req request.SubmitActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	action, err := h.rooms.SubmitAction(r.Context(), roomID, wallet, model.ActionType(req.Type), model.PlayerID(req.TargetID))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ActionFromModel(action))
}

// SubmitVote handles POST /api/v1/rooms/{room_id}/votes
func (h *GameHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	wallet := middleware.MustGetWallet(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	var req request.SubmitVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	vote, err := h.rooms.SubmitVote(r.Context(), roomID, wallet, model.PlayerID(req.TargetID))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.VoteFromModel(vote))
}

// Transition handles POST /api/v1/rooms/{room_id}/transition
func (h *GameHandler) Transition(w http.ResponseWriter, r *http.Request) {
	wallet := middleware.MustGetWallet(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	tr, err := h.rooms.Transition(r.Context(), roomID, wallet)
	if err != nil {
		WriteError(w, err)
		return
	}

	for _, event := range tr.Events {
		h.broadcaster.BroadcastEvent(roomID, event.Type, event.Payload)
	}
	h.broadcaster.BroadcastRoomUpdate(r.Context(), roomID)

	snapshot, err := h.rooms.Snapshot(r.Context(), roomID, wallet)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SnapshotFromModel(snapshot))
}

// SendChat handles POST /api/v1/rooms/{room_id}/chat
func (h *GameHandler) SendChat(w http.ResponseWriter, r *http.Request) {
	wallet := middleware.MustGetWallet(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	var req request.SendChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	msg, err := h.rooms.SendChat(r.Context(), roomID, wallet, req.Content)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.BroadcastChat(msg)
	response.JSON(w, http.StatusCreated, response.ChatMessageFromModel(msg))
}

// ChatHistory handles GET /api/v1/rooms/{room_id}/chat
func (h *GameHandler) ChatHistory(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	messages, err := h.rooms.ChatHistory(r.Context(), roomID)
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.ChatMessage, 0, len(messages))
	for _, msg := range messages {
		out = append(out, response.ChatMessageFromModel(msg))
	}
	response.JSON(w, http.StatusOK, out)
}
