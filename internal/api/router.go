package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/shadowgame/impostor-server/internal/api/handler"
	apimiddleware "github.com/shadowgame/impostor-server/internal/api/middleware"
	"github.com/shadowgame/impostor-server/internal/middleware"
	"github.com/shadowgame/impostor-server/internal/services/claim"
	"github.com/shadowgame/impostor-server/internal/services/room"
	"github.com/shadowgame/impostor-server/internal/services/signer"
	"github.com/shadowgame/impostor-server/internal/services/stats"
	"github.com/shadowgame/impostor-server/internal/sse"
	"github.com/shadowgame/impostor-server/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	Storage        storage.Storage
	RoomController *room.Controller
	ClaimService   *claim.Service
	Signer         signer.Signer
	Stats          stats.Recorder
	HubManager     *sse.HubManager
	Broadcaster    *sse.Broadcaster
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	roomHandler := handler.NewRoomHandler(cfg.RoomController, cfg.HubManager, cfg.Broadcaster)
	gameHandler := handler.NewGameHandler(cfg.RoomController, cfg.Broadcaster)
	claimHandler := handler.NewClaimHandler(cfg.Storage, cfg.ClaimService, cfg.Signer, cfg.Stats)

	walletMiddleware := apimiddleware.Wallet()
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Health check endpoint (no identity)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Signer verification key (no identity)
	api.HandleFunc("/claims/key", claimHandler.SignerKey).Methods(http.MethodGet)

	// Room routes (wallet identity required)
	rooms := api.PathPrefix("/rooms").Subrouter()
	rooms.Use(walletMiddleware)
	rooms.HandleFunc("", roomHandler.Create).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}/join", roomHandler.Join).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}", roomHandler.Get).Methods(http.MethodGet)
	rooms.HandleFunc("/{room_id}/ready", roomHandler.SetReady).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}/start", roomHandler.Start).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}/actions", gameHandler.SubmitAction).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}/votes", gameHandler.SubmitVote).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}/transition", gameHandler.Transition).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}/chat", gameHandler.SendChat).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}/chat", gameHandler.ChatHistory).Methods(http.MethodGet)
	rooms.HandleFunc("/{room_id}/events", roomHandler.Events).Methods(http.MethodGet)

	// Result and claim routes (wallet identity required)
	results := api.PathPrefix("/results").Subrouter()
	results.Use(walletMiddleware)
	results.HandleFunc("/{game_id}", claimHandler.GetResult).Methods(http.MethodGet)

	claims := api.PathPrefix("/claims").Subrouter()
	claims.Use(walletMiddleware)
	claims.HandleFunc("", claimHandler.Claim).Methods(http.MethodPost)

	// Stats routes (public reads)
	api.HandleFunc("/stats/{wallet}", claimHandler.GetStats).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
