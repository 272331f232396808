package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/shadowgame/impostor-server/internal/api/middleware"
	"github.com/shadowgame/impostor-server/internal/api/request"
	"github.com/shadowgame/impostor-server/internal/api/response"
	"github.com/shadowgame/impostor-server/internal/model"
	"github.com/shadowgame/impostor-server/internal/services/claim"
	"github.com/shadowgame/impostor-server/internal/services/signer"
	"github.com/shadowgame/impostor-server/internal/services/stats"
	"github.com/shadowgame/impostor-server/internal/storage"
)

// ClaimHandler handles result lookup, claims, and stats endpoints
type ClaimHandler struct {
	storage storage.Storage
	claims  *claim.Service
	signer  signer.Signer
	stats   stats.Recorder
}

// NewClaimHandler creates a new claim handler
func NewClaimHandler(storage storage.Storage, claims *claim.Service, signer signer.Signer, stats stats.Recorder) *ClaimHandler {
	return &ClaimHandler{
		storage: storage,
		claims:  claims,
		signer:  signer,
		stats:   stats,
	}
}

// GetResult handles GET /api/v1/results/{game_id}
func (h *ClaimHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["game_id"])

	result, err := h.storage.GetResult(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameResultFromModel(result))
}

// Claim handles POST /api/v1/claims
func (h *ClaimHandler) Claim(w http.ResponseWriter, r *http.Request) {
	wallet := middleware.MustGetWallet(r.Context())

	var req request.ClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GameID == "" {
		WriteError(w, NewInvalidRequestError("game_id is required"))
		return
	}

	attestation, err := h.claims.Claim(r.Context(), model.GameID(req.GameID), wallet)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.AttestationFromModel(attestation))
}

// SignerKey handles GET /api/v1/claims/key
func (h *ClaimHandler) SignerKey(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"public_key": h.signer.PublicKeyHex(),
	})
}

// GetStats handles GET /api/v1/stats/{wallet}
func (h *ClaimHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	wallet := model.NormalizeWallet(mux.Vars(r)["wallet"])

	playerStats, err := h.stats.Stats(r.Context(), wallet)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayerStatsFromModel(playerStats))
}
