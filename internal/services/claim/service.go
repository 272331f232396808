package claim

import (
	"context"
	"log/slog"

	"github.com/shadowgame/impostor-server/internal/dependencies/clock"
	"github.com/shadowgame/impostor-server/internal/model"
	"github.com/shadowgame/impostor-server/internal/services/signer"
	"github.com/shadowgame/impostor-server/internal/storage"
)

// Service hands out signed outcome attestations, once per (game, wallet)
type Service struct {
	storage storage.Storage
	signer  signer.Signer
	clock   clock.Clock
	logger  *slog.Logger
}

// NewService creates a new claim service
func NewService(storage storage.Storage, signer signer.Signer, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		signer:  signer,
		clock:   clock,
		logger:  logger,
	}
}

// Claim issues the attestation for a wallet's outcome in a finished
// game. A second claim for the same (game, wallet) is rejected; the
// attestation is not re-issuable.
func (s *Service) Claim(ctx context.Context, gameID model.GameID, wallet model.Wallet) (*signer.Attestation, error) {
	result, err := s.storage.GetResult(ctx, gameID)
	if err != nil {
		return nil, err
	}

	playerResult := result.ResultFor(wallet)
	if playerResult == nil {
		return nil, model.ErrNotInResult
	}

	claimed, err := s.storage.ClaimExists(ctx, gameID, wallet)
	if err != nil {
		return nil, err
	}
	if claimed {
		return nil, model.ErrAlreadyClaimed
	}

	attestation, err := s.signer.Sign(gameID, wallet, playerResult.Won, playerResult.RepDelta)
	if err != nil {
		return nil, err
	}

	if err := s.storage.SaveClaim(ctx, &model.ClaimLog{
		GameID:    gameID,
		Wallet:    wallet,
		ClaimedAt: s.clock.Now(),
	}); err != nil {
		return nil, err
	}

	s.logger.Info("claim issued",
		"game_id", gameID,
		"wallet", wallet,
		"rep_delta", playerResult.RepDelta,
	)
	return attestation, nil
}
