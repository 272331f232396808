package stats

import (
	"context"
	"log/slog"

	"github.com/shadowgame/impostor-server/internal/model"
	"github.com/shadowgame/impostor-server/internal/storage"
)

// Recorder accumulates lifetime per-wallet counters. Recording is best
// effort: failures are logged and never fail the game flow that
// triggered them.
type Recorder interface {
	RecordKill(ctx context.Context, wallet model.Wallet)
	RecordSave(ctx context.Context, wallet model.Wallet)
	RecordCorrectDetection(ctx context.Context, wallet model.Wallet)
	RecordJesterWin(ctx context.Context, wallet model.Wallet)
	Stats(ctx context.Context, wallet model.Wallet) (*model.PlayerStats, error)
}

// StorageRecorder is the storage-backed Recorder
type StorageRecorder struct {
	storage storage.Storage
	logger  *slog.Logger
}

// Ensure StorageRecorder implements Recorder
var _ Recorder = (*StorageRecorder)(nil)

// NewRecorder creates a new storage-backed stats recorder
func NewRecorder(storage storage.Storage, logger *slog.Logger) *StorageRecorder {
	return &StorageRecorder{
		storage: storage,
		logger:  logger,
	}
}

func (r *StorageRecorder) add(ctx context.Context, wallet model.Wallet, delta model.PlayerStats) {
	if err := r.storage.AddStats(ctx, wallet, delta); err != nil {
		r.logger.Warn("failed to record stats",
			"wallet", wallet,
			"error", err,
		)
	}
}

func (r *StorageRecorder) RecordKill(ctx context.Context, wallet model.Wallet) {
	r.add(ctx, wallet, model.PlayerStats{Kills: 1})
}

func (r *StorageRecorder) RecordSave(ctx context.Context, wallet model.Wallet) {
	r.add(ctx, wallet, model.PlayerStats{Saves: 1})
}

func (r *StorageRecorder) RecordCorrectDetection(ctx context.Context, wallet model.Wallet) {
	r.add(ctx, wallet, model.PlayerStats{CorrectDetections: 1})
}

func (r *StorageRecorder) RecordJesterWin(ctx context.Context, wallet model.Wallet) {
	r.add(ctx, wallet, model.PlayerStats{JesterWins: 1})
}

// Stats returns the wallet's lifetime counters
func (r *StorageRecorder) Stats(ctx context.Context, wallet model.Wallet) (*model.PlayerStats, error) {
	return r.storage.GetStats(ctx, wallet)
}
