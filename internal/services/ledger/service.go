package ledger

import (
	"context"

	"github.com/shadowgame/impostor-server/internal/dependencies/clock"
	"github.com/shadowgame/impostor-server/internal/model"
	"github.com/shadowgame/impostor-server/internal/storage"
)

// Service records night actions and day votes. Submissions are upserted
// by (room, player, phase): resubmitting within the same phase replaces
// the earlier entry, and an empty target withdraws it.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
}

// NewService creates a new ledger service
func NewService(storage storage.Storage, clock clock.Clock) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
	}
}

// RecordAction validates and upserts a night action for the room's
// current phase. The target must be an alive member of the room, except
// that an empty target withdraws a previous submission. Only the doctor
// may target themself.
func (s *Service) RecordAction(
	ctx context.Context,
	room *model.Room,
	actor *model.Player,
	actionType model.ActionType,
	targetID model.PlayerID,
) (*model.Action, error) {
	if room.Status != model.RoomStatusNight {
		return nil, model.ErrWrongPhase
	}
	if !actor.IsAlive {
		return nil, model.ErrPlayerDead
	}
	if !actionType.Valid() || actor.Role.NightAbility() != actionType {
		return nil, model.ErrRoleForbidsAction
	}

	if targetID != "" {
		if targetID == actor.ID && actionType != model.ActionProtect {
			return nil, model.ErrSelfTarget
		}
		target, err := s.storage.GetPlayer(ctx, room.ID, targetID)
		if err != nil {
			return nil, model.ErrInvalidTarget
		}
		if !target.IsAlive {
			return nil, model.ErrInvalidTarget
		}
	}

	action := &model.Action{
		RoomID:      room.ID,
		PlayerID:    actor.ID,
		Phase:       room.Phase,
		Type:        actionType,
		TargetID:    targetID,
		SubmittedAt: s.clock.Now(),
	}
	if err := s.storage.UpsertAction(ctx, action); err != nil {
		return nil, err
	}
	return action, nil
}

// RecordVote validates and upserts a day vote for the room's current
// phase. An empty target is a skip vote; voting for yourself is not
// allowed.
func (s *Service) RecordVote(
	ctx context.Context,
	room *model.Room,
	actor *model.Player,
	targetID model.PlayerID,
) (*model.Vote, error) {
	if !room.AcceptsVotes() {
		return nil, model.ErrWrongPhase
	}
	if !actor.IsAlive {
		return nil, model.ErrPlayerDead
	}

	if targetID != "" {
		if targetID == actor.ID {
			return nil, model.ErrSelfTarget
		}
		target, err := s.storage.GetPlayer(ctx, room.ID, targetID)
		if err != nil {
			return nil, model.ErrInvalidTarget
		}
		if !target.IsAlive {
			return nil, model.ErrInvalidTarget
		}
	}

	vote := &model.Vote{
		RoomID:      room.ID,
		PlayerID:    actor.ID,
		Phase:       room.Phase,
		TargetID:    targetID,
		SubmittedAt: s.clock.Now(),
	}
	if err := s.storage.UpsertVote(ctx, vote); err != nil {
		return nil, err
	}
	return vote, nil
}

// ActionsForPhase returns the night actions recorded for a phase
func (s *Service) ActionsForPhase(ctx context.Context, roomID model.RoomID, phase int) ([]*model.Action, error) {
	return s.storage.ActionsForPhase(ctx, roomID, phase)
}

// VotesForPhase returns the day votes recorded for a phase
func (s *Service) VotesForPhase(ctx context.Context, roomID model.RoomID, phase int) ([]*model.Vote, error) {
	return s.storage.VotesForPhase(ctx, roomID, phase)
}
