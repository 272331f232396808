package resolve

import (
	"context"
	"log/slog"
	"sort"

	"github.com/shadowgame/impostor-server/internal/model"
	"github.com/shadowgame/impostor-server/internal/services/stats"
	"github.com/shadowgame/impostor-server/internal/storage"
)

// Service resolves the submitted actions and votes of a finished phase.
// It mutates player liveness but never the room status; sequencing is
// the state machine's job.
type Service struct {
	storage storage.Storage
	stats   stats.Recorder
	logger  *slog.Logger
}

// NewService creates a new resolution service
func NewService(storage storage.Storage, stats stats.Recorder, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		stats:   stats,
		logger:  logger,
	}
}

// NightOutcome is the observable result of resolving one night
type NightOutcome struct {
	// VictimID is the player the impostors selected, empty if no valid
	// kill was submitted
	VictimID model.PlayerID

	// WasProtected is true if the selected victim survived due to a
	// doctor protect
	WasProtected bool

	// Investigations are the detective actions that were answered this
	// night, with Result populated
	Investigations []*model.Action
}

// ResolveNight applies the night's actions: the impostors' plurality
// kill target dies unless protected, and investigations are answered.
// Withdrawn actions (empty target) are ignored. The impostor kill
// choice is the most-targeted player; ties break to the lowest player
// id so resolution is deterministic.
func (s *Service) ResolveNight(ctx context.Context, room *model.Room, players []*model.Player) (*NightOutcome, error) {
	actions, err := s.storage.ActionsForPhase(ctx, room.ID, room.Phase)
	if err != nil {
		return nil, err
	}

	byID := make(map[model.PlayerID]*model.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	killVotes := make(map[model.PlayerID]int)
	killersByTarget := make(map[model.PlayerID][]*model.Player)
	protected := make(map[model.PlayerID]*model.Player)
	var investigations []*model.Action

	for _, action := range actions {
		actor := byID[action.PlayerID]
		if actor == nil || !actor.IsAlive || action.TargetID == "" {
			continue
		}
		target := byID[action.TargetID]
		if target == nil || !target.IsAlive {
			continue
		}

		switch action.Type {
		case model.ActionKill:
			killVotes[action.TargetID]++
			killersByTarget[action.TargetID] = append(killersByTarget[action.TargetID], actor)
		case model.ActionProtect:
			protected[action.TargetID] = actor
		case model.ActionInvestigate:
			if target.Role == model.RoleImpostor {
				action.Result = model.InvestigationImpostor
				s.stats.RecordCorrectDetection(ctx, actor.Wallet)
			} else {
				action.Result = model.InvestigationInnocent
			}
			if err := s.storage.UpsertAction(ctx, action); err != nil {
				return nil, err
			}
			investigations = append(investigations, action)
		}
	}

	outcome := &NightOutcome{Investigations: investigations}

	victimID := selectVictim(killVotes)
	if victimID == "" {
		return outcome, nil
	}
	outcome.VictimID = victimID

	if doctor, ok := protected[victimID]; ok {
		outcome.WasProtected = true
		s.stats.RecordSave(ctx, doctor.Wallet)
		s.logger.Info("night kill nullified by protect",
			"room_id", room.ID,
			"phase", room.Phase,
			"target_id", victimID,
		)
		return outcome, nil
	}

	victim := byID[victimID]
	victim.IsAlive = false
	if err := s.storage.SavePlayer(ctx, victim); err != nil {
		return nil, err
	}
	for _, killer := range killersByTarget[victimID] {
		s.stats.RecordKill(ctx, killer.Wallet)
	}

	s.logger.Info("night kill resolved",
		"room_id", room.ID,
		"phase", room.Phase,
		"victim_id", victimID,
	)
	return outcome, nil
}

// selectVictim picks the most-targeted player, breaking ties by lowest id
func selectVictim(killVotes map[model.PlayerID]int) model.PlayerID {
	if len(killVotes) == 0 {
		return ""
	}

	targets := make([]model.PlayerID, 0, len(killVotes))
	for id := range killVotes {
		targets = append(targets, id)
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })

	best := targets[0]
	for _, id := range targets[1:] {
		if killVotes[id] > killVotes[best] {
			best = id
		}
	}
	return best
}
