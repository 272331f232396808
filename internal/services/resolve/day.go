package resolve

import (
	"context"
	"sort"

	"github.com/shadowgame/impostor-server/internal/model"
)

// DayOutcome is the observable result of resolving one day's votes
type DayOutcome struct {
	// EliminatedID is the player voted out, empty if skip won or the
	// top candidates tied
	EliminatedID model.PlayerID

	// JesterWin is true if the eliminated player was the jester, which
	// ends the game immediately in the jester's favor
	JesterWin bool

	// SkipWeight and Tally expose the final weighted count for event
	// payloads and debugging
	SkipWeight int
	Tally      map[model.PlayerID]int
}

// ResolveDay tallies the day's weighted votes and eliminates the single
// highest-voted player. Votes from dead players and for dead targets
// are discarded. The mayor's vote counts double. Skip votes form a
// baseline: a player is eliminated only if their weight strictly
// exceeds both the skip weight and every other player's weight.
func (s *Service) ResolveDay(ctx context.Context, room *model.Room, players []*model.Player) (*DayOutcome, error) {
	votes, err := s.storage.VotesForPhase(ctx, room.ID, room.Phase)
	if err != nil {
		return nil, err
	}

	byID := make(map[model.PlayerID]*model.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	outcome := &DayOutcome{Tally: make(map[model.PlayerID]int)}

	for _, vote := range votes {
		voter := byID[vote.PlayerID]
		if voter == nil || !voter.IsAlive {
			continue
		}
		weight := voter.Role.VoteWeight()

		if vote.IsSkip() {
			outcome.SkipWeight += weight
			continue
		}
		target := byID[vote.TargetID]
		if target == nil || !target.IsAlive {
			continue
		}
		outcome.Tally[vote.TargetID] += weight
	}

	eliminatedID := selectEliminated(outcome.Tally, outcome.SkipWeight)
	if eliminatedID == "" {
		s.logger.Info("day vote resolved with no elimination",
			"room_id", room.ID,
			"phase", room.Phase,
			"skip_weight", outcome.SkipWeight,
		)
		return outcome, nil
	}

	eliminated := byID[eliminatedID]
	eliminated.IsAlive = false
	if err := s.storage.SavePlayer(ctx, eliminated); err != nil {
		return nil, err
	}

	outcome.EliminatedID = eliminatedID
	if eliminated.Role == model.RoleJester {
		outcome.JesterWin = true
		s.stats.RecordJesterWin(ctx, eliminated.Wallet)
	}

	s.logger.Info("day vote resolved",
		"room_id", room.ID,
		"phase", room.Phase,
		"eliminated_id", eliminatedID,
		"jester_win", outcome.JesterWin,
	)
	return outcome, nil
}

// selectEliminated returns the unique strict-maximum candidate above the
// skip baseline, or empty if there is none
func selectEliminated(tally map[model.PlayerID]int, skipWeight int) model.PlayerID {
	if len(tally) == 0 {
		return ""
	}

	targets := make([]model.PlayerID, 0, len(tally))
	for id := range tally {
		targets = append(targets, id)
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })

	best := targets[0]
	tied := false
	for _, id := range targets[1:] {
		if tally[id] > tally[best] {
			best = id
			tied = false
		} else if tally[id] == tally[best] {
			tied = true
		}
	}

	if tied || tally[best] <= skipWeight {
		return ""
	}
	return best
}
