package resolve

import (
	"github.com/shadowgame/impostor-server/internal/model"
)

// EvaluateWin checks the standing win conditions against the roster.
// The jester is neutral and excluded from both headcounts; its win is a
// day-resolution event, not a standing condition. Returns the winning
// team and true once the game is decided.
//
// Citizens win when no impostor is alive. Impostors win when they reach
// numeric parity with the alive citizen team, at which point citizens
// can no longer vote them out.
func EvaluateWin(players []*model.Player) (model.Team, bool, error) {
	aliveImpostors := 0
	aliveCitizens := 0
	for _, p := range players {
		if !p.IsAlive {
			continue
		}
		switch p.Role.Team() {
		case model.TeamImpostors:
			aliveImpostors++
		case model.TeamCitizens:
			aliveCitizens++
		}
	}

	if aliveImpostors == 0 && aliveCitizens == 0 {
		// Everyone relevant is dead; resolution should have ended the
		// game before this could happen
		return "", false, model.ErrAmbiguousWinner
	}

	if aliveImpostors == 0 {
		return model.TeamCitizens, true, nil
	}
	if aliveImpostors >= aliveCitizens {
		return model.TeamImpostors, true, nil
	}
	return "", false, nil
}
