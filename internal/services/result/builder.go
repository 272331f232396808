package result

import (
	"context"
	"errors"

	"github.com/shadowgame/impostor-server/internal/dependencies/clock"
	"github.com/shadowgame/impostor-server/internal/dependencies/random"
	"github.com/shadowgame/impostor-server/internal/model"
	"github.com/shadowgame/impostor-server/internal/storage"
)

const (
	// GameIDHexLength is the number of hex characters in a game id,
	// representing 32 bytes
	GameIDHexLength = 64
	// GameIDAlphabet is the hex alphabet game ids are drawn from
	GameIDAlphabet = "0123456789abcdef"
)

// Builder constructs the immutable record of a finished game
type Builder struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
}

// NewBuilder creates a new game result builder
func NewBuilder(storage storage.Storage, clock clock.Clock, random random.Random) *Builder {
	return &Builder{
		storage: storage,
		clock:   clock,
		random:  random,
	}
}

// Build creates and persists the result for a finished room. It is
// created exactly once: a second call for the same room returns
// ErrResultExists. Reputation is a pure function of role, outcome and
// alive-at-end status:
//
//   - winners gain RepWin, losers lose RepLoss
//   - an impostor alive at the end gains RepSurviveAsImpostor on top,
//     win or lose
//   - a winning jester gains RepJesterWin on top of RepWin
func (b *Builder) Build(
	ctx context.Context,
	room *model.Room,
	players []*model.Player,
	winnerTeam model.Team,
) (*model.GameResult, error) {
	if _, err := b.storage.GetResultForRoom(ctx, room.ID); err == nil {
		return nil, model.ErrResultExists
	} else if !errors.Is(err, model.ErrResultNotFound) {
		return nil, err
	}

	result := &model.GameResult{
		RoomID:     room.ID,
		GameID:     model.GameID("0x" + b.random.String(GameIDHexLength, GameIDAlphabet)),
		WinnerTeam: winnerTeam,
		CreatedAt:  b.clock.Now(),
	}

	for _, p := range players {
		won := p.Role.Team() == winnerTeam

		repDelta := model.RepLoss
		if won {
			repDelta = model.RepWin
			if p.Role == model.RoleJester {
				repDelta += model.RepJesterWin
			}
		}
		if p.Role == model.RoleImpostor && p.IsAlive {
			repDelta += model.RepSurviveAsImpostor
		}

		result.PlayerResults = append(result.PlayerResults, model.PlayerResult{
			Wallet:   p.Wallet,
			Nickname: p.Nickname,
			Role:     p.Role,
			Won:      won,
			RepDelta: repDelta,
		})
	}

	if err := b.storage.SaveResult(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}
