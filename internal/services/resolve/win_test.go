package resolve

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/shadowgame/impostor-server/internal/model"
)

type WinSuite struct {
	suite.Suite
}

func TestWinSuite(t *testing.T) {
	suite.Run(t, new(WinSuite))
}

func makePlayers(alive map[model.Role]int, dead map[model.Role]int) []*model.Player {
	var players []*model.Player
	id := 0
	add := func(role model.Role, isAlive bool, n int) {
		for i := 0; i < n; i++ {
			id++
			players = append(players, &model.Player{
				ID:      model.PlayerID(rune('a' + id)),
				Role:    role,
				IsAlive: isAlive,
			})
		}
	}
	for role, n := range alive {
		add(role, true, n)
	}
	for role, n := range dead {
		add(role, false, n)
	}
	return players
}

func (s *WinSuite) TestGameContinues() {
	players := makePlayers(
		map[model.Role]int{model.RoleImpostor: 2, model.RoleCitizen: 3, model.RoleDetective: 1},
		nil,
	)
	_, decided, err := EvaluateWin(players)
	s.Require().NoError(err)
	s.False(decided)
}

func (s *WinSuite) TestCitizensWinWhenNoImpostorsAlive() {
	players := makePlayers(
		map[model.Role]int{model.RoleCitizen: 2, model.RoleDetective: 1},
		map[model.Role]int{model.RoleImpostor: 2},
	)
	team, decided, err := EvaluateWin(players)
	s.Require().NoError(err)
	s.True(decided)
	s.Equal(model.TeamCitizens, team)
}

func (s *WinSuite) TestImpostorsWinAtParity() {
	players := makePlayers(
		map[model.Role]int{model.RoleImpostor: 2, model.RoleCitizen: 2},
		map[model.Role]int{model.RoleCitizen: 2},
	)
	team, decided, err := EvaluateWin(players)
	s.Require().NoError(err)
	s.True(decided)
	s.Equal(model.TeamImpostors, team)
}

func (s *WinSuite) TestImpostorsWinWhenOutnumbering() {
	players := makePlayers(
		map[model.Role]int{model.RoleImpostor: 2, model.RoleCitizen: 1},
		nil,
	)
	team, decided, err := EvaluateWin(players)
	s.Require().NoError(err)
	s.True(decided)
	s.Equal(model.TeamImpostors, team)
}

func (s *WinSuite) TestJesterExcludedFromHeadcounts() {
	// 1 impostor vs 1 citizen + 1 alive jester: parity, impostors win.
	// If the jester counted for the citizen team the game would continue.
	players := makePlayers(
		map[model.Role]int{model.RoleImpostor: 1, model.RoleCitizen: 1, model.RoleJester: 1},
		nil,
	)
	team, decided, err := EvaluateWin(players)
	s.Require().NoError(err)
	s.True(decided)
	s.Equal(model.TeamImpostors, team)
}

func (s *WinSuite) TestCitizensWinEvenWithOnlyJesterDeadImpostors() {
	players := makePlayers(
		map[model.Role]int{model.RoleCitizen: 1, model.RoleJester: 1},
		map[model.Role]int{model.RoleImpostor: 2},
	)
	team, decided, err := EvaluateWin(players)
	s.Require().NoError(err)
	s.True(decided)
	s.Equal(model.TeamCitizens, team)
}

func (s *WinSuite) TestEveryoneDeadIsAmbiguous() {
	players := makePlayers(
		map[model.Role]int{model.RoleJester: 1},
		map[model.Role]int{model.RoleImpostor: 2, model.RoleCitizen: 4},
	)
	_, _, err := EvaluateWin(players)
	s.ErrorIs(err, model.ErrAmbiguousWinner)
}
