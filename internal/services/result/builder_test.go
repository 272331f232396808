package result

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/shadowgame/impostor-server/internal/dependencies/mocks"
	"github.com/shadowgame/impostor-server/internal/dependencies/random"
	"github.com/shadowgame/impostor-server/internal/model"
	"github.com/shadowgame/impostor-server/internal/storage/memory"
)

type BuilderSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	builder *Builder
	ctx     context.Context

	room    *model.Room
	players []*model.Player
}

func TestBuilderSuite(t *testing.T) {
	suite.Run(t, new(BuilderSuite))
}

func (s *BuilderSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.builder = NewBuilder(s.storage, s.clock, s.random)
	s.ctx = context.Background()

	s.room = &model.Room{ID: "room-1", Status: model.RoomStatusEnded, Phase: 3}
	s.players = []*model.Player{
		{ID: "p1", Wallet: "0x1", Nickname: "imp1", Role: model.RoleImpostor, IsAlive: true},
		{ID: "p2", Wallet: "0x2", Nickname: "imp2", Role: model.RoleImpostor, IsAlive: false},
		{ID: "p3", Wallet: "0x3", Nickname: "det", Role: model.RoleDetective, IsAlive: false},
		{ID: "p4", Wallet: "0x4", Nickname: "cit", Role: model.RoleCitizen, IsAlive: true},
		{ID: "p5", Wallet: "0x5", Nickname: "jes", Role: model.RoleJester, IsAlive: true},
	}
}

func (s *BuilderSuite) TestBuildImpostorWin() {
	s.random.QueueString(strings.Repeat("ab", 32))

	result, err := s.builder.Build(s.ctx, s.room, s.players, model.TeamImpostors)
	s.Require().NoError(err)

	s.Equal(model.GameID("0x"+strings.Repeat("ab", 32)), result.GameID)
	s.Equal(model.TeamImpostors, result.WinnerTeam)
	s.Equal(s.clock.CurrentTime, result.CreatedAt)
	s.Require().Len(result.PlayerResults, 5)

	// Alive impostor: win + survive bonus
	aliveImp := result.ResultFor("0x1")
	s.Require().NotNil(aliveImp)
	s.True(aliveImp.Won)
	s.Equal(model.RepWin+model.RepSurviveAsImpostor, aliveImp.RepDelta)

	// Dead impostor: win only
	deadImp := result.ResultFor("0x2")
	s.True(deadImp.Won)
	s.Equal(model.RepWin, deadImp.RepDelta)

	// Citizens lose
	det := result.ResultFor("0x3")
	s.False(det.Won)
	s.Equal(model.RepLoss, det.RepDelta)

	// Jester neither wins nor gets a bonus
	jes := result.ResultFor("0x5")
	s.False(jes.Won)
	s.Equal(model.RepLoss, jes.RepDelta)
}

func (s *BuilderSuite) TestBuildCitizenWin() {
	s.random.QueueString(strings.Repeat("cd", 32))

	result, err := s.builder.Build(s.ctx, s.room, s.players, model.TeamCitizens)
	s.Require().NoError(err)

	s.True(result.ResultFor("0x3").Won)
	s.Equal(model.RepWin, result.ResultFor("0x3").RepDelta)
	s.Equal(model.RepWin, result.ResultFor("0x4").RepDelta)

	// Alive impostor still collects the survive bonus on a loss
	s.False(result.ResultFor("0x1").Won)
	s.Equal(model.RepLoss+model.RepSurviveAsImpostor, result.ResultFor("0x1").RepDelta)
	s.Equal(model.RepLoss, result.ResultFor("0x2").RepDelta)
}

func (s *BuilderSuite) TestBuildJesterWin() {
	s.random.QueueString(strings.Repeat("ef", 32))

	result, err := s.builder.Build(s.ctx, s.room, s.players, model.TeamJester)
	s.Require().NoError(err)

	jes := result.ResultFor("0x5")
	s.True(jes.Won)
	s.Equal(model.RepWin+model.RepJesterWin, jes.RepDelta)

	// Everyone else loses
	s.False(result.ResultFor("0x3").Won)
	s.Equal(model.RepLoss, result.ResultFor("0x4").RepDelta)
}

func (s *BuilderSuite) TestBuildOncePerRoom() {
	s.random.QueueString(strings.Repeat("ab", 32), strings.Repeat("cd", 32))

	_, err := s.builder.Build(s.ctx, s.room, s.players, model.TeamCitizens)
	s.Require().NoError(err)

	_, err = s.builder.Build(s.ctx, s.room, s.players, model.TeamCitizens)
	s.ErrorIs(err, model.ErrResultExists)
}

func (s *BuilderSuite) TestGameIDShape() {
	builder := NewBuilder(s.storage, s.clock, random.New())

	result, err := builder.Build(s.ctx, s.room, s.players, model.TeamCitizens)
	s.Require().NoError(err)

	id := string(result.GameID)
	s.Require().Len(id, 2+GameIDHexLength)
	s.True(strings.HasPrefix(id, "0x"))
	for _, c := range id[2:] {
		s.Contains(GameIDAlphabet, string(c))
	}
}
