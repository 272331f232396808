package resolve

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/shadowgame/impostor-server/internal/model"
	"github.com/shadowgame/impostor-server/internal/services/stats"
	"github.com/shadowgame/impostor-server/internal/storage/memory"
	"github.com/shadowgame/impostor-server/internal/testutil"
)

type NightSuite struct {
	suite.Suite
	storage *memory.Storage
	stats   stats.Recorder
	service *Service
	ctx     context.Context

	room    *model.Room
	players []*model.Player
}

func TestNightSuite(t *testing.T) {
	suite.Run(t, new(NightSuite))
}

func (s *NightSuite) SetupTest() {
	s.storage = memory.New()
	s.stats = stats.NewRecorder(s.storage, testutil.DiscardLogger())
	s.service = NewService(s.storage, s.stats, testutil.DiscardLogger())
	s.ctx = context.Background()

	s.room = &model.Room{ID: "room-1", Status: model.RoomStatusNight, Phase: 1}
	s.players = []*model.Player{
		{ID: "p1", RoomID: "room-1", Wallet: "0x1", Role: model.RoleImpostor, IsAlive: true},
		{ID: "p2", RoomID: "room-1", Wallet: "0x2", Role: model.RoleImpostor, IsAlive: true},
		{ID: "p3", RoomID: "room-1", Wallet: "0x3", Role: model.RoleDetective, IsAlive: true},
		{ID: "p4", RoomID: "room-1", Wallet: "0x4", Role: model.RoleDoctor, IsAlive: true},
		{ID: "p5", RoomID: "room-1", Wallet: "0x5", Role: model.RoleCitizen, IsAlive: true},
		{ID: "p6", RoomID: "room-1", Wallet: "0x6", Role: model.RoleCitizen, IsAlive: true},
	}
	s.Require().NoError(s.storage.SaveRoom(s.ctx, s.room))
	for _, p := range s.players {
		s.Require().NoError(s.storage.SavePlayer(s.ctx, p))
	}
}

func (s *NightSuite) submitAction(playerID model.PlayerID, actionType model.ActionType, targetID model.PlayerID) {
	s.Require().NoError(s.storage.UpsertAction(s.ctx, &model.Action{
		RoomID:      "room-1",
		PlayerID:    playerID,
		Phase:       1,
		Type:        actionType,
		TargetID:    targetID,
		SubmittedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}))
}

func (s *NightSuite) player(id model.PlayerID) *model.Player {
	p, err := s.storage.GetPlayer(s.ctx, "room-1", id)
	s.Require().NoError(err)
	return p
}

func (s *NightSuite) TestKillResolves() {
	s.submitAction("p1", model.ActionKill, "p5")
	s.submitAction("p2", model.ActionKill, "p5")

	outcome, err := s.service.ResolveNight(s.ctx, s.room, s.players)
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p5"), outcome.VictimID)
	s.False(outcome.WasProtected)
	s.False(s.player("p5").IsAlive)

	killerStats, err := s.stats.Stats(s.ctx, "0x1")
	s.Require().NoError(err)
	s.Equal(1, killerStats.Kills)
}

func (s *NightSuite) TestProtectNullifiesKill() {
	s.submitAction("p1", model.ActionKill, "p5")
	s.submitAction("p4", model.ActionProtect, "p5")

	outcome, err := s.service.ResolveNight(s.ctx, s.room, s.players)
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p5"), outcome.VictimID)
	s.True(outcome.WasProtected)
	s.True(s.player("p5").IsAlive)

	doctorStats, err := s.stats.Stats(s.ctx, "0x4")
	s.Require().NoError(err)
	s.Equal(1, doctorStats.Saves)

	killerStats, err := s.stats.Stats(s.ctx, "0x1")
	s.Require().NoError(err)
	s.Zero(killerStats.Kills)
}

func (s *NightSuite) TestProtectOnNonVictimDoesNothing() {
	s.submitAction("p1", model.ActionKill, "p5")
	s.submitAction("p4", model.ActionProtect, "p6")

	outcome, err := s.service.ResolveNight(s.ctx, s.room, s.players)
	s.Require().NoError(err)
	s.False(outcome.WasProtected)
	s.False(s.player("p5").IsAlive)
}

func (s *NightSuite) TestSplitKillTieBreaksToLowestID() {
	s.submitAction("p1", model.ActionKill, "p6")
	s.submitAction("p2", model.ActionKill, "p5")

	outcome, err := s.service.ResolveNight(s.ctx, s.room, s.players)
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p5"), outcome.VictimID)
	s.False(s.player("p5").IsAlive)
	s.True(s.player("p6").IsAlive)
}

func (s *NightSuite) TestMajorityKillBeatsLowerID() {
	s.players = append(s.players, &model.Player{ID: "p0", RoomID: "room-1", Wallet: "0x0", Role: model.RoleImpostor, IsAlive: true})
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.players[len(s.players)-1]))

	s.submitAction("p0", model.ActionKill, "p6")
	s.submitAction("p1", model.ActionKill, "p6")
	s.submitAction("p2", model.ActionKill, "p5")

	outcome, err := s.service.ResolveNight(s.ctx, s.room, s.players)
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p6"), outcome.VictimID)
}

func (s *NightSuite) TestNoKillSubmitted() {
	s.submitAction("p3", model.ActionInvestigate, "p5")

	outcome, err := s.service.ResolveNight(s.ctx, s.room, s.players)
	s.Require().NoError(err)
	s.Empty(outcome.VictimID)
	for _, p := range s.players {
		s.True(s.player(p.ID).IsAlive)
	}
}

func (s *NightSuite) TestWithdrawnActionIgnored() {
	s.submitAction("p1", model.ActionKill, "")

	outcome, err := s.service.ResolveNight(s.ctx, s.room, s.players)
	s.Require().NoError(err)
	s.Empty(outcome.VictimID)
}

func (s *NightSuite) TestInvestigationResults() {
	s.submitAction("p3", model.ActionInvestigate, "p1")

	outcome, err := s.service.ResolveNight(s.ctx, s.room, s.players)
	s.Require().NoError(err)
	s.Require().Len(outcome.Investigations, 1)
	s.Equal(model.InvestigationImpostor, outcome.Investigations[0].Result)

	// Result is persisted on the stored action
	actions, err := s.storage.ActionsForPhase(s.ctx, "room-1", 1)
	s.Require().NoError(err)
	for _, action := range actions {
		if action.PlayerID == "p3" {
			s.Equal(model.InvestigationImpostor, action.Result)
		}
	}

	detStats, err := s.stats.Stats(s.ctx, "0x3")
	s.Require().NoError(err)
	s.Equal(1, detStats.CorrectDetections)
}

func (s *NightSuite) TestInvestigationOfInnocent() {
	s.submitAction("p3", model.ActionInvestigate, "p5")

	outcome, err := s.service.ResolveNight(s.ctx, s.room, s.players)
	s.Require().NoError(err)
	s.Require().Len(outcome.Investigations, 1)
	s.Equal(model.InvestigationInnocent, outcome.Investigations[0].Result)

	detStats, err := s.stats.Stats(s.ctx, "0x3")
	s.Require().NoError(err)
	s.Zero(detStats.CorrectDetections)
}

func (s *NightSuite) TestActionsFromDeadPlayersIgnored() {
	s.players[0].IsAlive = false
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.players[0]))
	s.submitAction("p1", model.ActionKill, "p5")

	outcome, err := s.service.ResolveNight(s.ctx, s.room, s.players)
	s.Require().NoError(err)
	s.Empty(outcome.VictimID)
	s.True(s.player("p5").IsAlive)
}

func (s *NightSuite) TestKillOnAlreadyDeadTargetIgnored() {
	s.players[4].IsAlive = false
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.players[4]))
	s.submitAction("p1", model.ActionKill, "p5")

	outcome, err := s.service.ResolveNight(s.ctx, s.room, s.players)
	s.Require().NoError(err)
	s.Empty(outcome.VictimID)
}
