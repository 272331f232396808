package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/shadowgame/impostor-server/internal/dependencies/mocks"
	"github.com/shadowgame/impostor-server/internal/model"
	"github.com/shadowgame/impostor-server/internal/storage/memory"
)

type LedgerSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context

	room     *model.Room
	impostor *model.Player
	doctor   *model.Player
	citizen  *model.Player
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerSuite))
}

func (s *LedgerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = NewService(s.storage, s.clock)
	s.ctx = context.Background()

	s.room = &model.Room{ID: "room-1", Code: "ABC234", Status: model.RoomStatusNight, Phase: 1}
	s.impostor = &model.Player{ID: "p1", RoomID: "room-1", Wallet: "0xaaa", Role: model.RoleImpostor, IsAlive: true}
	s.doctor = &model.Player{ID: "p2", RoomID: "room-1", Wallet: "0xbbb", Role: model.RoleDoctor, IsAlive: true}
	s.citizen = &model.Player{ID: "p3", RoomID: "room-1", Wallet: "0xccc", Role: model.RoleCitizen, IsAlive: true}

	s.Require().NoError(s.storage.SaveRoom(s.ctx, s.room))
	for _, p := range []*model.Player{s.impostor, s.doctor, s.citizen} {
		s.Require().NoError(s.storage.SavePlayer(s.ctx, p))
	}
}

func (s *LedgerSuite) TestRecordActionHappyPath() {
	action, err := s.service.RecordAction(s.ctx, s.room, s.impostor, model.ActionKill, "p3")
	s.Require().NoError(err)
	s.Equal(1, action.Phase)
	s.Equal(s.clock.CurrentTime, action.SubmittedAt)

	actions, err := s.service.ActionsForPhase(s.ctx, "room-1", 1)
	s.Require().NoError(err)
	s.Require().Len(actions, 1)
	s.Equal(model.PlayerID("p3"), actions[0].TargetID)
}

func (s *LedgerSuite) TestRecordActionLastWriteWins() {
	_, err := s.service.RecordAction(s.ctx, s.room, s.impostor, model.ActionKill, "p2")
	s.Require().NoError(err)

	s.clock.Advance(10 * time.Second)
	_, err = s.service.RecordAction(s.ctx, s.room, s.impostor, model.ActionKill, "p3")
	s.Require().NoError(err)

	actions, err := s.service.ActionsForPhase(s.ctx, "room-1", 1)
	s.Require().NoError(err)
	s.Require().Len(actions, 1)
	s.Equal(model.PlayerID("p3"), actions[0].TargetID)
}

func (s *LedgerSuite) TestRecordActionWithdrawal() {
	_, err := s.service.RecordAction(s.ctx, s.room, s.impostor, model.ActionKill, "p3")
	s.Require().NoError(err)

	_, err = s.service.RecordAction(s.ctx, s.room, s.impostor, model.ActionKill, "")
	s.Require().NoError(err)

	actions, err := s.service.ActionsForPhase(s.ctx, "room-1", 1)
	s.Require().NoError(err)
	s.Require().Len(actions, 1)
	s.Empty(actions[0].TargetID)
}

func (s *LedgerSuite) TestRecordActionWrongPhase() {
	dayRoom := &model.Room{ID: "room-1", Status: model.RoomStatusDay, Phase: 1}
	_, err := s.service.RecordAction(s.ctx, dayRoom, s.impostor, model.ActionKill, "p3")
	s.ErrorIs(err, model.ErrWrongPhase)
}

func (s *LedgerSuite) TestRecordActionDeadActor() {
	s.impostor.IsAlive = false
	_, err := s.service.RecordAction(s.ctx, s.room, s.impostor, model.ActionKill, "p3")
	s.ErrorIs(err, model.ErrPlayerDead)
}

func (s *LedgerSuite) TestRecordActionRoleMismatch() {
	_, err := s.service.RecordAction(s.ctx, s.room, s.citizen, model.ActionKill, "p1")
	s.ErrorIs(err, model.ErrRoleForbidsAction)

	_, err = s.service.RecordAction(s.ctx, s.room, s.impostor, model.ActionProtect, "p3")
	s.ErrorIs(err, model.ErrRoleForbidsAction)
}

func (s *LedgerSuite) TestRecordActionSelfTarget() {
	_, err := s.service.RecordAction(s.ctx, s.room, s.impostor, model.ActionKill, "p1")
	s.ErrorIs(err, model.ErrSelfTarget)

	// Doctor self-protect is legal
	_, err = s.service.RecordAction(s.ctx, s.room, s.doctor, model.ActionProtect, "p2")
	s.NoError(err)
}

func (s *LedgerSuite) TestRecordActionInvalidTarget() {
	_, err := s.service.RecordAction(s.ctx, s.room, s.impostor, model.ActionKill, "ghost")
	s.ErrorIs(err, model.ErrInvalidTarget)

	s.citizen.IsAlive = false
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.citizen))
	_, err = s.service.RecordAction(s.ctx, s.room, s.impostor, model.ActionKill, "p3")
	s.ErrorIs(err, model.ErrInvalidTarget)
}

func (s *LedgerSuite) TestRecordVoteHappyPath() {
	s.room.Status = model.RoomStatusVoting
	vote, err := s.service.RecordVote(s.ctx, s.room, s.citizen, "p1")
	s.Require().NoError(err)
	s.False(vote.IsSkip())

	votes, err := s.service.VotesForPhase(s.ctx, "room-1", 1)
	s.Require().NoError(err)
	s.Require().Len(votes, 1)
}

func (s *LedgerSuite) TestRecordVoteSkipAndOverwrite() {
	s.room.Status = model.RoomStatusDay

	_, err := s.service.RecordVote(s.ctx, s.room, s.citizen, "p1")
	s.Require().NoError(err)

	vote, err := s.service.RecordVote(s.ctx, s.room, s.citizen, "")
	s.Require().NoError(err)
	s.True(vote.IsSkip())

	votes, err := s.service.VotesForPhase(s.ctx, "room-1", 1)
	s.Require().NoError(err)
	s.Require().Len(votes, 1)
	s.True(votes[0].IsSkip())
}

func (s *LedgerSuite) TestRecordVoteSelfVoteRejected() {
	s.room.Status = model.RoomStatusVoting
	_, err := s.service.RecordVote(s.ctx, s.room, s.citizen, "p3")
	s.ErrorIs(err, model.ErrSelfTarget)
}

func (s *LedgerSuite) TestRecordVoteWrongPhase() {
	_, err := s.service.RecordVote(s.ctx, s.room, s.citizen, "p1")
	s.ErrorIs(err, model.ErrWrongPhase)

	ended := &model.Room{ID: "room-1", Status: model.RoomStatusEnded}
	_, err = s.service.RecordVote(s.ctx, ended, s.citizen, "p1")
	s.ErrorIs(err, model.ErrWrongPhase)
}

func (s *LedgerSuite) TestRecordVoteDeadActorOrTarget() {
	s.room.Status = model.RoomStatusVoting

	dead := &model.Player{ID: "p9", RoomID: "room-1", Role: model.RoleCitizen, IsAlive: false}
	_, err := s.service.RecordVote(s.ctx, s.room, dead, "p1")
	s.ErrorIs(err, model.ErrPlayerDead)

	s.impostor.IsAlive = false
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.impostor))
	_, err = s.service.RecordVote(s.ctx, s.room, s.citizen, "p1")
	s.ErrorIs(err, model.ErrInvalidTarget)
}
