package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/shadowgame/impostor-server/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.RoomTTL = time.Hour
	cfg.ChatTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Room tests

func (s *StorageSuite) TestSaveAndGetRoom() {
	room := &model.Room{
		ID:         "room-1",
		Code:       "ABC234",
		Status:     model.RoomStatusNight,
		HostWallet: "0xabc",
		Phase:      1,
	}

	err := s.storage.SaveRoom(s.ctx, room)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRoom(s.ctx, "room-1")
	s.Require().NoError(err)
	s.Equal(model.RoomStatusNight, retrieved.Status)
	s.Equal(1, retrieved.Phase)
}

func (s *StorageSuite) TestGetRoomNotFound() {
	_, err := s.storage.GetRoom(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestGetRoomByCode() {
	s.Require().NoError(s.storage.SaveRoom(s.ctx, &model.Room{ID: "room-1", Code: "ABC234"}))

	retrieved, err := s.storage.GetRoomByCode(s.ctx, "ABC234")
	s.Require().NoError(err)
	s.Equal(model.RoomID("room-1"), retrieved.ID)
}

func (s *StorageSuite) TestRoomExpiresWithTTL() {
	s.Require().NoError(s.storage.SaveRoom(s.ctx, &model.Room{ID: "room-1", Code: "ABC234"}))

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetRoom(s.ctx, "room-1")
	s.ErrorIs(err, model.ErrRoomNotFound)

	inUse, err := s.storage.RoomCodeInUse(s.ctx, "ABC234")
	s.Require().NoError(err)
	s.False(inUse)
}

func (s *StorageSuite) TestDeleteRoom() {
	s.Require().NoError(s.storage.SaveRoom(s.ctx, &model.Room{ID: "room-1", Code: "ABC234"}))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "p1", RoomID: "room-1"}))

	err := s.storage.DeleteRoom(s.ctx, "room-1")
	s.Require().NoError(err)

	_, err = s.storage.GetRoom(s.ctx, "room-1")
	s.ErrorIs(err, model.ErrRoomNotFound)

	players, err := s.storage.PlayersForRoom(s.ctx, "room-1")
	s.Require().NoError(err)
	s.Empty(players)
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:       "p1",
		RoomID:   "room-1",
		Wallet:   "0xaaa",
		Nickname: "alice",
		Role:     model.RoleDetective,
		IsAlive:  true,
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "room-1", "p1")
	s.Require().NoError(err)
	s.Equal(model.RoleDetective, retrieved.Role)
	s.True(retrieved.IsAlive)
}

func (s *StorageSuite) TestGetPlayerByWallet() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "p1", RoomID: "room-1", Wallet: "0xaaa"}))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "p2", RoomID: "room-1", Wallet: "0xbbb"}))

	retrieved, err := s.storage.GetPlayerByWallet(s.ctx, "room-1", "0xbbb")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p2"), retrieved.ID)
}

func (s *StorageSuite) TestPlayersForRoomJoinOrder() {
	for _, id := range []model.PlayerID{"p2", "p3", "p1"} {
		s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: id, RoomID: "room-1"}))
	}

	// Re-save must not duplicate the roster entry
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "p2", RoomID: "room-1", IsReady: true}))

	players, err := s.storage.PlayersForRoom(s.ctx, "room-1")
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal(model.PlayerID("p2"), players[0].ID)
	s.Equal(model.PlayerID("p3"), players[1].ID)
	s.Equal(model.PlayerID("p1"), players[2].ID)
	s.True(players[0].IsReady)
}

// Action tests

func (s *StorageSuite) TestUpsertActionOverwrites() {
	s.Require().NoError(s.storage.UpsertAction(s.ctx, &model.Action{RoomID: "room-1", PlayerID: "p1", Phase: 1, Type: model.ActionProtect, TargetID: "p2"}))
	s.Require().NoError(s.storage.UpsertAction(s.ctx, &model.Action{RoomID: "room-1", PlayerID: "p1", Phase: 1, Type: model.ActionProtect, TargetID: "p3"}))

	actions, err := s.storage.ActionsForPhase(s.ctx, "room-1", 1)
	s.Require().NoError(err)
	s.Require().Len(actions, 1)
	s.Equal(model.PlayerID("p3"), actions[0].TargetID)
}

func (s *StorageSuite) TestActionsForPhaseScopedByPhase() {
	s.Require().NoError(s.storage.UpsertAction(s.ctx, &model.Action{RoomID: "room-1", PlayerID: "p1", Phase: 1, Type: model.ActionKill, TargetID: "p2"}))
	s.Require().NoError(s.storage.UpsertAction(s.ctx, &model.Action{RoomID: "room-1", PlayerID: "p1", Phase: 2, Type: model.ActionKill, TargetID: "p3"}))

	actions, err := s.storage.ActionsForPhase(s.ctx, "room-1", 2)
	s.Require().NoError(err)
	s.Require().Len(actions, 1)
	s.Equal(model.PlayerID("p3"), actions[0].TargetID)
}

// Vote tests

func (s *StorageSuite) TestUpsertVoteOverwrites() {
	s.Require().NoError(s.storage.UpsertVote(s.ctx, &model.Vote{RoomID: "room-1", PlayerID: "p1", Phase: 1, TargetID: "p2"}))
	s.Require().NoError(s.storage.UpsertVote(s.ctx, &model.Vote{RoomID: "room-1", PlayerID: "p1", Phase: 1, TargetID: ""}))

	votes, err := s.storage.VotesForPhase(s.ctx, "room-1", 1)
	s.Require().NoError(err)
	s.Require().Len(votes, 1)
	s.True(votes[0].IsSkip())
}

// Result tests

func (s *StorageSuite) TestSaveAndGetResult() {
	result := &model.GameResult{
		RoomID:     "room-1",
		GameID:     "0xdeadbeef",
		WinnerTeam: model.TeamCitizens,
		PlayerResults: []model.PlayerResult{
			{Wallet: "0xaaa", Role: model.RoleDetective, Won: true, RepDelta: model.RepWin},
		},
	}
	s.Require().NoError(s.storage.SaveResult(s.ctx, result))

	byGame, err := s.storage.GetResult(s.ctx, "0xdeadbeef")
	s.Require().NoError(err)
	s.Equal(model.TeamCitizens, byGame.WinnerTeam)
	s.Require().Len(byGame.PlayerResults, 1)
	s.Equal(model.RepWin, byGame.PlayerResults[0].RepDelta)

	byRoom, err := s.storage.GetResultForRoom(s.ctx, "room-1")
	s.Require().NoError(err)
	s.Equal(model.GameID("0xdeadbeef"), byRoom.GameID)
}

func (s *StorageSuite) TestSaveResultTwiceRejected() {
	s.Require().NoError(s.storage.SaveResult(s.ctx, &model.GameResult{RoomID: "room-1", GameID: "0x01"}))

	err := s.storage.SaveResult(s.ctx, &model.GameResult{RoomID: "room-1", GameID: "0x02"})
	s.ErrorIs(err, model.ErrResultExists)
}

func (s *StorageSuite) TestResultSurvivesRoomExpiry() {
	s.Require().NoError(s.storage.SaveRoom(s.ctx, &model.Room{ID: "room-1", Code: "ABC234"}))
	s.Require().NoError(s.storage.SaveResult(s.ctx, &model.GameResult{RoomID: "room-1", GameID: "0x01"}))

	s.mini.FastForward(48 * time.Hour)

	result, err := s.storage.GetResultForRoom(s.ctx, "room-1")
	s.Require().NoError(err)
	s.Equal(model.GameID("0x01"), result.GameID)
}

// Chat tests

func (s *StorageSuite) TestChatForPhase() {
	s.Require().NoError(s.storage.SaveChatMessage(s.ctx, &model.ChatMessage{ID: "m1", RoomID: "room-1", Phase: 1, Content: "sus"}))
	s.Require().NoError(s.storage.SaveChatMessage(s.ctx, &model.ChatMessage{ID: "m2", RoomID: "room-1", Phase: 2, Content: "still sus"}))

	messages, err := s.storage.ChatForPhase(s.ctx, "room-1", 1)
	s.Require().NoError(err)
	s.Require().Len(messages, 1)
	s.Equal("sus", messages[0].Content)
}

// Claim tests

func (s *StorageSuite) TestClaims() {
	exists, err := s.storage.ClaimExists(s.ctx, "0x01", "0xaaa")
	s.Require().NoError(err)
	s.False(exists)

	s.Require().NoError(s.storage.SaveClaim(s.ctx, &model.ClaimLog{GameID: "0x01", Wallet: "0xaaa"}))

	exists, err = s.storage.ClaimExists(s.ctx, "0x01", "0xaaa")
	s.Require().NoError(err)
	s.True(exists)
}

// Stats tests

func (s *StorageSuite) TestAddStatsAccumulates() {
	s.Require().NoError(s.storage.AddStats(s.ctx, "0xaaa", model.PlayerStats{Kills: 1, CorrectDetections: 1}))
	s.Require().NoError(s.storage.AddStats(s.ctx, "0xaaa", model.PlayerStats{Kills: 1}))

	stats, err := s.storage.GetStats(s.ctx, "0xaaa")
	s.Require().NoError(err)
	s.Equal(2, stats.Kills)
	s.Equal(1, stats.CorrectDetections)
	s.Zero(stats.Saves)
}

func (s *StorageSuite) TestGetStatsUnknownWalletZeroValued() {
	stats, err := s.storage.GetStats(s.ctx, "0xnew")
	s.Require().NoError(err)
	s.Equal(model.Wallet("0xnew"), stats.Wallet)
	s.Zero(stats.Kills)
}
