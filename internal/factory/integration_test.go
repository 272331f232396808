package factory

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/shadowgame/impostor-server/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: complete game from lobby to claimed attestation
func (s *IntegrationSuite) TestCompleteGameFlow() {
	// Queue random values: room code, then the game ID hex body
	gameIDHex := strings.Repeat("ab", 32)
	s.app.MockRandom.QueueString("ROOMAA", gameIDHex)

	wallets := []model.Wallet{
		"0xhost", "0xtwo", "0xthree", "0xfour", "0xfive", "0xsix",
	}

	// Step 1: host creates the room, five players join and ready up
	room, _, err := s.app.RoomController.CreateRoom(s.ctx, wallets[0], "Host")
	s.Require().NoError(err)
	s.Equal(model.RoomCode("ROOMAA"), room.Code)

	for i, w := range wallets[1:] {
		_, _, err := s.app.RoomController.JoinRoom(s.ctx, room.Code, w, "Player"+string(rune('2'+i)))
		s.Require().NoError(err)
		_, err = s.app.RoomController.SetReady(s.ctx, room.ID, w, true)
		s.Require().NoError(err)
	}

	// Step 2: start. Six players get 2 impostors, 1 detective, 3 citizens.
	started, err := s.app.RoomController.Start(s.ctx, room.ID, wallets[0])
	s.Require().NoError(err)
	s.Equal(model.RoomStatusNight, started.Status)
	s.Equal(1, started.Phase)

	byRole := s.playersByRole(room.ID)
	impostors := byRole[model.RoleImpostor]
	detective := byRole[model.RoleDetective][0]
	citizens := byRole[model.RoleCitizen]
	s.Require().Len(impostors, 2)
	s.Require().Len(citizens, 3)

	// Step 3: night 1. Both impostors kill the same citizen, the
	// detective investigates an impostor.
	for _, imp := range impostors {
		_, err := s.app.RoomController.SubmitAction(s.ctx, room.ID, imp.Wallet, model.ActionKill, citizens[0].ID)
		s.Require().NoError(err)
	}
	_, err = s.app.RoomController.SubmitAction(s.ctx, room.ID, detective.Wallet, model.ActionInvestigate, impostors[0].ID)
	s.Require().NoError(err)

	tr, err := s.app.RoomController.Transition(s.ctx, room.ID, wallets[0])
	s.Require().NoError(err)
	s.Equal(model.RoomStatusDay, tr.Room.Status)

	// Step 4: day chat is open
	msg, err := s.app.RoomController.SendChat(s.ctx, room.ID, detective.Wallet, "I have a lead")
	s.Require().NoError(err)
	s.Equal("I have a lead", msg.Content)

	// Step 5: day 1 vote. Everyone alive votes out the first impostor,
	// who skips because self-votes are rejected.
	tr, err = s.app.RoomController.Transition(s.ctx, room.ID, wallets[0])
	s.Require().NoError(err)
	s.Equal(model.RoomStatusVoting, tr.Room.Status)

	s.voteOut(room.ID, impostors[0].ID)

	tr, err = s.app.RoomController.Transition(s.ctx, room.ID, wallets[0])
	s.Require().NoError(err)
	s.Equal(model.RoomStatusNight, tr.Room.Status)
	s.Equal(2, tr.Room.Phase)

	// Step 6: night 2. The surviving impostor kills another citizen.
	_, err = s.app.RoomController.SubmitAction(s.ctx, room.ID, impostors[1].Wallet, model.ActionKill, citizens[1].ID)
	s.Require().NoError(err)

	tr, err = s.app.RoomController.Transition(s.ctx, room.ID, wallets[0])
	s.Require().NoError(err)
	s.Equal(model.RoomStatusDay, tr.Room.Status)

	// Step 7: day 2 vote eliminates the last impostor, ending the game
	_, err = s.app.RoomController.Transition(s.ctx, room.ID, wallets[0])
	s.Require().NoError(err)

	s.voteOut(room.ID, impostors[1].ID)

	tr, err = s.app.RoomController.Transition(s.ctx, room.ID, wallets[0])
	s.Require().NoError(err)
	s.Equal(model.RoomStatusEnded, tr.Room.Status)

	// Step 8: the result records a citizen win with the queued game ID
	result, err := s.app.Storage.GetResultForRoom(s.ctx, room.ID)
	s.Require().NoError(err)
	s.Equal(model.TeamCitizens, result.WinnerTeam)
	s.Equal(model.GameID("0x"+gameIDHex), result.GameID)

	for _, pr := range result.PlayerResults {
		switch pr.Role {
		case model.RoleImpostor:
			s.False(pr.Won)
			s.Equal(-5, pr.RepDelta)
		default:
			s.True(pr.Won)
			s.Equal(10, pr.RepDelta)
		}
	}

	// Step 9: the detective claims their attestation
	att, err := s.app.ClaimService.Claim(s.ctx, result.GameID, detective.Wallet)
	s.Require().NoError(err)
	s.True(att.Won)
	s.Equal(10, att.RepDelta)
	s.NoError(s.app.NaclSigner.Verify(att))

	_, err = s.app.ClaimService.Claim(s.ctx, result.GameID, detective.Wallet)
	s.ErrorIs(err, model.ErrAlreadyClaimed)

	// Step 10: lifetime stats were recorded along the way
	killerStats, err := s.app.StatsRecorder.Stats(s.ctx, impostors[1].Wallet)
	s.Require().NoError(err)
	s.Equal(2, killerStats.Kills)

	detectiveStats, err := s.app.StatsRecorder.Stats(s.ctx, detective.Wallet)
	s.Require().NoError(err)
	s.Equal(1, detectiveStats.CorrectDetections)
}

// voteOut has every living player vote for the target; the target
// itself skips.
func (s *IntegrationSuite) voteOut(roomID model.RoomID, targetID model.PlayerID) {
	players, err := s.app.Storage.PlayersForRoom(s.ctx, roomID)
	s.Require().NoError(err)

	for _, p := range players {
		if !p.IsAlive {
			continue
		}
		voteTarget := targetID
		if p.ID == targetID {
			voteTarget = ""
		}
		_, err := s.app.RoomController.SubmitVote(s.ctx, roomID, p.Wallet, voteTarget)
		s.Require().NoError(err)
	}
}

func (s *IntegrationSuite) playersByRole(roomID model.RoomID) map[model.Role][]*model.Player {
	players, err := s.app.Storage.PlayersForRoom(s.ctx, roomID)
	s.Require().NoError(err)

	byRole := make(map[model.Role][]*model.Player)
	for _, p := range players {
		byRole[p.Role] = append(byRole[p.Role], p)
	}
	return byRole
}

// Test: factory configuration validation
func TestFactoryConfig(t *testing.T) {
	t.Run("defaults to memory storage", func(t *testing.T) {
		app, err := New(Config{})
		if err != nil {
			t.Fatalf("New with defaults: %v", err)
		}
		if app.Storage == nil || app.RoomController == nil {
			t.Fatal("expected wired app components")
		}
	})

	t.Run("redis requires config", func(t *testing.T) {
		if _, err := New(Config{StorageType: StorageTypeRedis}); err == nil {
			t.Fatal("expected error for missing RedisConfig")
		}
	})

	t.Run("rejects unknown storage type", func(t *testing.T) {
		if _, err := New(Config{StorageType: "cassandra"}); err == nil {
			t.Fatal("expected error for unknown storage type")
		}
	})
}
