package room

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/shadowgame/impostor-server/internal/dependencies/clock"
	"github.com/shadowgame/impostor-server/internal/dependencies/random"
	"github.com/shadowgame/impostor-server/internal/model"
	"github.com/shadowgame/impostor-server/internal/services/ledger"
	"github.com/shadowgame/impostor-server/internal/services/resolve"
	"github.com/shadowgame/impostor-server/internal/services/result"
	"github.com/shadowgame/impostor-server/internal/services/roles"
	"github.com/shadowgame/impostor-server/internal/storage"
)

const (
	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 6
	// RoomCodeAlphabet is the characters used in room codes (avoid confusing chars)
	RoomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Phase durations exposed as deadline hints. The controller runs no
// timers itself; an external scheduler is expected to call Transition.
const (
	NightSeconds  = 30
	DaySeconds    = 90
	VotingSeconds = 30
)

// Event is a state change observers should be told about
type Event struct {
	Type    model.EventType
	Payload any
}

// TransitionResult is what one accepted Transition call produced
type TransitionResult struct {
	Room   *model.Room
	Events []Event
}

// Controller owns the room state machine. All mutations of a given room
// are serialized through a per-room lock, so a resolution can never run
// twice for the same phase.
type Controller struct {
	storage storage.Storage
	roles   *roles.Service
	ledger  *ledger.Service
	resolve *resolve.Service
	results *result.Builder
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	locksMu sync.Mutex
	locks   map[model.RoomID]*sync.Mutex
}

// NewController creates a new room controller
func NewController(
	storage storage.Storage,
	roles *roles.Service,
	ledger *ledger.Service,
	resolve *resolve.Service,
	results *result.Builder,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		roles:   roles,
		ledger:  ledger,
		resolve: resolve,
		results: results,
		clock:   clock,
		random:  random,
		logger:  logger,
		locks:   make(map[model.RoomID]*sync.Mutex),
	}
}

// lockRoom returns the mutation lock for a room, creating it on first use
func (c *Controller) lockRoom(id model.RoomID) *sync.Mutex {
	c.locksMu.Lock()
	defer c.locksMu.Unlock()
	lock, ok := c.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[id] = lock
	}
	return lock
}

// CreateRoom creates a room with the given wallet as host. The host
// joins immediately and is considered ready.
func (c *Controller) CreateRoom(ctx context.Context, wallet model.Wallet, nickname string) (*model.Room, *model.Player, error) {
	now := c.clock.Now()

	// Generate a room code unused by any live room
	var code model.RoomCode
	for {
		code = model.RoomCode(c.random.String(RoomCodeLength, RoomCodeAlphabet))
		inUse, err := c.storage.RoomCodeInUse(ctx, code)
		if err != nil {
			return nil, nil, err
		}
		if !inUse {
			break
		}
	}

	room := &model.Room{
		ID:         model.RoomID(uuid.NewString()),
		Code:       code,
		Status:     model.RoomStatusLobby,
		HostWallet: wallet,
		Phase:      0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	host := &model.Player{
		ID:       model.PlayerID(uuid.NewString()),
		RoomID:   room.ID,
		Wallet:   wallet,
		Nickname: nickname,
		IsAlive:  true,
		IsReady:  true,
		IsHost:   true,
		JoinedAt: now,
	}

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, nil, err
	}
	if err := c.storage.SavePlayer(ctx, host); err != nil {
		return nil, nil, err
	}

	c.logger.Info("room created",
		"room_id", room.ID,
		"code", room.Code,
		"host_wallet", wallet,
	)
	return room, host, nil
}

// JoinRoom seats a wallet in a lobby room. Joining a room the wallet is
// already seated in returns the existing player.
func (c *Controller) JoinRoom(ctx context.Context, code model.RoomCode, wallet model.Wallet, nickname string) (*model.Room, *model.Player, error) {
	room, err := c.storage.GetRoomByCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	lock := c.lockRoom(room.ID)
	lock.Lock()
	defer lock.Unlock()

	room, err = c.storage.GetRoom(ctx, room.ID)
	if err != nil {
		return nil, nil, err
	}

	if existing, err := c.storage.GetPlayerByWallet(ctx, room.ID, wallet); err == nil {
		return room, existing, nil
	} else if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, nil, err
	}

	if room.Status != model.RoomStatusLobby {
		return nil, nil, model.ErrGameStarted
	}

	players, err := c.storage.PlayersForRoom(ctx, room.ID)
	if err != nil {
		return nil, nil, err
	}
	if len(players) >= roles.MaxPlayers {
		return nil, nil, model.ErrRoomFull
	}

	player := &model.Player{
		ID:       model.PlayerID(uuid.NewString()),
		RoomID:   room.ID,
		Wallet:   wallet,
		Nickname: nickname,
		IsAlive:  true,
		JoinedAt: c.clock.Now(),
	}
	if err := c.storage.SavePlayer(ctx, player); err != nil {
		return nil, nil, err
	}

	c.logger.Info("player joined",
		"room_id", room.ID,
		"player_id", player.ID,
		"wallet", wallet,
	)
	return room, player, nil
}

// SetReady toggles a player's lobby ready flag
func (c *Controller) SetReady(ctx context.Context, roomID model.RoomID, wallet model.Wallet, ready bool) (*model.Player, error) {
	lock := c.lockRoom(roomID)
	lock.Lock()
	defer lock.Unlock()

	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.Status != model.RoomStatusLobby {
		return nil, model.ErrGameStarted
	}

	player, err := c.storage.GetPlayerByWallet(ctx, roomID, wallet)
	if err != nil {
		return nil, model.ErrNotInRoom
	}

	player.IsReady = ready
	if err := c.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

// Start begins the game: host only, 6 to 10 players, everyone ready.
// Roles are assigned positionally from a shuffled roster and the room
// enters its first night.
func (c *Controller) Start(ctx context.Context, roomID model.RoomID, wallet model.Wallet) (*model.Room, error) {
	lock := c.lockRoom(roomID)
	lock.Lock()
	defer lock.Unlock()

	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.Status != model.RoomStatusLobby {
		return nil, model.ErrGameStarted
	}
	if room.HostWallet != wallet {
		return nil, model.ErrNotHost
	}

	players, err := c.storage.PlayersForRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if len(players) < roles.MinPlayers || len(players) > roles.MaxPlayers {
		return nil, model.ErrPlayerCount
	}
	for _, p := range players {
		if !p.IsReady {
			return nil, model.ErrPlayersNotReady
		}
	}

	roster, err := c.roles.Roster(len(players))
	if err != nil {
		return nil, err
	}
	for i, p := range players {
		p.Role = roster[i]
		if err := c.storage.SavePlayer(ctx, p); err != nil {
			return nil, err
		}
	}

	room.Status = model.RoomStatusNight
	room.Phase = 1
	room.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Info("game started",
		"room_id", roomID,
		"player_count", len(players),
	)
	return room, nil
}

// SubmitAction records a night action for the submitting wallet
func (c *Controller) SubmitAction(ctx context.Context, roomID model.RoomID, wallet model.Wallet, actionType model.ActionType, targetID model.PlayerID) (*model.Action, error) {
	lock := c.lockRoom(roomID)
	lock.Lock()
	defer lock.Unlock()

	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	actor, err := c.storage.GetPlayerByWallet(ctx, roomID, wallet)
	if err != nil {
		return nil, model.ErrNotInRoom
	}
	return c.ledger.RecordAction(ctx, room, actor, actionType, targetID)
}

// SubmitVote records a day vote for the submitting wallet
func (c *Controller) SubmitVote(ctx context.Context, roomID model.RoomID, wallet model.Wallet, targetID model.PlayerID) (*model.Vote, error) {
	lock := c.lockRoom(roomID)
	lock.Lock()
	defer lock.Unlock()

	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	actor, err := c.storage.GetPlayerByWallet(ctx, roomID, wallet)
	if err != nil {
		return nil, model.ErrNotInRoom
	}
	return c.ledger.RecordVote(ctx, room, actor, targetID)
}

// Transition advances the room's state machine one step. Host only.
// Holding the room lock across resolution means a transition observed
// as complete is never re-run, even under concurrent calls.
func (c *Controller) Transition(ctx context.Context, roomID model.RoomID, wallet model.Wallet) (*TransitionResult, error) {
	lock := c.lockRoom(roomID)
	lock.Lock()
	defer lock.Unlock()

	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.HostWallet != wallet {
		return nil, model.ErrNotHost
	}

	switch room.Status {
	case model.RoomStatusNight:
		return c.transitionFromNight(ctx, room)
	case model.RoomStatusDay:
		return c.transitionFromDay(ctx, room)
	case model.RoomStatusVoting:
		return c.transitionFromVoting(ctx, room)
	case model.RoomStatusEnded:
		return nil, model.ErrRoomEnded
	default:
		return nil, model.ErrInvalidTransition
	}
}

func (c *Controller) transitionFromNight(ctx context.Context, room *model.Room) (*TransitionResult, error) {
	players, err := c.storage.PlayersForRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}

	outcome, err := c.resolve.ResolveNight(ctx, room, players)
	if err != nil {
		return nil, err
	}

	tr := &TransitionResult{Room: room}
	if outcome.VictimID != "" {
		tr.Events = append(tr.Events, Event{
			Type: model.EventPlayerDied,
			Payload: model.PlayerDiedPayload{
				PlayerID:     outcome.VictimID,
				WasProtected: outcome.WasProtected,
			},
		})
	}

	winner, decided, err := resolve.EvaluateWin(players)
	if err != nil {
		return nil, err
	}
	if decided {
		return c.endGame(ctx, tr, room, players, winner)
	}

	room.Status = model.RoomStatusDay
	room.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	tr.Events = append(tr.Events, phaseChangeEvent(room))
	return tr, nil
}

func (c *Controller) transitionFromDay(ctx context.Context, room *model.Room) (*TransitionResult, error) {
	room.Status = model.RoomStatusVoting
	room.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	tr := &TransitionResult{Room: room}
	tr.Events = append(tr.Events, phaseChangeEvent(room))
	return tr, nil
}

func (c *Controller) transitionFromVoting(ctx context.Context, room *model.Room) (*TransitionResult, error) {
	players, err := c.storage.PlayersForRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}

	outcome, err := c.resolve.ResolveDay(ctx, room, players)
	if err != nil {
		return nil, err
	}

	tr := &TransitionResult{Room: room}
	tr.Events = append(tr.Events, Event{
		Type: model.EventVoteResult,
		Payload: model.VoteResultPayload{
			VotedOutID: outcome.EliminatedID,
			JesterWin:  outcome.JesterWin,
		},
	})

	// The jester win short-circuits the headcount evaluation
	if outcome.JesterWin {
		return c.endGame(ctx, tr, room, players, model.TeamJester)
	}

	winner, decided, err := resolve.EvaluateWin(players)
	if err != nil {
		return nil, err
	}
	if decided {
		return c.endGame(ctx, tr, room, players, winner)
	}

	room.Status = model.RoomStatusNight
	room.Phase++
	room.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	tr.Events = append(tr.Events, phaseChangeEvent(room))
	return tr, nil
}

func (c *Controller) endGame(ctx context.Context, tr *TransitionResult, room *model.Room, players []*model.Player, winner model.Team) (*TransitionResult, error) {
	gameResult, err := c.results.Build(ctx, room, players, winner)
	if err != nil {
		return nil, err
	}

	room.Status = model.RoomStatusEnded
	room.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	tr.Events = append(tr.Events, Event{
		Type: model.EventGameEnd,
		Payload: model.GameEndPayload{
			WinnerTeam: winner,
			GameID:     gameResult.GameID,
		},
	})

	c.logger.Info("game ended",
		"room_id", room.ID,
		"winner_team", winner,
		"game_id", gameResult.GameID,
	)
	return tr, nil
}

func phaseChangeEvent(room *model.Room) Event {
	return Event{
		Type: model.EventPhaseChange,
		Payload: model.PhaseChangePayload{
			Status: room.Status,
			Phase:  room.Phase,
		},
	}
}
