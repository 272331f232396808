package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shadowgame/impostor-server/internal/model"
	"github.com/shadowgame/impostor-server/internal/storage"
)

// Stats hash field names
const (
	statsFieldKills             = "kills"
	statsFieldSaves             = "saves"
	statsFieldCorrectDetections = "correct_detections"
	statsFieldJesterWins        = "jester_wins"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Room operations

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}

	// Pipeline for atomic save + code index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, roomKey(room.ID), data, s.cfg.RoomTTL)
	pipe.Set(ctx, codeIndexKey(room.Code), string(room.ID), s.cfg.RoomTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	data, err := s.client.Get(ctx, roomKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRoomNotFound
		}
		return nil, err
	}

	var room model.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *Storage) GetRoomByCode(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	id, err := s.client.Get(ctx, codeIndexKey(code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRoomNotFound
		}
		return nil, err
	}
	return s.GetRoom(ctx, model.RoomID(id))
}

func (s *Storage) RoomCodeInUse(ctx context.Context, code model.RoomCode) (bool, error) {
	count, err := s.client.Exists(ctx, codeIndexKey(code)).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Storage) DeleteRoom(ctx context.Context, id model.RoomID) error {
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrRoomNotFound) {
			return nil
		}
		return err
	}

	playerIDs, err := s.client.LRange(ctx, rosterKey(id), 0, -1).Result()
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, roomKey(id))
	pipe.Del(ctx, codeIndexKey(room.Code))
	pipe.Del(ctx, rosterKey(id))
	pipe.Del(ctx, chatKey(id))
	for _, playerID := range playerIDs {
		pipe.Del(ctx, playerKey(id, model.PlayerID(playerID)))
	}
	_, err = pipe.Exec(ctx)
	return err
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	key := playerKey(player.RoomID, player.ID)
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, s.cfg.RoomTTL)
	if exists == 0 {
		// First save: append to the join-order roster
		pipe.RPush(ctx, rosterKey(player.RoomID), string(player.ID))
		pipe.Expire(ctx, rosterKey(player.RoomID), s.cfg.RoomTTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, roomID model.RoomID, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(roomID, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) GetPlayerByWallet(ctx context.Context, roomID model.RoomID, wallet model.Wallet) (*model.Player, error) {
	players, err := s.PlayersForRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	for _, player := range players {
		if player.Wallet == wallet {
			return player, nil
		}
	}
	return nil, model.ErrPlayerNotFound
}

func (s *Storage) PlayersForRoom(ctx context.Context, roomID model.RoomID) ([]*model.Player, error) {
	playerIDs, err := s.client.LRange(ctx, rosterKey(roomID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(playerIDs) == 0 {
		return nil, nil
	}

	keys := make([]string, len(playerIDs))
	for i, id := range playerIDs {
		keys[i] = playerKey(roomID, model.PlayerID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			// Expired or missing entry; skip
			continue
		}
		var player model.Player
		if err := json.Unmarshal([]byte(raw), &player); err != nil {
			return nil, err
		}
		players = append(players, &player)
	}
	return players, nil
}

// Action operations

func (s *Storage) UpsertAction(ctx context.Context, action *model.Action) error {
	data, err := json.Marshal(action)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, actionKey(action.RoomID, action.Phase, action.PlayerID), data, s.cfg.RoomTTL)
	pipe.SAdd(ctx, actionsIndexKey(action.RoomID, action.Phase), string(action.PlayerID))
	pipe.Expire(ctx, actionsIndexKey(action.RoomID, action.Phase), s.cfg.RoomTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ActionsForPhase(ctx context.Context, roomID model.RoomID, phase int) ([]*model.Action, error) {
	playerIDs, err := s.client.SMembers(ctx, actionsIndexKey(roomID, phase)).Result()
	if err != nil {
		return nil, err
	}
	if len(playerIDs) == 0 {
		return nil, nil
	}

	keys := make([]string, len(playerIDs))
	for i, id := range playerIDs {
		keys[i] = actionKey(roomID, phase, model.PlayerID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	actions := make([]*model.Action, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		var action model.Action
		if err := json.Unmarshal([]byte(raw), &action); err != nil {
			return nil, err
		}
		actions = append(actions, &action)
	}
	return actions, nil
}

// Vote operations

func (s *Storage) UpsertVote(ctx context.Context, vote *model.Vote) error {
	data, err := json.Marshal(vote)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, voteKey(vote.RoomID, vote.Phase, vote.PlayerID), data, s.cfg.RoomTTL)
	pipe.SAdd(ctx, votesIndexKey(vote.RoomID, vote.Phase), string(vote.PlayerID))
	pipe.Expire(ctx, votesIndexKey(vote.RoomID, vote.Phase), s.cfg.RoomTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) VotesForPhase(ctx context.Context, roomID model.RoomID, phase int) ([]*model.Vote, error) {
	playerIDs, err := s.client.SMembers(ctx, votesIndexKey(roomID, phase)).Result()
	if err != nil {
		return nil, err
	}
	if len(playerIDs) == 0 {
		return nil, nil
	}

	keys := make([]string, len(playerIDs))
	for i, id := range playerIDs {
		keys[i] = voteKey(roomID, phase, model.PlayerID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	votes := make([]*model.Vote, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		var vote model.Vote
		if err := json.Unmarshal([]byte(raw), &vote); err != nil {
			return nil, err
		}
		votes = append(votes, &vote)
	}
	return votes, nil
}

// Game result operations

func (s *Storage) SaveResult(ctx context.Context, result *model.GameResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	// SETNX on the room index enforces one result per room
	set, err := s.client.SetNX(ctx, resultForRoomIndexKey(result.RoomID), string(result.GameID), 0).Result()
	if err != nil {
		return err
	}
	if !set {
		return model.ErrResultExists
	}

	return s.client.Set(ctx, resultKey(result.GameID), data, 0).Err()
}

func (s *Storage) GetResult(ctx context.Context, gameID model.GameID) (*model.GameResult, error) {
	data, err := s.client.Get(ctx, resultKey(gameID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrResultNotFound
		}
		return nil, err
	}

	var result model.GameResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Storage) GetResultForRoom(ctx context.Context, roomID model.RoomID) (*model.GameResult, error) {
	gameID, err := s.client.Get(ctx, resultForRoomIndexKey(roomID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrResultNotFound
		}
		return nil, err
	}
	return s.GetResult(ctx, model.GameID(gameID))
}

// Chat operations

func (s *Storage) SaveChatMessage(ctx context.Context, msg *model.ChatMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.RPush(ctx, chatKey(msg.RoomID), data)
	pipe.Expire(ctx, chatKey(msg.RoomID), s.cfg.ChatTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ChatForPhase(ctx context.Context, roomID model.RoomID, phase int) ([]*model.ChatMessage, error) {
	values, err := s.client.LRange(ctx, chatKey(roomID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	var messages []*model.ChatMessage
	for _, raw := range values {
		var msg model.ChatMessage
		if err := json.Unmarshal([]byte(raw), &msg); err != nil {
			return nil, err
		}
		if msg.Phase == phase {
			messages = append(messages, &msg)
		}
	}
	return messages, nil
}

// Claim log operations

func (s *Storage) SaveClaim(ctx context.Context, claim *model.ClaimLog) error {
	data, err := json.Marshal(claim)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, claimKey(claim.GameID, claim.Wallet), data, 0).Err()
}

func (s *Storage) ClaimExists(ctx context.Context, gameID model.GameID, wallet model.Wallet) (bool, error) {
	count, err := s.client.Exists(ctx, claimKey(gameID, wallet)).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Stats operations

func (s *Storage) AddStats(ctx context.Context, wallet model.Wallet, delta model.PlayerStats) error {
	key := statsKey(wallet)

	pipe := s.client.Pipeline()
	if delta.Kills != 0 {
		pipe.HIncrBy(ctx, key, statsFieldKills, int64(delta.Kills))
	}
	if delta.Saves != 0 {
		pipe.HIncrBy(ctx, key, statsFieldSaves, int64(delta.Saves))
	}
	if delta.CorrectDetections != 0 {
		pipe.HIncrBy(ctx, key, statsFieldCorrectDetections, int64(delta.CorrectDetections))
	}
	if delta.JesterWins != 0 {
		pipe.HIncrBy(ctx, key, statsFieldJesterWins, int64(delta.JesterWins))
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) GetStats(ctx context.Context, wallet model.Wallet) (*model.PlayerStats, error) {
	fields, err := s.client.HGetAll(ctx, statsKey(wallet)).Result()
	if err != nil {
		return nil, err
	}

	stats := &model.PlayerStats{Wallet: wallet}
	stats.Kills = parseStatField(fields, statsFieldKills)
	stats.Saves = parseStatField(fields, statsFieldSaves)
	stats.CorrectDetections = parseStatField(fields, statsFieldCorrectDetections)
	stats.JesterWins = parseStatField(fields, statsFieldJesterWins)
	return stats, nil
}

func parseStatField(fields map[string]string, name string) int {
	raw, ok := fields[name]
	if !ok {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
