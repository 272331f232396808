package memory

import (
	"context"
	"sync"

	"github.com/shadowgame/impostor-server/internal/model"
	"github.com/shadowgame/impostor-server/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	rooms     map[model.RoomID]*model.Room
	codeIndex map[model.RoomCode]model.RoomID

	players     map[playerKey]*model.Player
	roomRosters map[model.RoomID][]model.PlayerID

	actions map[submissionKey]*model.Action
	votes   map[submissionKey]*model.Vote

	results         map[model.GameID]*model.GameResult
	roomResultIndex map[model.RoomID]model.GameID

	chat map[model.RoomID][]*model.ChatMessage

	claims map[claimKey]*model.ClaimLog

	stats map[model.Wallet]*model.PlayerStats
}

type playerKey struct {
	roomID   model.RoomID
	playerID model.PlayerID
}

// submissionKey is the composite uniqueness key for actions and votes
type submissionKey struct {
	roomID   model.RoomID
	playerID model.PlayerID
	phase    int
}

type claimKey struct {
	gameID model.GameID
	wallet model.Wallet
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		rooms:           make(map[model.RoomID]*model.Room),
		codeIndex:       make(map[model.RoomCode]model.RoomID),
		players:         make(map[playerKey]*model.Player),
		roomRosters:     make(map[model.RoomID][]model.PlayerID),
		actions:         make(map[submissionKey]*model.Action),
		votes:           make(map[submissionKey]*model.Vote),
		results:         make(map[model.GameID]*model.GameResult),
		roomResultIndex: make(map[model.RoomID]model.GameID),
		chat:            make(map[model.RoomID][]*model.ChatMessage),
		claims:          make(map[claimKey]*model.ClaimLog),
		stats:           make(map[model.Wallet]*model.PlayerStats),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Room operations

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.ID] = room
	s.codeIndex[room.Code] = room.ID
	return nil
}

func (s *Storage) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room, nil
}

func (s *Storage) GetRoomByCode(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.codeIndex[code]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	room, ok := s.rooms[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room, nil
}

func (s *Storage) RoomCodeInUse(ctx context.Context, code model.RoomCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.codeIndex[code]
	return ok, nil
}

func (s *Storage) DeleteRoom(ctx context.Context, id model.RoomID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil
	}
	delete(s.codeIndex, room.Code)
	delete(s.rooms, id)
	for _, playerID := range s.roomRosters[id] {
		delete(s.players, playerKey{roomID: id, playerID: playerID})
	}
	delete(s.roomRosters, id)
	delete(s.chat, id)
	return nil
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := playerKey{roomID: player.RoomID, playerID: player.ID}
	if _, exists := s.players[key]; !exists {
		s.roomRosters[player.RoomID] = append(s.roomRosters[player.RoomID], player.ID)
	}
	s.players[key] = player
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, roomID model.RoomID, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[playerKey{roomID: roomID, playerID: id}]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) GetPlayerByWallet(ctx context.Context, roomID model.RoomID, wallet model.Wallet) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, playerID := range s.roomRosters[roomID] {
		player := s.players[playerKey{roomID: roomID, playerID: playerID}]
		if player != nil && player.Wallet == wallet {
			return player, nil
		}
	}
	return nil, model.ErrPlayerNotFound
}

func (s *Storage) PlayersForRoom(ctx context.Context, roomID model.RoomID) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roster := s.roomRosters[roomID]
	players := make([]*model.Player, 0, len(roster))
	for _, playerID := range roster {
		if player, ok := s.players[playerKey{roomID: roomID, playerID: playerID}]; ok {
			players = append(players, player)
		}
	}
	return players, nil
}

// Action operations

func (s *Storage) UpsertAction(ctx context.Context, action *model.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := submissionKey{roomID: action.RoomID, playerID: action.PlayerID, phase: action.Phase}
	s.actions[key] = action
	return nil
}

func (s *Storage) ActionsForPhase(ctx context.Context, roomID model.RoomID, phase int) ([]*model.Action, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var actions []*model.Action
	for key, action := range s.actions {
		if key.roomID == roomID && key.phase == phase {
			actions = append(actions, action)
		}
	}
	return actions, nil
}

// Vote operations

func (s *Storage) UpsertVote(ctx context.Context, vote *model.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := submissionKey{roomID: vote.RoomID, playerID: vote.PlayerID, phase: vote.Phase}
	s.votes[key] = vote
	return nil
}

func (s *Storage) VotesForPhase(ctx context.Context, roomID model.RoomID, phase int) ([]*model.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var votes []*model.Vote
	for key, vote := range s.votes {
		if key.roomID == roomID && key.phase == phase {
			votes = append(votes, vote)
		}
	}
	return votes, nil
}

// Game result operations

func (s *Storage) SaveResult(ctx context.Context, result *model.GameResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.roomResultIndex[result.RoomID]; exists {
		return model.ErrResultExists
	}
	s.results[result.GameID] = result
	s.roomResultIndex[result.RoomID] = result.GameID
	return nil
}

func (s *Storage) GetResult(ctx context.Context, gameID model.GameID) (*model.GameResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.results[gameID]
	if !ok {
		return nil, model.ErrResultNotFound
	}
	return result, nil
}

func (s *Storage) GetResultForRoom(ctx context.Context, roomID model.RoomID) (*model.GameResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	gameID, ok := s.roomResultIndex[roomID]
	if !ok {
		return nil, model.ErrResultNotFound
	}
	result, ok := s.results[gameID]
	if !ok {
		return nil, model.ErrResultNotFound
	}
	return result, nil
}

// Chat operations

func (s *Storage) SaveChatMessage(ctx context.Context, msg *model.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chat[msg.RoomID] = append(s.chat[msg.RoomID], msg)
	return nil
}

func (s *Storage) ChatForPhase(ctx context.Context, roomID model.RoomID, phase int) ([]*model.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var messages []*model.ChatMessage
	for _, msg := range s.chat[roomID] {
		if msg.Phase == phase {
			messages = append(messages, msg)
		}
	}
	return messages, nil
}

// Claim log operations

func (s *Storage) SaveClaim(ctx context.Context, claim *model.ClaimLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.claims[claimKey{gameID: claim.GameID, wallet: claim.Wallet}] = claim
	return nil
}

func (s *Storage) ClaimExists(ctx context.Context, gameID model.GameID, wallet model.Wallet) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.claims[claimKey{gameID: gameID, wallet: wallet}]
	return ok, nil
}

// Stats operations

func (s *Storage) AddStats(ctx context.Context, wallet model.Wallet, delta model.PlayerStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.stats[wallet]
	if !ok {
		current = &model.PlayerStats{Wallet: wallet}
		s.stats[wallet] = current
	}
	current.Kills += delta.Kills
	current.Saves += delta.Saves
	current.CorrectDetections += delta.CorrectDetections
	current.JesterWins += delta.JesterWins
	return nil
}

func (s *Storage) GetStats(ctx context.Context, wallet model.Wallet) (*model.PlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats, ok := s.stats[wallet]
	if !ok {
		return &model.PlayerStats{Wallet: wallet}, nil
	}
	copied := *stats
	return &copied, nil
}
