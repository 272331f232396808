package storage

import (
	"context"

	"github.com/shadowgame/impostor-server/internal/model"
)

// Storage defines the interface for data persistence.
//
// Actions and votes are upserted by their (room, player, phase) composite
// key with last-write-wins semantics; implementations index by that key
// rather than scanning.
type Storage interface {
	// Room operations
	SaveRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error)
	GetRoomByCode(ctx context.Context, code model.RoomCode) (*model.Room, error)
	RoomCodeInUse(ctx context.Context, code model.RoomCode) (bool, error)
	DeleteRoom(ctx context.Context, id model.RoomID) error

	// Player operations. PlayersForRoom returns the roster in join order.
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, roomID model.RoomID, id model.PlayerID) (*model.Player, error)
	GetPlayerByWallet(ctx context.Context, roomID model.RoomID, wallet model.Wallet) (*model.Player, error)
	PlayersForRoom(ctx context.Context, roomID model.RoomID) ([]*model.Player, error)

	// Action operations
	UpsertAction(ctx context.Context, action *model.Action) error
	ActionsForPhase(ctx context.Context, roomID model.RoomID, phase int) ([]*model.Action, error)

	// Vote operations
	UpsertVote(ctx context.Context, vote *model.Vote) error
	VotesForPhase(ctx context.Context, roomID model.RoomID, phase int) ([]*model.Vote, error)

	// Game result operations
	SaveResult(ctx context.Context, result *model.GameResult) error
	GetResult(ctx context.Context, gameID model.GameID) (*model.GameResult, error)
	GetResultForRoom(ctx context.Context, roomID model.RoomID) (*model.GameResult, error)

	// Chat operations. ChatForPhase returns messages in creation order.
	SaveChatMessage(ctx context.Context, msg *model.ChatMessage) error
	ChatForPhase(ctx context.Context, roomID model.RoomID, phase int) ([]*model.ChatMessage, error)

	// Claim log operations
	SaveClaim(ctx context.Context, claim *model.ClaimLog) error
	ClaimExists(ctx context.Context, gameID model.GameID, wallet model.Wallet) (bool, error)

	// Stats operations. AddStats adds the delta's counters to the
	// wallet's running totals.
	AddStats(ctx context.Context, wallet model.Wallet, delta model.PlayerStats) error
	GetStats(ctx context.Context, wallet model.Wallet) (*model.PlayerStats, error)
}
