package redis

import (
	"fmt"

	"github.com/shadowgame/impostor-server/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "impgame"

// roomKey returns the Redis key for a Room
func roomKey(id model.RoomID) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, id)
}

// codeIndexKey returns the Redis key for the room_code -> room_id index
func codeIndexKey(code model.RoomCode) string {
	return fmt.Sprintf("%s:idx:code:%s", keyPrefix, code)
}

// playerKey returns the Redis key for a Player
func playerKey(roomID model.RoomID, id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s:%s", keyPrefix, roomID, id)
}

// rosterKey returns the Redis key for the LIST of player ids in a room,
// in join order
func rosterKey(roomID model.RoomID) string {
	return fmt.Sprintf("%s:idx:roster:%s", keyPrefix, roomID)
}

// actionKey returns the Redis key for a night Action
func actionKey(roomID model.RoomID, phase int, playerID model.PlayerID) string {
	return fmt.Sprintf("%s:action:%s:%d:%s", keyPrefix, roomID, phase, playerID)
}

// actionsIndexKey returns the Redis key for the SET of player ids with an
// action submitted in a phase
func actionsIndexKey(roomID model.RoomID, phase int) string {
	return fmt.Sprintf("%s:idx:actions:%s:%d", keyPrefix, roomID, phase)
}

// voteKey returns the Redis key for a day Vote
func voteKey(roomID model.RoomID, phase int, playerID model.PlayerID) string {
	return fmt.Sprintf("%s:vote:%s:%d:%s", keyPrefix, roomID, phase, playerID)
}

// votesIndexKey returns the Redis key for the SET of player ids with a
// vote submitted in a phase
func votesIndexKey(roomID model.RoomID, phase int) string {
	return fmt.Sprintf("%s:idx:votes:%s:%d", keyPrefix, roomID, phase)
}

// resultKey returns the Redis key for a GameResult
func resultKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:result:%s", keyPrefix, gameID)
}

// resultForRoomIndexKey returns the Redis key for the room_id -> game_id index
func resultForRoomIndexKey(roomID model.RoomID) string {
	return fmt.Sprintf("%s:idx:result_for_room:%s", keyPrefix, roomID)
}

// chatKey returns the Redis key for the LIST of chat messages in a room
func chatKey(roomID model.RoomID) string {
	return fmt.Sprintf("%s:chat:%s", keyPrefix, roomID)
}

// claimKey returns the Redis key for a ClaimLog entry
func claimKey(gameID model.GameID, wallet model.Wallet) string {
	return fmt.Sprintf("%s:claim:%s:%s", keyPrefix, gameID, wallet)
}

// statsKey returns the Redis key for a wallet's stats HASH
func statsKey(wallet model.Wallet) string {
	return fmt.Sprintf("%s:stats:%s", keyPrefix, wallet)
}
