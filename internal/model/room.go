package model

import "time"

// RoomID uniquely identifies a room
type RoomID string

// RoomCode is a short human-joinable code, unique while the room is joinable
type RoomCode string

// RoomStatus is the authoritative phase category of a room
type RoomStatus string

const (
	RoomStatusLobby  RoomStatus = "lobby"  // Waiting for players to join and ready up
	RoomStatusNight  RoomStatus = "night"  // Impostors kill, detective investigates, doctor protects
	RoomStatusDay    RoomStatus = "day"    // Free discussion
	RoomStatusVoting RoomStatus = "voting" // Day votes are cast
	RoomStatusEnded  RoomStatus = "ended"  // Terminal; a GameResult exists
)

// Room represents a single social-deduction match instance
type Room struct {
	ID         RoomID
	Code       RoomCode
	Status     RoomStatus
	HostWallet Wallet

	// Phase is the round counter: 0 in lobby, 1 when the first night
	// begins, incremented again each subsequent night.
	Phase int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// InProgress returns true if the game has started and not yet ended
func (r *Room) InProgress() bool {
	return r.Status != RoomStatusLobby && r.Status != RoomStatusEnded
}

// AcceptsVotes returns true if votes may be submitted in the current status
func (r *Room) AcceptsVotes() bool {
	return r.Status == RoomStatusDay || r.Status == RoomStatusVoting
}
