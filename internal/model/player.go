package model

import (
	"strings"
	"time"
)

// PlayerID uniquely identifies a player within a room
type PlayerID string

// Wallet is a lower-cased wallet address used as the player's identity key
type Wallet string

// NormalizeWallet lower-cases a raw wallet address
func NormalizeWallet(raw string) Wallet {
	return Wallet(strings.ToLower(strings.TrimSpace(raw)))
}

// Player represents one participant's membership in a room.
// Players are never deleted after game start: the full roster, including
// the dead, is needed for the result reveal.
type Player struct {
	ID       PlayerID
	RoomID   RoomID
	Wallet   Wallet
	Nickname string

	// Role is empty until assigned at game start and immutable afterwards
	Role Role

	// IsAlive transitions true -> false only, never back
	IsAlive bool
	IsReady bool
	IsHost  bool

	JoinedAt time.Time
}
