package model

import "time"

// GameID is the unique 32-byte (0x-prefixed hex) identifier of a finished
// game, used as the claim key by the external attestation signer.
type GameID string

// Reputation rewards. Total reputation awarded is a pure function of
// role, team outcome, and alive-at-end status.
const (
	RepWin               = 10
	RepLoss              = -5
	RepSurviveAsImpostor = 5
	RepJesterWin         = 15
)

// PlayerResult is one player's entry in a finished game's record
type PlayerResult struct {
	Wallet   Wallet
	Nickname string
	Role     Role
	Won      bool
	RepDelta int
}

// GameResult is the immutable record of how a finished room's match
// ended. Created exactly once per room, never recomputed.
type GameResult struct {
	RoomID        RoomID
	GameID        GameID
	WinnerTeam    Team
	PlayerResults []PlayerResult
	CreatedAt     time.Time
}

// ResultFor returns the entry for the given wallet, or nil if the wallet
// did not play in this game.
func (r *GameResult) ResultFor(wallet Wallet) *PlayerResult {
	for i := range r.PlayerResults {
		if r.PlayerResults[i].Wallet == wallet {
			return &r.PlayerResults[i]
		}
	}
	return nil
}

// ClaimLog records that a wallet has redeemed its attestation for a game.
// Keyed (gameID, wallet); a second claim for the same key is rejected.
type ClaimLog struct {
	GameID    GameID
	Wallet    Wallet
	ClaimedAt time.Time
}
