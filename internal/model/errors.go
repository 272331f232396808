package model

import "errors"

// Common errors used across the application
var (
	// Not-found errors
	ErrRoomNotFound   = errors.New("room not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrResultNotFound = errors.New("game result not found")

	// Lobby errors
	ErrRoomFull        = errors.New("room is full")
	ErrGameStarted     = errors.New("game already started")
	ErrNotHost         = errors.New("player is not the host")
	ErrNotInRoom       = errors.New("player is not in this room")
	ErrPlayersNotReady = errors.New("not all players are ready")
	ErrPlayerCount     = errors.New("player count must be between 6 and 10")

	// In-game errors
	ErrWrongPhase        = errors.New("operation not valid in current phase")
	ErrPlayerDead        = errors.New("player is not alive")
	ErrInvalidTarget     = errors.New("invalid target")
	ErrSelfTarget        = errors.New("cannot target yourself")
	ErrRoleForbidsAction = errors.New("role cannot perform this action")
	ErrInvalidTransition = errors.New("no transition valid from current status")
	ErrRoomEnded         = errors.New("room has ended")
	ErrChatClosed        = errors.New("chat is only open during the day")
	ErrInvalidMessage    = errors.New("chat message is empty or too long")

	// Claim errors
	ErrAlreadyClaimed = errors.New("result already claimed")
	ErrNotInResult    = errors.New("wallet did not play in this game")

	// Invariant violations: unexpected states the code refuses to guess
	// its way around
	ErrInvalidDistribution = errors.New("role distribution does not fit player count")
	ErrResultExists        = errors.New("room already has a game result")
	ErrAmbiguousWinner     = errors.New("win evaluation produced no decidable winner")
)
