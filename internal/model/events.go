package model

// EventType identifies the type of event pushed on a room's stream
type EventType string

const (
	EventRoomUpdate  EventType = "room_update"
	EventPhaseChange EventType = "phase_change"
	EventPlayerDied  EventType = "player_died"
	EventVoteResult  EventType = "vote_result"
	EventGameEnd     EventType = "game_end"
	EventChat        EventType = "chat"
)

// Event payloads go straight onto the SSE wire, so unlike the rest of
// the model they carry JSON tags.

// PhaseChangePayload announces a status/phase move
type PhaseChangePayload struct {
	Status RoomStatus `json:"status"`
	Phase  int        `json:"phase"`
}

// PlayerDiedPayload announces a night kill (or its nullification)
type PlayerDiedPayload struct {
	PlayerID     PlayerID `json:"player_id"`
	WasProtected bool     `json:"was_protected"`
}

// VoteResultPayload announces a day elimination
type VoteResultPayload struct {
	VotedOutID PlayerID `json:"voted_out_id,omitempty"` // empty if skip won
	JesterWin  bool     `json:"jester_win"`
}

// GameEndPayload announces the final outcome
type GameEndPayload struct {
	WinnerTeam Team   `json:"winner_team"`
	GameID     GameID `json:"game_id"`
}
