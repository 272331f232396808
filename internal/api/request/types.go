package request

// CreateRoomRequest is the request body for creating a room
type CreateRoomRequest struct {
	Nickname string `json:"nickname"`
}

// JoinRoomRequest is the request body for joining a room
type JoinRoomRequest struct {
	Nickname string `json:"nickname"`
}

// SetReadyRequest is the request body for toggling the lobby ready flag
type SetReadyRequest struct {
	Ready bool `json:"ready"`
}

// SubmitActionRequest is the request body for a night action. An empty
// target withdraws a previous submission.
type SubmitActionRequest struct {
	Type     string `json:"type"`
	TargetID string `json:"target_id,omitempty"`
}

// SubmitVoteRequest is the request body for a day vote. An empty target
// is a skip vote.
type SubmitVoteRequest struct {
	TargetID string `json:"target_id,omitempty"`
}

// SendChatRequest is the request body for posting a chat message
type SendChatRequest struct {
	Content string `json:"content"`
}

// ClaimRequest is the request body for claiming a game result attestation
type ClaimRequest struct {
	GameID string `json:"game_id"`
}
