package response

import (
	"time"

	"github.com/shadowgame/impostor-server/internal/model"
	"github.com/shadowgame/impostor-server/internal/services/signer"
)

// PlayerView is one roster entry as shown to the viewer
type PlayerView struct {
	ID       string `json:"id"`
	Wallet   string `json:"wallet"`
	Nickname string `json:"nickname"`
	Role     string `json:"role,omitempty"`
	IsAlive  bool   `json:"is_alive"`
	IsReady  bool   `json:"is_ready"`
	IsHost   bool   `json:"is_host"`
}

// RoomSnapshot is the API shape of a room view
type RoomSnapshot struct {
	ID           string       `json:"id"`
	Code         string       `json:"code"`
	Status       string       `json:"status"`
	Phase        int          `json:"phase"`
	HostWallet   string       `json:"host_wallet"`
	Players      []PlayerView `json:"players"`
	MyID         string       `json:"my_id,omitempty"`
	MyRole       string       `json:"my_role,omitempty"`
	WinnerTeam   string       `json:"winner_team,omitempty"`
	GameID       string       `json:"game_id,omitempty"`
	PhaseSeconds int          `json:"phase_seconds,omitempty"`
}

// SnapshotFromModel converts a model.RoomSnapshot
func SnapshotFromModel(s *model.RoomSnapshot) RoomSnapshot {
	out := RoomSnapshot{
		ID:           string(s.ID),
		Code:         string(s.Code),
		Status:       string(s.Status),
		Phase:        s.Phase,
		HostWallet:   string(s.HostWallet),
		MyID:         string(s.MyID),
		MyRole:       string(s.MyRole),
		WinnerTeam:   string(s.WinnerTeam),
		GameID:       string(s.GameID),
		PhaseSeconds: s.PhaseSeconds,
	}
	for _, p := range s.Players {
		out.Players = append(out.Players, PlayerView{
			ID:       string(p.ID),
			Wallet:   string(p.Wallet),
			Nickname: p.Nickname,
			Role:     string(p.Role),
			IsAlive:  p.IsAlive,
			IsReady:  p.IsReady,
			IsHost:   p.IsHost,
		})
	}
	return out
}

// JoinedRoom is the response for room create/join
type JoinedRoom struct {
	RoomID   string `json:"room_id"`
	Code     string `json:"code"`
	PlayerID string `json:"player_id"`
}

// Action is the API shape of a night action acknowledgement. The
// investigation result appears only once the night has resolved.
type Action struct {
	Phase       int       `json:"phase"`
	Type        string    `json:"type"`
	TargetID    string    `json:"target_id,omitempty"`
	Result      string    `json:"result,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// ActionFromModel converts a model.Action
func ActionFromModel(a *model.Action) Action {
	return Action{
		Phase:       a.Phase,
		Type:        string(a.Type),
		TargetID:    string(a.TargetID),
		Result:      string(a.Result),
		SubmittedAt: a.SubmittedAt,
	}
}

// Vote is the API shape of a day vote acknowledgement
type Vote struct {
	Phase       int       `json:"phase"`
	TargetID    string    `json:"target_id,omitempty"`
	Skip        bool      `json:"skip"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// VoteFromModel converts a model.Vote
func VoteFromModel(v *model.Vote) Vote {
	return Vote{
		Phase:       v.Phase,
		TargetID:    string(v.TargetID),
		Skip:        v.IsSkip(),
		SubmittedAt: v.SubmittedAt,
	}
}

// ChatMessage is the API shape of a chat message
type ChatMessage struct {
	ID        string    `json:"id"`
	PlayerID  string    `json:"player_id"`
	Nickname  string    `json:"nickname"`
	Phase     int       `json:"phase"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatMessageFromModel converts a model.ChatMessage
func ChatMessageFromModel(m *model.ChatMessage) ChatMessage {
	return ChatMessage{
		ID:        string(m.ID),
		PlayerID:  string(m.PlayerID),
		Nickname:  m.Nickname,
		Phase:     m.Phase,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

// PlayerResult is one entry of a game result
type PlayerResult struct {
	Wallet   string `json:"wallet"`
	Nickname string `json:"nickname"`
	Role     string `json:"role"`
	Won      bool   `json:"won"`
	RepDelta int    `json:"rep_delta"`
}

// GameResult is the API shape of a finished game's record
type GameResult struct {
	RoomID        string         `json:"room_id"`
	GameID        string         `json:"game_id"`
	WinnerTeam    string         `json:"winner_team"`
	PlayerResults []PlayerResult `json:"player_results"`
	CreatedAt     time.Time      `json:"created_at"`
}

// GameResultFromModel converts a model.GameResult
func GameResultFromModel(r *model.GameResult) GameResult {
	out := GameResult{
		RoomID:     string(r.RoomID),
		GameID:     string(r.GameID),
		WinnerTeam: string(r.WinnerTeam),
		CreatedAt:  r.CreatedAt,
	}
	for _, pr := range r.PlayerResults {
		out.PlayerResults = append(out.PlayerResults, PlayerResult{
			Wallet:   string(pr.Wallet),
			Nickname: pr.Nickname,
			Role:     string(pr.Role),
			Won:      pr.Won,
			RepDelta: pr.RepDelta,
		})
	}
	return out
}

// Attestation is the API shape of a claim attestation
type Attestation struct {
	GameID    string    `json:"game_id"`
	Wallet    string    `json:"wallet"`
	Won       bool      `json:"won"`
	RepDelta  int       `json:"rep_delta"`
	ExpiresAt time.Time `json:"expires_at"`
	Signature string    `json:"signature"`
}

// AttestationFromModel converts a signer.Attestation
func AttestationFromModel(a *signer.Attestation) Attestation {
	return Attestation{
		GameID:    string(a.GameID),
		Wallet:    string(a.Wallet),
		Won:       a.Won,
		RepDelta:  a.RepDelta,
		ExpiresAt: a.ExpiresAt,
		Signature: a.Signature,
	}
}

// PlayerStats is the API shape of a wallet's lifetime counters
type PlayerStats struct {
	Wallet            string `json:"wallet"`
	Kills             int    `json:"kills"`
	Saves             int    `json:"saves"`
	CorrectDetections int    `json:"correct_detections"`
	JesterWins        int    `json:"jester_wins"`
}

// PlayerStatsFromModel converts a model.PlayerStats
func PlayerStatsFromModel(s *model.PlayerStats) PlayerStats {
	return PlayerStats{
		Wallet:            string(s.Wallet),
		Kills:             s.Kills,
		Saves:             s.Saves,
		CorrectDetections: s.CorrectDetections,
		JesterWins:        s.JesterWins,
	}
}
