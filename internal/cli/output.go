package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case JoinedRoom:
		o.printJoinedRoom(v)
	case RoomSnapshot:
		o.printRoomSnapshot(v)
	case ActionAck:
		o.printActionAck(v)
	case VoteAck:
		o.printVoteAck(v)
	case ChatMessage:
		o.printChatMessage(v)
	case []ChatMessage:
		for _, msg := range v {
			o.printChatMessage(msg)
		}
	case GameResult:
		o.printGameResult(v)
	case Attestation:
		o.printAttestation(v)
	case PlayerStats:
		o.printPlayerStats(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// JoinedRoom response type (matches API)
type JoinedRoom struct {
	RoomID   string `json:"room_id"`
	Code     string `json:"code"`
	PlayerID string `json:"player_id"`
}

// PlayerView response type
type PlayerView struct {
	ID       string `json:"id"`
	Wallet   string `json:"wallet"`
	Nickname string `json:"nickname"`
	Role     string `json:"role,omitempty"`
	IsAlive  bool   `json:"is_alive"`
	IsReady  bool   `json:"is_ready"`
	IsHost   bool   `json:"is_host"`
}

// RoomSnapshot response type
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

// ActionAck response type
type ActionAck struct {
	Phase       int       `json:"phase"`
	Type        string    `json:"type"`
	TargetID    string    `json:"target_id,omitempty"`
	Result      string    `json:"result,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// VoteAck response type
type VoteAck struct {
	Phase       int       `json:"phase"`
	TargetID    string    `json:"target_id,omitempty"`
	Skip        bool      `json:"skip"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// ChatMessage response type
type ChatMessage struct {
	ID        string    `json:"id"`
	PlayerID  string    `json:"player_id"`
	Nickname  string    `json:"nickname"`
	Phase     int       `json:"phase"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// PlayerResult response type
type PlayerResult struct {
	Wallet   string `json:"wallet"`
	Nickname string `json:"nickname"`
	Role     string `json:"role"`
	Won      bool   `json:"won"`
	RepDelta int    `json:"rep_delta"`
}

// GameResult response type
type GameResult struct {
	RoomID        string         `json:"room_id"`
	GameID        string         `json:"game_id"`
	WinnerTeam    string         `json:"winner_team"`
	PlayerResults []PlayerResult `json:"player_results"`
	CreatedAt     time.Time      `json:"created_at"`
}

// Attestation response type
type Attestation struct {
	GameID    string    `json:"game_id"`
	Wallet    string    `json:"wallet"`
	Won       bool      `json:"won"`
	RepDelta  int       `json:"rep_delta"`
	ExpiresAt time.Time `json:"expires_at"`
	Signature string    `json:"signature"`
}

// PlayerStats response type
type PlayerStats struct {
	Wallet            string `json:"wallet"`
	Kills             int    `json:"kills"`
	Saves             int    `json:"saves"`
	CorrectDetections int    `json:"correct_detections"`
	JesterWins        int    `json:"jester_wins"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printJoinedRoom(j JoinedRoom) {
	fmt.Printf("Room: %s\n", j.RoomID)
	fmt.Printf("Code: %s\n", j.Code)
	fmt.Printf("Player: %s\n", j.PlayerID)
}

func (o *Output) printRoomSnapshot(s RoomSnapshot) {
	fmt.Printf("Room: %s (%s)\n", s.ID, s.Code)
	fmt.Printf("Status: %s\n", s.Status)
	if s.Phase > 0 {
		fmt.Printf("Phase: %d\n", s.Phase)
	}
	if s.PhaseSeconds > 0 {
		fmt.Printf("Phase ends in: %ds\n", s.PhaseSeconds)
	}
	if s.MyRole != "" {
		fmt.Printf("Your role: %s\n", s.MyRole)
	}
	if s.WinnerTeam != "" {
		fmt.Printf("Winner: %s\n", s.WinnerTeam)
	}
	if s.GameID != "" {
		fmt.Printf("Game ID: %s\n", s.GameID)
	}

	fmt.Printf("Players (%d):\n", len(s.Players))
	for _, p := range s.Players {
		var tags []string
		if p.IsHost {
			tags = append(tags, "host")
		}
		if !p.IsAlive {
			tags = append(tags, "dead")
		} else if s.Status == "lobby" && p.IsReady {
			tags = append(tags, "ready")
		}
		if p.Role != "" {
			tags = append(tags, p.Role)
		}

		line := fmt.Sprintf("  - %s (%s)", p.Nickname, p.Wallet)
		for _, tag := range tags {
			line += " [" + tag + "]"
		}
		fmt.Println(line)
	}
}

func (o *Output) printActionAck(a ActionAck) {
	if a.TargetID == "" {
		fmt.Printf("Action withdrawn (%s, night %d)\n", a.Type, a.Phase)
		return
	}
	fmt.Printf("Action submitted: %s -> %s (night %d)\n", a.Type, a.TargetID, a.Phase)
	if a.Result != "" {
		fmt.Printf("Result: %s\n", a.Result)
	}
}

func (o *Output) printVoteAck(v VoteAck) {
	if v.Skip {
		fmt.Printf("Vote submitted: skip (day %d)\n", v.Phase)
		return
	}
	fmt.Printf("Vote submitted: %s (day %d)\n", v.TargetID, v.Phase)
}

func (o *Output) printChatMessage(m ChatMessage) {
	timestamp := m.CreatedAt.Format("15:04:05")
	fmt.Printf("[%s] %s: %s\n", timestamp, m.Nickname, m.Content)
}

func (o *Output) printGameResult(r GameResult) {
	fmt.Printf("Game: %s\n", r.GameID)
	fmt.Printf("Winner: %s\n", r.WinnerTeam)
	fmt.Printf("Players (%d):\n", len(r.PlayerResults))
	for _, pr := range r.PlayerResults {
		outcome := "lost"
		if pr.Won {
			outcome = "won"
		}
		fmt.Printf("  - %s (%s) - %s, %s, rep %+d\n", pr.Nickname, pr.Wallet, pr.Role, outcome, pr.RepDelta)
	}
}

func (o *Output) printAttestation(a Attestation) {
	outcome := "lost"
	if a.Won {
		outcome = "won"
	}
	fmt.Printf("Game: %s\n", a.GameID)
	fmt.Printf("Wallet: %s\n", a.Wallet)
	fmt.Printf("Outcome: %s, rep %+d\n", outcome, a.RepDelta)
	fmt.Printf("Expires: %s\n", a.ExpiresAt.Format(time.RFC3339))
	fmt.Printf("Signature: %s\n", a.Signature)
}

func (o *Output) printPlayerStats(s PlayerStats) {
	fmt.Printf("Wallet: %s\n", s.Wallet)
	fmt.Printf("Kills: %d\n", s.Kills)
	fmt.Printf("Saves: %d\n", s.Saves)
	fmt.Printf("Correct detections: %d\n", s.CorrectDetections)
	fmt.Printf("Jester wins: %d\n", s.JesterWins)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
