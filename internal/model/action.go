package model

import "time"

// ActionType identifies a night ability
type ActionType string

const (
	ActionKill        ActionType = "kill"
	ActionInvestigate ActionType = "investigate"
	ActionProtect     ActionType = "protect"
)

// Valid reports whether the action type is one of the known abilities
func (t ActionType) Valid() bool {
	switch t {
	case ActionKill, ActionInvestigate, ActionProtect:
		return true
	}
	return false
}

// InvestigationResult is the revealed outcome of a detective investigation
type InvestigationResult string

const (
	InvestigationImpostor InvestigationResult = "impostor"
	InvestigationInnocent InvestigationResult = "innocent"
)

// Action is a night submission, keyed uniquely by (room, player, phase).
// Resubmission in the same phase overwrites the previous target.
type Action struct {
	RoomID   RoomID
	PlayerID PlayerID
	Phase    int

	Type ActionType

	// TargetID is empty only if the action was withdrawn
	TargetID PlayerID

	// Result is filled in post-resolution for investigate actions and is
	// observable only to the investigating player
	Result InvestigationResult

	SubmittedAt time.Time
}

// Vote is a day submission, keyed uniquely by (room, player, phase).
// An empty TargetID means skip. Same upsert semantics as Action.
type Vote struct {
	RoomID   RoomID
	PlayerID PlayerID
	Phase    int

	TargetID PlayerID

	SubmittedAt time.Time
}

// IsSkip reports whether the vote abstains from eliminating anyone
func (v *Vote) IsSkip() bool {
	return v.TargetID == ""
}
