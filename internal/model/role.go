package model

// Role is a player's secret role, assigned once at game start
type Role string

const (
	RoleImpostor  Role = "impostor"
	RoleDetective Role = "detective"
	RoleDoctor    Role = "doctor"
	RoleJester    Role = "jester"
	RoleMayor     Role = "mayor"
	RoleCitizen   Role = "citizen"
)

// Team is the faction grouping used by win-condition evaluation
type Team string

const (
	TeamImpostors Team = "impostors"
	TeamCitizens  Team = "citizens"
	TeamJester    Team = "jester"
)

// Team returns the faction a role belongs to. The jester is neutral: it
// is excluded from both headcounts and only wins by being voted out.
func (r Role) Team() Team {
	switch r {
	case RoleImpostor:
		return TeamImpostors
	case RoleJester:
		return TeamJester
	default:
		return TeamCitizens
	}
}

// VoteWeight returns the weight of this role's day vote
func (r Role) VoteWeight() int {
	if r == RoleMayor {
		return 2
	}
	return 1
}

// NightAbility returns the night action this role may perform, or empty
// if the role has none.
func (r Role) NightAbility() ActionType {
	switch r {
	case RoleImpostor:
		return ActionKill
	case RoleDetective:
		return ActionInvestigate
	case RoleDoctor:
		return ActionProtect
	default:
		return ""
	}
}
