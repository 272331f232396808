package model

// PlayerView is one roster entry as shown to a particular viewer.
// Role is populated only for the viewer's own player, or for everyone
// once the room has ended.
type PlayerView struct {
	ID       PlayerID
	Wallet   Wallet
	Nickname string
	Role     Role
	IsAlive  bool
	IsReady  bool
	IsHost   bool
}

// RoomSnapshot is a consistent view of a room derived from the state
// machine after a mutation completes. It is the only shape observers see.
type RoomSnapshot struct {
	ID         RoomID
	Code       RoomCode
	Status     RoomStatus
	Phase      int
	HostWallet Wallet
	Players    []PlayerView

	// Viewer-specific fields; zero for the public (broadcast) snapshot
	MyID   PlayerID
	MyRole Role

	// Populated once the room has ended
	WinnerTeam Team
	GameID     GameID

	// Suggested duration of the current phase in seconds, for external
	// schedulers and UI countdowns. The core runs no timers itself.
	PhaseSeconds int
}
