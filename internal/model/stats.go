package model

// PlayerStats holds per-wallet lifetime counters, incremented as a side
// effect of resolution. The game core never reads these back.
type PlayerStats struct {
	Wallet            Wallet
	Kills             int
	Saves             int
	CorrectDetections int
	JesterWins        int
}
