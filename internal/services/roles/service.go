package roles

import (
	"github.com/shadowgame/impostor-server/internal/dependencies/random"
	"github.com/shadowgame/impostor-server/internal/model"
)

// Player count bounds for a startable game
const (
	MinPlayers = 6
	MaxPlayers = 10
)

// Distribution describes how many of each special role a game gets.
// Players not covered by a special role become plain citizens.
type Distribution struct {
	Impostors  int
	Detectives int
	Doctors    int
	Jesters    int
	Mayors     int
}

// distributions maps player count to its fixed role distribution.
// Counts outside the table fall back to the MinPlayers row.
var distributions = map[int]Distribution{
	6:  {Impostors: 2, Detectives: 1},
	7:  {Impostors: 2, Detectives: 1, Doctors: 1},
	8:  {Impostors: 2, Detectives: 1, Doctors: 1, Jesters: 1},
	9:  {Impostors: 3, Detectives: 1, Doctors: 1, Jesters: 1, Mayors: 1},
	10: {Impostors: 3, Detectives: 1, Doctors: 1, Jesters: 1, Mayors: 1},
}

// DistributionFor returns the role distribution for the given player count
func DistributionFor(playerCount int) Distribution {
	if d, ok := distributions[playerCount]; ok {
		return d
	}
	return distributions[MinPlayers]
}

// Service assigns roles at game start
type Service struct {
	random random.Random
}

// NewService creates a new role assignment service
func NewService(random random.Random) *Service {
	return &Service{random: random}
}

// Roster produces a shuffled role list for the given player count. The
// returned slice has exactly playerCount entries whose composition
// matches the distribution table; only the ordering is random.
func (s *Service) Roster(playerCount int) ([]model.Role, error) {
	d := DistributionFor(playerCount)

	specials := d.Impostors + d.Detectives + d.Doctors + d.Jesters + d.Mayors
	if specials > playerCount {
		return nil, model.ErrInvalidDistribution
	}

	roster := make([]model.Role, 0, playerCount)
	for i := 0; i < d.Impostors; i++ {
		roster = append(roster, model.RoleImpostor)
	}
	for i := 0; i < d.Detectives; i++ {
		roster = append(roster, model.RoleDetective)
	}
	for i := 0; i < d.Doctors; i++ {
		roster = append(roster, model.RoleDoctor)
	}
	for i := 0; i < d.Jesters; i++ {
		roster = append(roster, model.RoleJester)
	}
	for i := 0; i < d.Mayors; i++ {
		roster = append(roster, model.RoleMayor)
	}
	for len(roster) < playerCount {
		roster = append(roster, model.RoleCitizen)
	}

	// Fisher-Yates shuffle
	for i := len(roster) - 1; i > 0; i-- {
		j := s.random.Intn(i + 1)
		roster[i], roster[j] = roster[j], roster[i]
	}

	return roster, nil
}
