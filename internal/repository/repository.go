package repository

import (
	"fmt"

	"github.com/yourusername/gridiron-edge/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Snapshots   SnapshotRepository
	Plays       PlayRepository
	TeamStats   TeamStatsRepository
	Projections ProjectionRepository
	PlayerOdds  PlayerOddsRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Snapshots:   NewPostgresSnapshotRepository(db),
		Plays:       NewPostgresPlayRepository(db),
		TeamStats:   NewPostgresTeamStatsRepository(db),
		Projections: NewPostgresProjectionRepository(db),
		PlayerOdds:  NewPostgresPlayerOddsRepository(db),
	}, nil
}
