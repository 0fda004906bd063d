package repository

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/snapshot"
)

// SnapshotArchiver persists each published snapshot: the snapshot record,
// the season's plays, and the derived team stats. It plugs into the refresh
// pipeline's archive hook, so failures here are logged by the caller but
// never block a publish.
type SnapshotArchiver struct {
	repos *Repositories
	log   *log.Entry
}

// NewSnapshotArchiver creates an archiver backed by the given repositories
func NewSnapshotArchiver(repos *Repositories, logger *log.Entry) *SnapshotArchiver {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &SnapshotArchiver{repos: repos, log: logger}
}

// Archive writes the snapshot and its season data to the database
func (a *SnapshotArchiver) Archive(ctx context.Context, snap *snapshot.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("no snapshot to archive")
	}

	if err := a.repos.Snapshots.Record(ctx, snap); err != nil {
		return fmt.Errorf("failed to record snapshot: %w", err)
	}

	if err := a.repos.Plays.ReplaceSeason(ctx, snap.Season, snap.Plays); err != nil {
		return fmt.Errorf("failed to archive plays: %w", err)
	}

	if snap.Stats != nil {
		if err := a.repos.TeamStats.SaveSeasonStats(ctx, snap.ID, snap.Stats); err != nil {
			return fmt.Errorf("failed to archive team stats: %w", err)
		}
	}

	a.log.WithFields(log.Fields{
		"snapshot_id": snap.ID.String(),
		"season":      snap.Season,
		"plays":       len(snap.Plays),
	}).Info("Snapshot archived")

	return nil
}
