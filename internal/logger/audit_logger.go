// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides a dedicated audit trail for refresh cycles and
// published projections.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogRefreshStart logs the beginning of a refresh cycle.
func (al *AuditLogger) LogRefreshStart(refreshID string, season int, trigger string) {
	al.WithFields(logrus.Fields{
		"refresh_id": refreshID,
		"season":     season,
		"trigger":    trigger,
	}).Info("Refresh cycle started")
}

// LogRefreshComplete logs a published snapshot.
func (al *AuditLogger) LogRefreshComplete(refreshID, snapshotID string, plays, teams, maxWeek int, duration time.Duration) {
	al.WithFields(logrus.Fields{
		"refresh_id":  refreshID,
		"snapshot_id": snapshotID,
		"plays":       plays,
		"teams":       teams,
		"max_week":    maxWeek,
		"duration_ms": duration.Milliseconds(),
	}).Info("Refresh cycle completed")
}

// LogRefreshFailure logs a rejected refresh cycle. The previous snapshot
// remains authoritative.
func (al *AuditLogger) LogRefreshFailure(refreshID, stage string, err error, duration time.Duration) {
	al.WithFields(logrus.Fields{
		"refresh_id":  refreshID,
		"stage":       stage,
		"error":       err.Error(),
		"duration_ms": duration.Milliseconds(),
	}).Error("Refresh cycle failed, previous snapshot retained")
}

// LogArchive logs persisted projection output.
func (al *AuditLogger) LogArchive(snapshotID string, week, games, players int) {
	al.WithFields(logrus.Fields{
		"snapshot_id": snapshotID,
		"week":        week,
		"games":       games,
		"players":     players,
	}).Info("Projections archived")
}

// LogMarketFetch logs one odds vendor round trip.
func (al *AuditLogger) LogMarketFetch(week, lines, skipped int, cacheHit bool) {
	al.WithFields(logrus.Fields{
		"week":      week,
		"lines":     lines,
		"skipped":   skipped,
		"cache_hit": cacheHit,
	}).Info("Market lines fetched")
}

// LogDegeneratePrice logs a player entry whose probability had to be
// clamped for pricing.
func (al *AuditLogger) LogDegeneratePrice(team, playerID string, lambda float64) {
	al.WithFields(logrus.Fields{
		"team":      team,
		"player_id": playerID,
		"lambda":    lambda,
	}).Warn("Degenerate price clamped")
}
