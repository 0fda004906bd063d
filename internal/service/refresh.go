package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/datasource"
	"github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/pipeline"
	"github.com/yourusername/gridiron-edge/internal/snapshot"
)

// ErrRefreshInProgress is returned when a refresh is requested while another
// one is still running.
var ErrRefreshInProgress = errors.New("refresh already in progress")

// Notifier receives the new snapshot after every successful refresh.
type Notifier interface {
	NotifyRefresh(snap *snapshot.Snapshot)
}

// Archiver persists a snapshot's derived data after it has been published.
// Archive failures never fail the refresh; the snapshot is already serving.
type Archiver interface {
	Archive(ctx context.Context, snap *snapshot.Snapshot) error
}

// RefreshService rebuilds the in-memory dataset from the upstream sources:
// fetch the season's plays, validate them, recompute team stats, and publish
// a new immutable snapshot. The previous snapshot keeps serving until the
// new one is published, so a failed refresh never degrades reads.
type RefreshService struct {
	sources   *datasource.Sources
	store     *snapshot.Store
	statsCalc *pipeline.TeamStatsCalculator
	validator *DataValidator
	season    int
	timeout   time.Duration
	audit     *logger.AuditLogger
	log       *logrus.Entry

	notifier Notifier
	archiver Archiver

	mu sync.Mutex
}

// NewRefreshService creates a refresh service for one season.
func NewRefreshService(
	sources *datasource.Sources,
	store *snapshot.Store,
	statsCalc *pipeline.TeamStatsCalculator,
	validator *DataValidator,
	season int,
	timeout time.Duration,
	audit *logger.AuditLogger,
	log *logrus.Entry,
) *RefreshService {
	return &RefreshService{
		sources:   sources,
		store:     store,
		statsCalc: statsCalc,
		validator: validator,
		season:    season,
		timeout:   timeout,
		audit:     audit,
		log:       log,
	}
}

// SetNotifier registers a post-refresh notifier.
func (s *RefreshService) SetNotifier(n Notifier) {
	s.notifier = n
}

// SetArchiver registers a post-refresh archiver.
func (s *RefreshService) SetArchiver(a Archiver) {
	s.archiver = a
}

// Season returns the season this service refreshes.
func (s *RefreshService) Season() int {
	return s.season
}

// Refresh fetches the season dataset, recomputes stats, and publishes a new
// snapshot. trigger names what started the refresh ("startup", "scheduled",
// "manual"). Only one refresh runs at a time; a concurrent call returns
// ErrRefreshInProgress instead of queueing.
func (s *RefreshService) Refresh(ctx context.Context, trigger string) (*snapshot.Snapshot, error) {
	if !s.mu.TryLock() {
		return nil, ErrRefreshInProgress
	}
	defer s.mu.Unlock()

	refreshID := uuid.New().String()
	start := time.Now()
	s.audit.LogRefreshStart(refreshID, s.season, trigger)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	plays, err := s.sources.Plays.FetchPlays(ctx, s.season)
	if err != nil {
		return nil, s.fail(refreshID, "fetch_plays", start, err)
	}
	s.log.WithFields(logrus.Fields{
		"season": s.season,
		"plays":  len(plays),
		"source": s.sources.Plays.Name(),
	}).Info("Play-by-play fetch complete")

	if issues := s.validator.ValidateDataset(plays, s.season); len(issues) > 0 {
		err := fmt.Errorf("dataset rejected: %s", strings.Join(issues, "; "))
		return nil, s.fail(refreshID, "validate", start, err)
	}

	stats := s.statsCalc.SeasonStats(plays, s.season)

	// The schedule only drives week resolution; a week can still be guessed
	// from completed plays, so a schedule failure downgrades rather than fails.
	var schedule []models.ScheduledGame
	if s.sources.Schedule != nil {
		schedule, err = s.sources.Schedule.FetchSchedule(ctx, s.season)
		if err != nil {
			s.log.WithError(err).Warn("Schedule fetch failed; falling back to play-derived week")
			schedule = nil
		}
	}

	snap := snapshot.New(s.season, plays, stats, schedule)
	s.store.Publish(snap)

	duration := time.Since(start)
	teams := stats.TeamCount()
	s.audit.LogRefreshComplete(refreshID, snap.ID.String(), len(plays), teams, snap.MaxCompletedWeek, duration)
	metrics.RecordRefreshSuccess(len(plays), teams, snap.MaxCompletedWeek, duration.Seconds(), time.Now().Unix())

	if s.notifier != nil {
		s.notifier.NotifyRefresh(snap)
	}

	if s.archiver != nil {
		if err := s.archiver.Archive(ctx, snap); err != nil {
			s.log.WithError(err).WithField("snapshot_id", snap.ID).Warn("Snapshot archive failed; serving from memory only")
		}
	}

	return snap, nil
}

func (s *RefreshService) fail(refreshID, stage string, start time.Time, err error) error {
	duration := time.Since(start)
	s.audit.LogRefreshFailure(refreshID, stage, err, duration)
	metrics.RecordRefreshFailure(stage, duration.Seconds())
	return models.NewRefreshError(stage, err)
}
