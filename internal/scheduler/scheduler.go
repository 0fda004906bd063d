package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/service"
	"github.com/yourusername/gridiron-edge/internal/snapshot"
)

// RefreshRunner is the slice of the refresh service the scheduler drives.
type RefreshRunner interface {
	Refresh(ctx context.Context, trigger string) (*snapshot.Snapshot, error)
}

// Scheduler manages the recurring data refresh job
type Scheduler struct {
	cron            *cron.Cron
	refresh         RefreshRunner
	log             *log.Entry
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	jobTimeout      time.Duration
	gracefulTimeout time.Duration
}

// NewScheduler creates a scheduler running jobs on UTC wall-clock time
func NewScheduler(refresh RefreshRunner, logger *log.Entry) *Scheduler {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &Scheduler{
		cron:            cron.New(cron.WithLocation(time.UTC)),
		refresh:         refresh,
		log:             logger,
		jobIDs:          make([]cron.EntryID, 0),
		jobTimeout:      15 * time.Minute,
		gracefulTimeout: 30 * time.Second,
	}
}

// ScheduleRefresh registers the data refresh on a cron cadence
func (s *Scheduler) ScheduleRefresh(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()

		s.log.Info("Starting scheduled data refresh")

		snap, err := s.refresh.Refresh(ctx, "scheduled")
		if errors.Is(err, service.ErrRefreshInProgress) {
			s.log.Warn("Skipping scheduled refresh: another refresh is running")
			return
		}
		if err != nil {
			s.log.WithError(err).Error("Scheduled refresh failed")
			return
		}

		s.log.WithFields(log.Fields{
			"snapshot_id": snap.ID.String(),
			"plays":       len(snap.Plays),
			"max_week":    snap.MaxCompletedWeek,
		}).Info("Scheduled refresh completed")
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.log.WithField("cron", cronExpression).Info("Scheduled data refresh")

	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.log.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop stops the scheduler, waiting up to the graceful timeout for a
// running job to finish.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(s.gracefulTimeout):
		s.log.Warn("Scheduler stop timed out waiting for running job")
	}

	s.isRunning = false
	s.log.Info("Scheduler stopped")

	return nil
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			nextTime := entry.Next
			if nextRun.IsZero() || nextTime.Before(nextRun) {
				nextRun = nextTime
			}
		}
	}

	return nextRun
}
