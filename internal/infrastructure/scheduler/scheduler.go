// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/studyhub/internal/infrastructure/config"
)

const streakSnapshotJob = "streak-snapshot"

// StreakRefresher recomputes stored streak snapshots for everyone who studied today.
type StreakRefresher interface {
	RefreshStreakSnapshots(ctx context.Context) (int, error)
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	streaks   StreakRefresher
	cfg       config.JobsConfig
	timeout   time.Duration
	logger    logrus.FieldLogger
}

// New creates a scheduler evaluating cron specs in UTC.
func New(cfg *config.Config, streaks StreakRefresher, logger *logrus.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		streaks:   streaks,
		cfg:       cfg.Jobs,
		timeout:   5 * time.Minute,
		logger:    logger.WithField("component", "scheduler"),
	}
}

// Start registers the enabled jobs and runs them in the background.
func (s *Scheduler) Start() error {
	if !s.cfg.StreakSnapshotEnabled {
		s.logger.Info("streak snapshot job disabled")
		return nil
	}
	if _, err := s.scheduler.Cron(s.cfg.StreakSnapshotSpec).Name(streakSnapshotJob).Do(s.snapshotStreaks); err != nil {
		return fmt.Errorf("schedule %s %q: %w", streakSnapshotJob, s.cfg.StreakSnapshotSpec, err)
	}
	s.scheduler.StartAsync()
	s.logger.WithField("spec", s.cfg.StreakSnapshotSpec).Info("scheduler started")
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	if s.scheduler.IsRunning() {
		s.scheduler.Stop()
	}
}

// RunStreakSnapshot refreshes the snapshots once, outside the schedule.
func (s *Scheduler) RunStreakSnapshot(ctx context.Context) (int, error) {
	start := time.Now()
	n, err := s.streaks.RefreshStreakSnapshots(ctx)
	entry := s.logger.WithFields(logrus.Fields{
		"job":      streakSnapshotJob,
		"updated":  n,
		"duration": time.Since(start).String(),
	})
	if err != nil {
		entry.WithError(err).Error("job failed")
		return n, err
	}
	entry.Info("job completed")
	return n, nil
}

func (s *Scheduler) snapshotStreaks() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	_, _ = s.RunStreakSnapshot(ctx)
}
