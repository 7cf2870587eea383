package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"bakery/internal/core/application/usecases/commands"
	"bakery/internal/pkg/metrics"
)

const (
	DefaultRetentionSchedule = "@every 1h"
	DefaultUnclaimedSchedule = "@every 5m"
	DefaultLimiterSchedule   = "@every 1m"
)

// Settings configures the scheduled jobs.
type Settings struct {
	MessageRetention  time.Duration
	RetentionSchedule string
	UnclaimedAfter    time.Duration
	UnclaimedSchedule string
	LimiterIdle       time.Duration
	LimiterSchedule   string
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	messageRetentionJob *MessageRetentionJob
	unclaimedOrdersJob  *UnclaimedOrdersJob
	rateLimitCleanupJob *RateLimitCleanupJob
}

func NewJobManager(
	purgeHandler commands.PurgeMessagesCommandHandler,
	unclaimedHandler commands.NotifyUnclaimedOrdersCommandHandler,
	limiter IdleEvicter,
	settings Settings,
	m *metrics.Metrics,
	logger *slog.Logger,
) *JobManager {
	if settings.RetentionSchedule == "" {
		settings.RetentionSchedule = DefaultRetentionSchedule
	}
	if settings.UnclaimedSchedule == "" {
		settings.UnclaimedSchedule = DefaultUnclaimedSchedule
	}
	if settings.LimiterSchedule == "" {
		settings.LimiterSchedule = DefaultLimiterSchedule
	}
	jm := &JobManager{
		messageRetentionJob: NewMessageRetentionJob(
			purgeHandler, settings.MessageRetention, settings.RetentionSchedule, m, logger,
		),
		unclaimedOrdersJob: NewUnclaimedOrdersJob(
			unclaimedHandler, settings.UnclaimedAfter, settings.UnclaimedSchedule, m, logger,
		),
	}
	if limiter != nil {
		jm.rateLimitCleanupJob = NewRateLimitCleanupJob(
			limiter, settings.LimiterIdle, settings.LimiterSchedule, m, logger,
		)
	}
	return jm
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.messageRetentionJob.Start(); err != nil {
		return fmt.Errorf("failed to start message retention job: %w", err)
	}

	if err := jm.unclaimedOrdersJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.messageRetentionJob.Stop()
		return fmt.Errorf("failed to start unclaimed orders job: %w", err)
	}

	if jm.rateLimitCleanupJob != nil {
		if err := jm.rateLimitCleanupJob.Start(); err != nil {
			jm.unclaimedOrdersJob.Stop()
			jm.messageRetentionJob.Stop()
			return fmt.Errorf("failed to start rate limit cleanup job: %w", err)
		}
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	if jm.rateLimitCleanupJob != nil {
		jm.rateLimitCleanupJob.Stop()
	}
	jm.unclaimedOrdersJob.Stop()
	jm.messageRetentionJob.Stop()
}
