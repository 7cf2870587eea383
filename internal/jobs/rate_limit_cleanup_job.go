package jobs

import (
	"context"
	"log/slog"
	"time"

	"bakery/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

const rateLimitCleanupJobName = "rate_limit_cleanup"

// IdleEvicter forgets per-client state that has not been touched within idle.
type IdleEvicter interface {
	Cleanup(idle time.Duration) int
}

// RateLimitCleanupJob evicts idle rate limiter buckets so the limiter's
// memory stays bounded by the number of recently active clients.
type RateLimitCleanupJob struct {
	evicter  IdleEvicter
	idle     time.Duration
	schedule string
	cron     *cron.Cron
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewRateLimitCleanupJob(
	evicter IdleEvicter,
	idle time.Duration,
	schedule string,
	m *metrics.Metrics,
	logger *slog.Logger,
) *RateLimitCleanupJob {
	return &RateLimitCleanupJob{
		evicter:  evicter,
		idle:     idle,
		schedule: schedule,
		cron:     cron.New(),
		metrics:  m,
		logger:   logger.With("component", rateLimitCleanupJobName+"_job"),
	}
}

// Run evicts once and returns the number of dropped buckets.
func (j *RateLimitCleanupJob) Run(_ context.Context) int {
	started := time.Now()
	evicted := j.evicter.Cleanup(j.idle)
	if j.metrics != nil {
		j.metrics.RecordJob(rateLimitCleanupJobName, time.Since(started), nil)
	}
	return evicted
}

func (j *RateLimitCleanupJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if evicted := j.Run(ctx); evicted > 0 {
			j.logger.DebugContext(ctx, "Idle rate limiters evicted", "count", evicted)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Rate limit cleanup job started",
		"schedule", j.schedule, "idle", j.idle.String())
	return nil
}

func (j *RateLimitCleanupJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Rate limit cleanup job stopped")
}
