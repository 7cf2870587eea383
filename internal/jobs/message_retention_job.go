package jobs

import (
	"context"
	"log/slog"
	"time"

	"bakery/internal/core/application/usecases/commands"
	"bakery/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

const messageRetentionJobName = "message_retention"

// MessageRetentionJob deletes messages older than the retention window.
type MessageRetentionJob struct {
	handler   commands.PurgeMessagesCommandHandler
	retention time.Duration
	schedule  string
	cron      *cron.Cron
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

func NewMessageRetentionJob(
	handler commands.PurgeMessagesCommandHandler,
	retention time.Duration,
	schedule string,
	m *metrics.Metrics,
	logger *slog.Logger,
) *MessageRetentionJob {
	return &MessageRetentionJob{
		handler:   handler,
		retention: retention,
		schedule:  schedule,
		cron:      cron.New(),
		metrics:   m,
		logger:    logger.With("component", messageRetentionJobName+"_job"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Run purges once and reports how many messages were removed.
func (j *MessageRetentionJob) Run(ctx context.Context) (int64, error) {
	started := time.Now()
	purged, err := j.purge(ctx)
	if j.metrics != nil {
		j.metrics.RecordJob(messageRetentionJobName, time.Since(started), err)
	}
	return purged, err
}

func (j *MessageRetentionJob) purge(ctx context.Context) (int64, error) {
	cmd, err := commands.NewPurgeMessagesCommand(j.now(), j.retention)
	if err != nil {
		return 0, err
	}
	return j.handler.Handle(ctx, cmd)
}

func (j *MessageRetentionJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		purged, err := j.Run(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Message retention job failed", "error", err)
			return
		}
		if purged > 0 {
			j.logger.InfoContext(ctx, "Expired messages purged", "count", purged)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Message retention job started",
		"schedule", j.schedule, "retention", j.retention.String())
	return nil
}

func (j *MessageRetentionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Message retention job stopped")
}
