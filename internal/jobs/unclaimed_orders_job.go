package jobs

import (
	"context"
	"log/slog"
	"time"

	"bakery/internal/core/application/usecases/commands"
	"bakery/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

const unclaimedOrdersJobName = "unclaimed_orders"

// UnclaimedOrdersJob reminds main bakers of pending orders nobody has
// claimed within the configured window. The reminder is advisory; the job
// never assigns anything itself.
type UnclaimedOrdersJob struct {
	handler   commands.NotifyUnclaimedOrdersCommandHandler
	olderThan time.Duration
	schedule  string
	cron      *cron.Cron
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

func NewUnclaimedOrdersJob(
	handler commands.NotifyUnclaimedOrdersCommandHandler,
	olderThan time.Duration,
	schedule string,
	m *metrics.Metrics,
	logger *slog.Logger,
) *UnclaimedOrdersJob {
	return &UnclaimedOrdersJob{
		handler:   handler,
		olderThan: olderThan,
		schedule:  schedule,
		cron:      cron.New(),
		metrics:   m,
		logger:    logger.With("component", unclaimedOrdersJobName+"_job"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Run sends one round of reminders and returns the number of unclaimed
// orders found.
func (j *UnclaimedOrdersJob) Run(ctx context.Context) (int, error) {
	started := time.Now()
	found, err := j.remind(ctx)
	if j.metrics != nil {
		j.metrics.RecordJob(unclaimedOrdersJobName, time.Since(started), err)
	}
	return found, err
}

func (j *UnclaimedOrdersJob) remind(ctx context.Context) (int, error) {
	cmd, err := commands.NewNotifyUnclaimedOrdersCommand(j.now(), j.olderThan)
	if err != nil {
		return 0, err
	}
	return j.handler.Handle(ctx, cmd)
}

func (j *UnclaimedOrdersJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		found, err := j.Run(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Unclaimed orders job failed", "error", err)
			return
		}
		if found > 0 {
			j.logger.InfoContext(ctx, "Main bakers reminded of unclaimed orders", "orders", found)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Unclaimed orders job started",
		"schedule", j.schedule, "older_than", j.olderThan.String())
	return nil
}

func (j *UnclaimedOrdersJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Unclaimed orders job stopped")
}
