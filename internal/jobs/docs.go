// Package jobs provides scheduled background tasks for the bakery.
//
// Jobs are cron-driven (github.com/robfig/cron/v3) and only call command
// handlers; they hold no business rules of their own.
//
// # Available Jobs
//
// 1. MessageRetentionJob - hourly by default, deletes messages older than the retention window
// 2. UnclaimedOrdersJob - every five minutes by default, reminds main bakers of pending orders nobody claimed
//
// # Usage
//
//	jobManager := jobs.NewJobManager(purgeHandler, unclaimedHandler, jobs.Settings{
//		MessageRetention: 30 * 24 * time.Hour,
//		UnclaimedAfter:   30 * time.Minute,
//	}, metrics, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Job failures are logged and counted; they never stop the scheduler.
// Failed job starts stop any already running jobs.
package jobs
