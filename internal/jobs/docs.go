// Package jobs provides scheduled background tasks for the rental core.
//
// Jobs are cron-based (github.com/robfig/cron/v3) and only drive command
// handlers; they hold no business rules of their own.
//
// # Available Jobs
//
//  1. QuoteReminderJob - scans orders left in QUOTED for longer than the
//     configured age and dispatches QUOTE_REMINDER, at most once per order
//     per reminder interval
//
// # Usage
//
//	reminders := jobs.NewQuoteReminderJob(handler, "0 * * * *", 72*time.Hour, 24*time.Hour, logger)
//	jobManager := jobs.NewJobManager(reminders)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed scan is logged and retried on the next tick. Several instances of
// the service may run the job at once; the Redis reminder guard keeps clients
// from receiving duplicates.
package jobs
