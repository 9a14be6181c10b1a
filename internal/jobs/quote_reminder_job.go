package jobs

import (
	"context"
	"log/slog"
	"time"

	"eventrent/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type quoteReminderHandler interface {
	Handle(ctx context.Context, cmd commands.SendQuoteRemindersCommand) (int, error)
}

// QuoteReminderJob reminds clients of quotes left unanswered.
type QuoteReminderJob struct {
	handler    quoteReminderHandler
	cron       *cron.Cron
	schedule   string
	staleAfter time.Duration
	interval   time.Duration
	logger     *slog.Logger
}

// NewQuoteReminderJob schedules the reminder scan with a five-field cron schedule.
// A quote is stale after staleAfter; each order is reminded at most once per
// interval.
func NewQuoteReminderJob(
	handler quoteReminderHandler,
	schedule string,
	staleAfter, interval time.Duration,
	logger *slog.Logger,
) *QuoteReminderJob {
	return &QuoteReminderJob{
		handler:    handler,
		cron:       cron.New(),
		schedule:   schedule,
		staleAfter: staleAfter,
		interval:   interval,
		logger:     logger.With("component", "quote_reminder_job"),
	}
}

// Start registers the scan and starts the scheduler.
func (j *QuoteReminderJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Quote reminder job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running scan to finish.
func (j *QuoteReminderJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Quote reminder job stopped")
}

func (j *QuoteReminderJob) run(ctx context.Context) {
	cmd, err := commands.NewSendQuoteRemindersCommand(j.staleAfter, j.interval)
	if err != nil {
		j.logger.ErrorContext(ctx, "Quote reminder job misconfigured", "error", err)
		return
	}

	sent, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Quote reminder job failed", "sent", sent, "error", err)
		return
	}
	if sent > 0 {
		j.logger.InfoContext(ctx, "Quote reminders sent", "count", sent)
	}
}
