package scheduler

import (
	"context"
	"time"

	"github.com/Altair788/no-more-procrastination/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// runTimeout bounds one dispatch run; the per-habit loop is sequential and
// a stuck run must not pile up behind the skip-if-running chain forever.
const runTimeout = 5 * time.Minute

// ReminderScheduler triggers the reminder dispatch on a fixed cron cadence.
// Overlapping runs are skipped rather than queued, so a slow run cannot
// stack duplicate scans.
type ReminderScheduler struct {
	cronEngine *cron.Cron
	dispatch   app.DispatchService
	logger     *logrus.Entry
	cronSpec   string
}

func NewReminderScheduler(dispatch app.DispatchService, logger *logrus.Entry, cronSpec string) *ReminderScheduler {
	return &ReminderScheduler{
		cronEngine: cron.New(
			cron.WithLocation(time.Local), // habit due times are server-local
			cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(logger))),
		),
		dispatch: dispatch,
		logger:   logger,
		cronSpec: cronSpec,
	}
}

func (s *ReminderScheduler) Start() {
	s.logger.Info("Starting reminder scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.logger.Info("Cron job triggered for reminder dispatch")
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		summary, err := s.dispatch.Run(ctx)
		if err != nil {
			s.logger.WithError(err).Error("Reminder dispatch run failed")
			return
		}
		s.logger.WithFields(logrus.Fields{
			"status":       summary.Status,
			"total_habits": summary.TotalHabits,
		}).Info("Reminder dispatch run completed")
	})
	if err != nil {
		s.logger.WithError(err).Fatal("Could not add reminder dispatch cron job")
	}

	s.cronEngine.Start()
	s.logger.WithField("cron_spec", s.cronSpec).Info("Reminder scheduler started")
}

func (s *ReminderScheduler) Stop() {
	s.logger.Info("Stopping reminder scheduler...")
	ctx := s.cronEngine.Stop() // waits for a running job before Done
	<-ctx.Done()
	s.logger.Info("Reminder scheduler gracefully stopped")
}
