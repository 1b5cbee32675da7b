package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Altair788/no-more-procrastination/internal/domain/email"
	"github.com/Altair788/no-more-procrastination/internal/domain/habit"
	"github.com/Altair788/no-more-procrastination/internal/domain/notification"
	idb "github.com/Altair788/no-more-procrastination/internal/infra/database"

	"github.com/sirupsen/logrus"
)

// StatusCompleted is the terminal status of a dispatch run.
const StatusCompleted = "completed"

// Summary is the terminal state of one dispatch run.
type Summary struct {
	Status      string
	TotalHabits int
}

// DeliveryEnqueuer hands a bot reminder off for asynchronous delivery.
// Enqueuing must not block the dispatch loop on delivery completion.
type DeliveryEnqueuer interface {
	EnqueueDelivery(chatID int64, text string)
}

// DispatchService is the scheduled entry point of the reminder subsystem.
type DispatchService interface {
	// Run scans all currently due habits, routes one reminder per notified
	// owner and reports incremental progress. A single habit's failure never
	// aborts the scan.
	Run(ctx context.Context) (Summary, error)
}

// DispatchServiceImpl implements DispatchService.
type DispatchServiceImpl struct {
	habitRepo   habit.Repository
	deliveryLog notification.DeliveryLogRepository
	enqueuer    DeliveryEnqueuer
	emailSender email.Sender
	progress    notification.ProgressPublisher
	logger      *logrus.Entry
	clock       func() time.Time
}

func NewDispatchService(
	hr habit.Repository,
	dl notification.DeliveryLogRepository,
	enq DeliveryEnqueuer,
	es email.Sender,
	pp notification.ProgressPublisher,
	logger *logrus.Entry,
) *DispatchServiceImpl {
	return &DispatchServiceImpl{
		habitRepo:   hr,
		deliveryLog: dl,
		enqueuer:    enq,
		emailSender: es,
		progress:    pp,
		logger:      logger,
		clock:       time.Now,
	}
}

// Run enumerates habits due at or before the current time-of-day.
func (s *DispatchServiceImpl) Run(ctx context.Context) (Summary, error) {
	now := s.clock()
	taskID := fmt.Sprintf("dispatch:%s", now.Format("20060102T150405"))
	runLogger := s.logger.WithField("task_id", taskID)

	habits, err := s.habitRepo.ListDue(ctx, now.Format("15:04:05"))
	if err != nil {
		return Summary{}, fmt.Errorf("failed to list due habits: %w", err)
	}
	total := len(habits)
	runLogger.WithField("total_habits", total).Info("Dispatch run started")

	for i, h := range habits {
		if err := s.processHabit(ctx, now, h); err != nil {
			runLogger.WithError(err).WithField("habit_id", h.ID).Error("Failed to process habit, continuing scan")
		}

		p := notification.DispatchProgress{
			Current: i + 1,
			Total:   total,
			Status:  fmt.Sprintf("Обработана привычка %d из %d", i+1, total),
		}
		if err := s.progress.PublishDispatchProgress(ctx, taskID, p); err != nil {
			runLogger.WithError(err).Warn("Failed to publish dispatch progress")
		}
	}

	if err := s.progress.PublishDispatchProgress(ctx, taskID, notification.DispatchProgress{
		Current: total,
		Total:   total,
		Status:  "Завершено",
	}); err != nil {
		runLogger.WithError(err).Warn("Failed to publish terminal dispatch status")
	}

	runLogger.Info("Dispatch run finished")
	return Summary{Status: StatusCompleted, TotalHabits: total}, nil
}

func (s *DispatchServiceImpl) processHabit(ctx context.Context, now time.Time, h *habit.Habit) error {
	if h.Owner == nil {
		return fmt.Errorf("habit %d has no owner loaded", h.ID)
	}

	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	sent, err := s.deliveryLog.WasSent(ctx, h.ID, day)
	if err != nil {
		return fmt.Errorf("failed to check delivery log for habit %d: %w", h.ID, err)
	}
	if sent {
		s.logger.WithField("habit_id", h.ID).Debug("Reminder already sent today, skipping")
		return nil
	}

	ch := notification.SelectChannel(h.Owner)
	switch ch.Kind {
	case notification.ChannelBot:
		s.enqueuer.EnqueueDelivery(ch.ChatID, composeReminder(h))
	case notification.ChannelEmail:
		if err := s.sendLinkingEmail(ctx, ch.Address); err != nil {
			// The reminder is dropped for this owner on this run; the next
			// run retries because nothing was recorded in the delivery log.
			return fmt.Errorf("failed to send linking email to %s: %w", ch.Address, err)
		}
	}

	if err := s.deliveryLog.RecordSent(ctx, h.ID, day, ch.Kind); err != nil && err != idb.ErrDuplicateDeliveryRecord {
		s.logger.WithError(err).WithField("habit_id", h.ID).Warn("Failed to record reminder delivery")
	}
	return nil
}

// sendLinkingEmail nudges an owner without a bound Telegram ID to link one.
func (s *DispatchServiceImpl) sendLinkingEmail(ctx context.Context, address string) error {
	subject := "Привяжите ваш Telegram для получения уведомлений"
	body := fmt.Sprintf(
		"Здравствуйте, %s!\n\n"+
			"Мы заметили, что у вас нет привязанного Telegram ID. "+
			"Для получения уведомлений о ваших привычках, пожалуйста, укажите ваш Telegram ID "+
			"в настройках профиля на нашем сайте.",
		address,
	)
	return s.emailSender.Send(ctx, address, subject, body)
}

func composeReminder(h *habit.Habit) string {
	return fmt.Sprintf(
		"Напоминание о привычке:\n\nДействие: %s\nМесто: %s\nВремя выполнения: %s\n%s",
		h.Action, h.Location, h.Time, habit.ResolveReward(h),
	)
}
