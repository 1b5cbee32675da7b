package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Altair788/no-more-procrastination/internal/domain/notification"
	domainTelegram "github.com/Altair788/no-more-procrastination/internal/domain/telegram"

	"github.com/sirupsen/logrus"
)

// DeliveryService performs single-recipient bot sends with bounded retry.
type DeliveryService struct {
	client   domainTelegram.Client
	progress notification.ProgressPublisher
	policy   notification.RetryPolicy
	logger   *logrus.Entry
	sleep    func(time.Duration)
}

func NewDeliveryService(
	tc domainTelegram.Client,
	pp notification.ProgressPublisher,
	policy notification.RetryPolicy,
	logger *logrus.Entry,
) *DeliveryService {
	return &DeliveryService{
		client:   tc,
		progress: pp,
		policy:   policy,
		logger:   logger,
		sleep:    time.Sleep,
	}
}

// Deliver attempts to send one reminder to the given chat, retrying after a
// fixed backoff up to the policy's bound. Exceeding the bound yields a
// terminal failure outcome; it is not escalated further.
func (s *DeliveryService) Deliver(ctx context.Context, chatID int64, text string) notification.DeliveryOutcome {
	taskID := fmt.Sprintf("delivery:%d:%d", chatID, time.Now().UnixNano())
	taskLogger := s.logger.WithFields(logrus.Fields{
		"task_id": taskID,
		"chat_id": chatID,
	})

	if err := s.progress.PublishDeliveryStatus(ctx, taskID, "Отправка сообщения"); err != nil {
		taskLogger.WithError(err).Warn("Failed to publish delivery status")
	}

	attempts := 0
	var lastErr error
	for attempt := 0; attempt <= s.policy.MaxRetries; attempt++ {
		attempts++
		lastErr = s.client.SendMessage(chatID, text, nil)
		if lastErr == nil {
			taskLogger.WithField("attempts", attempts).Info("Reminder delivered")
			if err := s.progress.PublishDeliveryStatus(ctx, taskID, "Успешно"); err != nil {
				taskLogger.WithError(err).Warn("Failed to publish delivery status")
			}
			return notification.DeliveryOutcome{Success: true, ChatID: chatID, Attempts: attempts}
		}
		taskLogger.WithError(lastErr).WithField("attempt", attempts).Warn("Reminder send failed")
		if attempt < s.policy.MaxRetries {
			s.sleep(s.policy.Backoff)
		}
	}

	taskLogger.WithError(lastErr).WithField("attempts", attempts).Error("Reminder delivery exhausted retries")
	if err := s.progress.PublishDeliveryStatus(ctx, taskID, "Ошибка отправки"); err != nil {
		taskLogger.WithError(err).Warn("Failed to publish delivery status")
	}
	return notification.DeliveryOutcome{Success: false, ChatID: chatID, Attempts: attempts, Err: lastErr}
}
