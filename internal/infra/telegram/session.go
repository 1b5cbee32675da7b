package telegram

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RunPollingSession owns the receive side of the bot connection. It blocks
// in the long poller and restarts it after a fixed backoff whenever the
// session terminates, until the context is cancelled. There is deliberately
// no retry cap here; losing the polling loop means losing the interactive
// surface entirely.
func RunPollingSession(ctx context.Context, b *telebot.Bot, restartBackoff time.Duration, logger *logrus.Entry) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		logger.Info("Starting Telegram polling session")
		b.Start() // blocks until Stop is called or the poller dies

		select {
		case <-ctx.Done():
			logger.Info("Telegram polling session stopped")
			return
		default:
		}

		logger.WithField("backoff", restartBackoff.String()).Warn("Polling session terminated, restarting")
		time.Sleep(restartBackoff)
	}
}
