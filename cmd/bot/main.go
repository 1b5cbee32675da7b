package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Altair788/no-more-procrastination/internal/app"
	"github.com/Altair788/no-more-procrastination/internal/domain/notification"
	"github.com/Altair788/no-more-procrastination/internal/infra/config"
	idb "github.com/Altair788/no-more-procrastination/internal/infra/database"
	infraEmail "github.com/Altair788/no-more-procrastination/internal/infra/email"
	"github.com/Altair788/no-more-procrastination/internal/infra/logger"
	"github.com/Altair788/no-more-procrastination/internal/infra/scheduler"
	"github.com/Altair788/no-more-procrastination/internal/infra/taskstatus"
	"github.com/Altair788/no-more-procrastination/internal/infra/tasks"
	infraTelegram "github.com/Altair788/no-more-procrastination/internal/infra/telegram"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const deliveryQueueSize = 256

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Could not load application configuration")
	}

	logger.Init(cfg)
	mainLogger := logger.Get().WithField("component", "main")
	mainLogger.WithFields(logrus.Fields{
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
	}).Info("Habit reminder bot starting...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database connection and repositories
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not connect to database")
	}
	defer db.Close()
	mainLogger.Info("Database connection established")

	habitRepo := idb.NewPostgresHabitRepository(db)
	userRepo := idb.NewPostgresUserRepository(db)
	deliveryLogRepo := idb.NewPostgresDeliveryLogRepository(db)

	// Redis-backed task status store
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		mainLogger.WithError(err).Fatal("Could not connect to Redis")
	}
	mainLogger.Info("Redis connection established")
	progressStore := taskstatus.NewRedisStore(redisClient, cfg.TaskStatusTTL)

	// Telegram bot
	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) {
			entry := logger.Get().WithField("component", "telebot").WithError(err)
			if c != nil && c.Sender() != nil {
				entry = entry.WithField("sender_id", c.Sender().ID)
			}
			entry.Error("Telegram handler error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not create Telegram bot")
	}
	telegramClient := infraTelegram.NewTelebotAdapter(bot)

	// Outbound email
	emailSender := infraEmail.NewSendGridSender(cfg.SendGridAPIKey, cfg.EmailFrom, cfg.EmailFromName)

	// Delivery pipeline: worker pool -> delivery service with bounded retry
	pool := tasks.NewPool(cfg.WorkerCount, deliveryQueueSize, logger.Get().WithField("component", "worker_pool"))
	deliveryService := app.NewDeliveryService(
		telegramClient,
		progressStore,
		notification.RetryPolicy{MaxRetries: cfg.DeliveryMaxRetries, Backoff: cfg.DeliveryBackoff},
		logger.Get().WithField("component", "delivery_service"),
	)
	deliveryQueue := app.NewAsyncDeliveryQueue(pool, deliveryService)

	dispatchService := app.NewDispatchService(
		habitRepo,
		deliveryLogRepo,
		deliveryQueue,
		emailSender,
		progressStore,
		logger.Get().WithField("component", "dispatch_service"),
	)

	reminderScheduler := scheduler.NewReminderScheduler(
		dispatchService,
		logger.Get().WithField("component", "scheduler"),
		cfg.CronSpecReminders,
	)
	reminderScheduler.Start()

	infraTelegram.RegisterBotHandlers(ctx, bot, habitRepo, userRepo, logger.Get().WithField("component", "bot_handlers"))
	go infraTelegram.RunPollingSession(ctx, bot, cfg.BotRestartBackoff, logger.Get().WithField("component", "bot_session"))

	mainLogger.Info("Application setup complete. Bot and scheduler are running.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	mainLogger.Info("Shutting down application...")
	cancel()
	reminderScheduler.Stop()
	bot.Stop()
	pool.Stop()
	mainLogger.Info("Application shut down gracefully")
}
