package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/Altair788/no-more-procrastination/internal/domain/habit"
	"github.com/Altair788/no-more-procrastination/internal/domain/user"
	idb "github.com/Altair788/no-more-procrastination/internal/infra/database"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const callbackMyHabits = "my_habits"

// RegisterBotHandlers registers the interactive command and callback
// handlers: /start with the habits menu, /help, and the "my habits" listing.
func RegisterBotHandlers(
	ctx context.Context,
	b *telebot.Bot,
	habitRepo habit.Repository,
	userRepo user.Repository,
	baseLogger *logrus.Entry,
) {
	b.Handle("/start", func(c telebot.Context) error {
		senderID := c.Sender().ID
		logCtx := baseLogger.WithField("command", "/start").WithField("sender_id", senderID)
		logCtx.Info("Processing /start command")

		markup := &telebot.ReplyMarkup{}
		btnHabits := markup.Data("Мои привычки", callbackMyHabits)
		markup.Inline(markup.Row(btnHabits))

		_, err := userRepo.GetByTelegramID(ctx, senderID)
		if err == idb.ErrUserNotFound {
			logCtx.Info("Sender has no linked account")
			return c.Send("Привет! Я ваш трекер привычек. Ваш Telegram пока не привязан к аккаунту — "+
				"укажите ваш Telegram ID в настройках профиля на сайте, чтобы получать напоминания.", markup)
		} else if err != nil {
			logCtx.WithError(err).Error("Error checking user account for /start command")
			// Fall through to the generic greeting; the menu still works.
		}

		return c.Send("Привет! Я ваш трекер привычек. Вы можете управлять своими привычками здесь.", markup)
	})

	b.Handle("/help", func(c telebot.Context) error {
		logCtx := baseLogger.WithField("command", "/help").WithField("sender_id", c.Sender().ID)
		logCtx.Info("Processing /help command")

		var helpText strings.Builder
		helpText.WriteString("Я присылаю напоминания о ваших привычках в указанное для них время.\n\n")
		helpText.WriteString("`/start` - Показать меню.\n")
		helpText.WriteString("`/help` - Показать это справочное сообщение.\n\n")
		helpText.WriteString("Кнопка 'Мои привычки' покажет список ваших привычек.")
		return c.Send(helpText.String(), &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	})

	b.Handle(telebot.OnCallback, func(c telebot.Context) error {
		// telebot prefixes unique callback data with "\f".
		data := strings.TrimPrefix(c.Callback().Data, "\f")

		if data != callbackMyHabits {
			c.Bot().OnError(fmt.Errorf("unhandled callback data: %s", data), c)
			return c.Respond(&telebot.CallbackResponse{Text: "Неизвестное действие."})
		}

		senderID := c.Sender().ID
		logCtx := baseLogger.WithField("callback", callbackMyHabits).WithField("sender_id", senderID)
		logCtx.Info("Processing habits list callback")

		habits, err := habitRepo.ListByOwnerTelegramID(ctx, senderID)
		if err != nil {
			logCtx.WithError(err).Error("Failed to list habits for callback")
			return c.Respond(&telebot.CallbackResponse{Text: "Произошла ошибка. Попробуйте позже."})
		}

		if len(habits) == 0 {
			if err := c.Send("У вас пока нет привычек."); err != nil {
				return err
			}
			return c.Respond()
		}

		var response strings.Builder
		response.WriteString("Ваши привычки:\n\n")
		for _, h := range habits {
			response.WriteString(fmt.Sprintf("- %s (в %s)\n", h.Action, h.Time))
		}
		if err := c.Send(response.String()); err != nil {
			return err
		}
		return c.Respond()
	})
}
