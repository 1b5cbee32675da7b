package telegram

import "gopkg.in/telebot.v3"

// Client defines an interface for sending messages via the Telegram bot.
// Both the reminder delivery task and the interactive handlers send through
// it, which keeps the application logic decoupled from the bot library.
type Client interface {
	SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error
}
