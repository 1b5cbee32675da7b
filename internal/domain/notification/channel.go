package notification

import (
	"github.com/Altair788/no-more-procrastination/internal/domain/user"
)

// ChannelKind identifies the delivery medium for a reminder.
type ChannelKind string

const (
	ChannelBot   ChannelKind = "BOT"
	ChannelEmail ChannelKind = "EMAIL"
)

// Channel is the delivery route chosen for one recipient.
// ChatID is set for ChannelBot, Address for ChannelEmail.
type Channel struct {
	Kind    ChannelKind
	ChatID  int64
	Address string
}

// SelectChannel decides how to reach a habit owner: the bot chat if a
// Telegram ID is bound, otherwise email. Total over any owner record.
func SelectChannel(owner *user.User) Channel {
	if owner.TgID.Valid && owner.TgID.Int64 != 0 {
		return Channel{Kind: ChannelBot, ChatID: owner.TgID.Int64}
	}
	return Channel{Kind: ChannelEmail, Address: owner.Email}
}
