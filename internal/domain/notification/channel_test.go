package notification

import (
	"database/sql"
	"testing"

	"github.com/Altair788/no-more-procrastination/internal/domain/user"

	"github.com/stretchr/testify/assert"
)

func TestSelectChannel(t *testing.T) {
	tests := []struct {
		name  string
		owner *user.User
		want  Channel
	}{
		{
			name:  "bound telegram id selects bot",
			owner: &user.User{Email: "a@b.com", TgID: sql.NullInt64{Int64: 123, Valid: true}},
			want:  Channel{Kind: ChannelBot, ChatID: 123},
		},
		{
			name:  "absent telegram id falls back to email",
			owner: &user.User{Email: "a@b.com"},
			want:  Channel{Kind: ChannelEmail, Address: "a@b.com"},
		},
		{
			name:  "zero telegram id falls back to email",
			owner: &user.User{Email: "a@b.com", TgID: sql.NullInt64{Int64: 0, Valid: true}},
			want:  Channel{Kind: ChannelEmail, Address: "a@b.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectChannel(tt.owner))
		})
	}
}
