package outbound

import (
	"context"

	"github.com/jonny/zabbix-bot/internal/domain/model"
)

// Target addresses a chat message. An empty ThreadTS posts at channel level.
type Target struct {
	ChannelID string
	ThreadTS  string
}

// Notifier sends and removes chat messages.
type Notifier interface {
	SendText(ctx context.Context, target Target, text string) error
	SendAlertList(ctx context.Context, target Target, alerts []model.Alert) error
	SendActivationForm(ctx context.Context, target Target, windows []model.SuppressionWindow) error
	DeleteMessage(ctx context.Context, channelID, messageTS string) error
}
