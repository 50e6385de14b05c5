package inbound

import (
	"context"

	"github.com/jonny/zabbix-bot/internal/domain/model"
)

// CommandPort handles mentions of the bot.
type CommandPort interface {
	HandleMention(ctx context.Context, req MentionRequest) error
}

// InteractionPort handles clicks and selections on previously sent forms.
type InteractionPort interface {
	HandleInteraction(ctx context.Context, req InteractionRequest) (model.FormStage, error)
}

type MentionRequest struct {
	Origin Origin
	UserID string
	Text   string
}

// FormValues is the selection state snapshot of a form message, keyed by block
// id and then by action id.
type FormValues map[string]map[string]model.Selection

type InteractionRequest struct {
	Origin    Origin
	ActionID  string
	UserID    string
	UserName  string
	ChannelID string
	MessageTS string
	Values    FormValues
}
