package slack

import (
	"context"
	"fmt"
	"log/slog"

	slackapi "github.com/slack-go/slack"

	"github.com/jonny/zabbix-bot/internal/adapter/inbound/slackbot/template"
	"github.com/jonny/zabbix-bot/internal/domain/model"
	"github.com/jonny/zabbix-bot/internal/domain/port/outbound"
)

const noProblemsText = "No active problems found."

// Config holds Slack notifier configuration.
type Config struct {
	BotToken string
	// APIURL overrides the Slack Web API base URL. It must end with a slash.
	APIURL string
}

// Notifier implements outbound.Notifier via the Slack Web API.
type Notifier struct {
	client *slackapi.Client
	logger *slog.Logger
}

// NewNotifier creates a new Slack Notifier.
func NewNotifier(cfg Config, logger *slog.Logger) *Notifier {
	var opts []slackapi.Option
	if cfg.APIURL != "" {
		opts = append(opts, slackapi.OptionAPIURL(cfg.APIURL))
	}
	return &Notifier{
		client: slackapi.New(cfg.BotToken, opts...),
		logger: logger.With("component", "slack_notifier"),
	}
}

var _ outbound.Notifier = (*Notifier)(nil)

// SendText posts a plain message, threaded when target carries a thread timestamp.
func (n *Notifier) SendText(ctx context.Context, target outbound.Target, text string) error {
	if err := n.post(ctx, target, slackapi.MsgOptionText(text, false)); err != nil {
		return fmt.Errorf("slack SendText: %w", err)
	}
	return nil
}

// SendAlertList posts the active problem list, or a single notice when there are none.
func (n *Notifier) SendAlertList(ctx context.Context, target outbound.Target, alerts []model.Alert) error {
	if len(alerts) == 0 {
		if err := n.post(ctx, target, slackapi.MsgOptionText(noProblemsText, false)); err != nil {
			return fmt.Errorf("slack SendAlertList: %w", err)
		}
		return nil
	}

	err := n.post(ctx, target,
		slackapi.MsgOptionBlocks(template.BuildAlertListBlocks(alerts)...),
		slackapi.MsgOptionText(template.AlertListFallbackText, false),
	)
	if err != nil {
		return fmt.Errorf("slack SendAlertList: %w", err)
	}
	return nil
}

// SendActivationForm posts the maintenance activation form.
func (n *Notifier) SendActivationForm(ctx context.Context, target outbound.Target, windows []model.SuppressionWindow) error {
	err := n.post(ctx, target,
		slackapi.MsgOptionBlocks(template.BuildActivationFormBlocks(windows)...),
		slackapi.MsgOptionText(template.ActivationFormFallbackText, false),
	)
	if err != nil {
		return fmt.Errorf("slack SendActivationForm: %w", err)
	}
	return nil
}

// DeleteMessage removes a message posted by the bot.
func (n *Notifier) DeleteMessage(ctx context.Context, channelID, messageTS string) error {
	if _, _, err := n.client.DeleteMessageContext(ctx, channelID, messageTS); err != nil {
		return fmt.Errorf("slack DeleteMessage: %w", err)
	}
	n.logger.Debug("message deleted", "channel", channelID, "ts", messageTS)
	return nil
}

func (n *Notifier) post(ctx context.Context, target outbound.Target, opts ...slackapi.MsgOption) error {
	if target.ThreadTS != "" {
		opts = append(opts, slackapi.MsgOptionTS(target.ThreadTS))
	}
	_, ts, err := n.client.PostMessageContext(ctx, target.ChannelID, opts...)
	if err != nil {
		return err
	}
	n.logger.Debug("message posted", "channel", target.ChannelID, "thread_ts", target.ThreadTS, "ts", ts)
	return nil
}
