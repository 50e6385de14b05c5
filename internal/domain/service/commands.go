package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonny/zabbix-bot/internal/domain/port/inbound"
	"github.com/jonny/zabbix-bot/internal/domain/port/outbound"
)

const (
	processingErrorText = "Processing error. Please try again."
	noWindowsText       = "No maintenance periods found."
)

// Config is the static input of the bot core, fixed at construction.
type Config struct {
	AllowedChannels []string
	BotUsername     string
}

// Commands implements inbound.CommandPort over the built-in command table.
type Commands struct {
	guard      *AccessGuard
	router     *Router
	monitoring outbound.MonitoringClient
	notifier   outbound.Notifier
	logger     *slog.Logger
}

// NewCommands wires the built-in command table: problem list first, then the
// maintenance form.
func NewCommands(
	cfg Config,
	guard *AccessGuard,
	monitoring outbound.MonitoringClient,
	notifier outbound.Notifier,
	metrics outbound.Metrics,
	logger *slog.Logger,
) *Commands {
	c := &Commands{
		guard:      guard,
		monitoring: monitoring,
		notifier:   notifier,
		logger:     logger,
	}
	c.router = NewRouter(cfg.BotUsername, notifier, metrics, logger,
		Command{
			Name:        "problems",
			Keywords:    []string{"list", "show", "problems"},
			Description: "Show active problems",
			Run:         c.sendProblemList,
		},
		Command{
			Name:        "maintenance",
			Keywords:    []string{"mute", "maintenance"},
			Description: "Maintenance activation form",
			Run:         c.sendMaintenanceForm,
		},
	)
	return c
}

var _ inbound.CommandPort = (*Commands)(nil)

// HandleMention implements inbound.CommandPort.
func (c *Commands) HandleMention(ctx context.Context, req inbound.MentionRequest) error {
	scope, err := c.guard.Authorize(ctx, req.Origin)
	if err != nil {
		return err
	}

	target := outbound.Target{ChannelID: scope.ChannelID, ThreadTS: scope.ThreadTS}
	if _, err := c.router.Route(ctx, req.Text, target); err != nil {
		return fmt.Errorf("routing mention: %w", err)
	}
	return nil
}

func (c *Commands) sendProblemList(ctx context.Context, target outbound.Target) error {
	alerts, err := c.monitoring.ListActiveAlerts(ctx)
	if err != nil {
		c.replyProcessingError(ctx, target)
		return fmt.Errorf("listing active alerts: %w", err)
	}
	return c.notifier.SendAlertList(ctx, target, alerts)
}

func (c *Commands) sendMaintenanceForm(ctx context.Context, target outbound.Target) error {
	windows, err := c.monitoring.ListSuppressionWindows(ctx)
	if err != nil {
		c.replyProcessingError(ctx, target)
		return fmt.Errorf("listing maintenance periods: %w", err)
	}
	// Slack rejects a select element without options.
	if len(windows) == 0 {
		return c.notifier.SendText(ctx, target, noWindowsText)
	}
	return c.notifier.SendActivationForm(ctx, target, windows)
}

func (c *Commands) replyProcessingError(ctx context.Context, target outbound.Target) {
	if err := c.notifier.SendText(ctx, target, processingErrorText); err != nil {
		c.logger.Error("sending processing error notice", "channel", target.ChannelID, "error", err)
	}
}
