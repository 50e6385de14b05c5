package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonny/zabbix-bot/internal/domain/port/outbound"
)

// Command is one entry of the mention command table.
type Command struct {
	Name        string
	Keywords    []string
	Description string
	Run         func(ctx context.Context, target outbound.Target) error
}

// Router dispatches mention text to commands by keyword.
//
// Every command whose keywords intersect the text's tokens runs, in table order;
// matching does not stop at the first hit.
type Router struct {
	commands    []Command
	botUsername string
	notifier    outbound.Notifier
	metrics     outbound.Metrics
	logger      *slog.Logger
}

// NewRouter creates a Router over commands; their order is the usage order.
func NewRouter(botUsername string, notifier outbound.Notifier, metrics outbound.Metrics, logger *slog.Logger, commands ...Command) *Router {
	return &Router{
		commands:    commands,
		botUsername: botUsername,
		notifier:    notifier,
		metrics:     metrics,
		logger:      logger,
	}
}

// Route runs the matching commands for text and reports whether any fired.
// When none fire, a usage message is sent to target instead.
func (r *Router) Route(ctx context.Context, text string, target outbound.Target) (bool, error) {
	tokens := make(map[string]bool)
	for _, tok := range strings.Fields(text) {
		tokens[tok] = true
	}

	matched := false
	var errs []error
	for _, cmd := range r.commands {
		if !matchesAny(tokens, cmd.Keywords) {
			continue
		}
		matched = true
		r.metrics.CommandHandled(cmd.Name)
		r.logger.Info("running command", "command", cmd.Name, "channel", target.ChannelID)
		if err := cmd.Run(ctx, target); err != nil {
			errs = append(errs, fmt.Errorf("command %s: %w", cmd.Name, err))
		}
	}

	if !matched {
		r.metrics.CommandHandled("usage")
		if err := r.notifier.SendText(ctx, target, UsageText(r.botUsername, r.commands)); err != nil {
			errs = append(errs, fmt.Errorf("sending usage: %w", err))
		}
	}
	return matched, errors.Join(errs...)
}

func matchesAny(tokens map[string]bool, keywords []string) bool {
	for _, kw := range keywords {
		if tokens[kw] {
			return true
		}
	}
	return false
}

// UsageText lists every command's keywords and description in table order.
func UsageText(botUsername string, commands []Command) string {
	lines := []string{
		fmt.Sprintf("*USAGE:* `@%s [command] ...`", botUsername),
		"Commands are:",
	}
	for _, cmd := range commands {
		lines = append(lines, fmt.Sprintf("`%s` - %s", strings.Join(cmd.Keywords, "|"), cmd.Description))
	}
	return strings.Join(lines, "\n")
}
