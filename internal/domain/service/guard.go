package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jonny/zabbix-bot/internal/domain/port/inbound"
	"github.com/jonny/zabbix-bot/internal/domain/port/outbound"
)

var (
	// ErrPayloadShape means neither the event nor the container shape carried a channel id.
	ErrPayloadShape = errors.New("payload carries no channel id")
	// ErrDenied means the channel is not on the allow-list.
	ErrDenied = errors.New("channel not allowed")
)

const deniedText = "Sorry, bot is not allowed to operate on this channel."

// Scope is the authorized channel and the thread replies are correlated to.
type Scope struct {
	ChannelID string
	ThreadTS  string
}

// AccessGuard enforces the static channel allow-list.
type AccessGuard struct {
	allowed  map[string]bool
	notifier outbound.Notifier
	metrics  outbound.Metrics
	logger   *slog.Logger
}

// NewAccessGuard builds the allow-list once; it is read-only afterwards.
func NewAccessGuard(channels []string, notifier outbound.Notifier, metrics outbound.Metrics, logger *slog.Logger) *AccessGuard {
	allowed := make(map[string]bool, len(channels))
	for _, ch := range channels {
		ch = strings.TrimSpace(ch)
		if ch != "" {
			allowed[ch] = true
		}
	}
	return &AccessGuard{
		allowed:  allowed,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
	}
}

// Authorize resolves the channel of origin and checks it against the allow-list.
// A denied channel gets one notice in the originating thread; a payload without a
// channel id is only logged. Callers must not proceed on any error.
func (g *AccessGuard) Authorize(ctx context.Context, origin inbound.Origin) (Scope, error) {
	scope, ok := scopeFromEvent(origin.Event)
	if !ok {
		scope, ok = scopeFromContainer(origin.Container)
	}
	if !ok {
		g.logger.Error("no channel id found in payload",
			"has_event", origin.Event != nil,
			"has_container", origin.Container != nil,
		)
		g.metrics.GuardRejected("payload_shape")
		return Scope{}, ErrPayloadShape
	}

	if !g.allowed[scope.ChannelID] {
		g.logger.Warn("rejecting request from channel outside allow-list", "channel", scope.ChannelID)
		g.metrics.GuardRejected("denied")
		target := outbound.Target{ChannelID: scope.ChannelID, ThreadTS: scope.ThreadTS}
		if err := g.notifier.SendText(ctx, target, deniedText); err != nil {
			g.logger.Error("sending denial notice", "channel", scope.ChannelID, "error", err)
		}
		return scope, ErrDenied
	}
	return scope, nil
}

// scopeFromEvent reads the "event" shape. Mentions outside a thread correlate
// to the mention itself.
func scopeFromEvent(ev *inbound.EventOrigin) (Scope, bool) {
	if ev == nil || ev.ChannelID == "" {
		return Scope{}, false
	}
	thread := ev.ThreadTS
	if thread == "" {
		thread = ev.TS
	}
	return Scope{ChannelID: ev.ChannelID, ThreadTS: thread}, true
}

// scopeFromContainer reads the "container" shape of interactive callbacks.
func scopeFromContainer(c *inbound.ContainerOrigin) (Scope, bool) {
	if c == nil || c.ChannelID == "" {
		return Scope{}, false
	}
	return Scope{ChannelID: c.ChannelID, ThreadTS: c.ThreadTS}, true
}
