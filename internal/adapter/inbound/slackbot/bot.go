package slackbot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	slackapi "github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"

	"github.com/jonny/zabbix-bot/internal/domain/port/inbound"
)

// Config holds Slack bot configuration.
type Config struct {
	BotToken string
	AppToken string
	Debug    bool
}

// Bot handles incoming Slack events via Socket Mode.
type Bot struct {
	socketMode  *socketmode.Client
	commands    inbound.CommandPort
	interaction inbound.InteractionPort
	logger      *slog.Logger

	connected atomic.Bool
	inflight  sync.WaitGroup
}

// NewBot creates a new Bot with Socket Mode enabled.
func NewBot(cfg Config, commands inbound.CommandPort, interaction inbound.InteractionPort, logger *slog.Logger) *Bot {
	client := slackapi.New(cfg.BotToken,
		slackapi.OptionAppLevelToken(cfg.AppToken),
		slackapi.OptionDebug(cfg.Debug),
	)
	sm := socketmode.New(client, socketmode.OptionDebug(cfg.Debug))
	return &Bot{
		socketMode:  sm,
		commands:    commands,
		interaction: interaction,
		logger:      logger.With("component", "slackbot"),
	}
}

// Start begins processing Slack events. It blocks until ctx is cancelled, then
// waits for in-flight handlers. Cancellation is a clean stop.
func (b *Bot) Start(ctx context.Context) error {
	go b.handleEvents(ctx)
	err := b.socketMode.RunContext(ctx)
	b.connected.Store(false)
	b.inflight.Wait()

	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		b.logger.Info("socket mode stopped")
		return nil
	}
	if err != nil {
		return fmt.Errorf("socket mode: %w", err)
	}
	return nil
}

// Connected reports whether the socket is currently connected.
func (b *Bot) Connected() bool {
	return b.connected.Load()
}

// HealthCheck fails while the socket is down.
func (b *Bot) HealthCheck(_ context.Context) error {
	if !b.Connected() {
		return errors.New("slack socket not connected")
	}
	return nil
}

// handleEvents acks every envelope before dispatching it, so a slow handler
// never delays the acknowledgement Slack waits for.
func (b *Bot) handleEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-b.socketMode.Events:
			if !ok {
				return
			}
			b.handleEvent(ctx, evt)
		}
	}
}

func (b *Bot) handleEvent(ctx context.Context, evt socketmode.Event) {
	switch evt.Type {
	case socketmode.EventTypeConnecting:
		b.logger.Info("connecting to slack")
		return
	case socketmode.EventTypeConnected:
		b.connected.Store(true)
		b.logger.Info("connected to slack")
		return
	case socketmode.EventTypeConnectionError, socketmode.EventTypeDisconnect:
		b.connected.Store(false)
		b.logger.Warn("slack connection lost", "type", evt.Type)
		return
	case socketmode.EventTypeHello:
		b.connected.Store(true)
		return
	}

	if evt.Request != nil && evt.Request.EnvelopeID != "" {
		b.socketMode.Ack(*evt.Request)
	}

	logger := b.logger.With("request_id", uuid.NewString(), "type", evt.Type)

	switch evt.Type {
	case socketmode.EventTypeEventsAPI:
		b.dispatch(func() { b.handleEventsAPI(ctx, logger, evt) })
	case socketmode.EventTypeInteractive:
		b.dispatch(func() { b.handleInteraction(ctx, logger, evt) })
	default:
		logger.Debug("ignoring event")
	}
}

func (b *Bot) dispatch(fn func()) {
	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()
		fn()
	}()
}
