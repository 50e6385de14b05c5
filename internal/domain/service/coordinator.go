package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jonny/zabbix-bot/internal/domain/model"
	"github.com/jonny/zabbix-bot/internal/domain/port/inbound"
	"github.com/jonny/zabbix-bot/internal/domain/port/outbound"
)

const missingSelectionText = "Form submission error: missing selection. Please choose a maintenance period and a duration."

// FormValidationError reports an activation payload without a usable selection.
type FormValidationError struct {
	Field  string
	Reason string
}

func (e *FormValidationError) Error() string {
	return fmt.Sprintf("form field %s: %s", e.Field, e.Reason)
}

// Coordinator implements inbound.InteractionPort for the activation form.
//
// It keeps no record of sent forms: every interaction payload carries the
// complete selection state of its message.
type Coordinator struct {
	guard      *AccessGuard
	monitoring outbound.MonitoringClient
	notifier   outbound.Notifier
	metrics    outbound.Metrics
	logger     *slog.Logger
}

// NewCoordinator creates a Coordinator.
func NewCoordinator(
	guard *AccessGuard,
	monitoring outbound.MonitoringClient,
	notifier outbound.Notifier,
	metrics outbound.Metrics,
	logger *slog.Logger,
) *Coordinator {
	return &Coordinator{
		guard:      guard,
		monitoring: monitoring,
		notifier:   notifier,
		metrics:    metrics,
		logger:     logger,
	}
}

var _ inbound.InteractionPort = (*Coordinator)(nil)

// HandleInteraction implements inbound.InteractionPort and returns the stage the
// form reached.
func (c *Coordinator) HandleInteraction(ctx context.Context, req inbound.InteractionRequest) (model.FormStage, error) {
	next, err := model.NextFormStage(model.FormRendered, req.ActionID)
	if err != nil {
		c.metrics.InteractionHandled(req.ActionID, "unknown")
		return model.FormRendered, err
	}

	switch next {
	case model.FormCancelled:
		return c.cancel(ctx, req)
	case model.FormActivated:
		return c.activate(ctx, req)
	default:
		// The message already shows the new selection.
		c.logger.Debug("selection changed", "action", req.ActionID)
		c.metrics.InteractionHandled(req.ActionID, "ack")
		return model.FormRendered, nil
	}
}

func (c *Coordinator) cancel(ctx context.Context, req inbound.InteractionRequest) (model.FormStage, error) {
	if _, err := c.guard.Authorize(ctx, req.Origin); err != nil {
		c.metrics.InteractionHandled(req.ActionID, guardOutcome(err))
		return model.FormRendered, err
	}

	channelID, messageTS := formMessage(req)
	if err := c.notifier.DeleteMessage(ctx, channelID, messageTS); err != nil {
		c.metrics.InteractionHandled(req.ActionID, "chat_error")
		return model.FormRendered, fmt.Errorf("deleting cancelled form: %w", err)
	}

	c.logger.Info("maintenance form cancelled", "channel", channelID, "user", displayName(req))
	c.metrics.InteractionHandled(req.ActionID, "cancelled")
	return model.FormCancelled, nil
}

func (c *Coordinator) activate(ctx context.Context, req inbound.InteractionRequest) (model.FormStage, error) {
	scope, err := c.guard.Authorize(ctx, req.Origin)
	if err != nil {
		c.metrics.InteractionHandled(req.ActionID, guardOutcome(err))
		return model.FormRendered, err
	}
	thread := outbound.Target{ChannelID: scope.ChannelID, ThreadTS: scope.ThreadTS}

	sel, err := extractActivation(req.Values)
	if err != nil {
		c.logger.Error("form submission error", "error", err)
		c.metrics.InteractionHandled(req.ActionID, "invalid")
		c.reply(ctx, thread, missingSelectionText)
		return model.FormRendered, err
	}

	if err := c.monitoring.ActivateSuppressionWindow(ctx, sel.windowID, sel.duration.Seconds); err != nil {
		c.logger.Error("processing error", "maintenance_id", sel.windowID, "error", err)
		c.metrics.InteractionHandled(req.ActionID, "remote_error")
		c.reply(ctx, thread, processingErrorText)
		return model.FormRendered, fmt.Errorf("activating maintenance %s: %w", sel.windowID, err)
	}

	user := displayName(req)
	c.logger.Info("maintenance activated",
		"maintenance_id", sel.windowID,
		"duration_seconds", sel.duration.Seconds,
		"user", user,
	)

	// Confirmation goes to the channel, not the thread.
	confirmation := fmt.Sprintf("User *%s* activated maintenance period `%s` for %s",
		user, sel.windowLabel, sel.durationLabel)
	if err := c.notifier.SendText(ctx, outbound.Target{ChannelID: scope.ChannelID}, confirmation); err != nil {
		c.metrics.InteractionHandled(req.ActionID, "chat_error")
		return model.FormActivated, fmt.Errorf("posting activation confirmation: %w", err)
	}

	// Not atomic with the confirmation above: a failure here leaves a stale form.
	channelID, messageTS := formMessage(req)
	if err := c.notifier.DeleteMessage(ctx, channelID, messageTS); err != nil {
		c.metrics.InteractionHandled(req.ActionID, "chat_error")
		return model.FormActivated, fmt.Errorf("deleting activated form: %w", err)
	}

	c.metrics.InteractionHandled(req.ActionID, "activated")
	return model.FormActivated, nil
}

func (c *Coordinator) reply(ctx context.Context, target outbound.Target, text string) {
	if err := c.notifier.SendText(ctx, target, text); err != nil {
		c.logger.Error("sending reply", "channel", target.ChannelID, "error", err)
	}
}

type activation struct {
	windowID      string
	windowLabel   string
	duration      model.DurationOption
	durationLabel string
}

// extractActivation reads the window and duration selections out of the form
// snapshot. Each selector must appear exactly once with a chosen option.
func extractActivation(values inbound.FormValues) (activation, error) {
	found := make(map[string][]model.Selection)
	for _, actions := range values {
		for actionID, sel := range actions {
			found[actionID] = append(found[actionID], sel)
		}
	}

	window, err := singleSelection(found, model.ActionWindowSelect)
	if err != nil {
		return activation{}, err
	}
	duration, err := singleSelection(found, model.ActionDurationSelect)
	if err != nil {
		return activation{}, err
	}

	seconds, err := strconv.Atoi(duration.Value)
	if err != nil {
		return activation{}, &FormValidationError{Field: model.ActionDurationSelect, Reason: fmt.Sprintf("%q is not a number of seconds", duration.Value)}
	}
	opt, ok := model.LookupDuration(seconds)
	if !ok {
		return activation{}, &FormValidationError{Field: model.ActionDurationSelect, Reason: fmt.Sprintf("%d seconds is not an offered duration", seconds)}
	}

	a := activation{
		windowID:      window.Value,
		windowLabel:   window.Label,
		duration:      opt,
		durationLabel: duration.Label,
	}
	if a.windowLabel == "" {
		a.windowLabel = window.Value
	}
	if a.durationLabel == "" {
		a.durationLabel = opt.Label
	}
	return a, nil
}

func singleSelection(found map[string][]model.Selection, actionID string) (model.Selection, error) {
	sels := found[actionID]
	switch {
	case len(sels) == 0:
		return model.Selection{}, &FormValidationError{Field: actionID, Reason: "missing"}
	case len(sels) > 1:
		return model.Selection{}, &FormValidationError{Field: actionID, Reason: "selected more than once"}
	case sels[0].IsEmpty():
		return model.Selection{}, &FormValidationError{Field: actionID, Reason: "no option selected"}
	}
	return sels[0], nil
}

// formMessage locates the form message, preferring the top-level channel and
// message fields over the container.
func formMessage(req inbound.InteractionRequest) (string, string) {
	channelID, messageTS := req.ChannelID, req.MessageTS
	if c := req.Origin.Container; c != nil {
		if channelID == "" {
			channelID = c.ChannelID
		}
		if messageTS == "" {
			messageTS = c.MessageTS
		}
	}
	return channelID, messageTS
}

func displayName(req inbound.InteractionRequest) string {
	if req.UserName != "" {
		return req.UserName
	}
	return req.UserID
}

func guardOutcome(err error) string {
	if errors.Is(err, ErrDenied) {
		return "denied"
	}
	return "malformed"
}
