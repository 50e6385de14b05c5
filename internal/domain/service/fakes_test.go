package service_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/jonny/zabbix-bot/internal/domain/model"
	"github.com/jonny/zabbix-bot/internal/domain/port/outbound"
)

// --- fake notifier ---

type sentText struct {
	Target outbound.Target
	Text   string
}

type deletedMessage struct {
	ChannelID string
	MessageTS string
}

type fakeNotifier struct {
	texts      []sentText
	alertLists [][]model.Alert
	forms      [][]model.SuppressionWindow
	deleted    []deletedMessage
	// order records every call as "text", "alerts", "form" or "delete".
	order []string

	textErr   error
	deleteErr error
}

func (n *fakeNotifier) SendText(_ context.Context, target outbound.Target, text string) error {
	n.order = append(n.order, "text")
	if n.textErr != nil {
		return n.textErr
	}
	n.texts = append(n.texts, sentText{Target: target, Text: text})
	return nil
}

func (n *fakeNotifier) SendAlertList(_ context.Context, _ outbound.Target, alerts []model.Alert) error {
	n.order = append(n.order, "alerts")
	n.alertLists = append(n.alertLists, alerts)
	return nil
}

func (n *fakeNotifier) SendActivationForm(_ context.Context, _ outbound.Target, windows []model.SuppressionWindow) error {
	n.order = append(n.order, "form")
	n.forms = append(n.forms, windows)
	return nil
}

func (n *fakeNotifier) DeleteMessage(_ context.Context, channelID, messageTS string) error {
	n.order = append(n.order, "delete")
	if n.deleteErr != nil {
		return n.deleteErr
	}
	n.deleted = append(n.deleted, deletedMessage{ChannelID: channelID, MessageTS: messageTS})
	return nil
}

var _ outbound.Notifier = (*fakeNotifier)(nil)

// --- fake monitoring client ---

type activateCall struct {
	WindowID        string
	DurationSeconds int
}

type fakeMonitoring struct {
	windows   []model.SuppressionWindow
	alerts    []model.Alert
	listErr   error
	updateErr error

	activations []activateCall
	alertCalls  int
	windowCalls int
}

func (m *fakeMonitoring) ListSuppressionWindows(_ context.Context) ([]model.SuppressionWindow, error) {
	m.windowCalls++
	return m.windows, m.listErr
}

func (m *fakeMonitoring) ListActiveAlerts(_ context.Context) ([]model.Alert, error) {
	m.alertCalls++
	return m.alerts, m.listErr
}

func (m *fakeMonitoring) ActivateSuppressionWindow(_ context.Context, windowID string, durationSeconds int) error {
	m.activations = append(m.activations, activateCall{WindowID: windowID, DurationSeconds: durationSeconds})
	return m.updateErr
}

var _ outbound.MonitoringClient = (*fakeMonitoring)(nil)

// --- fake metrics ---

type fakeMetrics struct {
	commands     []string
	interactions []string
	rejections   []string
}

func (m *fakeMetrics) CommandHandled(command string) { m.commands = append(m.commands, command) }
func (m *fakeMetrics) InteractionHandled(action, outcome string) {
	m.interactions = append(m.interactions, action+":"+outcome)
}
func (m *fakeMetrics) GuardRejected(reason string) { m.rejections = append(m.rejections, reason) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
