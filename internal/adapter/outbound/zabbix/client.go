package zabbix

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/jonny/zabbix-bot/internal/domain/model"
	"github.com/jonny/zabbix-bot/internal/domain/port/outbound"
	"github.com/jonny/zabbix-bot/pkg/apierror"
)

// Token placement for authenticated calls.
const (
	AuthMethodBody   = "body"
	AuthMethodHeader = "header"
)

const unknownHost = "unknown"

// Config holds configuration for the Zabbix API client.
type Config struct {
	URL          string
	Token        string
	Timeout      time.Duration
	AuthMethod   string
	ProblemLimit int
}

// Client implements outbound.MonitoringClient over the Zabbix JSON-RPC API.
// It holds no session; every call carries the configured token.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
	lastID     atomic.Int64
}

// Option customises a Client.
type Option func(*Client)

// WithClock replaces time.Now for activation timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a new Zabbix Client with the given configuration.
func NewClient(cfg Config, logger *slog.Logger, opts ...Option) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("zabbix url is required")
	}
	switch cfg.AuthMethod {
	case "":
		cfg.AuthMethod = AuthMethodBody
	case AuthMethodBody, AuthMethodHeader:
	default:
		return nil, fmt.Errorf("unknown zabbix auth method %q", cfg.AuthMethod)
	}

	c := &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With("component", "zabbix"),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

var _ outbound.MonitoringClient = (*Client)(nil)

// --- Zabbix API types ---

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	Auth    string `json:"auth,omitempty"`
	ID      int64  `json:"id"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *apierror.Error `json:"error"`
	ID      int64           `json:"id"`
}

type maintenance struct {
	MaintenanceID string `json:"maintenanceid"`
	Name          string `json:"name"`
}

type trigger struct {
	TriggerID   string `json:"triggerid"`
	Description string `json:"description"`
	LastChange  string `json:"lastchange"`
	Priority    string `json:"priority"`
	Hosts       []struct {
		Host string `json:"host"`
	} `json:"hosts"`
}

type timePeriod struct {
	TimeperiodType int   `json:"timeperiod_type"`
	StartDate      int64 `json:"start_date"`
	Period         int   `json:"period"`
}

type maintenanceUpdate struct {
	MaintenanceID string       `json:"maintenanceid"`
	ActiveSince   int64        `json:"active_since"`
	ActiveTill    int64        `json:"active_till"`
	Timeperiods   []timePeriod `json:"timeperiods"`
}

// --- MonitoringClient implementation ---

// ListSuppressionWindows returns every maintenance period, unfiltered.
func (c *Client) ListSuppressionWindows(ctx context.Context) ([]model.SuppressionWindow, error) {
	params := map[string]any{
		"output": []string{"maintenanceid", "name"},
	}

	var result []maintenance
	if err := c.call(ctx, "maintenance.get", params, true, &result); err != nil {
		return nil, err
	}

	windows := make([]model.SuppressionWindow, 0, len(result))
	for _, m := range result {
		windows = append(windows, model.SuppressionWindow{ID: m.MaintenanceID, Name: m.Name})
	}
	return windows, nil
}

// ListActiveAlerts returns triggers currently in problem state, most recent first.
func (c *Client) ListActiveAlerts(ctx context.Context) ([]model.Alert, error) {
	params := map[string]any{
		"output":        []string{"description", "lastchange", "priority"},
		"selectHosts":   []string{"host"},
		"filter":        map[string]any{"value": 1},
		"sortfield":     "lastchange",
		"sortorder":     "DESC",
		"recent":        "true",
		"monitored":     "true",
		"skipDependent": "true",
	}
	if c.config.ProblemLimit > 0 {
		params["limit"] = c.config.ProblemLimit
	}

	var result []trigger
	if err := c.call(ctx, "trigger.get", params, true, &result); err != nil {
		return nil, err
	}

	alerts := make([]model.Alert, 0, len(result))
	for _, t := range result {
		alert, err := c.toAlert(t)
		if err != nil {
			return nil, &outbound.RemoteCallError{Method: "trigger.get", Err: err}
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

// ActivateSuppressionWindow overwrites the window's active interval with
// [now, now+duration] and replaces its time periods with a single one-time period.
func (c *Client) ActivateSuppressionWindow(ctx context.Context, windowID string, durationSeconds int) error {
	interval, err := model.NewActiveInterval(c.now(), durationSeconds)
	if err != nil {
		return fmt.Errorf("activating maintenance %s: %w", windowID, err)
	}

	since := interval.Since.Unix()
	params := maintenanceUpdate{
		MaintenanceID: windowID,
		ActiveSince:   since,
		ActiveTill:    interval.Till.Unix(),
		Timeperiods: []timePeriod{{
			TimeperiodType: 0,
			StartDate:      since,
			Period:         durationSeconds,
		}},
	}

	var result struct {
		MaintenanceIDs []string `json:"maintenanceids"`
	}
	if err := c.call(ctx, "maintenance.update", params, true, &result); err != nil {
		return err
	}

	c.logger.Info("maintenance updated",
		"maintenance_id", windowID,
		"active_since", since,
		"active_till", interval.Till.Unix(),
	)
	return nil
}

// APIVersion calls apiinfo.version, which Zabbix serves without authentication.
func (c *Client) APIVersion(ctx context.Context) (string, error) {
	var version string
	if err := c.call(ctx, "apiinfo.version", []any{}, false, &version); err != nil {
		return "", err
	}
	return version, nil
}

// HealthCheck verifies the API endpoint answers.
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.APIVersion(ctx)
	return err
}

// --- Internal helpers ---

func (c *Client) toAlert(t trigger) (model.Alert, error) {
	epoch, err := strconv.ParseInt(t.LastChange, 10, 64)
	if err != nil {
		return model.Alert{}, fmt.Errorf("trigger %s: invalid lastchange %q", t.TriggerID, t.LastChange)
	}

	severity, ok := model.SeverityFromCode(t.Priority)
	if !ok {
		c.logger.Warn("unknown trigger priority", "trigger_id", t.TriggerID, "priority", t.Priority)
	}

	host := unknownHost
	if len(t.Hosts) > 0 && t.Hosts[0].Host != "" {
		host = t.Hosts[0].Host
	}

	return model.Alert{
		StartedAt:   time.Unix(epoch, 0),
		Severity:    severity,
		RawSeverity: t.Priority,
		HostName:    host,
		Description: t.Description,
	}, nil
}

// call performs a single JSON-RPC request. There is no retry.
func (c *Client) call(ctx context.Context, method string, params any, auth bool, result any) error {
	body := rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.lastID.Add(1),
	}
	if auth && c.config.AuthMethod == AuthMethodBody {
		body.Auth = c.config.Token
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("creating %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json-rpc")
	if auth && c.config.AuthMethod == AuthMethodHeader {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	c.logger.Debug("sending request", "method", method, "url", c.config.URL, "id", body.ID)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &outbound.RemoteCallError{Method: method, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &outbound.RemoteCallError{Method: method, Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("unexpected status", "method", method, "status", resp.StatusCode)
		return &outbound.RemoteCallError{Method: method, StatusCode: resp.StatusCode}
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return &outbound.RemoteCallError{Method: method, StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}
	if rpcResp.Error != nil {
		if rpcResp.Error.IsAuthFailure() {
			c.logger.Error("zabbix rejected the api token", "method", method)
		}
		return &outbound.RemoteCallError{Method: method, StatusCode: resp.StatusCode, RPC: rpcResp.Error}
	}
	if len(rpcResp.Result) == 0 {
		return &outbound.RemoteCallError{Method: method, StatusCode: resp.StatusCode, Err: errors.New("response has no result")}
	}
	if err := json.Unmarshal(rpcResp.Result, result); err != nil {
		return &outbound.RemoteCallError{Method: method, StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding result: %w", err)}
	}

	c.logger.Debug("request completed", "method", method, "duration", time.Since(start))
	return nil
}
