package outbound

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonny/zabbix-bot/internal/domain/model"
	"github.com/jonny/zabbix-bot/pkg/apierror"
)

// ErrRemoteCall matches every RemoteCallError via errors.Is.
var ErrRemoteCall = errors.New("remote call failed")

// RemoteCallError reports a failed request to the monitoring system: transport
// failure, non-2xx status, undecodable body, or a JSON-RPC error object.
type RemoteCallError struct {
	Method     string
	StatusCode int
	RPC        *apierror.Error
	Err        error
}

func (e *RemoteCallError) Error() string {
	switch {
	case e.RPC != nil:
		return fmt.Sprintf("%s: rpc error %s", e.Method, e.RPC.Error())
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Method, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: unexpected status %d", e.Method, e.StatusCode)
	default:
		return e.Method + ": remote call failed"
	}
}

func (e *RemoteCallError) Unwrap() error { return e.Err }

func (e *RemoteCallError) Is(target error) bool { return target == ErrRemoteCall }

// MonitoringClient is the remote monitoring system as seen by the bot.
// Every call is a single synchronous request; none retry.
type MonitoringClient interface {
	ListSuppressionWindows(ctx context.Context) ([]model.SuppressionWindow, error)
	ListActiveAlerts(ctx context.Context) ([]model.Alert, error)
	ActivateSuppressionWindow(ctx context.Context, windowID string, durationSeconds int) error
}
