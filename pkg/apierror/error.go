package apierror

import (
	"fmt"
	"strings"
)

// Error is the JSON-RPC 2.0 error object returned by the Zabbix API.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

func (e *Error) Error() string {
	if e.Data != "" {
		return fmt.Sprintf("[%d] %s: %s", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Standard JSON-RPC error codes used by Zabbix.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternal       = -32603
	CodeServer         = -32500
)

func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

func WithData(code int, message, data string) *Error {
	return &Error{Code: code, Message: message, Data: data}
}

func InvalidParams(data string) *Error {
	return WithData(CodeInvalidParams, "Invalid params.", data)
}

func Internal(data string) *Error {
	return WithData(CodeInternal, "Internal error.", data)
}

// IsAuthFailure reports whether Zabbix rejected the session or API token.
// Zabbix signals this as an invalid-params error whose data mentions the session.
func (e *Error) IsAuthFailure() bool {
	if e == nil || e.Code != CodeInvalidParams {
		return false
	}
	return containsAny(e.Data, "Session terminated", "Not authorized", "re-login")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
