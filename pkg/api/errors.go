package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNoToken indicates an authenticated call was attempted with no
// token available. The caller must redirect to the anonymous flow.
var ErrNoToken = errors.New("not authenticated: no token available")

// CredentialsError indicates the token endpoint rejected the login.
// Detail carries the server-provided message verbatim (the UI layer
// owns localization).
type CredentialsError struct {
	Detail string
}

func (e *CredentialsError) Error() string {
	return fmt.Sprintf("login rejected: %s", e.Detail)
}

// ProtocolError indicates the backend answered with an unexpected
// response shape. It is fatal to the current operation.
type ProtocolError struct {
	Op      string
	Message string
	Err     error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// StatusError represents a non-2xx HTTP response.
type StatusError struct {
	StatusCode int
	Detail     string // parsed {"detail": ...} when the body carries one
	Body       string // raw response body
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Detail)
	}
	if e.Body != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// IsRetryable returns true if the HTTP error is retryable.
func (e *StatusError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// Message returns the server detail when present, the raw body otherwise.
func (e *StatusError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return strings.TrimSpace(e.Body)
}

// IsUnauthorized reports whether err is an HTTP 401 response.
func IsUnauthorized(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusUnauthorized
}

// IsRetryable reports whether the error is likely transient.
func IsRetryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.IsRetryable()
	}
	var pe *ProtocolError
	if errors.As(err, &pe) {
		return false
	}
	var ce *CredentialsError
	if errors.As(err, &ce) {
		return false
	}
	// Transport-level failures (connection refused, timeouts) land
	// here and are worth retrying.
	return err != nil && !errors.Is(err, ErrNoToken)
}

// newStatusError builds a StatusError from a response body, parsing the
// FastAPI-style {"detail": "..."} envelope when present.
func newStatusError(statusCode int, body []byte) *StatusError {
	se := &StatusError{StatusCode: statusCode, Body: string(body)}

	var envelope struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Detail != "" {
		se.Detail = envelope.Detail
	}
	return se
}
