package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"endpointd/pkg/types"
)

// APIError is a non-2xx platform response, carrying enough context for the
// caller to decide whether to retry.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("platform returned %d: %s", e.StatusCode, e.Message)
}

// apiErrorFrom decodes the platform's JSON error payload, falling back to
// the raw body when it is not the expected shape.
func apiErrorFrom(status int, body []byte) error {
	var er types.ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error != "" {
		return &APIError{StatusCode: status, Message: er.Error}
	}
	return &APIError{StatusCode: status, Message: strings.TrimSpace(string(body))}
}

// transportError wraps a network-level failure (connection refused, timeout).
type transportError struct{ err error }

func (e *transportError) Error() string { return "transport: " + e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

// IsNotFound reports whether err is a 404 from the platform.
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == http.StatusNotFound
}

// IsValidation reports whether err is a 400 from the platform (payload shape
// or spec validation).
func IsValidation(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == http.StatusBadRequest
}

// IsConflict reports whether err is a 409 (duplicate name or non-running
// endpoint).
func IsConflict(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == http.StatusConflict
}

// IsTooBusy reports whether err is a 429 backpressure response.
func IsTooBusy(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == http.StatusTooManyRequests
}

// IsTransport reports whether err is a network-level failure rather than a
// platform response.
func IsTransport(err error) bool {
	var te *transportError
	return errors.As(err, &te)
}

// isRetryable: transport failures and server-side errors may be transient.
func isRetryable(err error) bool {
	if IsTransport(err) {
		return true
	}
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode >= 500
	}
	return false
}

// DeployError is returned when an endpoint reaches the failed state instead
// of running.
type DeployError struct {
	Name   string
	Reason string
}

func (e *DeployError) Error() string {
	return "deploy failed for " + e.Name + ": " + e.Reason
}

// IsDeployFailed reports whether err indicates a failed provisioning attempt.
func IsDeployFailed(err error) bool {
	var de *DeployError
	return errors.As(err, &de)
}
