// Package errors provides the error kinds surfaced by the rdw library.
//
// The kinds form a flat enumeration; callers match on them with errors.Is
// rather than inspecting HTTP status codes:
//   - credential and token errors (missing, invalid, non-premium)
//   - transport and scrape failures (network)
//   - unrestriction errors (unsupported hoster, traffic exhausted, empty folder)
//   - endpoint-specific fetch errors (server time)
package errors

import (
	"errors"
	"fmt"
)

// Error kinds for rdw operations.
var (
	ErrMissingCredentials = errors.New("username and password are required if no API token is provided")
	ErrInvalidCredentials = errors.New("invalid account username or password")
	ErrInvalidAPIToken    = errors.New("invalid API token")
	ErrNonPremiumAccount  = errors.New("premium account required")
	ErrNetwork            = errors.New("network error")
	ErrUnsupportedHoster  = errors.New("hoster not supported")
	ErrTrafficExhausted   = errors.New("remote traffic exhausted")
	ErrEmptyFolder        = errors.New("folder is empty or not supported")
	ErrServerTime         = errors.New("failed to fetch server time")
	ErrServerISOTime      = errors.New("failed to fetch server time in ISO format")
	ErrUnrestrictLink     = errors.New("failed to unrestrict link")
	ErrUnrestrictFolder   = errors.New("failed to unrestrict folder")
)

// APIError wraps an error kind with the endpoint and HTTP status that
// produced it.
type APIError struct {
	Kind       error
	Endpoint   string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	msg := e.Kind.Error()
	if e.Message != "" {
		msg = e.Message
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Endpoint, msg, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Endpoint, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Endpoint, msg)
}

func (e *APIError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

func (e *APIError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

// NewAPIError creates an APIError for the given kind and endpoint.
func NewAPIError(kind error, endpoint string, statusCode int) *APIError {
	return &APIError{
		Kind:       kind,
		Endpoint:   endpoint,
		StatusCode: statusCode,
	}
}

// NewAPIErrorWithCause creates an APIError wrapping an underlying cause,
// typically a transport failure.
func NewAPIErrorWithCause(kind error, endpoint string, err error) *APIError {
	return &APIError{
		Kind:     kind,
		Endpoint: endpoint,
		Err:      err,
	}
}

// IsNetwork checks if an error is a transport or scrape failure.
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsInvalidCredentials checks if an error signals a rejected login.
func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}
