package providers

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of a relay error
type ErrorType string

const (
	// ErrorTypeConfig marks a missing credential
	ErrorTypeConfig ErrorType = "config"

	// ErrorTypeValidation marks an unparseable body or unknown provider
	ErrorTypeValidation ErrorType = "validation"

	// ErrorTypeUpstream marks a non-2xx response from a provider; it carries
	// the upstream status and raw body
	ErrorTypeUpstream ErrorType = "upstream"

	// ErrorTypeTransport marks a timeout or connection failure
	ErrorTypeTransport ErrorType = "transport"
)

// RelayError is the uniform error shape every layer returns. It is converted
// to the wire error body exactly once, at the handler boundary.
type RelayError struct {
	Type    ErrorType
	Message string

	// Status is the upstream HTTP status for ErrorTypeUpstream
	Status int

	// Body is the raw upstream response body for ErrorTypeUpstream
	Body []byte

	Err error
}

// Error implements the error interface
func (e *RelayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *RelayError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is
func (e *RelayError) Is(target error) bool {
	t, ok := target.(*RelayError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewConfigError creates an error for a missing credential
func NewConfigError(message string) *RelayError {
	return &RelayError{Type: ErrorTypeConfig, Message: message}
}

// NewValidationError creates an error for malformed input or an unknown
// provider
func NewValidationError(message string) *RelayError {
	return &RelayError{Type: ErrorTypeValidation, Message: message}
}

// NewUpstreamError creates an error for a non-2xx upstream response
func NewUpstreamError(provider string, status int, body []byte) *RelayError {
	return &RelayError{
		Type:    ErrorTypeUpstream,
		Message: fmt.Sprintf("%s returned status %d", provider, status),
		Status:  status,
		Body:    body,
	}
}

// NewTransportError creates an error for a timeout or connection failure
func NewTransportError(message string, err error) *RelayError {
	return &RelayError{Type: ErrorTypeTransport, Message: message, Err: err}
}

// IsConfigError checks if an error is a missing-credential error
func IsConfigError(err error) bool {
	return errorTypeOf(err) == ErrorTypeConfig
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errorTypeOf(err) == ErrorTypeValidation
}

// IsUpstreamError checks if an error is an upstream HTTP error
func IsUpstreamError(err error) bool {
	return errorTypeOf(err) == ErrorTypeUpstream
}

// IsTransportError checks if an error is a transport failure
func IsTransportError(err error) bool {
	return errorTypeOf(err) == ErrorTypeTransport
}

// AsRelayError extracts a RelayError from an error chain
func AsRelayError(err error) (*RelayError, bool) {
	var relayErr *RelayError
	if errors.As(err, &relayErr) {
		return relayErr, true
	}
	return nil, false
}

func errorTypeOf(err error) ErrorType {
	if relayErr, ok := AsRelayError(err); ok {
		return relayErr.Type
	}
	return ""
}
