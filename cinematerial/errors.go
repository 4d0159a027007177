package cinematerial

import (
	"errors"
	"fmt"
)

// Error kinds. Every validation failure returned by this package matches
// exactly one of them with errors.Is.
var (
	// ErrNullInput indicates a required argument was missing
	ErrNullInput = errors.New("required argument is missing")
	// ErrInvalidCredentials indicates an empty API key or secret
	ErrInvalidCredentials = errors.New("invalid cinematerial credentials")
	// ErrInvalidFormat indicates an argument that does not have the expected shape
	ErrInvalidFormat = errors.New("invalid format")
	// ErrOutOfRange indicates a numeric argument outside its allowed range
	ErrOutOfRange = errors.New("value out of range")
	// ErrMalformedResponse indicates the API reply could not be decoded
	ErrMalformedResponse = errors.New("malformed cinematerial response")
)

// ArgumentError describes a violated precondition
type ArgumentError struct {
	Argument string
	Value    any
	Reason   string
	Kind     error
}

// Error implements the error interface
func (e *ArgumentError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: %s", e.Argument, e.Reason)
	}
	return fmt.Sprintf("%s %v: %s", e.Argument, e.Value, e.Reason)
}

// Unwrap returns the error kind
func (e *ArgumentError) Unwrap() error {
	return e.Kind
}

func nullInput(argument, reason string) error {
	return &ArgumentError{Argument: argument, Reason: reason, Kind: ErrNullInput}
}

func invalidFormat(argument string, value any, reason string) error {
	return &ArgumentError{Argument: argument, Value: value, Reason: reason, Kind: ErrInvalidFormat}
}

func outOfRange(argument string, value any, reason string) error {
	return &ArgumentError{Argument: argument, Value: value, Reason: reason, Kind: ErrOutOfRange}
}

// StatusError is returned by HTTPFetcher when the API replies with a non-2xx status
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	return fmt.Sprintf("cinematerial API error: status %d: %s", e.StatusCode, e.Status)
}

// IsNotFound checks if the error indicates a not found response
func (e *StatusError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsUnauthorized checks if the error indicates rejected credentials or signature
func (e *StatusError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}
