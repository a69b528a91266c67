package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// UnknownProviderError indicates that a requested provider name is not
// present in the registry. It carries the known names so callers can
// surface them to the user.
type UnknownProviderError struct {
	Name  string
	Known []string
}

func (e *UnknownProviderError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("unknown provider %q", e.Name)
	}
	return fmt.Sprintf("unknown provider %q (known: %s)", e.Name, strings.Join(e.Known, ", "))
}

// InvalidInputError indicates that user-supplied input failed validation
// before any provider call was attempted.
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid input: %s", e.Message)
	}
	return fmt.Sprintf("invalid input for %s: %s", e.Field, e.Message)
}

// ConfigError indicates an invalid provider configuration discovered at
// construction time, before any request is made.
type ConfigError struct {
	Provider string
	Field    string
	Message  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("provider %s: invalid config field %s: %s", e.Provider, e.Field, e.Message)
}

// TransportError indicates that a provider request failed at the HTTP
// layer: connection refused, DNS failure, timeout, or a non-2xx status.
// StatusCode is zero when no response was received.
type TransportError struct {
	Provider   string
	StatusCode int
	Message    string
	Cause      error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider %s: transport failure (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider %s: transport failure: %s", e.Provider, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// Timeout reports whether the failure was a deadline expiry rather than
// a connection-level or HTTP-level error.
func (e *TransportError) Timeout() bool {
	if e.Cause == nil {
		return false
	}
	return errors.Is(e.Cause, context.DeadlineExceeded) || isTimeout(e.Cause)
}

// RefusalError indicates that the provider answered with a well-formed
// response that carries no usable reply, such as an empty candidates
// array or an explicit error object inside a 200 response.
type RefusalError struct {
	Provider string
	Message  string
}

func (e *RefusalError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("provider %s refused the request", e.Provider)
	}
	return fmt.Sprintf("provider %s refused the request: %s", e.Provider, e.Message)
}

// MalformedResponseError indicates that the provider's response body could
// not be decoded into the expected shape. Raw holds a truncated copy of
// the body for diagnostics.
type MalformedResponseError struct {
	Provider string
	Raw      string
	Cause    error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("provider %s: malformed response: %v", e.Provider, e.Cause)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}

// Kind is a stable, low-cardinality label for an error class. It is used
// for metrics labels and transcript records.
type Kind string

const (
	KindUnknownProvider   Kind = "unknown_provider"
	KindInvalidInput      Kind = "invalid_input"
	KindTransport         Kind = "transport"
	KindRefusal           Kind = "refusal"
	KindMalformedResponse Kind = "malformed_response"
	KindInternal          Kind = "internal"
)

// KindOf classifies err into one of the Kind constants. Unrecognized
// errors map to KindInternal; nil maps to the empty Kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var (
		unknown   *UnknownProviderError
		invalid   *InvalidInputError
		transport *TransportError
		refusal   *RefusalError
		malformed *MalformedResponseError
	)
	switch {
	case errors.As(err, &unknown):
		return KindUnknownProvider
	case errors.As(err, &invalid):
		return KindInvalidInput
	case errors.As(err, &transport):
		return KindTransport
	case errors.As(err, &refusal):
		return KindRefusal
	case errors.As(err, &malformed):
		return KindMalformedResponse
	default:
		return KindInternal
	}
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
