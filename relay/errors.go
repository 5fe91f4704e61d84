package relay

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies relay failures.
type Kind string

const (
	// KindValidation means the query was empty or whitespace-only.
	KindValidation Kind = "ValidationError"
	// KindUpstreamUnavailable covers refused connections, DNS failures and timeouts.
	KindUpstreamUnavailable Kind = "UpstreamUnavailable"
	// KindUpstream means the upstream answered with a non-success status.
	KindUpstream Kind = "UpstreamError"
)

// Sentinels for errors.Is matching by kind.
var (
	ErrValidation          = errors.New("query is required")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrUpstream            = errors.New("upstream error")
)

// Error is the structured failure returned by every relay operation.
type Error struct {
	Kind    Kind
	Message string

	// StatusCode is the upstream HTTP status (KindUpstream only)
	StatusCode int

	// Detail is the upstream error body decoded as JSON, when it was JSON
	Detail any

	// Timeout is set when the bounded wait elapsed
	Timeout bool

	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUpstream:
		return fmt.Sprintf("%s: status %d: %s", e.Kind, e.StatusCode, e.Message)
	default:
		if e.Err != nil && e.Message == "" {
			return fmt.Sprintf("%s: %v", e.Kind, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the package sentinels against the error kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrUpstreamUnavailable:
		return e.Kind == KindUpstreamUnavailable
	case ErrUpstream:
		return e.Kind == KindUpstream
	}
	return false
}

// UserMessage is the single human-readable line shown to the user.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindValidation:
		return "Please enter a query to analyze."
	case KindUpstreamUnavailable:
		if e.Timeout {
			return "The analysis service did not respond in time. Please try again."
		}
		return "Cannot reach the analysis service: " + e.Message
	case KindUpstream:
		return fmt.Sprintf("Analysis service error (%d): %s", e.StatusCode, e.Message)
	default:
		return e.Error()
	}
}

// Retryable reports whether resubmitting the same query may succeed.
func (e *Error) Retryable() bool {
	return e.Kind == KindUpstreamUnavailable || (e.Kind == KindUpstream && e.StatusCode >= 500)
}

// AsError extracts a *Error from err.
func AsError(err error) (*Error, bool) {
	var re *Error
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

func validationError() *Error {
	return &Error{Kind: KindValidation, Message: ErrValidation.Error(), Err: ErrValidation}
}

func unavailableError(cause error, timeout bool) *Error {
	msg := cause.Error()
	if timeout {
		msg = "timeout: " + msg
	}
	return &Error{Kind: KindUpstreamUnavailable, Message: msg, Timeout: timeout, Err: cause}
}

func upstreamError(status int, message string, detail any) *Error {
	if message == "" {
		message = http.StatusText(status)
	}
	if message == "" {
		message = fmt.Sprintf("status %d", status)
	}
	return &Error{Kind: KindUpstream, Message: message, StatusCode: status, Detail: detail}
}
