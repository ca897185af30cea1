package gateway

import (
	"errors"
	"fmt"
)

// ErrorKind classifies gateway failures for one-shot user-visible handling.
// No retry layer exists; every failure is surfaced to the caller.
type ErrorKind int

const (
	// Unauthenticated means no usable credential was available or the server
	// rejected the one we sent. Surfaced by prompting for login.
	Unauthenticated ErrorKind = iota
	// Forbidden means the credential is valid but the role may not act.
	Forbidden
	// NotFound means the resource does not exist on the server.
	NotFound
	// ServerError is any other non-2xx response.
	ServerError
	// NetworkFailure means the request never completed.
	NetworkFailure
)

func (k ErrorKind) String() string {
	switch k {
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	case ServerError:
		return "server_error"
	case NetworkFailure:
		return "network_failure"
	default:
		return "unknown"
	}
}

// Error is a typed gateway failure.
type Error struct {
	Kind   ErrorKind
	Status int
	Detail string
	cause  error
}

func (e *Error) Error() string {
	switch {
	case e.Detail != "" && e.Status > 0:
		return fmt.Sprintf("gateway: %s (status %d): %s", e.Kind, e.Status, e.Detail)
	case e.Detail != "":
		return fmt.Sprintf("gateway: %s: %s", e.Kind, e.Detail)
	case e.Status > 0:
		return fmt.Sprintf("gateway: %s (status %d)", e.Kind, e.Status)
	default:
		return fmt.Sprintf("gateway: %s", e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.cause }

// KindOf extracts the error kind, or ServerError for untyped errors.
func KindOf(err error) ErrorKind {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Kind
	}
	return ServerError
}

// IsUnauthenticated reports whether the failure calls for a login prompt.
func IsUnauthenticated(err error) bool {
	return KindOf(err) == Unauthenticated
}
