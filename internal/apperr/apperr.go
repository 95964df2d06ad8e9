// Package apperr defines the error kinds shared by services and HTTP handlers.
// Status codes are derived from the kind, never from the message text.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a failure.
type Kind int

const (
	Internal Kind = iota
	InvalidInput
	InvalidCredential
	Missing
	Malformed
	Expired
	Superseded
	NotFound
	Upstream
)

var kindNames = map[Kind]string{
	Internal:          "internal",
	InvalidInput:      "invalid_input",
	InvalidCredential: "invalid_credential",
	Missing:           "missing_token",
	Malformed:         "malformed_token",
	Expired:           "expired_token",
	Superseded:        "superseded_token",
	NotFound:          "not_found",
	Upstream:          "upstream_error",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Error is a failure tagged with a Kind.
// Detail carries data safe to echo back in verbose mode, e.g. a provider error payload.
type Error struct {
	Kind   Kind
	Msg    string
	Detail any
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error without an underlying cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap creates an Error around an underlying cause.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// IsAuth reports whether kind is one of the session verification failures.
func IsAuth(kind Kind) bool {
	switch kind {
	case InvalidCredential, Missing, Malformed, Expired, Superseded:
		return true
	}
	return false
}

// HTTPStatus maps a kind to its response status.
func HTTPStatus(kind Kind) int {
	switch kind {
	case InvalidInput:
		return http.StatusBadRequest
	case Expired:
		return http.StatusForbidden
	case InvalidCredential, Missing, Malformed, Superseded:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
