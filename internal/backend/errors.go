package backend

import (
	"errors"
	"net/http"
	"strings"

	"github.com/containerd/errdefs"
)

// Human-readable messages per failure kind, shown to the panel user.
const (
	MsgNetwork      = "Network error. Please check your connection and try again."
	MsgUnauthorized = "Your session has expired. Please sign in again."
	MsgForbidden    = "You do not have permission to perform this action."
	MsgNotFound     = "The requested resource was not found."
	MsgServer       = "Server error. Please try again later."
	MsgValidation   = "Some fields are invalid. Please review and try again."
	MsgGeneric      = "Something went wrong. Please try again."
)

// Error is the structured failure produced by the remote-call layer.
// The kind discriminant is an errdefs sentinel, so callers branch with
// errdefs.IsNotFound(err) etc. instead of inspecting message text.
type Error struct {
	kind    error             // errdefs sentinel
	Status  int               // HTTP status, 0 for transport failures
	Message string            // human-readable, per taxonomy
	Detail  string            // raw backend or transport text
	Fields  map[string]string // field -> message, validation failures only
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.kind
}

// Humanize returns the user-facing message for any error.
func Humanize(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Message
	}
	return Classify(err).Message
}

// FieldErrors returns the per-field validation map, or nil.
func FieldErrors(err error) map[string]string {
	var be *Error
	if errors.As(err, &be) {
		return be.Fields
	}
	return nil
}

// fromStatus maps an HTTP response status to a structured error.
// The status is authoritative; the detail text is carried verbatim.
func fromStatus(status int, detail string, fields map[string]string) *Error {
	switch {
	case status == http.StatusUnauthorized:
		return &Error{kind: errdefs.ErrUnauthenticated, Status: status, Message: MsgUnauthorized, Detail: detail}
	case status == http.StatusForbidden:
		return &Error{kind: errdefs.ErrPermissionDenied, Status: status, Message: MsgForbidden, Detail: detail}
	case status == http.StatusNotFound:
		return &Error{kind: errdefs.ErrNotFound, Status: status, Message: MsgNotFound, Detail: detail}
	case status == http.StatusUnprocessableEntity || status == http.StatusBadRequest:
		return &Error{kind: errdefs.ErrInvalidArgument, Status: status, Message: MsgValidation, Detail: detail, Fields: fields}
	case status >= 500:
		return &Error{kind: errdefs.ErrInternal, Status: status, Message: MsgServer, Detail: detail}
	default:
		return &Error{kind: errdefs.ErrUnknown, Status: status, Message: MsgGeneric, Detail: detail}
	}
}

// Classify falls back to substring matching on raw error text. It exists only
// for failures that never reached HTTP status handling (DNS, refused
// connections, errors from foreign code); responses are classified by status.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var be *Error
	if errors.As(err, &be) {
		return be
	}

	text := strings.ToLower(err.Error())
	switch {
	case containsAny(text, "econnrefused", "connection refused", "no such host", "network", "timeout", "deadline exceeded", "unreachable", "broken pipe"):
		return &Error{kind: errdefs.ErrUnavailable, Message: MsgNetwork, Detail: err.Error()}
	case containsAny(text, "401", "unauthorized", "unauthenticated"):
		return &Error{kind: errdefs.ErrUnauthenticated, Message: MsgUnauthorized, Detail: err.Error()}
	case containsAny(text, "403", "forbidden"):
		return &Error{kind: errdefs.ErrPermissionDenied, Message: MsgForbidden, Detail: err.Error()}
	case containsAny(text, "404", "not found"):
		return &Error{kind: errdefs.ErrNotFound, Message: MsgNotFound, Detail: err.Error()}
	case containsAny(text, "500", "internal server", "server error"):
		return &Error{kind: errdefs.ErrInternal, Message: MsgServer, Detail: err.Error()}
	default:
		return &Error{kind: errdefs.ErrUnknown, Message: MsgGeneric, Detail: err.Error()}
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// NotFound builds a not-found error for the given resource description.
// Used by the mock client where there is no HTTP status to map from.
func NotFound(detail string) *Error {
	return &Error{kind: errdefs.ErrNotFound, Status: http.StatusNotFound, Message: MsgNotFound, Detail: detail}
}

// Invalid builds a validation error with an optional field map.
func Invalid(detail string, fields map[string]string) *Error {
	return &Error{kind: errdefs.ErrInvalidArgument, Status: http.StatusUnprocessableEntity, Message: MsgValidation, Detail: detail, Fields: fields}
}

// Conflict builds a failed-precondition error (e.g. illegal status transition).
func Conflict(detail string) *Error {
	return &Error{kind: errdefs.ErrFailedPrecondition, Status: http.StatusConflict, Message: MsgGeneric, Detail: detail}
}
