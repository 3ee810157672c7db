package errors

import (
	"errors"
	"fmt"
)

// Error kinds. Every error that crosses a service boundary carries exactly
// one of these so transport code can map it to a status code without
// inspecting messages.
const (
	KindNotFound     = "NOT_FOUND"
	KindInvalidInput = "INVALID_INPUT"
	KindUnauthorized = "UNAUTHORIZED"
	KindForbidden    = "FORBIDDEN"
	KindConflict     = "CONFLICT"
	KindInternal     = "INTERNAL"
)

// DomainError represents a business logic error
type DomainError struct {
	Kind    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// New creates a new domain error
func New(kind, message string, err error) *DomainError {
	return &DomainError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// KindOf returns the kind of err, or KindInternal when err carries none.
func KindOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// MessageOf returns the human message of err. Uncoded errors get a generic
// message so store internals never leak to clients.
func MessageOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal error"
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind string) bool {
	return KindOf(err) == kind
}

func NotFound(format string, args ...interface{}) *DomainError {
	return New(KindNotFound, fmt.Sprintf(format, args...), nil)
}

func InvalidInput(format string, args ...interface{}) *DomainError {
	return New(KindInvalidInput, fmt.Sprintf(format, args...), nil)
}

func Unauthorized(format string, args ...interface{}) *DomainError {
	return New(KindUnauthorized, fmt.Sprintf(format, args...), nil)
}

func Forbidden(format string, args ...interface{}) *DomainError {
	return New(KindForbidden, fmt.Sprintf(format, args...), nil)
}

func Conflict(format string, args ...interface{}) *DomainError {
	return New(KindConflict, fmt.Sprintf(format, args...), nil)
}

// WrapInternal hides a store-level failure behind a generic message while
// keeping the cause on the chain for logging.
func WrapInternal(err error) *DomainError {
	return New(KindInternal, "internal error", err)
}
