// Package apierror provides the typed error taxonomy and the standardized
// response envelopes for the API. All errors returned to clients go through
// this package to ensure consistency and to prevent leaking internal details
// (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"
)

// Kind classifies an error for both HTTP mapping and caller retry logic.
type Kind int

const (
	// KindValidation: malformed or missing input.
	KindValidation Kind = iota
	// KindConflict: a business invariant would be violated (duplicate
	// email, last superadmin, last user of a restaurant).
	KindConflict
	// KindPermission: the actor's role lacks the capability.
	KindPermission
	// KindNotFound: the referenced entity does not exist.
	KindNotFound
	// KindTransaction: a storage failure rolled back a multi-step write.
	// Retryable by the caller, unlike the business-rule kinds above.
	KindTransaction
)

// Error is a typed, user-displayable failure.
type Error struct {
	Kind   Kind
	Detail string
	// Err is the wrapped storage error for KindTransaction; never shown.
	Err error
}

func (e *Error) Error() string { return e.Detail }

func (e *Error) Unwrap() error { return e.Err }

func Validation(detail string) *Error { return &Error{Kind: KindValidation, Detail: detail} }
func Conflict(detail string) *Error   { return &Error{Kind: KindConflict, Detail: detail} }
func PermissionDenied(detail string) *Error {
	return &Error{Kind: KindPermission, Detail: detail}
}
func NotFound(detail string) *Error { return &Error{Kind: KindNotFound, Detail: detail} }

// Transaction wraps a storage-layer failure. The public detail stays generic;
// the cause is kept only for logs.
func Transaction(err error) *Error {
	return &Error{Kind: KindTransaction, Detail: "operation failed and was rolled back", Err: err}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// Status maps an error to its HTTP status code. Unknown errors are treated
// as internal failures.
func Status(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindConflict:
		return http.StatusConflict
	case KindPermission:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindTransaction:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationEnvelope wraps multiple field errors from request binding.
type ValidationEnvelope struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationEnvelope {
	return &ValidationEnvelope{Detail: "validation failed", Fields: fields}
}
