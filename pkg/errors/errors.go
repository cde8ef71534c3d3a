package errors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Status  int               `json:"status"`
	Details map[string]string `json:"details,omitempty"`
	Err     error             `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors by code so cloned errors still compare equal to their template.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound   = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrConflict   = New("CONFLICT", http.StatusConflict, "conflict")
	ErrForbidden  = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrValidation = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal   = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss  = New("CACHE_MISS", http.StatusNotFound, "cache miss")

	ErrAlreadyInProgress      = New("ALREADY_IN_PROGRESS", http.StatusConflict, "Exercise already in progress")
	ErrAlreadyCompleted       = New("ALREADY_COMPLETED", http.StatusConflict, "Exercise already completed today")
	ErrNotInProgress          = New("NOT_IN_PROGRESS", http.StatusConflict, "Exercise is not in progress")
	ErrIncompleteConfirmation = New("INCOMPLETE_CONFIRMATION_REQUIRED", http.StatusConflict, "exercise target not reached; confirm to end anyway")
	ErrExcludedDate           = New("EXCLUDED_DATE", http.StatusConflict, "exercise is excluded on this date")
)

// FieldErrors collects validation messages keyed by the offending field.
type FieldErrors map[string]string

// Add records a message for field unless one is already present.
func (f FieldErrors) Add(field, message string) {
	if _, exists := f[field]; exists {
		return
	}
	f[field] = message
}

// Empty reports whether no field failed.
func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

// Error renders the field errors deterministically.
func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return strings.Join(parts, "; ")
}

// NewValidation converts field errors into a VALIDATION_ERROR carrying details.
func NewValidation(fields FieldErrors) *Error {
	clone := Clone(ErrValidation, "")
	clone.Details = make(map[string]string, len(fields))
	for k, v := range fields {
		clone.Details[k] = v
	}
	if len(fields) == 1 {
		for _, v := range fields {
			clone.Message = v
		}
	}
	return clone
}

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	var fields FieldErrors
	if errors.As(err, &fields) {
		return NewValidation(fields)
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
