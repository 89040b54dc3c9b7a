package errs

import (
	"errors"
	"net/http"
	"strings"
)

var (
	ErrValidation     = errors.New("invalid request")
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("conflicting record found")
	ErrUnauthorized   = errors.New("invalid email or password")
	ErrForbidden      = errors.New("account is blocked")
	ErrInternalServer = errors.New("internal server error")
)

var statusMap = map[error]int{
	ErrValidation:     http.StatusBadRequest,
	ErrNotFound:       http.StatusNotFound,
	ErrConflict:       http.StatusConflict,
	ErrUnauthorized:   http.StatusUnauthorized,
	ErrForbidden:      http.StatusForbidden,
	ErrInternalServer: http.StatusInternalServerError,
}

// ValidationError lists the request fields that are missing or malformed.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Invalid builds a ValidationError for the given fields.
func Invalid(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// Invalidf builds a ValidationError with a custom message.
func Invalidf(message string, fields ...string) *ValidationError {
	return &ValidationError{Fields: fields, Message: message}
}

// StatusCode maps an error onto its HTTP status. Unknown errors are 500.
func StatusCode(err error) int {
	for sentinel, status := range statusMap {
		if errors.Is(err, sentinel) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// FromStatus is the inverse of StatusCode, used by API clients to restore the error kind.
func FromStatus(status int) error {
	switch status {
	case http.StatusBadRequest:
		return ErrValidation
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	default:
		return ErrInternalServer
	}
}

// Fields returns the offending field names of a validation error, if any.
func Fields(err error) []string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}
