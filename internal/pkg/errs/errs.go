/*
Package errs provides custom error types and application-level error code constants.

This file defines the CustomError struct, which implements the standard Go error interface
and carries a business code, a user-facing message, the HTTP status and raw body of a
failed response (when there was one), and the underlying cause.
*/
package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"eventify/internal/pkg/logx"
)

// CustomError is the error structure used throughout the client core.
type CustomError struct {
	// Code is the business error code (see constants definition).
	Code int

	// Message is the user-facing error description.
	Message string

	// Status is the HTTP status code of the failed response, or 0 when no response was received.
	Status int

	// Body is the raw, whitespace-trimmed response body of a failed response.
	Body string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the standard Go error interface.
func (e *CustomError) Error() string {
	msg := fmt.Sprintf("Error Code %d (HTTP %d): %s", e.Code, e.Status, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause so errors.Is and errors.As see through a CustomError.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError constructs a new *CustomError from a predefined error code.
// The optional details are printf arguments for message templates containing a verb.
// For ErrUnknown, an error passed as the first detail is recorded as the cause.
// An unknown code yields ErrUnknown.
func NewError(code int, details ...any) *CustomError {
	templateErr, ok := errorMap[code]

	if !ok {
		logx.Error(
			fmt.Errorf("attempted to create an error with an unknown code in errorMap"),
			"Unknown error code requested",
			"requested_code", code,
		)

		unknownErr := errorMap[ErrUnknown]
		return &CustomError{
			Code:    unknownErr.Code,
			Message: unknownErr.Message,
			Status:  unknownErr.Status,
		}
	}

	customErr := templateErr

	if code == ErrUnknown && len(details) > 0 {
		if originalErr, ok := details[0].(error); ok {
			customErr.Err = originalErr
			logx.Error(
				originalErr,
				"Handling ErrUnknown with underlying error",
			)
		}
	} else if len(details) > 0 {
		if strings.Contains(customErr.Message, "%") {
			customErr.Message = fmt.Sprintf(customErr.Message, details...)
		} else {
			logx.Warn(
				"Details provided for error, but message template has no formatting placeholders. Details ignored.",
				"code", code,
			)
		}
	}

	return &customErr
}

// Wrap constructs a *CustomError for code and records err as its cause.
func Wrap(code int, err error, details ...any) *CustomError {
	customErr := NewError(code, details...)
	customErr.Err = err
	return customErr
}

// FromResponse classifies a non-2xx HTTP response.
// A 401 maps to ErrUnauthorized, a 404 to ErrNotFound and everything else to
// ErrHTTPStatus, whose message is the raw body text.
func FromResponse(status int, body string) *CustomError {
	body = strings.TrimSpace(body)

	var customErr *CustomError
	switch status {
	case http.StatusUnauthorized:
		customErr = NewError(ErrUnauthorized)
	case http.StatusNotFound:
		customErr = NewError(ErrNotFound)
	default:
		if body != "" {
			customErr = NewError(ErrHTTPStatus, body)
		} else {
			customErr = NewError(ErrHTTPStatus, fmt.Sprintf("Request failed (HTTP %d).", status))
		}
	}

	customErr.Status = status
	customErr.Body = body
	return customErr
}

// As returns the *CustomError in err's chain, if any.
func As(err error) (*CustomError, bool) {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr, true
	}
	return nil, false
}

// Is reports whether err carries the given business code.
func Is(err error, code int) bool {
	customErr, ok := As(err)
	return ok && customErr.Code == code
}

// StatusCode returns the HTTP status recorded on err, or 0.
func StatusCode(err error) int {
	if customErr, ok := As(err); ok {
		return customErr.Status
	}
	return 0
}

// UserMessage returns the text to show for err.
// Remote failures with a body surface the body verbatim; a remote failure without
// a body, or an error that is not a CustomError, falls back to fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	customErr, ok := As(err)
	if !ok {
		if fallback != "" {
			return fallback
		}
		return errorMap[ErrUnknown].Message
	}

	if customErr.Status != 0 {
		if customErr.Body != "" {
			return customErr.Body
		}
		if fallback != "" && customErr.Code == ErrHTTPStatus {
			return fallback
		}
	}

	return customErr.Message
}
