// Package api defines the shared response envelope used by all HTTP handlers:
// a structured error carrying an HTTP status, and a success wrapper for normal
// responses. Handlers return *Error values; the terminal ErrorRenderer
// middleware turns them into JSON bodies.
package api

import (
	"net/http"
	"runtime/debug"
)

// Error is a structured failure envelope. It carries the HTTP status the
// failure maps to, a human-readable message and an ordered list of sub-errors.
// Success is always false and Data is always null so that clients can rely on
// a single response shape. Values are immutable once constructed.
type Error struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors"`
	Success    bool     `json:"success"`
	Data       any      `json:"data"`

	// stack is the captured trace of the originating call site. It is kept
	// out of the JSON body and is only used for server-side logging.
	stack string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Stack returns the stack trace captured when the error was constructed.
func (e *Error) Stack() string {
	return e.stack
}

// NewError constructs a structured error with the given status code, message
// and optional sub-errors, capturing a stack trace at the call site.
func NewError(statusCode int, message string, errs ...string) *Error {
	return newError(statusCode, message, errs, string(debug.Stack()))
}

// NewErrorWithStack is NewError with a caller-supplied trace, for failures
// that were captured elsewhere and are being re-shaped into an envelope.
func NewErrorWithStack(statusCode int, message string, errs []string, stack string) *Error {
	if stack == "" {
		stack = string(debug.Stack())
	}
	return newError(statusCode, message, errs, stack)
}

func newError(statusCode int, message string, errs []string, stack string) *Error {
	if statusCode == 0 {
		statusCode = http.StatusInternalServerError
	}
	if message == "" {
		message = "Something went wrong!"
	}
	if errs == nil {
		errs = []string{}
	}
	return &Error{
		StatusCode: statusCode,
		Message:    message,
		Errors:     errs,
		Success:    false,
		Data:       nil,
		stack:      stack,
	}
}
