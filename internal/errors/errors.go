package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrConfig    = "CONFIG"
	ErrSocket    = "SOCKET"    // connect/read/write failure on the control socket
	ErrProtocol  = "PROTOCOL"  // prompt never observed within bounds
	ErrParse     = "PARSE"     // malformed field in a well-framed stat line
	ErrTerminal  = "TERMINAL"  // terminal unusable (too small, not a TTY)
	ErrTransient = "TRANSIENT" // terminal driver hiccup, safe to retry
)

// Process exit codes.
const (
	ExitOK       = 0
	ExitConfig   = 1
	ExitSocket   = 2
	ExitInternal = 70
)

// Error represents a structured error with code, message, suggestion, and optional cause.
// Rendered as:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap wraps an existing error with a message, defaulting to ErrSocket code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrSocket,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
// The outermost structured error in the chain decides.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var hErr *Error
	if errors.As(err, &hErr) {
		return hErr.Code == code
	}
	return false
}

// ExitCode maps an error to the process exit status.
// Unstructured errors are internal failures and get their own status so
// they never pass for a configuration or socket problem.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var hErr *Error
	if !errors.As(err, &hErr) {
		return ExitInternal
	}
	switch hErr.Code {
	case ErrConfig, ErrTerminal:
		return ExitConfig
	case ErrSocket, ErrProtocol:
		return ExitSocket
	default:
		return ExitInternal
	}
}
