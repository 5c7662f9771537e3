package exiterror

import (
	"fmt"

	"github.com/pkg/errors"
)

// Exit codes.
const (
	CodeFailure     = 1
	CodeFileOpen    = 2
	CodeUsage       = 3
	CodeUnknownType = 4
)

type (
	// ExitCoder interface is implemented by application errors.
	ExitCoder interface {
		// ExitCode return the process exit status for the given error.
		ExitCode() int
	}

	// Error is a user facing fatal error.
	Error struct {
		Code    int
		Message string
	}
)

// StatusCode the known exit status for the given err. If unknown, it returns 1.
func StatusCode(err error) int {
	if err == nil {
		return 0
	}

	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return CodeFailure
}

// New returns a new Error.
func New(code int, message string) error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf returns a new Error with a formatted message.
func Newf(code int, format string, args ...interface{}) error {
	return New(code, fmt.Sprintf(format, args...))
}

// Error stringifies the error.
func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// ExitCode returns the process exit status.
func (e *Error) ExitCode() int {
	return e.Code
}
