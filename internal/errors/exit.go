package errors

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitGeneral         = 1
	ExitInvalidInput    = 2 // invalid name or target already exists
	ExitNotAProjectRoot = 3
	ExitMarkerMissing   = 4
	ExitIO              = 5 // file system failure or invalid project layout
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError wraps err with the exit code for its sentinel. It returns nil
// for a nil err and err itself when it already is an *ExitError.
func NewExitError(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return &ExitError{Code: codeFor(err), Err: err}
}

// ExitCode returns the process exit code for err: 0 for nil, the code of an
// *ExitError in its chain, otherwise the code for its sentinel.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return codeFor(err)
}

func codeFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidName), errors.Is(err, ErrAlreadyExists):
		return ExitInvalidInput
	case errors.Is(err, ErrNotAProjectRoot):
		return ExitNotAProjectRoot
	case errors.Is(err, ErrMarkerMissing):
		return ExitMarkerMissing
	case errors.Is(err, ErrIO), errors.Is(err, ErrInvalidLayout):
		return ExitIO
	default:
		return ExitGeneral
	}
}
