// Package errors provides the sentinel errors surfaced by kestrel commands.
//
// Library packages return a *DetailError whose Cause is one of the sentinels
// below so callers can branch with errors.Is while the user still sees the
// path and a hint.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrAlreadyExists indicates the project or module directory is already present.
	ErrAlreadyExists = errors.New("already exists")

	// ErrNotAProjectRoot indicates the working directory has no src/app.ts.
	ErrNotAProjectRoot = errors.New("not a project root")

	// ErrMarkerMissing indicates an injection marker is absent from the target file.
	ErrMarkerMissing = errors.New("marker missing")

	// ErrIO indicates a file could not be read or written.
	ErrIO = errors.New("i/o error")

	// ErrInvalidName indicates a project or module name that cannot be used.
	ErrInvalidName = errors.New("invalid name")

	// ErrInvalidLayout indicates a project template that would be written
	// outside the project skeleton.
	ErrInvalidLayout = errors.New("invalid layout")
)

// DetailError carries a sentinel plus the context needed to act on it.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the affected path (optional).
	Location string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the sentinel this error belongs to.
	Cause error

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString(e.Type)
	b.WriteString(": ")
	b.WriteString(e.Message)

	if e.Location != "" {
		b.WriteString("\n  Location: ")
		b.WriteString(e.Location)
	}
	if e.Err != nil {
		b.WriteString("\n  Cause: ")
		b.WriteString(e.Err.Error())
	}
	if e.Hint != "" {
		b.WriteString("\n\nHint: ")
		b.WriteString(e.Hint)
	}

	return b.String()
}

// Unwrap exposes both the sentinel and the underlying error to errors.Is.
func (e *DetailError) Unwrap() []error {
	var errs []error
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewAlreadyExistsError reports that path is already occupied.
func NewAlreadyExistsError(message, location, hint string) error {
	return &DetailError{
		Type:     "already exists",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrAlreadyExists,
	}
}

// NewNotAProjectRootError reports that dir does not look like a generated project.
func NewNotAProjectRootError(dir string) error {
	return &DetailError{
		Type:     "not a project root",
		Message:  "src/app.ts not found in the current directory",
		Location: dir,
		Hint:     "Run this command from the root of a project created with 'kestrel create project'",
		Cause:    ErrNotAProjectRoot,
	}
}

// NewMarkerMissingError reports that marker is absent from path.
func NewMarkerMissingError(path, marker string) error {
	return &DetailError{
		Type:     "marker missing",
		Message:  fmt.Sprintf("%q not found", marker),
		Location: path,
		Hint:     "Restore the marker comment so new modules can be registered",
		Cause:    ErrMarkerMissing,
	}
}

// NewIOError wraps a filesystem failure on path.
func NewIOError(message, location string, err error) error {
	return &DetailError{
		Type:     "i/o error",
		Message:  message,
		Location: location,
		Cause:    ErrIO,
		Err:      err,
	}
}

// NewInvalidNameError reports a rejected project or module name.
func NewInvalidNameError(kind, name, hint string) error {
	return &DetailError{
		Type:    "invalid name",
		Message: fmt.Sprintf("%q is not a valid %s name", name, kind),
		Hint:    hint,
		Cause:   ErrInvalidName,
	}
}

// NewInvalidLayoutError reports a project file whose path the skeleton does
// not allow.
func NewInvalidLayoutError(file, reason string) error {
	return &DetailError{
		Type:     "invalid layout",
		Message:  fmt.Sprintf("project file %s", reason),
		Location: file,
		Cause:    ErrInvalidLayout,
	}
}

// Wrap prefixes err with message, keeping it visible to errors.Is.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// PartialInstallError lists the packages that failed to install during
// project creation. It is informational: the project is still written.
type PartialInstallError struct {
	Dependencies    []string
	DevDependencies []string
}

// Error implements the error interface.
func (e *PartialInstallError) Error() string {
	var parts []string
	if len(e.Dependencies) > 0 {
		parts = append(parts, "dependencies: "+strings.Join(e.Dependencies, ", "))
	}
	if len(e.DevDependencies) > 0 {
		parts = append(parts, "devDependencies: "+strings.Join(e.DevDependencies, ", "))
	}
	return fmt.Sprintf("%d package(s) failed to install (%s)", e.Count(), strings.Join(parts, "; "))
}

// Count returns the number of failed packages across both lists.
func (e *PartialInstallError) Count() int {
	return len(e.Dependencies) + len(e.DevDependencies)
}
