//nolint:revive // Package name matches the package it tests
package errors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"invalid name", NewInvalidNameError("module", "9lives", ""), ExitInvalidInput},
		{"already exists", NewAlreadyExistsError("exists", "/tmp/demo", ""), ExitInvalidInput},
		{"not a project root", NewNotAProjectRootError("/tmp"), ExitNotAProjectRoot},
		{"marker missing", NewMarkerMissingError("src/app.ts", "// <new-import-here>"), ExitMarkerMissing},
		{"io", NewIOError("reading", "src/app.ts", fs.ErrPermission), ExitIO},
		{"invalid layout", NewInvalidLayoutError("../x.ts", "escapes the project root"), ExitIO},
		{"wrapped", fmt.Errorf("create module: %w", NewMarkerMissingError("src/app.ts", "x")), ExitMarkerMissing},
		{"unknown", errors.New("boom"), ExitGeneral},
		{"cancelled", context.Canceled, ExitGeneral},
		{"explicit", &ExitError{Code: 7}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestNewExitError(t *testing.T) {
	assert.Nil(t, NewExitError(nil))

	inner := NewNotAProjectRootError("/tmp")
	err := NewExitError(inner)

	var exitErr *ExitError
	assert.True(t, errors.As(err, &exitErr))
	assert.Equal(t, ExitNotAProjectRoot, exitErr.Code)
	assert.Equal(t, inner.Error(), err.Error())
	assert.True(t, errors.Is(err, ErrNotAProjectRoot))

	assert.Same(t, err, NewExitError(err), "already wrapped errors are returned as is")
}

func TestExitError_Message(t *testing.T) {
	assert.Equal(t, "exit status 3", (&ExitError{Code: 3}).Error())
}
