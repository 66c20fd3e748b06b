//nolint:revive // Package name matches the package it tests
package errors

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailError_Is(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"already exists", NewAlreadyExistsError("directory exists", "/tmp/demo", ""), ErrAlreadyExists},
		{"not a project root", NewNotAProjectRootError("/tmp"), ErrNotAProjectRoot},
		{"marker missing", NewMarkerMissingError("src/app.ts", "// <new-route-here>"), ErrMarkerMissing},
		{"io", NewIOError("reading file", "src/app.ts", fs.ErrNotExist), ErrIO},
		{"invalid name", NewInvalidNameError("module", "9lives", ""), ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.sentinel))
		})
	}
}

func TestDetailError_UnwrapsUnderlying(t *testing.T) {
	err := NewIOError("reading file", "src/app.ts", fs.ErrPermission)

	assert.True(t, errors.Is(err, ErrIO))
	assert.True(t, errors.Is(err, fs.ErrPermission))
	assert.False(t, errors.Is(err, ErrMarkerMissing))
}

func TestDetailError_Format(t *testing.T) {
	err := NewMarkerMissingError("src/app.ts", "// <new-import-here>")

	var de *DetailError
	require.True(t, errors.As(err, &de))

	msg := err.Error()
	assert.Contains(t, msg, "marker missing")
	assert.Contains(t, msg, `"// <new-import-here>" not found`)
	assert.Contains(t, msg, "Location: src/app.ts")
	assert.Contains(t, msg, "Hint:")
}

func TestWrap(t *testing.T) {
	err := Wrap(ErrIO, "writing package.json")

	assert.True(t, errors.Is(err, ErrIO))
	assert.Equal(t, "writing package.json: i/o error", err.Error())
}

func TestInvalidLayoutError(t *testing.T) {
	err := NewInvalidLayoutError("src/routes/index.ts", `directory "src/routes" is not declared`)

	assert.True(t, errors.Is(err, ErrInvalidLayout))
	assert.Contains(t, err.Error(), "invalid layout")
	assert.Contains(t, err.Error(), "Location: src/routes/index.ts")
}

func TestPartialInstallError(t *testing.T) {
	err := &PartialInstallError{
		Dependencies:    []string{"zod"},
		DevDependencies: []string{"nodemon", "eslint"},
	}

	assert.Equal(t, 3, err.Count())
	assert.Equal(t, "3 package(s) failed to install (dependencies: zod; devDependencies: nodemon, eslint)", err.Error())
}
