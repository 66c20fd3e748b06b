package generator

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Operation represents a file system operation that can be validated and executed.
//
// Validate checks if the operation would succeed without executing it and
// must not touch the file system. force=true skips conflict checks
// (e.g., file already exists).
//
// Execute performs the actual operation. This should only be called after Validate succeeds.
//
// Description returns a human-readable description for output (e.g., "Create src/app.ts (734 bytes)").
type Operation interface {
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context) error
	Description() string
}

// File is a rendered template: a slash-separated path relative to some
// root directory and its content.
type File struct {
	Path    string
	Content []byte
}

// MkdirOp creates a directory and any missing parents.
type MkdirOp struct {
	Path string
	Mode fs.FileMode
}

func (op *MkdirOp) Validate(ctx context.Context, force bool) error {
	info, err := os.Stat(op.Path)
	if err == nil && !info.IsDir() {
		return fmt.Errorf("not a directory: %s", op.Path)
	}
	return nil
}

func (op *MkdirOp) Execute(ctx context.Context) error {
	mode := op.Mode
	if mode == 0 {
		mode = 0755
	}
	return os.MkdirAll(op.Path, mode)
}

func (op *MkdirOp) Description() string {
	return fmt.Sprintf("Create %s/", op.Path)
}

// WriteFileOp creates a new file with content.
//
// Validation behavior:
//   - Checks for file conflicts unless force=true
//   - Allows empty content (zero bytes) but rejects nil content
//
// Execution behavior:
//   - Creates parent directories if needed
//   - Writes file with specified Mode
type WriteFileOp struct {
	Path    string      // File path to create
	Content []byte      // File content (can be empty, must not be nil)
	Mode    fs.FileMode // File permissions (e.g., 0644)
}

func (op *WriteFileOp) Validate(ctx context.Context, force bool) error {
	if !force {
		if _, err := os.Stat(op.Path); err == nil {
			return fmt.Errorf("file already exists: %s", op.Path)
		}
	}

	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}

	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	dir := filepath.Dir(op.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	mode := op.Mode
	if mode == 0 {
		mode = 0644
	}
	return os.WriteFile(op.Path, op.Content, mode)
}

func (op *WriteFileOp) Description() string {
	return fmt.Sprintf("Create %s (%d bytes)", op.Path, len(op.Content))
}

// WriteOps turns rendered files into write operations rooted at root.
func WriteOps(root string, files []File) []Operation {
	ops := make([]Operation, 0, len(files))
	for _, f := range files {
		ops = append(ops, &WriteFileOp{
			Path:    filepath.Join(root, filepath.FromSlash(f.Path)),
			Content: f.Content,
			Mode:    0644,
		})
	}
	return ops
}
