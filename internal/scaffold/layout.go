package scaffold

import (
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"

	kerrors "github.com/simonhull/firebird-suite/kestrel/internal/errors"
	"github.com/simonhull/firebird-suite/kestrel/internal/generator"
	"github.com/simonhull/firebird-suite/kestrel/internal/templates"
)

// Layout is the directory skeleton and static files of a project. Paths are
// slash-separated and relative to the project root.
type Layout struct {
	Dirs  []string
	Files []generator.File
}

// NewLayout renders the project templates for name.
func NewLayout(r *generator.Renderer, name string) (*Layout, error) {
	files, err := templates.Project(r, templates.ProjectData{Name: name})
	if err != nil {
		return nil, fmt.Errorf("rendering project templates: %w", err)
	}

	return &Layout{
		Dirs:  append([]string(nil), templates.ProjectDirs...),
		Files: files,
	}, nil
}

// Validate checks that every file lands directly in the project root or in
// a declared directory.
func (l *Layout) Validate() error {
	for _, f := range l.Files {
		p := path.Clean(f.Path)
		if path.IsAbs(p) || p == ".." || strings.HasPrefix(p, "../") {
			return kerrors.NewInvalidLayoutError(f.Path, "escapes the project root")
		}

		dir := path.Dir(p)
		if dir == "." || slices.Contains(l.Dirs, dir) {
			continue
		}
		return kerrors.NewInvalidLayoutError(f.Path, fmt.Sprintf("directory %q is not declared", dir))
	}
	return nil
}

// MkdirOps returns operations creating root followed by every declared
// directory.
func (l *Layout) MkdirOps(root string) []generator.Operation {
	ops := make([]generator.Operation, 0, len(l.Dirs)+1)
	ops = append(ops, &generator.MkdirOp{Path: root, Mode: 0755})
	for _, d := range l.Dirs {
		ops = append(ops, &generator.MkdirOp{Path: filepath.Join(root, filepath.FromSlash(d)), Mode: 0755})
	}
	return ops
}
