// Package module generates CRUD modules inside an existing project and
// registers them in src/app.ts.
package module

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/simonhull/firebird-suite/kestrel"
	kerrors "github.com/simonhull/firebird-suite/kestrel/internal/errors"
	"github.com/simonhull/firebird-suite/kestrel/internal/generator"
	"github.com/simonhull/firebird-suite/kestrel/internal/inject"
	"github.com/simonhull/firebird-suite/kestrel/internal/output"
	"github.com/simonhull/firebird-suite/kestrel/internal/project"
	"github.com/simonhull/firebird-suite/kestrel/internal/templates"
)

// Module names become TypeScript identifiers (orderRoutes, OrderController)
// and URL segments.
var namePattern = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)

// Options configures one Generate call.
type Options struct {
	Name   string
	Model  bool
	DryRun bool
}

// Result describes a generated module.
type Result struct {
	Name  string
	Dir   string   // module directory
	Files []string // written (or planned) file paths
	// Outcome is the app.ts injection result. In a dry run it is the
	// outcome the injection would have.
	Outcome inject.Outcome
	// ConfigErr is set when kestrel.yml could not be updated.
	ConfigErr error
}

// Generator generates modules under a project root.
type Generator struct {
	root     string
	renderer *generator.Renderer
	writer   io.Writer
	now      func() time.Time
}

// NewGenerator returns a Generator for the project at root. Operation lines
// are written to w; nil means the output package writer.
func NewGenerator(root string, w io.Writer) *Generator {
	if w == nil {
		w = output.Writer()
	}
	return &Generator{
		root:     root,
		renderer: generator.NewRenderer(),
		writer:   w,
		now:      time.Now,
	}
}

// ValidateName checks that name can be used for a module.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return kerrors.NewInvalidNameError("module", name,
			"Use letters and digits only, starting with a lowercase letter, e.g. 'order' or 'userProfile'")
	}
	return nil
}

// Generate writes the module files, registers the module in src/app.ts and
// records it in kestrel.yml.
//
// Every precondition is checked before the first write: an invalid name,
// a missing src/app.ts, an existing module directory and missing markers
// all leave the project untouched.
func (g *Generator) Generate(ctx context.Context, opts Options) (*Result, error) {
	if err := ValidateName(opts.Name); err != nil {
		return nil, err
	}
	if err := project.RequireRoot(g.root); err != nil {
		return nil, err
	}

	dir := filepath.Join(g.root, "src", "modules", opts.Name)
	if _, err := os.Stat(dir); err == nil {
		return nil, kerrors.NewAlreadyExistsError(
			fmt.Sprintf("module %q already exists", opts.Name),
			dir,
			"Pick a different module name or delete the existing module directory",
		)
	}

	appPath := filepath.Join(g.root, filepath.FromSlash(project.AppFile))
	app, err := os.ReadFile(appPath)
	if err != nil {
		return nil, kerrors.NewIOError("reading application file", appPath, err)
	}
	_, outcome, err := inject.Apply(appPath, string(app), opts.Name)
	if err != nil {
		return nil, err
	}

	files, err := templates.Module(g.renderer, templates.NewModuleData(opts.Name, opts.Model))
	if err != nil {
		return nil, err
	}

	ops := generator.WriteOps(dir, files)
	result := &Result{
		Name:    opts.Name,
		Dir:     dir,
		Files:   make([]string, 0, len(files)),
		Outcome: outcome,
	}
	for _, f := range files {
		result.Files = append(result.Files, filepath.Join(dir, filepath.FromSlash(f.Path)))
	}

	output.Verbose("generating module", "name", opts.Name, "model", opts.Model, "dry_run", opts.DryRun)

	execOpts := generator.ExecuteOptions{DryRun: opts.DryRun, Writer: g.writer}
	if err := generator.Execute(ctx, ops, execOpts); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, kerrors.NewIOError("writing module files", dir, err)
	}

	if opts.DryRun {
		g.preview(appPath, opts.Name, outcome)
		return result, nil
	}

	result.Outcome, err = inject.Module(appPath, opts.Name)
	if err != nil {
		return nil, err
	}

	if err := project.AddModule(g.root, kestrel.Version, opts.Name, opts.Model, g.now()); err != nil {
		result.ConfigErr = err
		output.Warn(fmt.Sprintf("Could not update %s: %v", project.ConfigFile, err))
	}

	return result, nil
}

func (g *Generator) preview(appPath, name string, outcome inject.Outcome) {
	if outcome == inject.AlreadyPresent {
		fmt.Fprintf(g.writer, "✓ [DRY RUN] %s already registers %s\n", appPath, name)
		return
	}
	fmt.Fprintf(g.writer, "✓ [DRY RUN] Update %s\n", appPath)
	fmt.Fprintf(g.writer, "    + %s\n", inject.ImportLine(name))
	fmt.Fprintf(g.writer, "    + %s\n", inject.RouteLine(name))
}
