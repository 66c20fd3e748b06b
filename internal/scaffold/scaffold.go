// Package scaffold creates new Express + TypeScript projects.
//
// A project is created in a fixed order: directories, dependency installs,
// then every file at once. package.json is built from the versions that
// actually landed in node_modules, so it can only be written after the
// installs finish. Nothing is rolled back on failure.
package scaffold

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/simonhull/firebird-suite/kestrel"
	kerrors "github.com/simonhull/firebird-suite/kestrel/internal/errors"
	"github.com/simonhull/firebird-suite/kestrel/internal/generator"
	"github.com/simonhull/firebird-suite/kestrel/internal/hooks"
	"github.com/simonhull/firebird-suite/kestrel/internal/installer"
	"github.com/simonhull/firebird-suite/kestrel/internal/manifest"
	"github.com/simonhull/firebird-suite/kestrel/internal/output"
	"github.com/simonhull/firebird-suite/kestrel/internal/project"
)

// DefaultDependencies are installed as runtime dependencies.
var DefaultDependencies = []string{
	"cors",
	"dotenv",
	"express",
	"mongoose",
	"pino",
	"pino-http",
	"pino-pretty",
	"zod",
}

// DefaultDevDependencies are installed with --save-dev.
var DefaultDevDependencies = []string{
	"@types/pino-http",
	"typescript",
	"@types/cors",
	"@types/express",
	"@types/node",
	"@typescript-eslint/eslint-plugin",
	"@typescript-eslint/parser",
	"eslint",
	"eslint-config-prettier",
	"eslint-plugin-prettier",
	"husky",
	"lint-staged",
	"nodemon",
	"prettier",
	"ts-node",
}

// npm rejects names longer than this.
const maxNameLength = 214

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// Runner runs external commands for the installer and the hooks step.
type Runner interface {
	RunIn(ctx context.Context, dir, message, name string, args ...string) error
}

// Options configures a Scaffolder.
type Options struct {
	// Dir is the directory the project is created in. Empty means the
	// current working directory.
	Dir string

	NPM string
	NPX string

	// Nil lists fall back to DefaultDependencies and DefaultDevDependencies.
	Dependencies    []string
	DevDependencies []string

	SkipInstall bool
	SkipHooks   bool

	// Writer receives one line per file system operation.
	Writer io.Writer
}

// Summary describes a finished project.
type Summary struct {
	Name string
	Root string

	Dependencies    *installer.Result
	DevDependencies *installer.Result

	// ManifestIssues lists schema violations found in the written
	// package.json. They are reported, not fatal.
	ManifestIssues []manifest.ValidationIssue

	// HooksErr is set when git hook setup failed.
	HooksErr error
}

// Partial returns the packages that failed to install, or nil if every
// package installed.
func (s *Summary) Partial() *kerrors.PartialInstallError {
	var deps, devDeps []string
	if s.Dependencies != nil {
		deps = s.Dependencies.Failed
	}
	if s.DevDependencies != nil {
		devDeps = s.DevDependencies.Failed
	}
	if len(deps) == 0 && len(devDeps) == 0 {
		return nil
	}
	return &kerrors.PartialInstallError{Dependencies: deps, DevDependencies: devDeps}
}

// Scaffolder creates projects.
type Scaffolder struct {
	runner    Runner
	installer *installer.Installer
	renderer  *generator.Renderer
	opts      Options
}

// NewScaffolder creates a new project scaffolder
func NewScaffolder(runner Runner, opts Options) *Scaffolder {
	if opts.Dependencies == nil {
		opts.Dependencies = DefaultDependencies
	}
	if opts.DevDependencies == nil {
		opts.DevDependencies = DefaultDevDependencies
	}
	if opts.Writer == nil {
		opts.Writer = output.Writer()
	}

	return &Scaffolder{
		runner:    runner,
		installer: installer.New(runner, opts.NPM),
		renderer:  generator.NewRenderer(),
		opts:      opts,
	}
}

// ValidateName checks that name is usable both as a directory and as an
// npm package name.
func ValidateName(name string) error {
	if name == "" {
		return kerrors.NewInvalidNameError("project", name, "Provide a project name, e.g. 'kestrel create project my-api'")
	}
	if len(name) > maxNameLength || !namePattern.MatchString(name) {
		return kerrors.NewInvalidNameError("project", name,
			"Use lowercase letters, digits, '-', '_' and '.', starting with a letter or digit")
	}
	return nil
}

// Scaffold creates the project name inside the configured directory.
//
// Install failures are not errors: they are listed in the summary and the
// project is still written. The returned error covers invalid names, an
// existing target, file system failures and cancellation.
func (s *Scaffolder) Scaffold(ctx context.Context, name string) (*Summary, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	root := filepath.Join(s.opts.Dir, name)
	if _, err := os.Stat(root); err == nil {
		return nil, kerrors.NewAlreadyExistsError(
			fmt.Sprintf("directory %q already exists", name),
			root,
			"Choose another name or remove the existing directory",
		)
	}

	layout, err := NewLayout(s.renderer, name)
	if err != nil {
		return nil, err
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	output.Verbose("creating project", "name", name, "root", root)

	if err := generator.Execute(ctx, layout.MkdirOps(root), generator.ExecuteOptions{Writer: s.opts.Writer}); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, kerrors.NewIOError("creating project directories", root, err)
	}

	summary := &Summary{
		Name:            name,
		Root:            root,
		Dependencies:    &installer.Result{Versions: map[string]string{}},
		DevDependencies: &installer.Result{Versions: map[string]string{}},
	}

	if !s.opts.SkipInstall {
		if err := s.install(ctx, summary); err != nil {
			return summary, err
		}
	}

	pkg, err := s.packageJSON(summary)
	if err != nil {
		return summary, err
	}
	sidecar, err := project.New(name, kestrel.Version).Marshal()
	if err != nil {
		return summary, err
	}

	files := append(layout.Files,
		generator.File{Path: "package.json", Content: pkg},
		generator.File{Path: project.ConfigFile, Content: sidecar},
	)

	// npm may leave files behind in the new root; they are ours to replace.
	opts := generator.ExecuteOptions{Force: true, Writer: s.opts.Writer}
	if err := generator.Execute(ctx, generator.WriteOps(root, files), opts); err != nil {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}
		return summary, kerrors.NewIOError("writing project files", root, err)
	}

	if !s.opts.SkipHooks {
		hookOpts := hooks.Options{NPM: s.opts.NPM, NPX: s.opts.NPX}
		if err := hooks.Init(ctx, s.runner, root, hookOpts); err != nil {
			summary.HooksErr = err
			output.Warn(fmt.Sprintf("Git hooks were not set up: %v", err))
		}
	}

	return summary, nil
}

func (s *Scaffolder) install(ctx context.Context, summary *Summary) error {
	output.Info(fmt.Sprintf("Installing %d dependencies", len(s.opts.Dependencies)))
	deps, err := s.installer.InstallBatch(ctx, s.opts.Dependencies, false, summary.Root)
	summary.Dependencies = deps
	if err != nil {
		return kerrors.Wrap(err, "installing dependencies")
	}

	output.Info(fmt.Sprintf("Installing %d dev dependencies", len(s.opts.DevDependencies)))
	devDeps, err := s.installer.InstallBatch(ctx, s.opts.DevDependencies, true, summary.Root)
	summary.DevDependencies = devDeps
	if err != nil {
		return kerrors.Wrap(err, "installing dev dependencies")
	}

	return nil
}

func (s *Scaffolder) packageJSON(summary *Summary) ([]byte, error) {
	m := manifest.New(summary.Name)
	m.AddDependencies(summary.Dependencies.Versions, summary.DevDependencies.Versions)

	data, err := m.Marshal()
	if err != nil {
		return nil, err
	}

	res, err := manifest.Validate(data)
	if err != nil {
		return nil, err
	}
	if !res.Valid {
		summary.ManifestIssues = res.Issues
		for _, issue := range res.Issues {
			output.Warn("package.json: " + issue.String())
		}
	}

	return data, nil
}
