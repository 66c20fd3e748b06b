package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	kerrors "github.com/simonhull/firebird-suite/kestrel/internal/errors"
	"github.com/simonhull/firebird-suite/kestrel/internal/exec"
	"github.com/simonhull/firebird-suite/kestrel/internal/inject"
	"github.com/simonhull/firebird-suite/kestrel/internal/module"
	"github.com/simonhull/firebird-suite/kestrel/internal/output"
	"github.com/simonhull/firebird-suite/kestrel/internal/scaffold"
	"github.com/spf13/cobra"
)

// newRunner builds the runner used for npm and npx. The returned func
// flushes buffered output and must be called when the command finishes.
var newRunner = func() (scaffold.Runner, func()) {
	if output.IsVerbose() {
		w := exec.NewPrefixWriter(os.Stderr, "  │ ")
		e := exec.NewExecutor(&exec.Options{Stdout: w, Stderr: w})
		return e, func() { _ = w.Flush() }
	}

	e := exec.NewExecutor(&exec.Options{
		Stdout:  io.Discard,
		Stderr:  io.Discard,
		Spinner: output.IsTerminal(os.Stderr),
	})
	return e, func() {}
}

// CreateCmd returns the create command with project and module subcommands
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project or a module",
	}

	cmd.AddCommand(createProjectCmd())
	cmd.AddCommand(createModuleCmd())

	return cmd
}

func createProjectCmd() *cobra.Command {
	var skipInstall, skipHooks bool

	cmd := &cobra.Command{
		Use:     "project <name>",
		Aliases: []string{"p"},
		Short:   "Create a new Express + TypeScript project",
		Long: `Creates a new project in ./<name> with:
• Express, zod, mongoose and pino installed one package at a time
• package.json pinned to the versions that were installed
• TypeScript, ESLint, Prettier and nodemon configuration
• Git hooks running lint-staged (husky)

Packages that fail to install are listed at the end; the project is
still created.

Example:
  kestrel create project my-api`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			cwd, err := os.Getwd()
			if err != nil {
				return kerrors.NewExitError(kerrors.NewIOError("reading working directory", ".", err))
			}

			runner, done := newRunner()
			defer done()

			s := scaffold.NewScaffolder(runner, scaffold.Options{
				Dir:             cwd,
				NPM:             settings.NPM,
				NPX:             settings.NPX,
				Dependencies:    settings.Dependencies,
				DevDependencies: settings.DevDependencies,
				SkipInstall:     skipInstall,
				SkipHooks:       skipHooks || settings.SkipHooks,
			})

			output.Info(fmt.Sprintf("Creating project %s", name))

			summary, err := s.Scaffold(cmd.Context(), name)
			if err != nil {
				return kerrors.NewExitError(err)
			}

			if partial := summary.Partial(); partial != nil {
				output.Warn(fmt.Sprintf("Created project %s, but %s", name, partial.Error()))
			} else {
				output.Success(fmt.Sprintf("Created project %s", name))
			}
			output.Markdown(projectSummary(summary, skipInstall))

			return nil
		},
	}

	cmd.Flags().BoolVar(&skipInstall, "skip-install", false, "Write files without installing dependencies")
	cmd.Flags().BoolVar(&skipHooks, "skip-hooks", false, "Do not set up husky git hooks")

	return cmd
}

// projectSummary renders the end-of-run report as markdown.
func projectSummary(s *scaffold.Summary, skippedInstall bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", s.Name)
	if skippedInstall {
		b.WriteString("Dependencies were not installed.\n")
	} else {
		fmt.Fprintf(&b, "- dependencies: %d installed\n", len(s.Dependencies.Versions))
		fmt.Fprintf(&b, "- devDependencies: %d installed\n", len(s.DevDependencies.Versions))
	}

	if partial := s.Partial(); partial != nil {
		b.WriteString("\n### Failed packages\n\n")
		for _, name := range partial.Dependencies {
			fmt.Fprintf(&b, "- `%s` (dependency)\n", name)
		}
		for _, name := range partial.DevDependencies {
			fmt.Fprintf(&b, "- `%s` (devDependency)\n", name)
		}
		b.WriteString("\nInstall them manually with `npm install <package>`.\n")
	}

	if s.HooksErr != nil {
		b.WriteString("\nGit hooks were not set up. Run `npx husky init` once the project is a git repository.\n")
	}

	b.WriteString("\n### Next steps\n\n```sh\n")
	fmt.Fprintf(&b, "cd %s\n", s.Name)
	if skippedInstall {
		b.WriteString("npm install\n")
	}
	b.WriteString("npm run dev\n```\n")

	return b.String()
}

func createModuleCmd() *cobra.Command {
	var model, dryRun bool

	cmd := &cobra.Command{
		Use:     "module <name>",
		Aliases: []string{"m"},
		Short:   "Create a CRUD module in the current project",
		Long: `Creates src/modules/<name> with route, controller, validation and
service files, then registers the routes in src/app.ts at /api/v1/<name>.

With --model a mongoose model and a TypeScript interface are generated too,
and the service is backed by the model.

Run from the project root. Example:
  kestrel create module order --model`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			cwd, err := os.Getwd()
			if err != nil {
				return kerrors.NewExitError(kerrors.NewIOError("reading working directory", ".", err))
			}

			g := module.NewGenerator(cwd, nil)
			res, err := g.Generate(cmd.Context(), module.Options{Name: name, Model: model, DryRun: dryRun})
			if err != nil {
				return kerrors.NewExitError(err)
			}

			if dryRun {
				output.Info("Dry run: no files were written")
				return nil
			}

			output.Success(fmt.Sprintf("Created module %s (%d files)", name, len(res.Files)))
			switch res.Outcome {
			case inject.Injected:
				output.Step(fmt.Sprintf("Registered routes at /api/v1/%s in src/app.ts", name))
			case inject.AlreadyPresent:
				output.Info(fmt.Sprintf("src/app.ts already registers %s", name))
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&model, "model", "m", false, "Generate a mongoose model and interface")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be generated without writing files")

	return cmd
}
