package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/simonhull/firebird-suite/kestrel"
	kerrors "github.com/simonhull/firebird-suite/kestrel/internal/errors"
	"github.com/simonhull/firebird-suite/kestrel/internal/inject"
	"github.com/simonhull/firebird-suite/kestrel/internal/output"
	"github.com/simonhull/firebird-suite/kestrel/internal/project"
	"github.com/spf13/cobra"
)

type moduleStatus struct {
	Name       string
	Model      bool
	Created    time.Time
	Registered bool
}

// ListCmd returns the list command
func ListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List modules generated in the current project",
		Long: `Lists the modules recorded in kestrel.yml and whether src/app.ts
still imports each of them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return kerrors.NewExitError(kerrors.NewIOError("reading working directory", ".", err))
			}
			if err := project.RequireRoot(cwd); err != nil {
				return kerrors.NewExitError(err)
			}

			cfg, err := project.LoadOrInit(cwd, kestrel.Version)
			if err != nil {
				return kerrors.NewExitError(err)
			}

			appPath := filepath.Join(cwd, filepath.FromSlash(project.AppFile))
			app, err := os.ReadFile(appPath)
			if err != nil {
				return kerrors.NewExitError(kerrors.NewIOError("reading application file", appPath, err))
			}

			modules := listModules(cfg, string(app))
			if len(modules) == 0 {
				output.Info(fmt.Sprintf("No modules recorded in %s", project.ConfigFile))
				return nil
			}

			output.Markdown(modulesTable(cfg.Project.Name, modules))
			return nil
		},
	}
}

func listModules(cfg *project.Config, app string) []moduleStatus {
	modules := make([]moduleStatus, 0, len(cfg.Modules))
	for _, name := range cfg.ModuleNames() {
		entry := cfg.Modules[name]
		modules = append(modules, moduleStatus{
			Name:       name,
			Model:      entry.Model,
			Created:    entry.Created,
			Registered: inject.IsRegistered(app, name),
		})
	}
	return modules
}

func modulesTable(projectName string, modules []moduleStatus) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s modules\n\n", projectName)
	b.WriteString("| Module | Model | Route | Created |\n")
	b.WriteString("|--------|-------|-------|---------|\n")
	for _, m := range modules {
		model := "no"
		if m.Model {
			model = "yes"
		}
		route := "not registered"
		if m.Registered {
			route = "/api/v1/" + m.Name
		}
		created := "-"
		if !m.Created.IsZero() {
			created = m.Created.Format(time.DateOnly)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", m.Name, model, route, created)
	}

	return b.String()
}
