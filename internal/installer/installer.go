// Package installer installs npm packages one at a time and records the
// version that actually landed in node_modules.
package installer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/simonhull/firebird-suite/kestrel/internal/output"
)

// Runner runs a command in a directory. message labels the command for
// progress display and may be empty.
type Runner interface {
	RunIn(ctx context.Context, dir, message, name string, args ...string) error
}

// PackageSpec identifies a package to install.
type PackageSpec struct {
	Name string
	Dev  bool
}

// Result partitions a batch: every distinct requested name appears either
// in Failed or as a key of Versions, never both.
type Result struct {
	Failed   []string          // in the order failures happened
	Versions map[string]string // name → "^x.y.z"
}

// Succeeded reports whether no package failed.
func (r *Result) Succeeded() bool {
	return len(r.Failed) == 0
}

// Installer drives npm.
type Installer struct {
	runner Runner
	npm    string
}

// New returns an Installer that invokes npm through runner. An empty npm
// path means "npm" from PATH.
func New(runner Runner, npm string) *Installer {
	if npm == "" {
		npm = "npm"
	}
	return &Installer{runner: runner, npm: npm}
}

// InstallBatch installs names into dir sequentially with
// `npm install [--save-dev] <name> --no-save`. A failing package never stops
// the batch. One progress line is printed per package.
//
// Duplicate names are installed once, so the partition holds over distinct
// names: every distinct name in names is either in Failed or a key of
// Versions, and |Failed| + |Versions| equals the number of distinct names.
//
// The returned error is non-nil only when ctx is done; the Result then holds
// the packages processed so far, with the rest listed as failed.
func (i *Installer) InstallBatch(ctx context.Context, names []string, dev bool, dir string) (*Result, error) {
	res := &Result{Versions: make(map[string]string, len(names))}
	seen := make(map[string]bool, len(names))

	for idx, name := range names {
		if seen[name] {
			continue
		}
		if err := ctx.Err(); err != nil {
			for _, n := range names[idx:] {
				if !seen[n] {
					seen[n] = true
					res.Failed = append(res.Failed, n)
				}
			}
			return res, err
		}
		seen[name] = true

		version, err := i.install(ctx, PackageSpec{Name: name, Dev: dev}, dir)
		if err != nil {
			output.Verbose("package failed", "name", name, "err", err)
			output.Error("Failed to install " + name)
			res.Failed = append(res.Failed, name)
			continue
		}

		output.Verbose("package installed", "name", name, "version", version)
		output.Step(fmt.Sprintf("Installed %s@%s", name, strings.TrimPrefix(version, "^")))
		res.Versions[name] = version
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}
	return res, nil
}

func (i *Installer) install(ctx context.Context, pkg PackageSpec, dir string) (string, error) {
	args := []string{"install"}
	if pkg.Dev {
		args = append(args, "--save-dev")
	}
	args = append(args, pkg.Name, "--no-save")

	if err := i.runner.RunIn(ctx, dir, "Installing "+pkg.Name, i.npm, args...); err != nil {
		return "", err
	}

	moduleDir := filepath.Join(dir, "node_modules", filepath.FromSlash(ModuleDir(pkg.Name)))
	if _, err := os.Stat(moduleDir); err != nil {
		return "", fmt.Errorf("verification failed: %s not found in node_modules: %w", pkg.Name, err)
	}

	return InstalledVersion(moduleDir)
}

// ModuleDir returns the node_modules-relative directory of a package:
// "@scope/name/sub" → "@scope/name", "express" → "express".
func ModuleDir(name string) string {
	parts := strings.Split(name, "/")
	if strings.HasPrefix(name, "@") && len(parts) >= 2 {
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}

// InstalledVersion reads the package.json in moduleDir and returns its
// version as a caret range.
func InstalledVersion(moduleDir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(moduleDir, "package.json"))
	if err != nil {
		return "", fmt.Errorf("reading installed package.json: %w", err)
	}

	var pkg struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return "", fmt.Errorf("parsing installed package.json: %w", err)
	}
	if pkg.Version == "" {
		return "", errors.New("installed package.json has no version")
	}

	v, err := semver.StrictNewVersion(pkg.Version)
	if err != nil {
		return "", fmt.Errorf("invalid version %q: %w", pkg.Version, err)
	}
	return "^" + v.String(), nil
}
