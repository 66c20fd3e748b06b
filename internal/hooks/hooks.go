// Package hooks sets up husky and lint-staged in a generated project.
package hooks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/simonhull/firebird-suite/kestrel/internal/output"
)

// PreCommit is the content of .husky/pre-commit.
const PreCommit = "npx lint-staged\n"

// Runner runs a command in a directory.
type Runner interface {
	RunIn(ctx context.Context, dir, message, name string, args ...string) error
}

// Options names the executables used by Init.
type Options struct {
	NPM string
	NPX string
}

// Init installs husky, runs `husky init` and points the pre-commit hook at
// lint-staged. Callers treat a returned error as a warning.
func Init(ctx context.Context, runner Runner, root string, opts Options) error {
	npm, npx := opts.NPM, opts.NPX
	if npm == "" {
		npm = "npm"
	}
	if npx == "" {
		npx = "npx"
	}

	output.Verbose("setting up git hooks", "root", root)

	if err := runner.RunIn(ctx, root, "Installing husky", npm, "install", "husky", "--save-dev"); err != nil {
		return fmt.Errorf("installing husky: %w", err)
	}
	if err := runner.RunIn(ctx, root, "Initializing husky", npx, "husky", "init"); err != nil {
		return fmt.Errorf("initializing husky: %w", err)
	}

	dir := filepath.Join(root, ".husky")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	// husky init writes a default hook that runs `npm test`.
	path := filepath.Join(dir, "pre-commit")
	if err := os.WriteFile(path, []byte(PreCommit), 0755); err != nil {
		return fmt.Errorf("writing pre-commit hook: %w", err)
	}
	if err := os.Chmod(path, 0755); err != nil {
		return fmt.Errorf("making pre-commit hook executable: %w", err)
	}

	return nil
}
