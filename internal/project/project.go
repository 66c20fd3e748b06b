// Package project reads and writes kestrel.yml, the sidecar that records
// which modules a generated project contains.
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	kerrors "github.com/simonhull/firebird-suite/kestrel/internal/errors"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the sidecar name at the project root.
const ConfigFile = "kestrel.yml"

// AppFile is the file whose presence marks a project root.
const AppFile = "src/app.ts"

// Config represents the kestrel.yml structure
type Config struct {
	Project Info                   `yaml:"project"`
	Modules map[string]ModuleEntry `yaml:"modules,omitempty"`
}

// Info holds project-level metadata
type Info struct {
	Name    string `yaml:"name"`
	Kestrel string `yaml:"kestrel"`
}

// ModuleEntry records one generated module
type ModuleEntry struct {
	Model   bool      `yaml:"model"`
	Created time.Time `yaml:"created"`
}

// New returns a config for a freshly scaffolded project.
func New(name, version string) *Config {
	return &Config{
		Project: Info{Name: name, Kestrel: version},
		Modules: make(map[string]ModuleEntry),
	}
}

// Load reads kestrel.yml from root.
func Load(root string) (*Config, error) {
	path := filepath.Join(root, ConfigFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ConfigFile, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigFile, err)
	}

	if cfg.Modules == nil {
		cfg.Modules = make(map[string]ModuleEntry)
	}

	return &cfg, nil
}

// LoadOrInit reads kestrel.yml from root. Projects scaffolded before the
// sidecar existed have none; for those a config named after the directory
// is returned.
func LoadOrInit(root, version string) (*Config, error) {
	cfg, err := Load(root)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	abs, absErr := filepath.Abs(root)
	if absErr != nil {
		abs = root
	}
	return New(filepath.Base(abs), version), nil
}

// Marshal encodes the config as YAML. Module keys are emitted sorted.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", ConfigFile, err)
	}
	return data, nil
}

// Save writes kestrel.yml to root.
func (c *Config) Save(root string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}

	path := filepath.Join(root, ConfigFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return kerrors.NewIOError("writing project config", path, err)
	}

	return nil
}

// ModuleNames returns the recorded module names in lexical order.
func (c *Config) ModuleNames() []string {
	names := make([]string, 0, len(c.Modules))
	for name := range c.Modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddModule records a module in root's kestrel.yml, creating the file if
// the project has none.
func AddModule(root, version, name string, model bool, now time.Time) error {
	cfg, err := LoadOrInit(root, version)
	if err != nil {
		return err
	}

	cfg.Modules[name] = ModuleEntry{
		Model:   model,
		Created: now.UTC().Truncate(time.Second),
	}

	return cfg.Save(root)
}

// IsRoot reports whether dir contains src/app.ts.
func IsRoot(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(AppFile)))
	return err == nil && !info.IsDir()
}

// RequireRoot returns ErrNotAProjectRoot unless dir is a project root.
func RequireRoot(dir string) error {
	if !IsRoot(dir) {
		return kerrors.NewNotAProjectRootError(dir)
	}
	return nil
}
