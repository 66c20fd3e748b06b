// Package manifest builds the package.json of a generated project.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
)

// Manifest is the package.json written for a new project. Field order here
// is the key order in the file; map keys are written sorted, so the same
// install results always produce the same bytes.
type Manifest struct {
	Name            string              `json:"name"`
	Version         string              `json:"version"`
	Description     string              `json:"description"`
	Main            string              `json:"main"`
	Type            string              `json:"type"`
	Scripts         map[string]string   `json:"scripts"`
	Keywords        []string            `json:"keywords"`
	Author          string              `json:"author"`
	License         string              `json:"license"`
	Dependencies    map[string]string   `json:"dependencies"`
	DevDependencies map[string]string   `json:"devDependencies"`
	LintStaged      map[string][]string `json:"lint-staged"`
}

// New returns the manifest template for a project with empty dependency maps.
func New(name string) *Manifest {
	return &Manifest{
		Name:        name,
		Version:     "1.0.0",
		Description: "Express + TypeScript backend generated by kestrel",
		Main:        "dist/server.js",
		Type:        "commonjs",
		Scripts: map[string]string{
			"start":   "node dist/server.js",
			"dev":     "nodemon",
			"build":   "tsc",
			"lint":    "eslint src --fix",
			"format":  "prettier --write \"src/**/*.ts\"",
			"prepare": "husky",
		},
		Keywords:        []string{},
		Author:          "",
		License:         "ISC",
		Dependencies:    map[string]string{},
		DevDependencies: map[string]string{},
		LintStaged: map[string][]string{
			"src/**/*.ts": {"eslint --fix", "prettier --write"},
		},
	}
}

// AddDependencies merges resolved versions into the manifest.
func (m *Manifest) AddDependencies(deps, devDeps map[string]string) {
	maps.Copy(m.Dependencies, deps)
	maps.Copy(m.DevDependencies, devDeps)
}

// Marshal encodes the manifest as two-space indented JSON with a trailing
// newline, the way npm writes it.
func (m *Manifest) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encoding package.json: %w", err)
	}
	return buf.Bytes(), nil
}
