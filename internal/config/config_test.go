package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, key := range []string{"NPM", "NPX", "SKIP_HOOKS", "VERBOSE", "DEPENDENCIES", "DEV_DEPENDENCIES"} {
		t.Setenv(EnvPrefix+"_"+key, "")
		os.Unsetenv(EnvPrefix + "_" + key)
	}
	return dir
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestFilePath_UsesXDG(t *testing.T) {
	dir := isolate(t)

	path, err := FilePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "kestrel", "config.yaml"), path)
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "npm", cfg.NPM)
	assert.Equal(t, "npx", cfg.NPX)
	assert.False(t, cfg.SkipHooks)
	assert.False(t, cfg.Verbose)
	assert.Nil(t, cfg.Dependencies)
	assert.Nil(t, cfg.DevDependencies)
	assert.Empty(t, cfg.File)
}

func TestLoad_DefaultFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "kestrel", "config.yaml")
	writeConfig(t, path, `npm: /opt/node/bin/npm
skip_hooks: true
dependencies:
  - express
  - zod
`)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/opt/node/bin/npm", cfg.NPM)
	assert.Equal(t, "npx", cfg.NPX)
	assert.True(t, cfg.SkipHooks)
	assert.Equal(t, []string{"express", "zod"}, cfg.Dependencies)
	assert.Nil(t, cfg.DevDependencies)
	assert.Equal(t, path, cfg.File)
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeConfig(t, path, "verbose: true\ndev_dependencies: [typescript]\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, []string{"typescript"}, cfg.DevDependencies)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_InvalidFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeConfig(t, path, "npm: [unterminated\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, filepath.Join(dir, "kestrel", "config.yaml"), "npm: from-file\n")

	t.Setenv("KESTREL_NPM", "from-env")
	t.Setenv("KESTREL_SKIP_HOOKS", "true")
	t.Setenv("KESTREL_DEPENDENCIES", "express,cors")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.NPM)
	assert.True(t, cfg.SkipHooks)
	assert.Equal(t, []string{"express", "cors"}, cfg.Dependencies)
}
