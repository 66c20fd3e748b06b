package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	kerrors "github.com/simonhull/firebird-suite/kestrel/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad(t *testing.T) {
	root := t.TempDir()

	cfg := New("demo", "0.1.0")
	cfg.Modules["order"] = ModuleEntry{Model: true, Created: time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)}
	require.NoError(t, cfg.Save(root))

	loaded, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "demo", loaded.Project.Name)
	assert.Equal(t, "0.1.0", loaded.Project.Kestrel)
	require.Contains(t, loaded.Modules, "order")
	assert.True(t, loaded.Modules["order"].Model)
	assert.True(t, loaded.Modules["order"].Created.Equal(cfg.Modules["order"].Created))
}

func TestMarshal_Layout(t *testing.T) {
	cfg := New("demo", "0.1.0")
	cfg.Modules["user"] = ModuleEntry{Created: time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)}
	cfg.Modules["order"] = ModuleEntry{Model: true, Created: time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)}

	data, err := cfg.Marshal()
	require.NoError(t, err)

	s := string(data)
	assert.True(t, strings.HasPrefix(s, "project:\n    name: demo\n    kestrel: 0.1.0\n"), s)
	assert.Less(t, strings.Index(s, "order:"), strings.Index(s, "user:"))
}

func TestMarshal_OmitsEmptyModules(t *testing.T) {
	data, err := New("demo", "0.1.0").Marshal()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "modules")
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_Invalid(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFile), []byte("project: [\n"), 0644))

	_, err := Load(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing kestrel.yml")
}

func TestLoadOrInit_UsesDirectoryName(t *testing.T) {
	root := filepath.Join(t.TempDir(), "legacy-api")
	require.NoError(t, os.Mkdir(root, 0755))

	cfg, err := LoadOrInit(root, "0.1.0")
	require.NoError(t, err)
	assert.Equal(t, "legacy-api", cfg.Project.Name)
	assert.Empty(t, cfg.Modules)
}

func TestAddModule(t *testing.T) {
	root := t.TempDir()
	now := time.Date(2026, 10, 19, 12, 30, 15, 999, time.FixedZone("X", 3600))

	require.NoError(t, AddModule(root, "0.1.0", "order", true, now))
	require.NoError(t, AddModule(root, "0.1.0", "user", false, now))

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"order", "user"}, cfg.ModuleNames())
	assert.True(t, cfg.Modules["order"].Model)
	assert.False(t, cfg.Modules["user"].Model)
	assert.Equal(t, time.Date(2026, 10, 19, 11, 30, 15, 0, time.UTC), cfg.Modules["order"].Created.UTC())
}

func TestIsRoot(t *testing.T) {
	root := t.TempDir()
	assert.False(t, IsRoot(root))

	err := RequireRoot(root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, kerrors.ErrNotAProjectRoot))

	require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "app.ts"), 0755))
	assert.False(t, IsRoot(root), "a directory named app.ts does not count")

	other := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(other, "src"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(other, "src", "app.ts"), []byte(""), 0644))
	assert.True(t, IsRoot(other))
	assert.NoError(t, RequireRoot(other))
}
