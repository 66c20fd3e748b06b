// Package inject registers generated modules in src/app.ts.
//
// The file carries two marker comments. Registering a module inserts its
// import above ImportMarker and its app.use call above RouteMarker, so both
// markers stay in place for the next module. The marker text must never
// change: projects generated by older releases depend on it.
package inject

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/simonhull/firebird-suite/kestrel/internal/errors"
)

const (
	ImportMarker = "// <new-import-here>"
	RouteMarker  = "// <new-route-here>"
)

// Outcome is the result of a successful injection.
type Outcome int

const (
	Injected Outcome = iota
	AlreadyPresent
)

func (o Outcome) String() string {
	switch o {
	case Injected:
		return "injected"
	case AlreadyPresent:
		return "already present"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// ImportLine is the statement that imports a module's routes.
func ImportLine(name string) string {
	return fmt.Sprintf("import { %sRoutes } from './modules/%s/%s.route';", name, name, name)
}

// RouteLine is the statement that mounts a module's routes.
func RouteLine(name string) string {
	return fmt.Sprintf("app.use('/api/v1/%s', %sRoutes);", name, name)
}

// IsRegistered reports whether content already imports the module.
func IsRegistered(content, name string) bool {
	return strings.Contains(content, ImportLine(name))
}

// Apply returns content with the module registered. It never touches the
// file system; path is only used in errors.
func Apply(path, content, name string) (string, Outcome, error) {
	if IsRegistered(content, name) {
		return content, AlreadyPresent, nil
	}

	for _, marker := range []string{ImportMarker, RouteMarker} {
		if !strings.Contains(content, marker) {
			return "", 0, kerrors.NewMarkerMissingError(path, marker)
		}
	}

	content = strings.Replace(content, ImportMarker, ImportLine(name)+"\n"+ImportMarker, 1)
	content = strings.Replace(content, RouteMarker, RouteLine(name)+"\n"+RouteMarker, 1)
	return content, Injected, nil
}

// Module registers name in the file at path. If the import line is already
// present the file is left untouched and AlreadyPresent is returned.
// Otherwise both lines are inserted in one read-modify-write and the file
// is replaced atomically.
func Module(path, name string) (Outcome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, kerrors.NewIOError("reading application file", path, err)
	}

	updated, outcome, err := Apply(path, string(data), name)
	if err != nil || outcome == AlreadyPresent {
		return outcome, err
	}

	if err := writeAtomic(path, []byte(updated)); err != nil {
		return 0, kerrors.NewIOError("writing application file", path, err)
	}
	return Injected, nil
}

// writeAtomic replaces path with data via a temp file in the same
// directory, keeping the original permissions.
func writeAtomic(path string, data []byte) (err error) {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
