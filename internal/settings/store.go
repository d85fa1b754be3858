// Package settings reads and writes the project's version and product name.
// A Store hides the on-disk format: the engine's ProjectSettings.asset, a
// TOML or INI file, or an in-memory value for tests and dry runs.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendUnity  = "unity"
	BackendTOML   = "toml"
	BackendINI    = "ini"
	BackendMemory = "memory"
)

// DefaultUnityPath is the settings asset relative to the project root.
var DefaultUnityPath = filepath.Join("ProjectSettings", "ProjectSettings.asset")

// ErrKeyNotFound is returned when the settings file lacks a required key.
var ErrKeyNotFound = errors.New("settings key not found")

// Store is the get/set capability the version editor depends on.
type Store interface {
	// Version returns the raw stored version string.
	Version() (string, error)
	// SetVersion replaces the stored version string.
	SetVersion(v string) error
	// ProductName returns the product name used in patch note file names.
	ProductName() (string, error)
	// Path returns the backing file, or "" for stores without one.
	Path() string
}

// Options selects and locates a backend.
type Options struct {
	Backend string
	// Path is the settings file. Relative paths resolve against Root.
	Path string
	Root string
	// Section is the INI section holding the keys.
	Section string
	// ProductName seeds the memory backend.
	ProductName string
	// Version seeds the memory backend.
	Version string
}

// Open returns the Store described by opts.
func Open(opts Options) (Store, error) {
	backend := strings.ToLower(strings.TrimSpace(opts.Backend))
	if backend == "" {
		backend = BackendUnity
	}

	path := opts.Path
	if path == "" {
		switch backend {
		case BackendUnity:
			path = DefaultUnityPath
		case BackendTOML:
			path = "version.toml"
		case BackendINI:
			path = "version.ini"
		}
	}
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(opts.Root, path)
	}

	switch backend {
	case BackendUnity:
		return NewUnityStore(path), nil
	case BackendTOML:
		return NewTOMLStore(path), nil
	case BackendINI:
		return NewINIStore(path, opts.Section), nil
	case BackendMemory:
		return NewMemoryStore(opts.ProductName, opts.Version), nil
	default:
		return nil, fmt.Errorf("unknown settings backend %q", opts.Backend)
	}
}

// writeFileAtomic replaces path with data via a temp file in the same
// directory, keeping the existing file mode when there is one.
func writeFileAtomic(path string, data []byte) error {
	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
