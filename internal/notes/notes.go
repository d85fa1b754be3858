// Package notes writes and lists the per-release patch notes files kept
// beside the project, one file per product version.
package notes

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/litescript/ls-version-tui/internal/semver"
)

// DefaultDir is the notes directory relative to the project root.
const DefaultDir = "PatchNotes"

const (
	fileVersionPrefix = " - v"
	fileSuffix        = " patch notes.txt"
)

// FileName returns "<product> - v<major>.<minor>.<patch> patch notes.txt".
// The product part is passed through SanitizeFilename.
func FileName(product string, v semver.Version) string {
	return SanitizeFilename(product) + fileVersionPrefix + v.String() + fileSuffix
}

// Entry describes one notes file found on disk.
type Entry struct {
	Product  string
	Version  semver.Version
	Path     string
	Size     int64
	Modified time.Time
}

// Writer stores notes files under Dir.
type Writer struct {
	Dir string
}

// NewWriter creates a writer for dir.
func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir}
}

// PathFor returns where notes for product at v are written.
func (w *Writer) PathFor(product string, v semver.Version) string {
	return filepath.Join(w.Dir, FileName(product, v))
}

// Write stores text verbatim for product at v, replacing any existing file,
// and returns the file path.
func (w *Writer) Write(product string, v semver.Version, text string) (string, error) {
	path, _, err := w.Replace(product, v, text)
	return path, err
}

// Replace is Write plus an undo func that puts the path back the way it was:
// an earlier notes file gets its old contents, a new file is removed.
func (w *Writer) Replace(product string, v semver.Version, text string) (string, func() error, error) {
	if SanitizeFilename(product) == "" {
		return "", nil, fmt.Errorf("product name %q is not usable in a file name", product)
	}

	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return "", nil, fmt.Errorf("create notes directory: %w", err)
	}

	path := w.PathFor(product, v)

	prev, err := os.ReadFile(path)
	existed := err == nil
	if err != nil && !os.IsNotExist(err) {
		return "", nil, fmt.Errorf("read existing patch notes: %w", err)
	}

	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", nil, fmt.Errorf("write patch notes: %w", err)
	}

	undo := func() error {
		if existed {
			return os.WriteFile(path, prev, 0644)
		}
		return w.Remove(path)
	}
	return path, undo, nil
}

// Remove deletes a notes file written by Write. A missing file is not an error.
func (w *Writer) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// List returns notes files for product, newest version first.
// An empty product lists every product. A missing directory yields no entries.
func (w *Writer) List(product string) ([]Entry, error) {
	product = SanitizeFilename(product)

	dirEntries, err := os.ReadDir(w.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}

		name, v, ok := parseFileName(de.Name())
		if !ok || (product != "" && name != product) {
			continue
		}

		info, err := de.Info()
		if err != nil {
			continue
		}

		entries = append(entries, Entry{
			Product:  name,
			Version:  v,
			Path:     filepath.Join(w.Dir, de.Name()),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if c := entries[i].Version.Compare(entries[j].Version); c != 0 {
			return c > 0
		}
		return entries[i].Product < entries[j].Product
	})

	return entries, nil
}

// parseFileName splits a FileName result back into product and version.
func parseFileName(name string) (string, semver.Version, bool) {
	if !strings.HasSuffix(name, fileSuffix) {
		return "", semver.Version{}, false
	}
	stem := strings.TrimSuffix(name, fileSuffix)

	idx := strings.LastIndex(stem, fileVersionPrefix)
	if idx < 0 {
		return "", semver.Version{}, false
	}

	v, err := semver.Parse(stem[idx+len(fileVersionPrefix):])
	if err != nil {
		return "", semver.Version{}, false
	}
	return stem[:idx], v, true
}
