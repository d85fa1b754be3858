// Package editor holds the version editing session: a pending version the
// user bumps, the current version read from the settings store, and the
// patch notes that get written when the bump is applied.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/litescript/ls-version-tui/internal/notes"
	"github.com/litescript/ls-version-tui/internal/semver"
	"github.com/litescript/ls-version-tui/internal/settings"
)

var (
	// ErrNotReady is returned by Apply when the pending version is not
	// newer than the current one or the notes are empty.
	ErrNotReady = errors.New("nothing to apply: bump the version and write patch notes first")

	// ErrNotLoaded is returned by Apply when the last Reset failed, so the
	// stored version is unknown.
	ErrNotLoaded = errors.New("current version not loaded")

	// ErrApplyInFlight is returned by Apply while a previous Apply runs.
	ErrApplyInFlight = errors.New("apply already in progress")

	// ErrIO marks filesystem and settings-store failures during Apply.
	ErrIO = errors.New("apply failed")
)

// Result describes a completed Apply.
type Result struct {
	Product   string
	Version   semver.Version
	NotesPath string
	Duration  time.Duration
}

// Tool is one editing session. All methods are safe for concurrent use.
type Tool struct {
	store   settings.Store
	writer  *notes.Writer
	product string // overrides the store's product name when set
	logger  *slog.Logger

	mu       sync.Mutex
	current  semver.Version
	pending  semver.Version
	notes    string
	loaded   bool // last Reset succeeded
	applying bool
}

// Option configures a Tool.
type Option func(*Tool)

// WithLogger sets the logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tool) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithProductName overrides the product name read from the store.
func WithProductName(name string) Option {
	return func(t *Tool) {
		t.product = name
	}
}

// New creates a Tool. Call Reset before use to load the current version.
func New(store settings.Store, writer *notes.Writer, opts ...Option) *Tool {
	t := &Tool{
		store:  store,
		writer: writer,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Reset reloads the current version from the store and makes it the
// pending version. Notes are kept. On failure the session is unloaded until
// a later Reset succeeds: bumps are ignored and Apply returns ErrNotLoaded.
func (t *Tool) Reset() error {
	v, err := t.load()

	t.mu.Lock()
	if err != nil {
		t.current = semver.Version{}
		t.pending = semver.Version{}
		t.loaded = false
		t.mu.Unlock()
		return err
	}
	t.current = v
	t.pending = v
	t.loaded = true
	t.mu.Unlock()

	t.logger.Debug("version reset", "current", v.String(), "store", t.store.Path())
	return nil
}

func (t *Tool) load() (semver.Version, error) {
	raw, err := t.store.Version()
	if err != nil {
		return semver.Version{}, fmt.Errorf("read version: %w", err)
	}

	v, err := semver.Parse(raw)
	if err != nil {
		return semver.Version{}, fmt.Errorf("stored version: %w", err)
	}
	return v, nil
}

// IncrementMajor bumps major and zeroes minor and patch.
func (t *Tool) IncrementMajor() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.loaded {
		t.pending = t.pending.BumpMajor()
	}
}

// IncrementMinor bumps minor and zeroes patch.
func (t *Tool) IncrementMinor() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.loaded {
		t.pending = t.pending.BumpMinor()
	}
}

// IncrementPatch bumps patch.
func (t *Tool) IncrementPatch() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.loaded {
		t.pending = t.pending.BumpPatch()
	}
}

// SetNotes replaces the patch notes.
func (t *Tool) SetNotes(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.notes = text
}

// Notes returns the patch notes.
func (t *Tool) Notes() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.notes
}

// Pending returns the version being edited.
func (t *Tool) Pending() semver.Version {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// Current returns the version last read from the store.
func (t *Tool) Current() semver.Version {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// IsDifferent reports whether the pending version is newer than the current.
func (t *Tool) IsDifferent() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending.Greater(t.current)
}

// IsReadyToApply reports whether Apply would do anything.
func (t *Tool) IsReadyToApply() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.readyLocked()
}

// Loaded reports whether the last Reset read a valid version.
func (t *Tool) Loaded() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loaded
}

// Applying reports whether an Apply is running.
func (t *Tool) Applying() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.applying
}

func (t *Tool) readyLocked() bool {
	return t.loaded && t.pending.Greater(t.current) && t.notes != ""
}

// ProductName returns the configured override or the store's product name.
func (t *Tool) ProductName() (string, error) {
	if t.product != "" {
		return t.product, nil
	}
	name, err := t.store.ProductName()
	if err != nil {
		return "", fmt.Errorf("read product name: %w", err)
	}
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("product name is empty")
	}
	return name, nil
}

// Apply writes the patch notes file and then records the pending version in
// the store. The store is only updated once the notes are on disk; if the
// store update fails the notes file is rolled back (removed, or restored when
// notes for that version already existed). On success the session
// is reset to the new version and the notes are cleared.
func (t *Tool) Apply(ctx context.Context) (Result, error) {
	t.mu.Lock()
	if t.applying {
		t.mu.Unlock()
		return Result{}, ErrApplyInFlight
	}
	if !t.loaded {
		t.mu.Unlock()
		return Result{}, ErrNotLoaded
	}
	if !t.readyLocked() {
		t.mu.Unlock()
		return Result{}, ErrNotReady
	}
	t.applying = true
	target := t.pending
	text := t.notes
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.applying = false
		t.mu.Unlock()
	}()

	start := time.Now()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	product, err := t.ProductName()
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrIO, err)
	}

	path, undo, err := t.writer.Replace(product, target, text)
	if err != nil {
		t.logger.Error("write patch notes", "version", target.String(), "error", err)
		return Result{}, fmt.Errorf("%w: %w", ErrIO, err)
	}

	if err := t.store.SetVersion(target.String()); err != nil {
		t.logger.Error("update settings", "version", target.String(), "error", err)
		if undoErr := undo(); undoErr != nil {
			t.logger.Warn("roll back patch notes", "path", path, "error", undoErr)
		}
		return Result{}, fmt.Errorf("%w: update settings: %w", ErrIO, err)
	}

	res := Result{
		Product:   product,
		Version:   target,
		NotesPath: path,
		Duration:  time.Since(start),
	}
	t.logger.Info("version applied", "product", product, "version", target.String(), "notes", path)

	if err := t.Reset(); err != nil {
		return res, fmt.Errorf("reload after apply: %w", err)
	}
	t.SetNotes("")

	return res, nil
}
