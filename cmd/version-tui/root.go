package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/litescript/ls-version-tui/internal/config"
	"github.com/litescript/ls-version-tui/internal/editor"
	"github.com/litescript/ls-version-tui/internal/notes"
	"github.com/litescript/ls-version-tui/internal/settings"
	"github.com/litescript/ls-version-tui/internal/tui"
	"github.com/litescript/ls-version-tui/internal/version"
	"github.com/spf13/cobra"
)

// rootOptions are the persistent flags shared by every command
type rootOptions struct {
	configPath string
	project    string
	backend    string
	logFile    string
	logLevel   string
}

func (o *rootOptions) resolveConfigPath() string {
	if o.configPath != "" {
		return o.configPath
	}
	return config.ConfigPath()
}

// override applies the flags that were set on top of cfg
func (o *rootOptions) override(cfg *config.Config) {
	if o.project != "" {
		cfg.Project.Root = o.project
	}
	if o.backend != "" {
		cfg.Settings.Backend = o.backend
	}
	if o.logFile != "" {
		cfg.Log.File = o.logFile
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "version-tui",
		Short: "Bump the project version and record patch notes",
		Long: `version-tui edits the semantic version stored in a project's settings
and writes the patch notes for each release to
<project>/PatchNotes/<product> - v<version> patch notes.txt.

Run without a command to open the interactive editor. The notes file is
written first; the settings are only updated once the notes are on disk.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/version-tui/config.toml)")
	flags.StringVarP(&opts.project, "project", "C", "", "project root directory")
	flags.StringVar(&opts.backend, "backend", "", "settings backend: unity, toml or ini")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	cmd.AddCommand(newShowCommand(opts))
	cmd.AddCommand(newBumpCommand(opts))
	cmd.AddCommand(newHistoryCommand(opts))
	cmd.AddCommand(newVersionCommand())
	cmd.AddCommand(newConfigCommand(opts))

	return cmd
}

// session is everything a command needs to work on one project
type session struct {
	cfg      config.Config
	logger   *slog.Logger
	store    settings.Store
	writer   *notes.Writer
	tool     *editor.Tool
	closeLog func()
}

func (s *session) Close() {
	if s.closeLog != nil {
		s.closeLog()
	}
}

// openSession loads config, applies flag overrides and wires the editor.
// The current version is not loaded; callers decide how to report that.
func openSession(opts *rootOptions) (*session, error) {
	cfg, err := config.LoadFrom(opts.resolveConfigPath())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	opts.override(&cfg)

	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	storeOpts, err := cfg.StoreOptions()
	if err != nil {
		closeLog()
		return nil, err
	}
	store, err := settings.Open(storeOpts)
	if err != nil {
		closeLog()
		return nil, err
	}

	notesDir, err := cfg.NotesDir()
	if err != nil {
		closeLog()
		return nil, err
	}
	writer := notes.NewWriter(notesDir)

	tool := editor.New(store, writer,
		editor.WithLogger(logger),
		editor.WithProductName(cfg.Project.ProductName),
	)

	logger.Debug("session opened", "root", storeOpts.Root, "backend", cfg.Settings.Backend, "settings", store.Path(), "notes", notesDir)

	return &session{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		writer:   writer,
		tool:     tool,
		closeLog: closeLog,
	}, nil
}

// newLogger builds the slog logger. Without a file logs are discarded since
// the TUI owns the terminal.
func newLogger(cfg config.LogConfig) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	if cfg.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: level,
	}))
	return logger, func() { f.Close() }, nil
}

func runTUI(opts *rootOptions) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.Close()

	// Create and run TUI
	model := tui.NewModel(s.tool, tui.Options{
		NotesDir: s.writer.Dir,
		Logger:   s.logger,
		Checker:  version.NewChecker(),
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Start settings watcher
	if s.cfg.Settings.Watch && s.store.Path() != "" {
		w, err := settings.NewWatcher(s.store.Path(), func() {
			p.Send(tui.SettingsChangedMsg{})
		})
		if err != nil {
			s.logger.Warn("settings watcher unavailable", "path", s.store.Path(), "error", err)
		} else {
			defer w.Stop()
		}
	}

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
