package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/litescript/ls-version-tui/internal/config"
	"github.com/litescript/ls-version-tui/internal/version"
	"github.com/spf13/cobra"
)

func newShowCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the product, current version and notes directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.tool.Reset(); err != nil {
				return err
			}
			product, err := s.tool.ProductName()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Product:  %s\n", product)
			fmt.Fprintf(out, "Version:  %s\n", s.tool.Current())
			fmt.Fprintf(out, "Settings: %s\n", s.store.Path())
			fmt.Fprintf(out, "Notes:    %s\n", s.writer.Dir)
			return nil
		},
	}
}

type bumpOptions struct {
	notes     string
	notesFile string
	dryRun    bool
}

func newBumpCommand(opts *rootOptions) *cobra.Command {
	bopts := &bumpOptions{}

	cmd := &cobra.Command{
		Use:   "bump <major|minor|patch>",
		Short: "Bump the version and write patch notes without the editor",
		Example: `  version-tui bump minor --notes "Fixed the save bug"
  git log --oneline v1.2.0.. | version-tui bump patch --notes-file -`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"major", "minor", "patch"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBump(cmd, opts, bopts, args[0])
		},
	}

	cmd.Flags().StringVarP(&bopts.notes, "notes", "n", "", "patch notes text")
	cmd.Flags().StringVarP(&bopts.notesFile, "notes-file", "F", "", "read patch notes from file (- for stdin)")
	cmd.Flags().BoolVar(&bopts.dryRun, "dry-run", false, "print what would be written")
	cmd.MarkFlagsMutuallyExclusive("notes", "notes-file")

	return cmd
}

func runBump(cmd *cobra.Command, opts *rootOptions, bopts *bumpOptions, part string) error {
	text, err := readNotes(cmd.InOrStdin(), bopts)
	if err != nil {
		return err
	}
	if text == "" {
		return errors.New("patch notes are required (--notes or --notes-file)")
	}

	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.tool.Reset(); err != nil {
		return err
	}

	switch strings.ToLower(part) {
	case "major":
		s.tool.IncrementMajor()
	case "minor":
		s.tool.IncrementMinor()
	case "patch":
		s.tool.IncrementPatch()
	default:
		return fmt.Errorf("unknown version part %q (want major, minor or patch)", part)
	}
	s.tool.SetNotes(text)

	out := cmd.OutOrStdout()
	if bopts.dryRun {
		product, err := s.tool.ProductName()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Would apply v%s -> v%s\n", s.tool.Current(), s.tool.Pending())
		fmt.Fprintf(out, "Notes: %s\n", s.writer.PathFor(product, s.tool.Pending()))
		return nil
	}

	previous := s.tool.Current()
	res, err := s.tool.Apply(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Applied v%s -> v%s\n", previous, res.Version)
	fmt.Fprintf(out, "Notes: %s\n", res.NotesPath)
	return nil
}

func readNotes(stdin io.Reader, bopts *bumpOptions) (string, error) {
	switch bopts.notesFile {
	case "":
		return bopts.notes, nil
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read notes from stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(bopts.notesFile)
		if err != nil {
			return "", fmt.Errorf("read notes file: %w", err)
		}
		return string(data), nil
	}
}

func newHistoryCommand(opts *rootOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List patch notes files, newest version first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			product := ""
			if !all {
				if product, err = s.tool.ProductName(); err != nil {
					return err
				}
			}

			entries, err := s.writer.List(product)
			if err != nil {
				return fmt.Errorf("list patch notes: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "No patch notes in %s\n", s.writer.Dir)
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(out)
			t.AppendHeader(table.Row{"Version", "Product", "Written", "Size", "File"})
			for _, e := range entries {
				t.AppendRow(table.Row{
					"v" + e.Version.String(),
					e.Product,
					e.Modified.Format("2006-01-02 15:04"),
					e.Size,
					e.Path,
				})
			}
			t.SetColumnConfigs([]table.ColumnConfig{
				{Name: "Size", Align: text.AlignRight},
			})
			t.SetStyle(table.StyleRounded)
			t.Render()
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include every product in the notes directory")

	return cmd
}

func newVersionCommand() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version-tui version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version-tui v%s\n", version.Version)
			if !check {
				return nil
			}

			info := version.NewChecker().CheckForUpdate(cmd.Context())
			switch {
			case info.Error != nil:
				return info.Error
			case info.UpdateAvailable:
				fmt.Fprintf(out, "Update available: v%s (run: %s)\n", info.LatestVersion, version.InstallCommand())
			default:
				fmt.Fprintln(out, "You're on the latest version")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "check GitHub for a newer release")

	return cmd
}

func newConfigCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the version-tui config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the defaults and the given flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.resolveConfigPath()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			cfg := config.Default()
			opts.override(&cfg)

			if err := config.Save(path, cfg); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	cmd.AddCommand(initCmd)
	return cmd
}
