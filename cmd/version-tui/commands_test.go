package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/litescript/ls-version-tui/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAsset = `%YAML 1.1
%TAG !u! tag:unity3d.com,2011:
--- !u!129 &1
PlayerSettings:
  m_ObjectHideFlags: 0
  productName: Star Courier
  bundleVersion: 1.2.3
`

// newProject creates a project root holding ProjectSettings.asset
func newProject(t *testing.T, asset string) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "ProjectSettings")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ProjectSettings.asset"), []byte(asset), 0644))
	return root
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.toml")}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestShow_PrintsCurrentVersion(t *testing.T) {
	root := newProject(t, testAsset)

	out, err := run(t, "", "--project", root, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Product:  Star Courier")
	assert.Contains(t, out, "Version:  1.2.3")
	assert.Contains(t, out, filepath.Join(root, "PatchNotes"))
}

func TestShow_MalformedVersion(t *testing.T) {
	root := newProject(t, strings.Replace(testAsset, "1.2.3", "0.1", 1))

	_, err := run(t, "", "--project", root, "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid version")
}

func TestBump_WritesNotesAndSettings(t *testing.T) {
	root := newProject(t, testAsset)

	out, err := run(t, "", "--project", root, "bump", "minor", "--notes", "fixed bug")
	require.NoError(t, err)
	assert.Contains(t, out, "Applied v1.2.3 -> v1.3.0")

	data, err := os.ReadFile(filepath.Join(root, "PatchNotes", "Star Courier - v1.3.0 patch notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "fixed bug", string(data))

	asset, err := os.ReadFile(filepath.Join(root, "ProjectSettings", "ProjectSettings.asset"))
	require.NoError(t, err)
	assert.Equal(t, strings.Replace(testAsset, "1.2.3", "1.3.0", 1), string(asset))
}

func TestBump_NotesFromStdin(t *testing.T) {
	root := newProject(t, testAsset)

	_, err := run(t, "line one\nline two\n", "--project", root, "bump", "major", "--notes-file", "-")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "PatchNotes", "Star Courier - v2.0.0 patch notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", string(data))
}

func TestBump_RequiresNotes(t *testing.T) {
	root := newProject(t, testAsset)

	_, err := run(t, "", "--project", root, "bump", "patch")
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(root, "PatchNotes"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestBump_UnknownPart(t *testing.T) {
	root := newProject(t, testAsset)

	_, err := run(t, "", "--project", root, "bump", "build", "--notes", "x")
	assert.Error(t, err)
}

func TestBump_DryRun(t *testing.T) {
	root := newProject(t, testAsset)

	out, err := run(t, "", "--project", root, "bump", "patch", "--notes", "x", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Would apply v1.2.3 -> v1.2.4")

	asset, err := os.ReadFile(filepath.Join(root, "ProjectSettings", "ProjectSettings.asset"))
	require.NoError(t, err)
	assert.Equal(t, testAsset, string(asset))
}

func TestBump_TOMLBackend(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "version.toml"),
		[]byte("product_name = \"Tool\"\nversion = \"0.9.0\"\n"), 0644))

	out, err := run(t, "", "--project", root, "--backend", "toml", "bump", "major", "--notes", "1.0!")
	require.NoError(t, err)
	assert.Contains(t, out, "v1.0.0")

	_, err = os.Stat(filepath.Join(root, "PatchNotes", "Tool - v1.0.0 patch notes.txt"))
	assert.NoError(t, err)
}

func TestHistory_ListsNotes(t *testing.T) {
	root := newProject(t, testAsset)

	out, err := run(t, "", "--project", root, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No patch notes")

	_, err = run(t, "", "--project", root, "bump", "patch", "--notes", "a")
	require.NoError(t, err)
	_, err = run(t, "", "--project", root, "bump", "minor", "--notes", "b")
	require.NoError(t, err)

	out, err = run(t, "", "--project", root, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "v1.3.0")
	assert.Contains(t, out, "v1.2.4")
	assert.Less(t, strings.Index(out, "v1.3.0"), strings.Index(out, "v1.2.4"))
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "version-tui v")
}

func TestLogFile_ReceivesApplyLog(t *testing.T) {
	root := newProject(t, testAsset)
	logPath := filepath.Join(t.TempDir(), "version-tui.log")

	_, err := run(t, "", "--project", root, "--log-file", logPath, "bump", "patch", "--notes", "x")
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version applied")
}

func TestConfigInit_WritesLoadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "config.toml")

	out, err := run(t, "", "--config", path, "--backend", "toml", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "toml", cfg.Settings.Backend)
	assert.Equal(t, "PatchNotes", cfg.Notes.Dir)

	_, err = run(t, "", "--config", path, "config", "init")
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, "", "--config", path, "config", "init", "--force")
	require.NoError(t, err)
	cfg, err = config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "unity", cfg.Settings.Backend)
}
