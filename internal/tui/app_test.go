package tui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/litescript/ls-version-tui/internal/editor"
	"github.com/litescript/ls-version-tui/internal/notes"
	"github.com/litescript/ls-version-tui/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, version string) (Model, *settings.MemoryStore, *notes.Writer) {
	t.Helper()
	store := settings.NewMemoryStore("Star Courier", version)
	writer := notes.NewWriter(filepath.Join(t.TempDir(), notes.DefaultDir))
	tool := editor.New(store, writer)
	return NewModel(tool, Options{NotesDir: writer.Dir}), store, writer
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestNewModel_LoadsCurrentVersion(t *testing.T) {
	m, _, _ := newTestModel(t, "1.2.3")

	assert.NoError(t, m.err)
	assert.Equal(t, "Star Courier", m.product)
	view := m.View()
	assert.Contains(t, view, "Version Editor - Star Courier")
	assert.Contains(t, view, "1.2.3")
}

func TestNewModel_MalformedVersionIsShown(t *testing.T) {
	m, _, _ := newTestModel(t, "0.1")

	require.Error(t, m.err)
	assert.Contains(t, m.View(), "Cannot load version")
}

func TestNewModel_MalformedVersionBlocksApply(t *testing.T) {
	m, store, writer := newTestModel(t, "3.4.5-rc1")
	require.Error(t, m.err)
	assert.False(t, m.tool.Loaded())

	m = send(t, m, runes("p"), tea.KeyMsg{Type: tea.KeyTab}, runes("hotfix"), tea.KeyMsg{Type: tea.KeyEsc})
	next, cmd := m.Update(runes("a"))
	m = next.(Model)

	assert.Nil(t, cmd)
	assert.False(t, m.applying)
	assert.Contains(t, m.statusMsg, "not loaded")

	v, _ := store.Version()
	assert.Equal(t, "3.4.5-rc1", v)
	entries, err := writer.List("")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSettingsChanged_MalformedFileUnloads(t *testing.T) {
	m, store, _ := newTestModel(t, "1.2.3")

	require.NoError(t, store.SetVersion("1.3"))
	m = send(t, m, SettingsChangedMsg{})
	require.Error(t, m.err)

	m = send(t, m, runes("m"), tea.KeyMsg{Type: tea.KeyTab}, runes("notes"), tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.False(t, m.applying)
	v, _ := store.Version()
	assert.Equal(t, "1.3", v)
}

func TestKeys_ButtonShortcutsInHelp(t *testing.T) {
	m, _, _ := newTestModel(t, "1.2.3")
	m.help.ShowAll = true
	view := m.View()
	assert.Contains(t, view, "edit notes")

	m = send(t, m, runes("n"))
	assert.Equal(t, focusNotes, m.focus)

	// Letters are text while the notes have focus
	m = send(t, m, runes("ra"))
	assert.Equal(t, "ra", m.tool.Notes())
}

func TestButtons_BumpVersion(t *testing.T) {
	m, _, _ := newTestModel(t, "1.2.3")

	m = send(t, m, runes("m"))
	assert.Equal(t, "1.3.0", m.tool.Pending().String())
	assert.True(t, m.tool.IsDifferent())

	m = send(t, m, runes("p"))
	assert.Equal(t, "1.3.1", m.tool.Pending().String())

	m = send(t, m, runes("M"))
	assert.Equal(t, "2.0.0", m.tool.Pending().String())

	m = send(t, m, runes("r"))
	assert.Equal(t, "1.2.3", m.tool.Pending().String())
}

func TestButtons_ArrowSelectionAndEnter(t *testing.T) {
	m, _, _ := newTestModel(t, "1.2.3")
	require.Equal(t, btnMinor, m.selected)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, btnMajor, m.selected)
	assert.Equal(t, "2.0.0", m.tool.Pending().String())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, btnApply, m.selected, "selection wraps")
}

func TestNotes_TypingUpdatesTool(t *testing.T) {
	m, _, _ := newTestModel(t, "1.2.3")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab}, runes("fixed bug"))
	assert.Equal(t, focusNotes, m.focus)
	assert.Equal(t, "fixed bug", m.tool.Notes())

	// Bump keys are plain text while the notes have focus
	m = send(t, m, runes("m"))
	assert.Equal(t, "1.2.3", m.tool.Pending().String())
	assert.Equal(t, "fixed bugm", m.tool.Notes())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, focusButtons, m.focus)
}

func TestApply_NotReadyExplains(t *testing.T) {
	m, store, _ := newTestModel(t, "1.2.3")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.False(t, m.applying)
	assert.Equal(t, "Bump the version before applying", m.statusMsg)

	m = send(t, m, runes("m"), tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, "Write patch notes before applying", m.statusMsg)

	v, _ := store.Version()
	assert.Equal(t, "1.2.3", v)
}

func TestApply_FullFlow(t *testing.T) {
	m, store, writer := newTestModel(t, "1.2.3")

	m = send(t, m, runes("M"), tea.KeyMsg{Type: tea.KeyTab}, runes("notes"))
	require.True(t, m.tool.IsReadyToApply())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.applying)

	// Input is ignored while applying
	m = send(t, m, runes("x"), tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, "notes", m.tool.Notes())
	assert.Equal(t, "2.0.0", m.tool.Pending().String())

	done := applyCmd(m.tool)()
	m = send(t, m, done)

	assert.False(t, m.applying)
	require.NoError(t, m.err)
	assert.Equal(t, "", m.notes.Value())
	assert.Equal(t, "", m.tool.Notes())
	assert.Equal(t, "2.0.0", m.tool.Current().String())

	v, _ := store.Version()
	assert.Equal(t, "2.0.0", v)

	data, err := os.ReadFile(filepath.Join(writer.Dir, "Star Courier - v2.0.0 patch notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "notes", string(data))
	assert.Contains(t, m.statusMsg, "Applied v2.0.0")
}

func TestApply_FailureIsSurfaced(t *testing.T) {
	m, store, _ := newTestModel(t, "1.2.3")
	store.SetErr = errors.New("settings locked")

	m = send(t, m, runes("p"), tea.KeyMsg{Type: tea.KeyTab}, runes("notes"), tea.KeyMsg{Type: tea.KeyCtrlS})
	require.True(t, m.applying)

	m = send(t, m, applyCmd(m.tool)())

	assert.False(t, m.applying)
	require.Error(t, m.err)
	assert.Equal(t, "notes", m.notes.Value(), "notes kept for retry")
	assert.Contains(t, m.View(), "settings locked")
}

func TestSettingsChanged_ReloadsWhenNothingPending(t *testing.T) {
	m, store, _ := newTestModel(t, "1.2.3")

	require.NoError(t, store.SetVersion("1.5.0"))
	m = send(t, m, SettingsChangedMsg{})
	assert.Equal(t, "1.5.0", m.tool.Current().String())
	assert.Equal(t, "1.5.0", m.tool.Pending().String())
}

func TestSettingsChanged_KeepsPendingBump(t *testing.T) {
	m, store, _ := newTestModel(t, "1.2.3")
	m = send(t, m, runes("M"))

	require.NoError(t, store.SetVersion("1.5.0"))
	m = send(t, m, SettingsChangedMsg{})
	assert.Equal(t, "2.0.0", m.tool.Pending().String())
	assert.Equal(t, "1.2.3", m.tool.Current().String())
	assert.Contains(t, m.statusMsg, "revert")
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t, "1.0.0")

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "...notes.txt", TruncateString("/very/long/path/notes.txt", 12))
}
