// Package tui implements the terminal user interface using Bubble Tea.
// It is the version editor form: bump buttons, a patch notes text area and
// an apply action, all driving an editor.Tool.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/litescript/ls-version-tui/internal/editor"
	"github.com/litescript/ls-version-tui/internal/theme"
	"github.com/litescript/ls-version-tui/internal/version"
)

// Focus areas
type focusArea int

const (
	focusButtons focusArea = iota
	focusNotes
)

// Buttons, in display order
type button int

const (
	btnMajor button = iota
	btnMinor
	btnPatch
	btnRevert
	btnApply
	buttonCount
)

var buttonLabels = [buttonCount]string{"Major", "Minor", "Patch", "Revert", "Apply"}

// Options configures the model
type Options struct {
	// NotesDir is shown in the header so users know where files land.
	NotesDir string
	Logger   *slog.Logger
	// Checker enables the update check key; nil disables it.
	Checker *version.Checker
}

// Model is the main application state
type Model struct {
	tool    *editor.Tool
	opts    Options
	logger  *slog.Logger
	product string

	// Components
	notes   textarea.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	// State
	focus     focusArea
	selected  button
	applying  bool // Guard against overlapping applies
	err       error
	statusMsg string

	// Dimensions
	width  int
	height int
}

// Messages
type applyDoneMsg struct {
	result editor.Result
	err    error
}

type updateCheckMsg struct {
	info version.UpdateInfo
}

// SettingsChangedMsg tells the model the settings file changed on disk.
// The settings watcher sends it through tea.Program.Send.
type SettingsChangedMsg struct{}

// NewModel creates the initial model and loads the current version
func NewModel(tool *editor.Tool, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ta := textarea.New()
	ta.Placeholder = "What changed in this version?"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(60)
	ta.SetHeight(8)
	ta.SetValue(tool.Notes())

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.CurrentPalette.Accent))

	m := Model{
		tool:     tool,
		opts:     opts,
		logger:   logger,
		notes:    ta,
		spinner:  sp,
		help:     help.New(),
		keys:     defaultKeyMap(),
		focus:    focusButtons,
		selected: btnMinor,
	}

	m.reset()
	m.loadProduct()

	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if w := msg.Width - 6; w > 20 {
			m.notes.SetWidth(w)
		}
		if h := msg.Height - 16; h > 3 {
			m.notes.SetHeight(h)
		}

	case spinner.TickMsg:
		if m.applying {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case applyDoneMsg:
		m.applying = false // Clear guard regardless of success/failure
		if msg.err != nil {
			m.err = msg.err
			m.statusMsg = "Apply failed"
			m.logger.Error("apply failed", "error", msg.err)
			// A reload error after a successful write still produced a release
			if msg.result.NotesPath == "" {
				break
			}
		} else {
			m.err = nil
		}
		m.notes.Reset()
		m.statusMsg = fmt.Sprintf("Applied v%s, notes: %s", msg.result.Version, TruncateString(msg.result.NotesPath, 50))

	case SettingsChangedMsg:
		if m.applying {
			break
		}
		if m.tool.IsDifferent() {
			m.statusMsg = "Settings changed on disk - revert to reload"
			break
		}
		if m.reset() {
			m.loadProduct()
			m.statusMsg = fmt.Sprintf("Settings changed on disk, current version v%s", m.tool.Current())
		}

	case updateCheckMsg:
		if msg.info.Error != nil {
			m.statusMsg = fmt.Sprintf("Update check failed: %v", msg.info.Error)
		} else if msg.info.UpdateAvailable {
			m.statusMsg = fmt.Sprintf("Update available: v%s -> v%s (run: %s)",
				msg.info.CurrentVersion, msg.info.LatestVersion, version.InstallCommand())
		} else {
			m.statusMsg = fmt.Sprintf("You're on the latest version (v%s)", msg.info.CurrentVersion)
		}

	default:
		if m.focus == focusNotes {
			var cmd tea.Cmd
			m.notes, cmd = m.notes.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit - always works
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// While the write runs nothing may change the session
	if m.applying {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Apply):
		return m.startApply()
	case key.Matches(msg, m.keys.Revert):
		m.revert()
		return m, nil
	case key.Matches(msg, m.keys.Focus):
		return m.toggleFocus()
	}

	if m.focus == focusNotes {
		if key.Matches(msg, m.keys.Blur) {
			return m.toggleFocus()
		}
		var cmd tea.Cmd
		m.notes, cmd = m.notes.Update(msg)
		m.tool.SetNotes(m.notes.Value())
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		m.selected = (m.selected + buttonCount - 1) % buttonCount
	case key.Matches(msg, m.keys.Right):
		m.selected = (m.selected + 1) % buttonCount
	case key.Matches(msg, m.keys.Press):
		return m.press(m.selected)
	case key.Matches(msg, m.keys.Major):
		return m.press(btnMajor)
	case key.Matches(msg, m.keys.Minor):
		return m.press(btnMinor)
	case key.Matches(msg, m.keys.Patch):
		return m.press(btnPatch)
	case key.Matches(msg, m.keys.RevertButton):
		return m.press(btnRevert)
	case key.Matches(msg, m.keys.ApplyButton):
		return m.press(btnApply)
	case key.Matches(msg, m.keys.EditNotes):
		return m.toggleFocus()
	case key.Matches(msg, m.keys.Update):
		if m.opts.Checker != nil {
			m.statusMsg = "Checking for updates..."
			return m, checkForUpdate(m.opts.Checker)
		}
	}

	return m, nil
}

// press runs the action behind a button
func (m Model) press(b button) (tea.Model, tea.Cmd) {
	m.selected = b

	switch b {
	case btnMajor:
		m.tool.IncrementMajor()
	case btnMinor:
		m.tool.IncrementMinor()
	case btnPatch:
		m.tool.IncrementPatch()
	case btnRevert:
		m.revert()
	case btnApply:
		return m.startApply()
	}

	return m, nil
}

func (m Model) toggleFocus() (tea.Model, tea.Cmd) {
	if m.focus == focusNotes {
		m.focus = focusButtons
		m.notes.Blur()
		return m, nil
	}
	m.focus = focusNotes
	cmd := m.notes.Focus()
	return m, cmd
}

// reset reloads the current version, reporting failures in the status bar
func (m *Model) reset() bool {
	if err := m.tool.Reset(); err != nil {
		m.err = err
		m.logger.Error("reset failed", "error", err)
		return false
	}
	m.err = nil
	return true
}

func (m *Model) revert() {
	if m.reset() {
		m.statusMsg = fmt.Sprintf("Reverted to v%s", m.tool.Current())
	}
}

func (m *Model) loadProduct() {
	name, err := m.tool.ProductName()
	if err != nil {
		m.logger.Warn("product name unavailable", "error", err)
		m.product = ""
		return
	}
	m.product = name
}

// startApply begins the async apply when the session is ready
func (m Model) startApply() (tea.Model, tea.Cmd) {
	if !m.tool.IsReadyToApply() {
		switch {
		case !m.tool.Loaded():
			m.statusMsg = "Current version not loaded - fix the settings file and revert"
		case !m.tool.IsDifferent():
			m.statusMsg = "Bump the version before applying"
		default:
			m.statusMsg = "Write patch notes before applying"
		}
		return m, nil
	}

	m.applying = true
	m.err = nil
	m.statusMsg = fmt.Sprintf("Applying v%s...", m.tool.Pending())

	return m, tea.Batch(m.spinner.Tick, applyCmd(m.tool))
}

func applyCmd(tool *editor.Tool) tea.Cmd {
	return func() tea.Msg {
		res, err := tool.Apply(context.Background())
		return applyDoneMsg{result: res, err: err}
	}
}

func checkForUpdate(c *version.Checker) tea.Cmd {
	return func() tea.Msg {
		return updateCheckMsg{info: c.CheckForUpdate(context.Background())}
	}
}

// View renders the form
func (m Model) View() string {
	styles := GetStyles()
	var b strings.Builder

	title := "Version Editor"
	if m.product != "" {
		title += " - " + m.product
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n\n")

	current := m.tool.Current()
	pending := m.tool.Pending()
	different := m.tool.IsDifferent()
	ready := m.tool.IsReadyToApply()

	currentText, pendingText := current.String(), pending.String()
	if !m.tool.Loaded() {
		currentText, pendingText = "-", "-"
	}

	b.WriteString(labeled("Current", styles.CurrentVersion.Render(currentText)))
	b.WriteString("\n")

	pendingStyle := styles.Muted
	if different {
		pendingStyle = styles.PendingVersion
	}
	b.WriteString(labeled("Pending", pendingStyle.Render(pendingText)))
	b.WriteString("\n")

	if m.opts.NotesDir != "" {
		b.WriteString(labeled("Notes", styles.Muted.Render(TruncateString(m.opts.NotesDir, 60))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.renderButtons(different, ready))
	b.WriteString("\n")

	panel := styles.Panel
	if m.focus == focusNotes {
		panel = styles.PanelFocused
	}
	b.WriteString(styles.PanelTitle.Render("Patch notes"))
	b.WriteString("\n")
	b.WriteString(panel.Render(m.notes.View()))
	b.WriteString("\n")

	b.WriteString(m.renderStatusBar(ready))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) renderButtons(different, ready bool) string {
	rendered := make([]string, 0, buttonCount)
	for i, label := range buttonLabels {
		btn := button(i)
		enabled := true
		switch btn {
		case btnRevert:
			enabled = different
		case btnApply:
			enabled = ready && !m.applying
		}
		focused := m.focus == focusButtons && btn == m.selected
		rendered = append(rendered, renderButton(label, focused, enabled))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderStatusBar(ready bool) string {
	styles := GetStyles()

	var status string
	switch {
	case m.applying:
		status = m.spinner.View() + " " + m.statusMsg
	case m.err != nil:
		status = styles.Error.Render(errorText(m.err))
	case m.statusMsg != "":
		status = m.statusMsg
	case ready:
		status = styles.Ready.Render("Ready to apply")
	default:
		status = styles.Muted.Render("Bump a version and write patch notes")
	}

	return styles.StatusBar.Render(status)
}

// errorText prefixes apply failures so they read differently from load errors
func errorText(err error) string {
	if errors.Is(err, editor.ErrIO) {
		return "Error: " + err.Error()
	}
	return "Cannot load version: " + err.Error()
}
