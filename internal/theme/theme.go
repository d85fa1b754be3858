// Package theme provides terminal theming with automatic detection.
// Colors come from the Omarchy, Alacritty or Foot configuration when one is
// present, with VERSION_TUI_* environment overrides on top.
package theme

import "github.com/charmbracelet/lipgloss"

// Palette holds the color scheme for the TUI
type Palette struct {
	BG       string // background
	FG       string // foreground (primary text)
	Muted    string // labels, hints, disabled buttons
	Accent   string // pending version, ready state
	AccentBg string // focused button background
	Error    string // error/warning colors
}

// DefaultPalette returns the fallback amber-on-dark theme
func DefaultPalette() Palette {
	return Palette{
		BG:       "#0a0a0a",
		FG:       "#d4a017",
		Muted:    "#6b6b4f",
		Accent:   "#8bc34a",
		AccentBg: "#1a1a14",
		Error:    "#ff6b6b",
	}
}

// Styles holds all lipgloss styles derived from a palette
type Styles struct {
	Title          lipgloss.Style
	StatusBar      lipgloss.Style
	Label          lipgloss.Style
	CurrentVersion lipgloss.Style
	PendingVersion lipgloss.Style
	Button         lipgloss.Style
	ButtonFocused  lipgloss.Style
	ButtonDisabled lipgloss.Style
	Ready          lipgloss.Style
	Muted          lipgloss.Style
	Error          lipgloss.Style
	HelpKey        lipgloss.Style
	HelpDesc       lipgloss.Style
	Panel          lipgloss.Style
	PanelFocused   lipgloss.Style
	PanelTitle     lipgloss.Style
}

// NewStyles creates styles from a palette
func NewStyles(p Palette) Styles {
	button := lipgloss.NewStyle().
		Padding(0, 2).
		MarginRight(1).
		Border(lipgloss.RoundedBorder())

	panel := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(p.Muted)).
		Padding(0, 1)

	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.FG)).
			Bold(true),

		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)).
			Padding(0, 1),

		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)).
			Width(10),

		CurrentVersion: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.FG)),

		PendingVersion: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Accent)).
			Bold(true),

		Button: button.
			Foreground(lipgloss.Color(p.FG)).
			BorderForeground(lipgloss.Color(p.Muted)),

		ButtonFocused: button.
			Foreground(lipgloss.Color(p.FG)).
			Background(lipgloss.Color(p.AccentBg)).
			BorderForeground(lipgloss.Color(p.Accent)).
			Bold(true),

		ButtonDisabled: button.
			Foreground(lipgloss.Color(p.Muted)).
			BorderForeground(lipgloss.Color(p.AccentBg)),

		Ready: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Accent)),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Error)),

		HelpKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)),

		HelpDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.FG)),

		Panel: panel,

		PanelFocused: panel.
			BorderForeground(lipgloss.Color(p.Accent)),

		PanelTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.FG)).
			Bold(true),
	}
}

// Current holds the active palette and styles
var Current Styles
var CurrentPalette Palette

func init() {
	// Initialize with detected or default theme
	Refresh()
}

// Refresh reloads the theme from config files
func Refresh() {
	CurrentPalette = Detect()
	Current = NewStyles(CurrentPalette)
}
