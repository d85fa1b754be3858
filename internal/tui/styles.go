package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/litescript/ls-version-tui/internal/theme"
)

// GetStyles returns current themed styles
func GetStyles() theme.Styles {
	return theme.Current
}

// renderButton draws one button in its focused, enabled or disabled state
func renderButton(label string, focused, enabled bool) string {
	styles := GetStyles()

	switch {
	case focused:
		return styles.ButtonFocused.Render(label)
	case !enabled:
		return styles.ButtonDisabled.Render(label)
	default:
		return styles.Button.Render(label)
	}
}

// labeled renders "label  value" with a fixed-width label column
func labeled(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, GetStyles().Label.Render(label), value)
}

// TruncateString truncates a string to max runes with ellipsis, keeping the tail
// so the file name of a long path stays visible
func TruncateString(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[len(r)-max:])
	}
	return "..." + string(r[len(r)-max+3:])
}
