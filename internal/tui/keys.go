package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the bindings shown in the help line
type keyMap struct {
	Apply  key.Binding
	Revert key.Binding
	Major  key.Binding
	Minor  key.Binding
	Patch  key.Binding
	Focus  key.Binding
	Left   key.Binding
	Right  key.Binding
	Press  key.Binding
	Blur   key.Binding
	Update key.Binding
	Quit   key.Binding

	// Plain letters, only active while the buttons have focus
	RevertButton key.Binding
	ApplyButton  key.Binding
	EditNotes    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		// Most terminals cannot report ctrl+enter, so ctrl+s is the portable twin
		Apply: key.NewBinding(
			key.WithKeys("ctrl+enter", "ctrl+s"),
			key.WithHelp("ctrl+s", "apply"),
		),
		Revert: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "revert"),
		),
		Major: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "major"),
		),
		Minor: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "minor"),
		),
		Patch: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "patch"),
		),
		RevertButton: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "revert"),
		),
		ApplyButton: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "apply"),
		),
		EditNotes: key.NewBinding(
			key.WithKeys("i", "n"),
			key.WithHelp("i/n", "edit notes"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "notes/buttons"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
		),
		Press: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "press"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "buttons"),
		),
		Update: key.NewBinding(
			key.WithKeys("U"),
			key.WithHelp("U", "check update"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Major, k.Minor, k.Patch, k.Focus, k.Apply, k.Revert, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Major, k.Minor, k.Patch, k.RevertButton, k.ApplyButton},
		{k.Focus, k.EditNotes, k.Press, k.Blur},
		{k.Apply, k.Revert, k.Update, k.Quit},
	}
}
