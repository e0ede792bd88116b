package app

import "charm.land/bubbles/v2/key"

// KeyMap defines the viewer's global keybindings. Scrolling keys belong to
// the table.
type KeyMap struct {
	Quit   key.Binding
	Help   key.Binding
	Escape key.Binding

	Reload key.Binding

	// Toggles
	ToggleVariable key.Binding
	CycleTheme     key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "f1"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "reload"),
		),
		ToggleVariable: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "variable/uniform rows"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "next theme"),
		),
	}
}

// Bindings lists the bindings shown in the help view, in display order.
func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Reload, k.ToggleVariable, k.CycleTheme, k.Help, k.Quit}
}
