package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the keyboard bindings shown in the help footer.
type KeyMap struct {
	Reload   key.Binding
	UnpinAll key.Binding
	Yank     key.Binding
	Reheat   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		UnpinAll: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unpin all"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yank node text"),
		),
		Reheat: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reheat layout"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reload, k.UnpinAll, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Reload, k.UnpinAll, k.Reheat},
		{k.Yank, k.Help, k.Quit},
	}
}
