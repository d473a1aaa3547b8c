package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the key bindings of the addon page when the filter is not focused.
type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	Filter       key.Binding
	ClearFilter  key.Binding
	Hidden       key.Binding
	NextGame     key.Binding
	PrevGame     key.Binding
	Service      key.Binding
	CopyLinks    key.Binding
	CopyCommands key.Binding
	CopyLink     key.Binding
	CopyCommand  key.Binding
	Reload       key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
		Hidden: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "problematic"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next game"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev game"),
		),
		Service: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "copy target"),
		),
		CopyLinks: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "copy all links"),
		),
		CopyCommands: key.NewBinding(
			key.WithKeys("W"),
			key.WithHelp("W", "copy all wowa"),
		),
		CopyLink: key.NewBinding(
			key.WithKeys("l", "enter"),
			key.WithHelp("l", "copy link"),
		),
		CopyCommand: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy wowa"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
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
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Filter, k.Hidden, k.NextGame, k.CopyLinks, k.CopyCommands, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Filter, k.ClearFilter},
		{k.Hidden, k.NextGame, k.PrevGame, k.Reload},
		{k.Service, k.CopyLinks, k.CopyCommands},
		{k.CopyLink, k.CopyCommand, k.Help, k.Quit},
	}
}
