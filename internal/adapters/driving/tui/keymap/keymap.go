// Package keymap holds the TUI key bindings. Views match keys against these
// bindings with key.Matches, and the status bar and help view render them.
package keymap

import "github.com/charmbracelet/bubbles/key"

// KeyMap is the full set of bindings. Several share "enter" because only one
// view is active at a time.
type KeyMap struct {
	Quit key.Binding
	Help key.Binding
	Back key.Binding

	Up     key.Binding
	Down   key.Binding
	Select key.Binding

	Search    key.Binding // menu shortcut to the search view
	NewSearch key.Binding // refocus the query from the results
	Details   key.Binding // expand the selected result

	Clusters key.Binding // menu shortcut to the cluster view
	Refresh  key.Binding
}

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// DefaultKeyMap returns vim-style navigation plus single-letter shortcuts.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: bind("q", "quit", "q", "ctrl+c"),
		Help: bind("?", "help", "?"),
		Back: bind("esc", "back", "esc"),

		Up:     bind("↑/k", "up", "up", "k"),
		Down:   bind("↓/j", "down", "down", "j"),
		Select: bind("enter", "select", "enter"),

		Search:    bind("/", "search", "/"),
		NewSearch: bind("n", "new search", "n"),
		Details:   bind("enter", "details", "enter"),

		Clusters: bind("c", "clusters", "c"),
		Refresh:  bind("r", "refresh", "r"),
	}
}

// ShortHelp is shown in the status bar when nothing more specific applies.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.NewSearch, k.Up, k.Details, k.Back}
}

func (k *KeyMap) ClustersHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Back}
}

// FullHelp groups every binding for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Search, k.NewSearch, k.Details},
		{k.Clusters, k.Refresh, k.Back},
		{k.Help, k.Quit},
	}
}
