package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Tab        key.Binding
	Enter      key.Binding
	Add        key.Binding
	Edit       key.Binding
	Done       key.Binding
	Delete     key.Binding
	Archetypes key.Binding
	Help       key.Binding
	Quit       key.Binding
	Escape     key.Binding
	Refresh    key.Binding
	TodayOnly  key.Binding
}

var keys = keyMap{
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Tab:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch page")),
	Enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select/toggle")),
	Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add habit")),
	Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit habit")),
	Done:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "toggle done")),
	Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Archetypes: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "browse archetypes")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Refresh:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "refresh")),
	TodayOnly:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today only")),
}
