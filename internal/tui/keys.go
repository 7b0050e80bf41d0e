package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the exercise screen.
type KeyMap struct {
	// List
	Up   key.Binding
	Down key.Binding
	Open key.Binding // Show the detail overlay for the highlighted exercise.
	Add  key.Binding

	// Overlays
	Close     key.Binding // Close the detail overlay, or cancel the add form.
	NextField key.Binding
	PickImage key.Binding
	Submit    key.Binding

	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "details"),
	),
	Add: key.NewBinding(
		key.WithKeys("a", "+"),
		key.WithHelp("a", "add exercise"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "next field"),
	),
	PickImage: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("C-p", "pick image"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "add"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
}
