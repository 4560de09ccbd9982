package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	Focus     key.Binding
	NewLevel  key.Binding
	Rename    key.Binding
	Describe  key.Binding
	Delete    key.Binding
	PrevLevel key.Binding
	NextLevel key.Binding
	Parent    key.Binding
	Snippets  key.Binding
	Copy      key.Binding
	Export    key.Binding
	Theme     key.Binding
	UITheme   key.Binding
	ExtEditor key.Binding
	Log       key.Binding
	Help      key.Binding
	NextRef   key.Binding
	PrevRef   key.Binding
	Follow    key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "ctrl+q"),
		key.WithHelp("ctrl+q", "quit"),
	),
	Focus: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "switch pane"),
	),
	NewLevel: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "new level"),
	),
	Rename: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "rename"),
	),
	Describe: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("ctrl+g", "describe"),
	),
	Delete: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "delete level"),
	),
	PrevLevel: key.NewBinding(
		key.WithKeys("ctrl+left"),
		key.WithHelp("ctrl+←", "previous level"),
	),
	NextLevel: key.NewBinding(
		key.WithKeys("ctrl+right"),
		key.WithHelp("ctrl+→", "next level"),
	),
	Parent: key.NewBinding(
		key.WithKeys("ctrl+up"),
		key.WithHelp("ctrl+↑", "parent level"),
	),
	Snippets: key.NewBinding(
		key.WithKeys("ctrl+@"),
		key.WithHelp("ctrl+space", "snippets"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy"),
	),
	Export: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "export"),
	),
	Theme: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "theme"),
	),
	UITheme: key.NewBinding(
		key.WithKeys("f3"),
		key.WithHelp("f3", "light/dark"),
	),
	ExtEditor: key.NewBinding(
		key.WithKeys("f2"),
		key.WithHelp("f2", "$EDITOR"),
	),
	Log: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "event log"),
	),
	Help: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "help"),
	),
	NextRef: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n/p", "select reference"),
	),
	PrevRef: key.NewBinding(
		key.WithKeys("p"),
	),
	Follow: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter/ctrl+click", "follow reference"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.NewLevel, k.Snippets, k.Copy, k.Export, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NewLevel, k.Rename, k.Describe, k.Delete},
		{k.PrevLevel, k.NextLevel, k.Parent},
		{k.NextRef, k.Follow},
		{k.Snippets, k.Copy, k.Export, k.ExtEditor},
		{k.Theme, k.UITheme, k.Log, k.Help, k.Quit},
	}
}

// previewHelp is shown while the preview pane has focus.
type previewHelp struct{ keyMap }

// ShortHelp implements help.KeyMap.
func (k previewHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.NextRef, k.Follow, k.PrevLevel, k.NextLevel, k.Help, k.Quit}
}
