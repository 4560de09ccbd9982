package tui

import (
	"github.com/charmbracelet/lipgloss"
)

type pane int

const (
	paneEditor pane = iota
	panePreview
)

func (p pane) String() string {
	switch p {
	case paneEditor:
		return "editor"
	case panePreview:
		return "preview"
	}
	return "unknown"
}

// focusRing cycles focus between panes. It is a value so that it copies with
// the model.
type focusRing struct {
	panes   []pane
	current int
}

func newFocusRing(panes ...pane) focusRing {
	return focusRing{panes: panes}
}

// Next moves focus to the next pane and returns it.
func (f *focusRing) Next() pane {
	if len(f.panes) == 0 {
		return paneEditor
	}
	f.current = (f.current + 1) % len(f.panes)
	return f.panes[f.current]
}

// Previous moves focus to the previous pane and returns it.
func (f *focusRing) Previous() pane {
	if len(f.panes) == 0 {
		return paneEditor
	}
	f.current = (f.current - 1 + len(f.panes)) % len(f.panes)
	return f.panes[f.current]
}

// Set focuses p if it is part of the ring.
func (f *focusRing) Set(p pane) bool {
	for i, q := range f.panes {
		if q == p {
			f.current = i
			return true
		}
	}
	return false
}

func (f focusRing) Current() pane {
	if len(f.panes) == 0 {
		return paneEditor
	}
	return f.panes[f.current]
}

func (f focusRing) Is(p pane) bool {
	return f.Current() == p
}

// FocusStyles defines styles for focused/unfocused panes.
type FocusStyles struct {
	Focused   lipgloss.Style
	Unfocused lipgloss.Style
	Help      lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
	Error     lipgloss.Style
}

// StylesFor returns the chrome styles for the "light" or "dark" UI mode.
func StylesFor(mode string) FocusStyles {
	focused, unfocused, help, accent := "62", "240", "241", "170"
	if mode == "dark" {
		focused, unfocused, help, accent = "105", "238", "245", "212"
	}
	return FocusStyles{
		Focused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(focused)).
			Padding(0, 1),
		Unfocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(unfocused)).
			Padding(0, 1),
		Help:   lipgloss.NewStyle().Foreground(lipgloss.Color(help)),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color(unfocused)),
		Accent: lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}
