package tui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/evanschultz/pseudo-refine/pkg/theme"
)

func (m Model) loadTheme(name string) tea.Cmd {
	file := m.cfg.ThemeFile
	return func() tea.Msg {
		var (
			th  theme.Theme
			err error
		)
		if file != "" && name == "" {
			th, err = theme.LoadFile(file)
		} else {
			th, err = theme.Load(name)
		}
		if err != nil {
			return errMsg{"theme", err}
		}
		return themeLoadedMsg{theme: th}
	}
}

func (m Model) copyFormatted() tea.Cmd {
	text := m.sess.FormattedText()
	write := m.clipboard
	return func() tea.Msg {
		if err := write(text); err != nil {
			return errMsg{"copy", err}
		}
		return copiedMsg{bytes: len(text)}
	}
}

func (m Model) exportFormatted() tea.Cmd {
	text := m.sess.FormattedText()
	path := m.cfg.ExportFile
	return func() tea.Msg {
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return errMsg{"export", fmt.Errorf("writing %s: %w", path, err)}
		}
		return exportedMsg{path: path, bytes: len(text)}
	}
}

// openExternalEditor suspends the program and edits the current level's raw
// text in $EDITOR.
func (m Model) openExternalEditor() tea.Cmd {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	tmpfile, err := os.CreateTemp("", "pseudo-refine-*.txt")
	if err != nil {
		return func() tea.Msg { return errMsg{"editor", err} }
	}
	if _, err := tmpfile.WriteString(m.sess.Text()); err != nil {
		tmpfile.Close()
		os.Remove(tmpfile.Name())
		return func() tea.Msg { return errMsg{"editor", err} }
	}
	tmpfile.Close()

	name := tmpfile.Name()
	c := exec.Command(editor, name)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		defer os.Remove(name)
		if err != nil {
			return externalEditorFinishedMsg{err: err}
		}
		edited, err := os.ReadFile(name)
		if err != nil {
			return externalEditorFinishedMsg{err: err}
		}
		return externalEditorFinishedMsg{content: string(edited)}
	})
}

func (m Model) renderHelp() tea.Cmd {
	width := max(40, m.width-8)
	style := m.cfg.UITheme
	themeName := m.theme.Name
	return func() tea.Msg {
		md := helpMarkdown(themeName)
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return helpRenderedMsg{content: md}
		}
		out, err := renderer.Render(md)
		if err != nil {
			return helpRenderedMsg{content: md}
		}
		return helpRenderedMsg{content: out}
	}
}

func helpMarkdown(themeName string) string {
	var b strings.Builder
	b.WriteString("# Ayuda\n\n")
	b.WriteString("Escribe pseudocódigo en el editor de la izquierda. La vista de la derecha ")
	b.WriteString("muestra el texto con la sangría corregida y resalta las referencias a otros niveles.\n\n")
	b.WriteString("Un nivel llamado `Nivel 2 - Calcular Promedio` se enlaza desde cualquier texto ")
	b.WriteString("que contenga `Calcular Promedio`. Usa **ctrl+click** o selecciona con **n/p** y pulsa **enter** para ir al nivel.\n\n")
	b.WriteString("## Atajos\n\n| Tecla | Acción |\n|---|---|\n")
	for _, group := range keys.FullHelp() {
		for _, k := range group {
			h := k.Help()
			if h.Key == "" {
				continue
			}
			fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
	}
	if themeName != "" {
		fmt.Fprintf(&b, "\nTema actual: **%s** (disponibles: %s)\n", themeName, strings.Join(theme.Names(), ", "))
	}
	b.WriteString("\nPulsa `esc` o `f1` para volver.\n")
	return b.String()
}
