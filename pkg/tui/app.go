package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/evanschultz/pseudo-refine/pkg/config"
	"github.com/evanschultz/pseudo-refine/pkg/levels"
	"github.com/evanschultz/pseudo-refine/pkg/session"
	"github.com/evanschultz/pseudo-refine/pkg/snippets"
	"github.com/evanschultz/pseudo-refine/pkg/theme"
	"github.com/evanschultz/pseudo-refine/pkg/tui/components"
)

type mode int

const (
	modeNormal mode = iota
	modeRename
	modeDescribe
	modeSnippets
	modeHelp
)

// Model is the bubbletea model of the editor: the session plus the panes,
// dialogs and status that present it.
type Model struct {
	sess    *session.Session
	cfg     config.Config
	log     zerolog.Logger
	catalog *snippets.Catalog
	width   int
	height  int
	ready   bool

	// Layout
	editorPaneWidth  int
	previewPaneWidth int
	contentHeight    int
	logHeight        int

	// Components
	editor   components.CodeEditor
	preview  viewport.Model
	input    textinput.Model
	picker   list.Model
	helpView viewport.Model
	help     help.Model
	events   *components.EventLog

	// UI state
	mode      mode
	focus     focusRing
	styles    FocusStyles
	theme     theme.Theme
	selected  int // index into the session's references, -1 for none
	wordLen   int // length of the word the snippet picker replaces
	status    string
	statusErr bool
	clipboard func(string) error
}

// New builds the editor UI around sess.
func New(sess *session.Session, cfg config.Config, log zerolog.Logger) Model {
	m := Model{
		sess:      sess,
		cfg:       cfg,
		log:       log,
		catalog:   snippets.Default(),
		editor:    components.NewCodeEditor(),
		preview:   viewport.New(0, 0),
		helpView:  viewport.New(0, 0),
		help:      help.New(),
		events:    components.NewEventLog(),
		focus:     newFocusRing(paneEditor, panePreview),
		styles:    StylesFor(cfg.UITheme),
		selected:  -1,
		clipboard: clipboard.WriteAll,
	}

	m.input = textinput.New()
	m.input.CharLimit = 120

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("170")).
		BorderForeground(lipgloss.Color("170"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("241"))
	m.picker = list.New([]list.Item{}, delegate, 0, 0)
	m.picker.Title = "Fragmentos"
	m.picker.SetShowHelp(false)
	m.picker.SetFilteringEnabled(true)
	m.picker.DisableQuitKeybindings()

	m.editor.SetValue(sess.Text())
	m.editor.Focus()
	m.events.Info("SESSION", fmt.Sprintf("sesión %s", sess.ID()))
	return m
}

// Init loads the configured theme.
func (m Model) Init() tea.Cmd {
	name := m.cfg.Theme
	if m.cfg.ThemeFile != "" {
		name = ""
	}
	return tea.Batch(
		m.editor.Init(),
		m.loadTheme(name),
	)
}

// Update handles input and the results of commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.calculateLayout()
		m.updateComponentSizes()
		m.refreshPreview()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case themeLoadedMsg:
		m.theme = msg.theme
		m.setStatus("tema: "+msg.theme.Name, false)
		m.events.Success("THEME", msg.theme.Name)
		m.log.Info().Str("theme", msg.theme.Name).Msg("theme loaded")
		m.refreshPreview()

	case helpRenderedMsg:
		m.helpView.SetContent(msg.content)
		m.helpView.GotoTop()

	case copiedMsg:
		m.setStatus(fmt.Sprintf("copiado al portapapeles (%d bytes)", msg.bytes), false)
		m.events.Success("COPY", fmt.Sprintf("%d bytes", msg.bytes))

	case exportedMsg:
		m.setStatus("exportado a "+msg.path, false)
		m.events.Success("EXPORT", msg.path)
		m.log.Info().Str("path", msg.path).Int("bytes", msg.bytes).Msg("exported")

	case externalEditorFinishedMsg:
		if msg.err != nil {
			m.fail(errMsg{"editor", msg.err})
			return m, nil
		}
		m.sess.Edit(msg.content)
		m.editor.SetValue(msg.content)
		m.refreshPreview()
		m.events.Info("EDITOR", "texto actualizado desde $EDITOR")

	case errMsg:
		m.fail(msg)

	default:
		if m.mode == modeNormal && m.focus.Is(paneEditor) {
			var changed bool
			var cmd tea.Cmd
			m.editor, changed, cmd = m.editor.Update(msg)
			if changed {
				m.edited()
			}
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		return m, tea.Quit
	}

	switch m.mode {
	case modeRename, modeDescribe:
		return m.handleInputKey(msg)
	case modeSnippets:
		return m.handlePickerKey(msg)
	case modeHelp:
		if key.Matches(msg, keys.Cancel, keys.Help) {
			m.mode = modeNormal
			return m, nil
		}
		var cmd tea.Cmd
		m.helpView, cmd = m.helpView.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.Focus):
		if msg.String() == "shift+tab" {
			m.focus.Previous()
		} else {
			m.focus.Next()
		}
		return m, m.applyFocus()

	case key.Matches(msg, keys.NewLevel):
		l := m.sess.CreateLevel()
		m.events.Success("LEVEL", "creado "+l.Name)
		m.levelChanged()
		return m, m.focusEditor()

	case key.Matches(msg, keys.Rename):
		return m, m.startInput(modeRename, m.sess.Current().Name)

	case key.Matches(msg, keys.Describe):
		return m, m.startInput(modeDescribe, m.sess.Current().Description)

	case key.Matches(msg, keys.Delete):
		cur := m.sess.Current()
		if !m.sess.DeleteLevel(cur.ID) {
			m.setStatus("el nivel general no se puede borrar", true)
			m.events.Warn("LEVEL", "borrado ignorado: "+cur.Name)
			return m, nil
		}
		m.events.Info("LEVEL", "borrado "+cur.Name)
		m.levelChanged()
		return m, nil

	case key.Matches(msg, keys.PrevLevel, keys.NextLevel):
		step := 1
		if key.Matches(msg, keys.PrevLevel) {
			step = -1
		}
		lvls := m.sess.Levels()
		i := indexOf(lvls, m.sess.Current().ID)
		next := (i + step + len(lvls)) % len(lvls)
		m.switchTo(lvls[next].ID)
		return m, nil

	case key.Matches(msg, keys.Parent):
		if p, ok := m.sess.Current().Parent(); ok {
			m.switchTo(p)
		}
		return m, nil

	case key.Matches(msg, keys.Snippets):
		m.openPicker()
		return m, nil

	case key.Matches(msg, keys.Copy):
		return m, m.copyFormatted()

	case key.Matches(msg, keys.Export):
		return m, m.exportFormatted()

	case key.Matches(msg, keys.Theme):
		return m, m.loadTheme(nextTheme(m.theme.Name))

	case key.Matches(msg, keys.UITheme):
		if m.cfg.UITheme == "dark" {
			m.cfg.UITheme = "light"
		} else {
			m.cfg.UITheme = "dark"
		}
		m.styles = StylesFor(m.cfg.UITheme)
		m.events.Info("UI", m.cfg.UITheme)
		return m, nil

	case key.Matches(msg, keys.ExtEditor):
		return m, m.openExternalEditor()

	case key.Matches(msg, keys.Log):
		m.events.Toggle()
		m.calculateLayout()
		m.updateComponentSizes()
		return m, nil

	case key.Matches(msg, keys.Help):
		m.mode = modeHelp
		return m, m.renderHelp()
	}

	if m.focus.Is(panePreview) {
		return m.handlePreviewKey(msg)
	}

	var changed bool
	var cmd tea.Cmd
	m.editor, changed, cmd = m.editor.Update(msg)
	if changed {
		m.edited()
	}
	return m, cmd
}

func (m Model) handlePreviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	refs := m.sess.References()
	switch {
	case key.Matches(msg, keys.NextRef, keys.PrevRef):
		if len(refs) == 0 {
			m.setStatus("no hay referencias", false)
			return m, nil
		}
		if key.Matches(msg, keys.NextRef) {
			m.selected = (m.selected + 1) % len(refs)
		} else {
			m.selected = (m.selected - 1 + len(refs)) % len(refs)
		}
		m.refreshPreview()
		m.scrollToSelected(refs[m.selected])
		return m, nil

	case key.Matches(msg, keys.Follow):
		if m.selected >= 0 && m.selected < len(refs) {
			m.follow(refs[m.selected], true)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeNormal {
		return m, nil
	}

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		if line, col, ok := m.previewPosition(msg.X, msg.Y); ok {
			if ref, hit := m.sess.ReferenceAt(line, col); hit {
				m.follow(ref, msg.Ctrl)
			}
			return m, nil
		}
	}

	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Cancel):
		m.mode = modeNormal
		m.input.Blur()
		return m, m.applyFocus()

	case key.Matches(msg, keys.Confirm):
		value := strings.TrimSpace(m.input.Value())
		cur := m.sess.Current()
		if m.mode == modeRename {
			if value == "" {
				m.setStatus("el nombre no puede estar vacío", true)
				return m, nil
			}
			m.sess.RenameLevel(cur.ID, value)
			m.events.Info("LEVEL", fmt.Sprintf("renombrado %q → %q", cur.Name, value))
		} else {
			m.sess.SetDescription(cur.ID, value)
			m.events.Info("LEVEL", "descripción actualizada")
		}
		m.mode = modeNormal
		m.input.Blur()
		m.refreshPreview()
		return m, m.applyFocus()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	filtering := m.picker.FilterState() == list.Filtering
	switch {
	case !filtering && key.Matches(msg, keys.Cancel):
		m.mode = modeNormal
		return m, m.applyFocus()

	case !filtering && key.Matches(msg, keys.Confirm):
		if item, ok := m.picker.SelectedItem().(suggestionItem); ok {
			m.editor.ReplaceWord(m.wordLen, item.suggestion.Insert)
			m.edited()
			m.events.Info("SNIPPET", item.suggestion.Label)
		}
		m.mode = modeNormal
		return m, m.applyFocus()
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m *Model) startInput(md mode, value string) tea.Cmd {
	m.mode = md
	m.editor.Blur()
	m.input.SetValue(value)
	m.input.CursorEnd()
	if md == modeRename {
		m.input.Prompt = "Nombre: "
	} else {
		m.input.Prompt = "Descripción: "
	}
	return m.input.Focus()
}

func (m *Model) openPicker() {
	word := m.editor.WordBeforeCursor()
	m.wordLen = len([]rune(word))

	suggestions := m.catalog.Suggest(word)
	items := make([]list.Item, len(suggestions))
	for i, s := range suggestions {
		items[i] = suggestionItem{suggestion: s}
	}
	m.picker.SetItems(items)
	m.picker.ResetSelected()
	if word != "" {
		m.picker.Title = fmt.Sprintf("Fragmentos · %q", word)
	} else {
		m.picker.Title = "Fragmentos"
	}
	m.mode = modeSnippets
	m.editor.Blur()
}

func (m *Model) applyFocus() tea.Cmd {
	if m.focus.Is(paneEditor) {
		return m.editor.Focus()
	}
	m.editor.Blur()
	return nil
}

func (m *Model) focusEditor() tea.Cmd {
	m.focus.Set(paneEditor)
	return m.applyFocus()
}

// edited pushes the editor text into the session.
func (m *Model) edited() {
	m.sess.Edit(m.editor.Value())
	m.selected = -1
	m.refreshPreview()
}

// levelChanged reloads the editor after the current level changed.
func (m *Model) levelChanged() {
	m.editor.SetValue(m.sess.Text())
	m.selected = -1
	m.preview.GotoTop()
	m.refreshPreview()
	cur := m.sess.Current()
	m.setStatus(cur.Name, false)
}

func (m *Model) switchTo(id int) {
	if id == m.sess.Current().ID {
		return
	}
	if m.sess.SwitchLevel(id) {
		m.levelChanged()
	}
}

func (m *Model) follow(ref session.Reference, modifier bool) {
	if !m.sess.Follow(ref.Segment, modifier) {
		return
	}
	m.events.Info("LINK", fmt.Sprintf("%s → nivel %d", ref.Text, ref.LevelID))
	m.levelChanged()
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m *Model) fail(e errMsg) {
	m.setStatus(e.Error(), true)
	m.events.Error(strings.ToUpper(e.op), e.err)
	m.log.Error().Err(e.err).Str("op", e.op).Msg("operation failed")
}

func indexOf(lvls []levels.Level, id int) int {
	for i, l := range lvls {
		if l.ID == id {
			return i
		}
	}
	return 0
}

func nextTheme(current string) string {
	names := theme.Names()
	for i, n := range names {
		if n == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

// Run starts the full-screen program.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
