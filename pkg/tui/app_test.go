package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evanschultz/pseudo-refine/pkg/config"
	"github.com/evanschultz/pseudo-refine/pkg/levels"
	"github.com/evanschultz/pseudo-refine/pkg/session"
)

func newTestModel(t *testing.T, sess *session.Session) Model {
	t.Helper()
	if sess == nil {
		sess = session.New()
	}
	cfg := config.Default()
	cfg.ExportFile = filepath.Join(t.TempDir(), "algoritmo.txt")
	m := New(sess, cfg, zerolog.Nop())
	return update(m, tea.WindowSizeMsg{Width: 100, Height: 30})
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(m Model, t tea.KeyType) Model {
	return update(m, tea.KeyMsg{Type: t})
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		if r == '\n' {
			m = press(m, tea.KeyEnter)
			continue
		}
		m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// linkedSession has a root level that mentions "Leer", the label of level 1.
func linkedSession() *session.Session {
	s := session.New(session.WithText("Leer datos"))
	s.CreateLevel()
	s.RenameLevel(1, "Nivel 1 - Leer")
	s.SwitchLevel(levels.RootID)
	return s
}

func TestTypingReformatsPreview(t *testing.T) {
	sess := session.New()
	m := newTestModel(t, sess)

	m = typeText(m, "SI x ENTONCES\nESCRIBIR x\nFIN_SI")

	assert.Equal(t, "SI x ENTONCES\nESCRIBIR x\nFIN_SI", sess.Text())
	assert.Equal(t, "SI x ENTONCES\n    ESCRIBIR x\nFIN_SI", sess.FormattedText())
	assert.Contains(t, m.preview.View(), "    ESCRIBIR x")
}

func TestNewLevelStartsEmpty(t *testing.T) {
	sess := session.New(session.WithText("raiz"))
	m := newTestModel(t, sess)

	m = press(m, tea.KeyCtrlO)

	assert.Equal(t, 1, sess.Current().ID)
	assert.Equal(t, "", m.editor.Value())
	assert.Contains(t, m.View(), "Nivel 1 - Refinamiento")

	m = press(m, tea.KeyCtrlUp)
	assert.Equal(t, levels.RootID, sess.Current().ID)
	assert.Equal(t, "raiz", m.editor.Value())
}

func TestSwitchLevelsCycles(t *testing.T) {
	sess := session.New()
	m := newTestModel(t, sess)
	m = press(m, tea.KeyCtrlO)
	m = press(m, tea.KeyCtrlO)

	m = press(m, tea.KeyCtrlRight)
	assert.Equal(t, levels.RootID, sess.Current().ID)
	press(m, tea.KeyCtrlLeft)
	assert.Equal(t, 2, sess.Current().ID)
}

func TestRenameLevel(t *testing.T) {
	sess := session.New()
	m := newTestModel(t, sess)
	m = press(m, tea.KeyCtrlO)

	m = press(m, tea.KeyCtrlR)
	require.Equal(t, modeRename, m.mode)
	assert.Equal(t, "Nivel 1 - Refinamiento", m.input.Value())

	m = press(m, tea.KeyCtrlU)
	m = typeText(m, "Nivel 1 - Calcular")
	m = press(m, tea.KeyEnter)

	assert.Equal(t, modeNormal, m.mode)
	assert.Equal(t, "Nivel 1 - Calcular", sess.Current().Name)
	assert.True(t, m.editor.Focused())
}

func TestRenameRejectsEmptyName(t *testing.T) {
	sess := session.New()
	m := newTestModel(t, sess)

	m = press(m, tea.KeyCtrlR)
	m = press(m, tea.KeyCtrlU)
	m = press(m, tea.KeyEnter)

	assert.Equal(t, modeRename, m.mode)
	assert.True(t, m.statusErr)
	m = press(m, tea.KeyEsc)
	assert.Equal(t, modeNormal, m.mode)
	assert.Equal(t, "Nivel 0 - Diseño General", sess.Current().Name)
}

func TestDescribeLevel(t *testing.T) {
	sess := session.New()
	m := newTestModel(t, sess)

	m = press(m, tea.KeyCtrlG)
	m = press(m, tea.KeyCtrlU)
	m = typeText(m, "promedio de notas")
	m = press(m, tea.KeyEnter)

	assert.Equal(t, "promedio de notas", sess.Current().Description)
	assert.Contains(t, m.pathLine(), "promedio de notas")
}

func TestDeleteRootIsIgnored(t *testing.T) {
	sess := session.New()
	m := newTestModel(t, sess)

	m = press(m, tea.KeyCtrlX)

	assert.True(t, m.statusErr)
	assert.Len(t, sess.Levels(), 1)

	m = press(m, tea.KeyCtrlO)
	m = press(m, tea.KeyCtrlX)
	assert.Len(t, sess.Levels(), 1)
	assert.Equal(t, levels.RootID, sess.Current().ID)
}

func TestCtrlClickFollowsReference(t *testing.T) {
	sess := linkedSession()
	m := newTestModel(t, sess)
	require.Len(t, sess.References(), 1)

	// preview content starts after the editor pane, its border and padding
	x, y := m.editorPaneWidth+2+1, headerHeight+1
	click := tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}

	m = update(m, click)
	assert.Equal(t, levels.RootID, sess.Current().ID, "plain click does nothing")

	click.Ctrl = true
	m = update(m, tea.MouseMsg{X: 1, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, Ctrl: true})
	assert.Equal(t, levels.RootID, sess.Current().ID, "click outside the preview")

	m = update(m, click)
	assert.Equal(t, 1, sess.Current().ID)
	assert.Equal(t, "", m.editor.Value())
}

func TestCtrlClickAfterTab(t *testing.T) {
	sess := session.New(session.WithText("x\tLeer"))
	sess.CreateLevel()
	sess.RenameLevel(1, "Nivel 1 - Leer")
	sess.SwitchLevel(levels.RootID)
	m := newTestModel(t, sess)

	x0, y := m.editorPaneWidth+2, headerHeight+1
	m = update(m, tea.MouseMsg{X: x0 + 2, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, Ctrl: true})
	assert.Equal(t, levels.RootID, sess.Current().ID, "click on the tab")

	m = update(m, tea.MouseMsg{X: x0 + 1 + session.TabWidth, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, Ctrl: true})
	assert.Equal(t, 1, sess.Current().ID)
	assert.Equal(t, "", m.editor.Value())
}

func TestKeyboardFollowsReference(t *testing.T) {
	sess := linkedSession()
	m := newTestModel(t, sess)

	m = press(m, tea.KeyTab)
	require.True(t, m.focus.Is(panePreview))
	assert.False(t, m.editor.Focused())

	m = typeText(m, "n")
	assert.Equal(t, 0, m.selected)
	assert.Equal(t, "Leer datos", sess.Text(), "keys in the preview do not edit")

	m = press(m, tea.KeyEnter)
	assert.Equal(t, 1, sess.Current().ID)
	assert.Equal(t, -1, m.selected)
}

func TestSnippetPicker(t *testing.T) {
	sess := session.New()
	m := newTestModel(t, sess)
	m = typeText(m, "x\nmien")

	m = press(m, tea.KeyCtrlAt)
	require.Equal(t, modeSnippets, m.mode)
	item, ok := m.picker.SelectedItem().(suggestionItem)
	require.True(t, ok)
	assert.Equal(t, "MIENTRAS", item.suggestion.Label)

	m = press(m, tea.KeyEnter)
	assert.Equal(t, modeNormal, m.mode)
	assert.Equal(t, "x\nMIENTRAS", sess.Text())
}

func TestSnippetPickerCancel(t *testing.T) {
	sess := session.New()
	m := newTestModel(t, sess)

	m = press(m, tea.KeyCtrlAt)
	require.Equal(t, modeSnippets, m.mode)
	assert.Len(t, m.picker.Items(), len(m.catalog.Keywords())+len(m.catalog.Keys()))

	m = press(m, tea.KeyEsc)
	assert.Equal(t, modeNormal, m.mode)
	assert.Equal(t, "", sess.Text())
}

func TestExportWritesFormattedText(t *testing.T) {
	sess := session.New(session.WithText("MIENTRAS a HACER\nb\nFIN_MIENTRAS"))
	m := newTestModel(t, sess)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, exportedMsg{}, msg)
	m = update(m, msg)

	data, err := os.ReadFile(m.cfg.ExportFile)
	require.NoError(t, err)
	assert.Equal(t, "MIENTRAS a HACER\n    b\nFIN_MIENTRAS", string(data))
	assert.Contains(t, m.status, "exportado")
}

func TestCopyFormattedText(t *testing.T) {
	sess := session.New(session.WithText("INICIO\nx\nFIN"))
	m := newTestModel(t, sess)
	var copied string
	m.clipboard = func(s string) error { copied = s; return nil }

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	m = update(m, cmd())

	assert.Equal(t, "INICIO\n    x\nFIN", copied)
	assert.False(t, m.statusErr)
}

func TestCopyFailureIsReported(t *testing.T) {
	m := newTestModel(t, nil)
	m.clipboard = func(string) error { return errors.New("no clipboard") }

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	m = update(m, cmd())

	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "no clipboard")
	last, ok := m.events.Last()
	require.True(t, ok)
	assert.Equal(t, "COPY", last.Kind)
}

func TestThemeLoadingAndCycling(t *testing.T) {
	m := newTestModel(t, nil)

	m = update(m, m.loadTheme("dracula")())
	assert.Equal(t, "dracula", m.theme.Name)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m = update(m, cmd())
	assert.Equal(t, "monokai", m.theme.Name)

	m = update(m, m.loadTheme("solarized")())
	assert.True(t, m.statusErr)
	assert.Equal(t, "monokai", m.theme.Name)
}

func TestHelpScreen(t *testing.T) {
	m := newTestModel(t, nil)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyF1})
	m = next.(Model)
	require.Equal(t, modeHelp, m.mode)
	m = update(m, cmd())
	assert.NotEmpty(t, m.helpView.View())
	assert.Contains(t, helpMarkdown("dracula"), "| `ctrl+o` | new level |")
	assert.Contains(t, helpMarkdown("dracula"), "Tema actual: **dracula**")

	m = press(m, tea.KeyEsc)
	assert.Equal(t, modeNormal, m.mode)
}

func TestEventLogToggle(t *testing.T) {
	m := newTestModel(t, nil)
	before := m.contentHeight

	m = press(m, tea.KeyCtrlL)

	assert.True(t, m.events.Visible())
	assert.Equal(t, before-eventLogHeight, m.contentHeight)
	assert.Contains(t, m.View(), "Registro de eventos")
}

func TestViewBeforeResize(t *testing.T) {
	m := New(session.New(), config.Default(), zerolog.Nop())
	assert.Equal(t, "Inicializando...", m.View())
}

func TestLevelBarTruncates(t *testing.T) {
	sess := session.New()
	m := newTestModel(t, sess)
	sess.RenameLevel(levels.RootID, "Nivel 0 - "+strings.Repeat("muy largo ", 20))

	bar := m.levelBar()
	assert.Contains(t, bar, "…")
}
