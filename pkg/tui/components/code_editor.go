package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CodeEditor is a textarea for raw pseudocode. It reports whether an update
// changed the text so the caller can re-run formatting.
type CodeEditor struct {
	textarea textarea.Model
	width    int
	height   int
}

// NewCodeEditor creates an unfocused editor with line numbers and no size
// limits.
func NewCodeEditor() CodeEditor {
	ta := textarea.New()
	ta.Placeholder = "Escribe tu pseudocódigo aquí..."
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.Prompt = ""

	return CodeEditor{textarea: ta}
}

// Init starts the cursor blinking.
func (e CodeEditor) Init() tea.Cmd {
	return textarea.Blink
}

// Update forwards msg to the textarea. changed is true when the text differs
// afterwards.
func (e CodeEditor) Update(msg tea.Msg) (CodeEditor, bool, tea.Cmd) {
	before := e.textarea.Value()
	var cmd tea.Cmd
	e.textarea, cmd = e.textarea.Update(msg)
	return e, e.textarea.Value() != before, cmd
}

// View renders the textarea.
func (e CodeEditor) View() string {
	return e.textarea.View()
}

// SetSize resizes the textarea.
func (e *CodeEditor) SetSize(width, height int) {
	e.width = width
	e.height = height
	e.textarea.SetWidth(max(1, width))
	e.textarea.SetHeight(max(1, height))
}

// SetValue replaces the text and moves the cursor to the end.
func (e *CodeEditor) SetValue(value string) {
	e.textarea.SetValue(value)
}

// Value returns the current text.
func (e CodeEditor) Value() string {
	return e.textarea.Value()
}

// Focus lets the editor receive keys.
func (e *CodeEditor) Focus() tea.Cmd {
	return e.textarea.Focus()
}

// Blur stops the editor from receiving keys.
func (e *CodeEditor) Blur() {
	e.textarea.Blur()
}

// Focused reports whether the editor receives keys.
func (e CodeEditor) Focused() bool {
	return e.textarea.Focused()
}

// cursorLine returns the text of the cursor's line and the cursor's rune
// column within it.
func (e CodeEditor) cursorLine() ([]rune, int) {
	lines := strings.Split(e.textarea.Value(), "\n")
	row := e.textarea.Line()
	if row < 0 || row >= len(lines) {
		return nil, 0
	}
	line := []rune(lines[row])
	info := e.textarea.LineInfo()
	col := min(info.StartColumn+info.ColumnOffset, len(line))
	return line, col
}

// WordBeforeCursor returns the identifier characters immediately left of the
// cursor.
func (e CodeEditor) WordBeforeCursor() string {
	line, col := e.cursorLine()
	start := col
	for start > 0 && isWordRune(line[start-1]) {
		start--
	}
	return string(line[start:col])
}

// Indentation returns the leading whitespace of the cursor's line.
func (e CodeEditor) Indentation() string {
	line, _ := e.cursorLine()
	n := 0
	for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
		n++
	}
	return string(line[:n])
}

// ReplaceWord deletes the n runes before the cursor and inserts text. Lines
// after the first are prefixed with the current line's indentation.
func (e *CodeEditor) ReplaceWord(n int, text string) {
	indent := e.Indentation()
	if !e.textarea.Focused() {
		e.textarea.Focus()
		defer e.textarea.Blur()
	}
	for i := 0; i < n; i++ {
		e.textarea, _ = e.textarea.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	if indent != "" {
		text = strings.ReplaceAll(text, "\n", "\n"+indent)
	}
	e.textarea.InsertString(text)
}

func isWordRune(r rune) bool {
	return r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' ||
		strings.ContainsRune("áéíóúüñÁÉÍÓÚÜÑ", r)
}
