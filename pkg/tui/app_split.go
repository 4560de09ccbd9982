package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/evanschultz/pseudo-refine/pkg/session"
	"github.com/evanschultz/pseudo-refine/pkg/syntax"
)

const (
	headerHeight     = 2
	footerHeight     = 2
	eventLogHeight   = 8
	minContentHeight = 5
)

// View renders the level bar, the two panes and the status lines.
func (m Model) View() string {
	if !m.ready || m.width == 0 || m.height == 0 {
		return "Inicializando..."
	}

	header := lipgloss.JoinVertical(lipgloss.Left, m.levelBar(), m.pathLine())

	var main string
	if m.mode == modeHelp {
		main = m.styles.Focused.
			Width(m.width - 2).
			Height(m.contentHeight + m.logHeight - 2).
			Render(m.helpView.View())
	} else {
		editorStyle, previewStyle := m.styles.Unfocused, m.styles.Unfocused
		switch {
		case m.mode == modeSnippets:
			previewStyle = m.styles.Focused
		case m.focus.Is(paneEditor):
			editorStyle = m.styles.Focused
		default:
			previewStyle = m.styles.Focused
		}

		editorPane := editorStyle.
			Width(m.editorPaneWidth - 2).
			Height(m.contentHeight - 2).
			Render(m.editor.View())

		var right string
		if m.mode == modeSnippets {
			right = m.picker.View()
		} else {
			right = m.preview.View()
			if m.preview.TotalLineCount() > m.preview.Height {
				denominator := m.preview.TotalLineCount() - m.preview.Height
				scrollPercent := float64(m.preview.YOffset) / float64(denominator)
				right = m.addScrollbar(right, m.preview.Height, scrollPercent)
			}
		}
		previewPane := previewStyle.
			Width(m.previewPaneWidth - 2).
			Height(m.contentHeight - 2).
			Render(right)

		main = lipgloss.JoinHorizontal(lipgloss.Top, editorPane, previewPane)
		if m.events.Visible() {
			main = lipgloss.JoinVertical(lipgloss.Left, main, m.events.View(m.width, m.logHeight))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, main, m.statusLine(), m.helpLine())
}

func (m Model) levelBar() string {
	lvls := m.sess.Levels()
	cur := m.sess.Current().ID
	tabWidth := max(8, m.width/len(lvls)-3)

	parts := make([]string, len(lvls))
	for i, l := range lvls {
		name := truncate.StringWithTail(l.Name, uint(tabWidth), "…")
		if l.ID == cur {
			parts[i] = m.styles.Accent.Render("[" + name + "]")
		} else {
			parts[i] = m.styles.Help.Render(" " + name + " ")
		}
	}
	return truncate.StringWithTail(strings.Join(parts, " "), uint(m.width), "…")
}

func (m Model) pathLine() string {
	cur := m.sess.Current()
	path := m.sess.Path(cur.ID)
	names := make([]string, len(path))
	for i, l := range path {
		names[i] = l.Name
	}
	line := strings.Join(names, " › ")
	if cur.Description != "" {
		line += " · " + cur.Description
	}
	return m.styles.Muted.Render(truncate.StringWithTail(line, uint(m.width), "…"))
}

func (m Model) statusLine() string {
	if m.mode == modeRename || m.mode == modeDescribe {
		return m.input.View()
	}

	left := m.status
	if m.statusErr {
		left = m.styles.Error.Render(left)
	}
	themeName := m.theme.Name
	if themeName == "" {
		themeName = "…"
	}
	right := m.styles.Help.Render(fmt.Sprintf("%s · %d niveles · %d refs",
		themeName, len(m.sess.Levels()), len(m.sess.References())))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return truncate.StringWithTail(left, uint(max(0, m.width-lipgloss.Width(right)-1)), "…") + " " + right
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) helpLine() string {
	var km help.KeyMap = keys
	if m.focus.Is(panePreview) {
		km = previewHelp{keys}
	}
	return m.help.ShortHelpView(km.ShortHelp())
}

// renderPreview colours the formatted text and marks references. Lines are
// cut to the viewport width so that screen rows map one to one onto lines.
func (m Model) renderPreview() string {
	refs := m.sess.References()
	var sel *session.Reference
	if m.selected >= 0 && m.selected < len(refs) {
		sel = &refs[m.selected]
	}

	link := lipgloss.NewStyle().Underline(true)
	if c := m.theme.Link(); c != "" {
		link = link.Foreground(c)
	}
	selected := link.Reverse(true)

	width := uint(max(1, m.preview.Width))
	lines := m.sess.Lines()
	out := make([]string, len(lines))
	for i, line := range lines {
		var b strings.Builder
		col := 0
		for _, seg := range line {
			if seg.Reference {
				style := link
				if sel != nil && sel.Line == i && sel.Col == col {
					style = selected
				}
				b.WriteString(style.Render(seg.Text))
			} else {
				b.WriteString(m.theme.Render(syntax.Tokenize(seg.Text)))
			}
			col += session.DisplayWidth(seg.Text)
		}
		out[i] = truncate.String(b.String(), width)
	}
	return strings.Join(out, "\n")
}

func (m *Model) refreshPreview() {
	m.preview.SetContent(m.renderPreview())
}

func (m *Model) scrollToSelected(ref session.Reference) {
	switch {
	case ref.Line < m.preview.YOffset:
		m.preview.SetYOffset(ref.Line)
	case ref.Line >= m.preview.YOffset+m.preview.Height:
		m.preview.SetYOffset(ref.Line - m.preview.Height + 1)
	}
}

// previewPosition maps a screen cell to a line and display column of the
// formatted text.
func (m Model) previewPosition(x, y int) (line, col int, ok bool) {
	x0 := m.editorPaneWidth + 2 // border and padding
	y0 := headerHeight + 1
	col, row := x-x0, y-y0
	if col < 0 || col >= m.preview.Width || row < 0 || row >= m.preview.Height {
		return 0, 0, false
	}
	return row + m.preview.YOffset, col, true
}

func (m Model) addScrollbar(content string, height int, scrollPercent float64) string {
	if height <= 0 {
		return content
	}

	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}

	thumbHeight := max(1, height/10)
	thumbPosition := int(float64(height-thumbHeight) * scrollPercent)

	for i := range lines {
		if i >= thumbPosition && i < thumbPosition+thumbHeight {
			lines[i] += m.styles.Accent.UnsetBold().Render(" ▐")
		} else {
			lines[i] += m.styles.Muted.Render(" │")
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) calculateLayout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	m.logHeight = 0
	if m.events.Visible() {
		m.logHeight = eventLogHeight
	}
	m.contentHeight = max(minContentHeight, m.height-headerHeight-footerHeight-m.logHeight)

	m.editorPaneWidth = m.width / 2
	m.previewPaneWidth = m.width - m.editorPaneWidth
}

func (m *Model) updateComponentSizes() {
	m.editor.SetSize(m.editorPaneWidth-4, m.contentHeight-2)

	m.preview.Width = max(1, m.previewPaneWidth-6) // padding and scrollbar
	m.preview.Height = max(1, m.contentHeight-2)

	m.picker.SetSize(m.previewPaneWidth-4, m.contentHeight-2)

	m.helpView.Width = max(1, m.width-4)
	m.helpView.Height = max(1, m.contentHeight+m.logHeight-2)

	m.help.Width = m.width
	m.input.Width = max(10, m.width-20)
}
