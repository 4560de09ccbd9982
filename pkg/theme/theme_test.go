package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evanschultz/pseudo-refine/pkg/syntax"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"dracula", "monokai"}, Names())
	assert.True(t, Known(Default))
	assert.False(t, Known("solarized"))
}

func TestLoad(t *testing.T) {
	th, err := Load("dracula")
	require.NoError(t, err)

	assert.Equal(t, "dracula", th.Name)
	assert.Equal(t, "vs-dark", th.Base)
	assert.Equal(t, lipgloss.Color("#282a36"), th.Background())

	kw := th.Style(syntax.Keyword)
	assert.Equal(t, lipgloss.Color("#ff79c6"), kw.GetForeground())
	assert.True(t, kw.GetBold())

	assert.True(t, th.Style(syntax.Type).GetItalic())
	assert.Equal(t, lipgloss.Color("#f8f8f2"), th.Style(syntax.Text).GetForeground())
}

func TestLoadUnknown(t *testing.T) {
	_, err := Load("solarized")
	assert.ErrorIs(t, err, ErrUnknownTheme)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mine.json")
	data := `{"base":"vs","inherit":false,"rules":[{"token":"keyword","foreground":"0000ff"}],"colors":{"editor.foreground":"#000000"}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	th, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "mine", th.Name)
	assert.Equal(t, lipgloss.Color("#0000ff"), th.Style(syntax.Keyword).GetForeground())
	// no rule for comments: default foreground
	assert.Equal(t, lipgloss.Color("#000000"), th.Style(syntax.Comment).GetForeground())
	assert.Equal(t, lipgloss.Color("#000000"), th.Link())
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err = LoadFile(path)
	assert.ErrorContains(t, err, "parsing theme")
}

func TestDottedRuleFallback(t *testing.T) {
	th := Theme{Descriptor: Descriptor{Rules: []Rule{{Token: "keyword", Foreground: "123456"}}}}

	r, ok := th.rule("keyword.control")
	require.True(t, ok)
	assert.Equal(t, "123456", r.Foreground)

	_, ok = th.rule("keywordish")
	assert.False(t, ok)
}
