package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/evanschultz/pseudo-refine/pkg/config"
	"github.com/evanschultz/pseudo-refine/pkg/snippets"
)

// run executes the command tree with an isolated config directory.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFormatStdin(t *testing.T) {
	out, err := run(t, "SI x ENTONCES\nESCRIBIR x\nFIN_SI\n", "format", "--color=never")
	require.NoError(t, err)
	assert.Equal(t, "SI x ENTONCES\n    ESCRIBIR x\nFIN_SI\n", out)
}

func TestFormatFileWithIndentWidth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "algoritmo.txt")
	require.NoError(t, os.WriteFile(path, []byte("MIENTRAS a HACER\nb\nFIN_MIENTRAS"), 0o644))

	out, err := run(t, "", "format", "--color=never", "--indent-width", "2", path)
	require.NoError(t, err)
	assert.Equal(t, "MIENTRAS a HACER\n  b\nFIN_MIENTRAS\n", out)
}

func TestFormatColorAlways(t *testing.T) {
	out, err := run(t, "SI x ENTONCES\nFIN_SI", "format", "--color=always")
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "ENTONCES")
}

func TestFormatCheck(t *testing.T) {
	_, err := run(t, "SI x ENTONCES\n    y\nFIN_SI\n", "format", "--check")
	assert.NoError(t, err)

	out, err := run(t, "SI x ENTONCES\ny\nFIN_SI\n", "format", "--check")
	assert.ErrorIs(t, err, errNotFormatted)
	assert.Equal(t, "stdin\n", out)
}

func TestFormatInvalidColor(t *testing.T) {
	_, err := run(t, "x", "format", "--color=sometimes")
	assert.ErrorContains(t, err, "--color")
}

func TestFormatMissingFile(t *testing.T) {
	_, err := run(t, "", "format", filepath.Join(t.TempDir(), "nada.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInvalidConfigIsRejected(t *testing.T) {
	_, err := run(t, "x", "format", "--theme", "solarized")
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = run(t, "x", "format", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfigFileSetsIndentWidth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("indent_width: 3\n"), 0o644))

	out, err := run(t, "SI a ENTONCES\nb\nFIN_SI", "format", "--color=never", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "SI a ENTONCES\n   b\nFIN_SI\n", out)
}

func TestSnippetsListKeys(t *testing.T) {
	out, err := run(t, "", "snippets")
	require.NoError(t, err)
	assert.Equal(t, strings.Join(snippets.Default().Keys(), "\n")+"\n", out)
}

func TestSnippetsTemplate(t *testing.T) {
	out, err := run(t, "", "snippets", "si")
	require.NoError(t, err)
	assert.Equal(t, "SI (condición) ENTONCES\n    // acciones\nFIN_SI\n", out)
}

func TestSnippetsTemplateJSON(t *testing.T) {
	out, err := run(t, "", "snippets", "mientras", "--output", "json")
	require.NoError(t, err)

	var got snippets.Snippet
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "mientras", got.Key)
	assert.True(t, strings.HasPrefix(got.Template, "MIENTRAS (condición) HACER"))
}

func TestSnippetsCatalogYAML(t *testing.T) {
	out, err := run(t, "", "snippets", "-o", "yaml")
	require.NoError(t, err)

	var got []snippets.Snippet
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Len(t, got, len(snippets.Default().Keys()))
}

func TestSnippetsKeywords(t *testing.T) {
	out, err := run(t, "", "snippets", "--keywords")
	require.NoError(t, err)
	assert.Contains(t, strings.Split(out, "\n"), "MIENTRAS")
}

func TestSnippetsPrefix(t *testing.T) {
	out, err := run(t, "", "snippets", "--prefix", "mien")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "keyword  MIENTRAS", lines[0])
}

func TestSnippetsErrors(t *testing.T) {
	_, err := run(t, "", "snippets", "nada")
	assert.ErrorContains(t, err, `unknown snippet "nada"`)

	_, err = run(t, "", "snippets", "--output", "xml")
	assert.ErrorContains(t, err, "invalid --output format")
}
