// Package theme loads editor colour themes. Themes use the Monaco theme
// descriptor format (base, inherit, rules, colors) and are passed around as
// plain values; nothing in the formatting pipeline depends on them.
package theme

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/evanschultz/pseudo-refine/pkg/syntax"
)

// Default is the theme used when none is configured.
const Default = "dracula"

// ErrUnknownTheme is returned for a theme name that is not built in.
var ErrUnknownTheme = errors.New("unknown theme")

//go:embed themes/*.json
var builtin embed.FS

// Rule colours one token kind. Colours are hex without the leading '#'.
type Rule struct {
	Token      string `json:"token"`
	Foreground string `json:"foreground,omitempty"`
	Background string `json:"background,omitempty"`
	FontStyle  string `json:"fontStyle,omitempty"`
}

// Descriptor is the on-disk theme format.
type Descriptor struct {
	Base    string            `json:"base"`
	Inherit bool              `json:"inherit"`
	Rules   []Rule            `json:"rules"`
	Colors  map[string]string `json:"colors"`
}

// Theme is a loaded, named descriptor.
type Theme struct {
	Name string
	Descriptor
}

// Names returns the built-in theme names, sorted.
func Names() []string {
	entries, err := builtin.ReadDir("themes")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}

// Known reports whether name is a built-in theme.
func Known(name string) bool {
	for _, n := range Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Load returns a built-in theme by name.
func Load(name string) (Theme, error) {
	data, err := builtin.ReadFile("themes/" + name + ".json")
	if err != nil {
		return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return parse(name, data)
}

// LoadFile reads a theme descriptor from disk. The theme is named after the
// file.
func LoadFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("reading theme: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return parse(name, data)
}

func parse(name string, data []byte) (Theme, error) {
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return Theme{}, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	return Theme{Name: name, Descriptor: d}, nil
}

func color(hex string) lipgloss.Color {
	if hex == "" {
		return ""
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	return lipgloss.Color(hex)
}

// rule finds the rule for token. A rule for "keyword" also covers
// "keyword.control".
func (t Theme) rule(token string) (Rule, bool) {
	best, found := Rule{}, false
	for _, r := range t.Rules {
		if r.Token == token {
			return r, true
		}
		if r.Token != "" && strings.HasPrefix(token, r.Token+".") && len(r.Token) > len(best.Token) {
			best, found = r, true
		}
	}
	return best, found
}

// Foreground is the default text colour.
func (t Theme) Foreground() lipgloss.Color {
	if c, ok := t.Colors["editor.foreground"]; ok {
		return color(c)
	}
	if r, ok := t.rule(""); ok {
		return color(r.Foreground)
	}
	return ""
}

// Background is the editor background colour.
func (t Theme) Background() lipgloss.Color {
	if c, ok := t.Colors["editor.background"]; ok {
		return color(c)
	}
	if r, ok := t.rule(""); ok {
		return color(r.Background)
	}
	return ""
}

// Link is the colour used for cross-reference labels.
func (t Theme) Link() lipgloss.Color {
	if c, ok := t.Colors["editorLink.activeForeground"]; ok {
		return color(c)
	}
	return t.Foreground()
}

// Style returns the lipgloss style for a token kind. Kinds without a rule
// use the default foreground.
func (t Theme) Style(kind syntax.Kind) lipgloss.Style {
	s := lipgloss.NewStyle()
	r, ok := t.rule(string(kind))
	if !ok || r.Foreground == "" {
		if fg := t.Foreground(); fg != "" {
			s = s.Foreground(fg)
		}
		if !ok {
			return s
		}
	} else {
		s = s.Foreground(color(r.Foreground))
	}
	for _, f := range strings.Fields(r.FontStyle) {
		switch f {
		case "bold":
			s = s.Bold(true)
		case "italic":
			s = s.Italic(true)
		case "underline":
			s = s.Underline(true)
		}
	}
	return s
}

// Render colours a tokenized line.
func (t Theme) Render(tokens []syntax.Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(t.Style(tok.Kind).Render(tok.Text))
	}
	return b.String()
}
