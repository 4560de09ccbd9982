package formatter

import (
	"strings"
)

// Keywords is the block keyword table the formatter matches against.
//
// Matching is substring/prefix based rather than tokenized, so a keyword
// embedded in an identifier or a comment still counts ("DESHACER" contains
// "HACER"). This mirrors how students' existing pseudocode has always been
// indented and is kept on purpose.
type Keywords struct {
	Terminator       string   // bare block close, matched by equality ("FIN")
	TerminatorPrefix string   // prefix of every named close ("FIN_")
	GluedClosers     []string // closers written without the separator ("FINSI")
	Else             string   // else branch, dedents and re-indents
	Case             string   // case label, dedents and re-indents
	Then             string
	Do               string
	Open             string // matched by equality
	Repeat           string // matched by equality
}

// DefaultKeywords returns the canonical uppercase keyword set.
func DefaultKeywords() Keywords {
	return Keywords{
		Terminator:       "FIN",
		TerminatorPrefix: "FIN_",
		GluedClosers:     []string{"FINSI", "FINMIENTRAS", "FINPARA", "FINSEGUN"},
		Else:             "SINO",
		Case:             "CASO",
		Then:             "ENTONCES",
		Do:               "HACER",
		Open:             "INICIO",
		Repeat:           "REPETIR",
	}
}

// Line is one analyzed line of output.
type Line struct {
	Text  string // trimmed source text, empty for blank lines
	Depth int    // indent depth the line is emitted at
	Blank bool
}

// Formatter re-indents pseudocode. The zero value is not usable; call New.
type Formatter struct {
	keywords Keywords
	unit     string
	foldCase bool
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithIndentWidth sets the number of spaces per indent level. Values below 1
// are ignored.
func WithIndentWidth(n int) Option {
	return func(f *Formatter) {
		if n > 0 {
			f.unit = strings.Repeat(" ", n)
		}
	}
}

// WithCaseFolding makes keyword matching case-insensitive. Output keeps the
// original spelling of each line.
func WithCaseFolding() Option {
	return func(f *Formatter) {
		f.foldCase = true
	}
}

// WithKeywords replaces the keyword table.
func WithKeywords(k Keywords) Option {
	return func(f *Formatter) {
		f.keywords = k
	}
}

// New creates a formatter with four-space indentation and the default
// keywords.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		keywords: DefaultKeywords(),
		unit:     "    ",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// IndentUnit returns the string emitted once per depth level.
func (f *Formatter) IndentUnit() string {
	return f.unit
}

// Analyze computes the indent depth of every line of text without building
// the output string.
func (f *Formatter) Analyze(text string) []Line {
	rawLines := strings.Split(text, "\n")
	lines := make([]Line, len(rawLines))
	depth := 0

	for i, raw := range rawLines {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			lines[i] = Line{Blank: true}
			continue
		}

		probe := trimmed
		if f.foldCase {
			probe = strings.ToUpper(trimmed)
		}

		if f.dedentsBefore(probe) && depth > 0 {
			depth--
		}

		lines[i] = Line{Text: trimmed, Depth: depth}

		if f.indentsAfter(probe) {
			depth++
		}
	}

	return lines
}

// Format re-indents text. It never fails: unbalanced keywords only produce
// odd indentation, floored at zero.
func (f *Formatter) Format(text string) string {
	lines := f.Analyze(text)

	var b strings.Builder
	b.Grow(len(text))
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if line.Blank {
			continue
		}
		b.WriteString(strings.Repeat(f.unit, line.Depth))
		b.WriteString(line.Text)
	}
	return b.String()
}

func (f *Formatter) dedentsBefore(line string) bool {
	k := f.keywords
	if k.TerminatorPrefix != "" && strings.HasPrefix(line, k.TerminatorPrefix) {
		return true
	}
	if k.Terminator != "" && line == k.Terminator {
		return true
	}
	for _, closer := range k.GluedClosers {
		if closer != "" && strings.HasPrefix(line, closer) {
			return true
		}
	}
	return hasPrefix(line, k.Else) || hasPrefix(line, k.Case)
}

func (f *Formatter) indentsAfter(line string) bool {
	k := f.keywords
	switch {
	case contains(line, k.Then), contains(line, k.Do), contains(line, k.Else):
		return true
	case hasPrefix(line, k.Case):
		return true
	case k.Open != "" && line == k.Open:
		return true
	case k.Repeat != "" && line == k.Repeat:
		return true
	}
	return false
}

// An empty keyword disables its rule instead of matching every line.
func hasPrefix(s, keyword string) bool {
	return keyword != "" && strings.HasPrefix(s, keyword)
}

func contains(s, keyword string) bool {
	return keyword != "" && strings.Contains(s, keyword)
}

var std = New()

// Format re-indents text with the default formatter.
func Format(text string) string {
	return std.Format(text)
}
