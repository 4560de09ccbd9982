package linker

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/evanschultz/pseudo-refine/pkg/levels"
)

// LabelSeparator splits a level name into its prefix and short label.
const LabelSeparator = " - "

// Segment is a run of text within one line. Reference segments point at the
// level whose short label they spell.
type Segment struct {
	Text      string
	Reference bool
	Index     int // store position of the target level
	LevelID   int // id of the target level
}

// Line is the ordered list of segments for one line of text.
type Line []Segment

// String joins the segment texts back into the original line.
func (l Line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// ShortLabel returns the part of a level name after the first " - ",
// trimmed. ok is false when the name has no separator or the label is
// empty.
func ShortLabel(name string) (label string, ok bool) {
	_, after, found := strings.Cut(name, LabelSeparator)
	if !found {
		return "", false
	}
	label = strings.TrimSpace(after)
	return label, label != ""
}

type target struct {
	index int
	id    int
}

// Linker finds level short labels inside text.
type Linker struct {
	candidates []string // longest first
	targets    map[string]target
}

// New builds a linker over lvls in store order. Every level except the root
// contributes its short label as a candidate. Candidates are tried longest
// first so that "Leer Datos" is not split by a shorter "Leer".
func New(lvls []levels.Level) *Linker {
	l := &Linker{targets: make(map[string]target)}

	// A label resolves to the first level that carries it, root included.
	for i, lvl := range lvls {
		label, ok := ShortLabel(lvl.Name)
		if !ok {
			continue
		}
		if _, seen := l.targets[label]; !seen {
			l.targets[label] = target{index: i, id: lvl.ID}
		}
	}

	seen := make(map[string]bool)
	var candidates []string
	for _, lvl := range lvls {
		if lvl.IsRoot() {
			continue
		}
		label, ok := ShortLabel(lvl.Name)
		if !ok || seen[label] {
			continue
		}
		seen[label] = true
		candidates = append(candidates, label)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i]) > len(candidates[j])
	})
	l.candidates = candidates
	return l
}

// Empty reports whether the linker has no candidate labels.
func (l *Linker) Empty() bool {
	return len(l.candidates) == 0
}

// Line splits one line into plain and reference segments. A label only
// matches as a whole word: letters, digits and '_' in any script count as
// word characters, so "Área" matches in "ver Área" but not in "verÁrea".
func (l *Linker) Line(line string) Line {
	if l.Empty() {
		return Line{{Text: line}}
	}

	var out Line
	last := 0
	for i := 0; i < len(line); {
		name, ok := l.matchAt(line, i)
		if !ok {
			_, size := utf8.DecodeRuneInString(line[i:])
			i += size
			continue
		}
		if i > last {
			out = append(out, Segment{Text: line[last:i]})
		}
		t := l.targets[name]
		out = append(out, Segment{Text: name, Reference: true, Index: t.index, LevelID: t.id})
		i += len(name)
		last = i
	}
	if last < len(line) {
		out = append(out, Segment{Text: line[last:]})
	}
	return out
}

// matchAt returns the longest candidate starting at byte offset i that sits
// on word boundaries at both ends.
func (l *Linker) matchAt(line string, i int) (string, bool) {
	before, _ := utf8.DecodeLastRuneInString(line[:i])
	for _, c := range l.candidates {
		if !strings.HasPrefix(line[i:], c) {
			continue
		}
		first, _ := utf8.DecodeRuneInString(c)
		if i > 0 && isWord(first) && isWord(before) {
			continue
		}
		lastRune, _ := utf8.DecodeLastRuneInString(c)
		if end := i + len(c); end < len(line) {
			after, _ := utf8.DecodeRuneInString(line[end:])
			if isWord(lastRune) && isWord(after) {
				continue
			}
		}
		return c, true
	}
	return "", false
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Linkify splits text on newlines and links every line.
func (l *Linker) Linkify(text string) []Line {
	raw := strings.Split(text, "\n")
	out := make([]Line, len(raw))
	for i, line := range raw {
		out[i] = l.Line(line)
	}
	return out
}

// Linkify links formatted text against lvls in one call.
func Linkify(text string, lvls []levels.Level) []Line {
	return New(lvls).Linkify(text)
}
