// Package session owns one editing session: the refinement levels, the
// formatter and the formatted, linked view of the current level. Every
// mutation re-runs the formatter and the linker over the whole current text.
package session

import (
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"

	"github.com/evanschultz/pseudo-refine/pkg/formatter"
	"github.com/evanschultz/pseudo-refine/pkg/levels"
	"github.com/evanschultz/pseudo-refine/pkg/linker"
)

// Reference is a linked label with its position in the formatted text.
// Col is the display column of the first character.
type Reference struct {
	linker.Segment
	Line  int
	Col   int
	Width int
}

// TabWidth is the number of columns a tab occupies on screen. lipgloss
// expands tabs to this many spaces when rendering.
const TabWidth = 4

// DisplayWidth returns the number of terminal columns s occupies once
// rendered, counting each tab as TabWidth columns.
func DisplayWidth(s string) int {
	tabs := strings.Count(s, "\t")
	if tabs == 0 {
		return runewidth.StringWidth(s)
	}
	return runewidth.StringWidth(strings.ReplaceAll(s, "\t", "")) + tabs*TabWidth
}

// Session is not safe for concurrent use.
type Session struct {
	id    uuid.UUID
	store *levels.Store
	fmt   *formatter.Formatter
	log   zerolog.Logger

	formatted string
	lines     []linker.Line
	refs      []Reference
}

// Option configures a Session.
type Option func(*Session)

// WithFormatter replaces the default formatter.
func WithFormatter(f *formatter.Formatter) Option {
	return func(s *Session) {
		if f != nil {
			s.fmt = f
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// WithText seeds the root level.
func WithText(text string) Option {
	return func(s *Session) {
		s.store.SetCurrentText(text)
	}
}

// New creates a session with only the root level, formatted with the
// default formatter unless WithFormatter says otherwise.
func New(opts ...Option) *Session {
	s := &Session{
		id:    uuid.New(),
		store: levels.New(),
		fmt:   formatter.New(),
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("session", s.id.String()).Logger()
	s.refresh()
	s.log.Info().Int("levels", s.store.Len()).Msg("session started")
	return s
}

// ID identifies the session in logs.
func (s *Session) ID() uuid.UUID {
	return s.id
}

func (s *Session) refresh() {
	s.formatted = s.fmt.Format(s.store.CurrentText())
	s.lines = linker.New(s.store.Levels()).Linkify(s.formatted)

	s.refs = s.refs[:0]
	for i, line := range s.lines {
		col := 0
		for _, seg := range line {
			w := DisplayWidth(seg.Text)
			if seg.Reference {
				s.refs = append(s.refs, Reference{Segment: seg, Line: i, Col: col, Width: w})
			}
			col += w
		}
	}
}

// Edit replaces the raw text of the current level.
func (s *Session) Edit(text string) {
	s.store.SetCurrentText(text)
	s.refresh()
	s.log.Debug().Int("level", s.store.CurrentID()).Int("bytes", len(text)).Msg("edit")
}

// Text returns the raw text of the current level.
func (s *Session) Text() string {
	return s.store.CurrentText()
}

// FormattedText returns the formatted text of the current level. This is
// what gets copied and exported.
func (s *Session) FormattedText() string {
	return s.formatted
}

// Lines returns the linked lines of the formatted text.
func (s *Session) Lines() []linker.Line {
	return s.lines
}

// References returns every reference in the formatted text in reading order.
func (s *Session) References() []Reference {
	out := make([]Reference, len(s.refs))
	copy(out, s.refs)
	return out
}

// ReferenceAt returns the reference covering display column col of line.
func (s *Session) ReferenceAt(line, col int) (Reference, bool) {
	for _, r := range s.refs {
		if r.Line == line && col >= r.Col && col < r.Col+r.Width {
			return r, true
		}
	}
	return Reference{}, false
}

// CreateLevel adds a level under the current one and switches to it.
func (s *Session) CreateLevel() levels.Level {
	parent := s.store.CurrentID()
	l := s.store.CreateLevel(parent)
	s.refresh()
	s.log.Info().Int("level", l.ID).Int("parent", parent).Str("name", l.Name).Msg("level created")
	return l
}

// RenameLevel renames level id and relinks the current text, since the
// set of labels changed.
func (s *Session) RenameLevel(id int, name string) bool {
	if !s.store.RenameLevel(id, name) {
		s.log.Warn().Int("level", id).Msg("rename of unknown level")
		return false
	}
	s.refresh()
	s.log.Info().Int("level", id).Str("name", name).Msg("level renamed")
	return true
}

// SetDescription sets the free-text description of level id.
func (s *Session) SetDescription(id int, description string) bool {
	if !s.store.SetDescription(id, description) {
		return false
	}
	s.log.Debug().Int("level", id).Msg("description updated")
	return true
}

// DeleteLevel removes a level. The root cannot be deleted.
func (s *Session) DeleteLevel(id int) bool {
	if !s.store.DeleteLevel(id) {
		s.log.Warn().Int("level", id).Msg("delete ignored")
		return false
	}
	s.refresh()
	s.log.Info().Int("level", id).Int("current", s.store.CurrentID()).Msg("level deleted")
	return true
}

// SwitchLevel makes level id current. Unknown ids are ignored.
func (s *Session) SwitchLevel(id int) bool {
	if !s.store.SwitchLevel(id) {
		s.log.Warn().Int("level", id).Msg("switch to unknown level")
		return false
	}
	s.refresh()
	s.log.Debug().Int("level", id).Msg("switched")
	return true
}

// Follow activates a reference segment. Only a modified activation (ctrl
// held) navigates; a plain one does nothing.
func (s *Session) Follow(seg linker.Segment, modifier bool) bool {
	if !seg.Reference || !modifier {
		return false
	}
	if !s.SwitchLevel(seg.LevelID) {
		return false
	}
	s.log.Info().Str("label", seg.Text).Int("level", seg.LevelID).Msg("reference followed")
	return true
}

// Levels returns a copy of all levels in store order.
func (s *Session) Levels() []levels.Level {
	return s.store.Levels()
}

// Current returns the level being edited.
func (s *Session) Current() levels.Level {
	return s.store.Current()
}

// Level looks up a level by id.
func (s *Session) Level(id int) (levels.Level, bool) {
	return s.store.Level(id)
}

// Path returns the ancestors of level id followed by the level itself.
func (s *Session) Path(id int) []levels.Level {
	return s.store.Path(id)
}

// Children returns the levels whose parent is id.
func (s *Session) Children(id int) []levels.Level {
	return s.store.Children(id)
}

// IndentUnit is the string used for one level of indentation.
func (s *Session) IndentUnit() string {
	return s.fmt.IndentUnit()
}
