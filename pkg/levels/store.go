package levels

import (
	"fmt"
)

// RootID is the id of the permanent general design level.
const RootID = 0

const (
	rootName        = "Nivel 0 - Diseño General"
	rootDescription = "Descripción general del problema y solución"
	levelDesc       = "Refinamiento del nivel anterior"
)

// Level is one named refinement of the design.
type Level struct {
	ID          int
	Name        string
	Code        string // raw, unformatted source
	Description string
	ParentID    *int // nil only for the root
}

// Parent returns the parent id and whether the level has one.
func (l Level) Parent() (int, bool) {
	if l.ParentID == nil {
		return 0, false
	}
	return *l.ParentID, true
}

// IsRoot reports whether l is the permanent root level.
func (l Level) IsRoot() bool {
	return l.ID == RootID
}

// Store is an ordered collection of refinement levels with a current
// pointer. It is not safe for concurrent use; the editor drives it from a
// single event loop.
type Store struct {
	levels  []Level
	current int // id of the current level
	nextID  int
}

// New returns a store holding only the root level, which is current.
func New() *Store {
	return &Store{
		levels: []Level{{
			ID:          RootID,
			Name:        rootName,
			Description: rootDescription,
		}},
		current: RootID,
		nextID:  RootID + 1,
	}
}

// CreateLevel appends a new empty level under parentID and makes it
// current. Ids come from a counter that never goes back, so an id freed by
// DeleteLevel is never handed out again. parentID is not validated.
func (s *Store) CreateLevel(parentID int) Level {
	id := s.nextID
	s.nextID++

	parent := parentID
	level := Level{
		ID:          id,
		Name:        fmt.Sprintf("Nivel %d - Refinamiento", id),
		Description: levelDesc,
		ParentID:    &parent,
	}
	s.levels = append(s.levels, level)
	s.current = id
	return clone(level)
}

// RenameLevel sets the name of level id. Names are not required to be
// unique. It reports whether the level exists.
func (s *Store) RenameLevel(id int, name string) bool {
	i := s.IndexOf(id)
	if i < 0 {
		return false
	}
	s.levels[i].Name = name
	return true
}

// SetDescription sets the free-text annotation of level id.
func (s *Store) SetDescription(id int, description string) bool {
	i := s.IndexOf(id)
	if i < 0 {
		return false
	}
	s.levels[i].Description = description
	return true
}

// DeleteLevel removes level id. The root and unknown ids are ignored. When
// the current level is removed the last remaining level in store order
// becomes current, which is not necessarily the parent.
func (s *Store) DeleteLevel(id int) bool {
	if id == RootID {
		return false
	}
	i := s.IndexOf(id)
	if i < 0 {
		return false
	}

	s.levels = append(s.levels[:i], s.levels[i+1:]...)
	if s.current == id {
		s.current = s.levels[len(s.levels)-1].ID
	}
	return true
}

// SwitchLevel makes id current. Unknown ids are ignored.
func (s *Store) SwitchLevel(id int) bool {
	if s.IndexOf(id) < 0 {
		return false
	}
	s.current = id
	return true
}

// CurrentID returns the id of the current level.
func (s *Store) CurrentID() int {
	return s.current
}

// Current returns a copy of the current level.
func (s *Store) Current() Level {
	return clone(s.levels[s.IndexOf(s.current)])
}

// CurrentText returns the raw code of the current level.
func (s *Store) CurrentText() string {
	return s.levels[s.IndexOf(s.current)].Code
}

// SetCurrentText replaces the raw code of the current level.
func (s *Store) SetCurrentText(text string) {
	s.levels[s.IndexOf(s.current)].Code = text
}

// Level returns a copy of level id.
func (s *Store) Level(id int) (Level, bool) {
	i := s.IndexOf(id)
	if i < 0 {
		return Level{}, false
	}
	return clone(s.levels[i]), true
}

// Levels returns a copy of all levels in store order.
func (s *Store) Levels() []Level {
	out := make([]Level, len(s.levels))
	for i, l := range s.levels {
		out[i] = clone(l)
	}
	return out
}

// IndexOf returns the store position of level id, or -1.
func (s *Store) IndexOf(id int) int {
	for i, l := range s.levels {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// Len returns the number of levels, root included.
func (s *Store) Len() int {
	return len(s.levels)
}

// Children returns the levels whose parent is id, in store order.
func (s *Store) Children(id int) []Level {
	var out []Level
	for _, l := range s.levels {
		if p, ok := l.Parent(); ok && p == id {
			out = append(out, clone(l))
		}
	}
	return out
}

// Path returns the chain of levels from the topmost reachable ancestor down
// to id. Parents that no longer exist end the chain, and a cycle stops at the
// first repeated level.
func (s *Store) Path(id int) []Level {
	seen := make(map[int]bool)
	var chain []Level

	for {
		i := s.IndexOf(id)
		if i < 0 || seen[id] {
			break
		}
		seen[id] = true
		level := s.levels[i]
		chain = append(chain, clone(level))

		parent, ok := level.Parent()
		if !ok {
			break
		}
		id = parent
	}

	for l, r := 0, len(chain)-1; l < r; l, r = l+1, r-1 {
		chain[l], chain[r] = chain[r], chain[l]
	}
	return chain
}

func clone(l Level) Level {
	if l.ParentID != nil {
		p := *l.ParentID
		l.ParentID = &p
	}
	return l
}
