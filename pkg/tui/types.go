package tui

import (
	"strings"

	"github.com/evanschultz/pseudo-refine/pkg/snippets"
	"github.com/evanschultz/pseudo-refine/pkg/theme"
)

// Messages
type themeLoadedMsg struct {
	theme theme.Theme
}

type helpRenderedMsg struct {
	content string
}

type copiedMsg struct {
	bytes int
}

type exportedMsg struct {
	path  string
	bytes int
}

type externalEditorFinishedMsg struct {
	content string
	err     error
}

type errMsg struct {
	op  string
	err error
}

func (e errMsg) Error() string { return e.op + ": " + e.err.Error() }

// List items
type suggestionItem struct {
	suggestion snippets.Suggestion
}

func (i suggestionItem) FilterValue() string { return i.suggestion.Label }
func (i suggestionItem) Title() string       { return i.suggestion.Label }
func (i suggestionItem) Description() string {
	if i.suggestion.Kind == snippets.KindKeyword {
		return "palabra clave"
	}
	// First line of the template as a preview
	first, _, _ := strings.Cut(i.suggestion.Insert, "\n")
	return "plantilla · " + first
}
