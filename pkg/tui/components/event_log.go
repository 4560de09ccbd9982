package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// EventLevel is the severity of an event log entry.
type EventLevel string

const (
	EventInfo    EventLevel = "info"
	EventSuccess EventLevel = "success"
	EventWarning EventLevel = "warning"
	EventError   EventLevel = "error"
)

// Event is one entry of the event log.
type Event struct {
	Time    time.Time
	Kind    string // LEVEL, THEME, EXPORT, ...
	Content string
	Level   EventLevel
}

// EventLog keeps the most recent editor events for the log panel.
type EventLog struct {
	events    []Event
	maxEvents int
	visible   bool
	now       func() time.Time

	panelStyle   lipgloss.Style
	headerStyle  lipgloss.Style
	infoStyle    lipgloss.Style
	successStyle lipgloss.Style
	warningStyle lipgloss.Style
	errorStyle   lipgloss.Style
}

// NewEventLog creates a hidden log that keeps the last 100 events.
func NewEventLog() *EventLog {
	return &EventLog{
		maxEvents: 100,
		now:       time.Now,

		panelStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		headerStyle: lipgloss.NewStyle().
			Bold(true).
			Underline(true),
		infoStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		successStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		warningStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		errorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// Add appends an event, dropping the oldest once the log is full.
func (l *EventLog) Add(kind, content string, level EventLevel) {
	l.events = append(l.events, Event{
		Time:    l.now(),
		Kind:    kind,
		Content: content,
		Level:   level,
	})
	if len(l.events) > l.maxEvents {
		l.events = l.events[len(l.events)-l.maxEvents:]
	}
}

// Info, Success, Warn and Error add an event at that level.
func (l *EventLog) Info(kind, content string)    { l.Add(kind, content, EventInfo) }
func (l *EventLog) Success(kind, content string) { l.Add(kind, content, EventSuccess) }
func (l *EventLog) Warn(kind, content string)    { l.Add(kind, content, EventWarning) }
func (l *EventLog) Error(kind string, err error) { l.Add(kind, err.Error(), EventError) }

// Toggle shows or hides the log panel.
func (l *EventLog) Toggle() {
	l.visible = !l.visible
}

// Visible reports whether the log panel is shown.
func (l *EventLog) Visible() bool {
	return l.visible
}

// Events returns a copy of the retained events, oldest first.
func (l *EventLog) Events() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Last returns the newest event.
func (l *EventLog) Last() (Event, bool) {
	if len(l.events) == 0 {
		return Event{}, false
	}
	return l.events[len(l.events)-1], true
}

// Len returns the number of stored events.
func (l *EventLog) Len() int {
	return len(l.events)
}

// Clear removes every event.
func (l *EventLog) Clear() {
	l.events = nil
}

// View renders the newest events that fit in height rows.
func (l *EventLog) View(width, height int) string {
	if !l.visible {
		return ""
	}

	var b strings.Builder
	b.WriteString(l.headerStyle.Render("Registro de eventos"))

	rows := max(1, height-3)
	if len(l.events) == 0 {
		b.WriteString("\nSin eventos")
	}
	start := max(0, len(l.events)-rows)
	for _, e := range l.events[start:] {
		b.WriteString("\n" + l.render(e))
	}

	return l.panelStyle.
		Width(max(1, width-2)).
		Height(max(1, height-2)).
		MaxHeight(height).
		Render(b.String())
}

func (l *EventLog) render(e Event) string {
	var style lipgloss.Style
	switch e.Level {
	case EventSuccess:
		style = l.successStyle
	case EventWarning:
		style = l.warningStyle
	case EventError:
		style = l.errorStyle
	default:
		style = l.infoStyle
	}

	return fmt.Sprintf("[%s] %s: %s", e.Time.Format("15:04:05"), style.Render(e.Kind), e.Content)
}
