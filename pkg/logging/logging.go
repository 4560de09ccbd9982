package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

const permission = 0664

// Build collects logger options.
type Build struct {
	writer io.Writer
	path   string
	level  string
}

// Log is a built logger and the file it writes to, if any.
type Log struct {
	File   *os.File
	Logger zerolog.Logger
}

// New starts a logger build. Without a path or writer the logger discards
// its output.
func New() *Build {
	return &Build{}
}

// FromPath appends to the file at path. It takes precedence over FromWriter.
func (b *Build) FromPath(path string) *Build {
	b.path = path
	return b
}

// FromWriter writes log lines to w.
func (b *Build) FromWriter(w io.Writer) *Build {
	b.writer = w
	return b
}

// WithLevel sets the minimum level by name ("debug", "info", ...).
func (b *Build) WithLevel(level string) *Build {
	b.level = level
	return b
}

// Make opens the output and builds the logger. With neither a path nor a
// writer, log output is discarded.
func (b *Build) Make() (*Log, error) {
	l := new(Log)
	w := b.writer
	if w == nil {
		w = io.Discard
	}
	if b.path != "" {
		f, err := os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		l.File = f
		w = zerolog.SyncWriter(f)
	}

	level := zerolog.InfoLevel
	if b.level != "" {
		parsed, err := zerolog.ParseLevel(b.level)
		if err != nil {
			l.Close()
			return nil, fmt.Errorf("parsing log level: %w", err)
		}
		level = parsed
	}

	l.Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
	return l, nil
}

// Close closes the log file, if one was opened.
func (l *Log) Close() error {
	if l.File == nil {
		return nil
	}
	return l.File.Close()
}
