// Package logging builds the application logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a [log.Logger] writing to w with timestamps and caller
// reporting enabled. w defaults to [os.Stderr]; level defaults to info.
func New(w io.Writer, level string) (*log.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	lvl := log.InfoLevel
	if level != "" {
		var err error
		if lvl, err = log.ParseLevel(level); err != nil {
			return nil, fmt.Errorf("log level %q: %w", level, err)
		}
	}
	opts := log.Options{ReportTimestamp: true, ReportCaller: true, Level: lvl}
	return log.NewWithOptions(w, opts), nil
}

// WithSession returns a child logger tagging every entry with a fresh
// session ID, so runs sharing one log file can be told apart.
func WithSession(l *log.Logger) *log.Logger {
	return l.With("session", uuid.NewString()[:8])
}

// Component returns a child logger for a named component.
func Component(l *log.Logger, name string) *log.Logger {
	return l.With("component", name)
}

// DefaultPath returns $XDG_STATE_HOME/genwaves/genwaves.log, creating the
// directory.
func DefaultPath() (string, error) {
	return xdg.StateFile(filepath.Join("genwaves", "genwaves.log"))
}

// OpenFile opens path for appending, creating parent directories. An empty
// path means DefaultPath.
func OpenFile(path string) (*os.File, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}
