package logging

import (
	"io"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// Logger is the leveled logger used across the tool.
type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Info(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
	Error(msg interface{}, keyvals ...interface{})
}

// Compile-time interface conformance check.
var _ Logger = (*charmlog.Logger)(nil)

// ParseLevel converts a level name to a charm log level.
// Unknown names fall back to warn.
func ParseLevel(s string) charmlog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return charmlog.DebugLevel
	case "info":
		return charmlog.InfoLevel
	case "error":
		return charmlog.ErrorLevel
	default:
		return charmlog.WarnLevel
	}
}

// New creates a logger writing to w. A nil writer means stderr.
func New(w io.Writer, level string) *charmlog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return charmlog.NewWithOptions(w, charmlog.Options{
		Level:  ParseLevel(level),
		Prefix: "logbound",
	})
}

// Discard returns a logger that drops everything.
func Discard() *charmlog.Logger {
	return charmlog.NewWithOptions(io.Discard, charmlog.Options{Level: charmlog.FatalLevel})
}
