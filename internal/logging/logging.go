// Package logging sets up the ambient structured logger shared by the
// CLI and the three subsystems.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// ParseLevel maps the "-log-level" flag value to a slog.Level, matching
// the teacher's debug|info|warn|error vocabulary. Unknown values fall
// back to info.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds the process logger: a colorized tint handler when w is a
// terminal, plain JSON otherwise (log aggregation, file redirection,
// piping into another tool).
func New(w *os.File, level slog.Level) *slog.Logger {
	if term.IsTerminal(int(w.Fd())) {
		return slog.New(tint.NewHandler(w, &tint.Options{Level: level}))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewWriter is like New but for a plain io.Writer that is never a
// terminal (used by tests and subcommands that capture log output).
func NewWriter(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
