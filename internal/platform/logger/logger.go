package logger

import (
	"io"
	"log/slog"
	"os"
)

// New builds the process logger: human-readable text in development,
// JSON in production. It does not install itself; see Install.
func New(w io.Writer, level slog.Level, production bool) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}
	if production {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Install makes l the default logger and returns it, tagged with the service name.
func Install(l *slog.Logger, version string) *slog.Logger {
	l = l.With("service", "workdays", "version", version)
	slog.SetDefault(l)
	return l
}
