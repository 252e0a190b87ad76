// Package applog provides a file-backed structured logger. The TUI owns
// stdout, so diagnostics go to a log file beside the database.
package applog

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Open creates a logger writing to path, creating parent directories as
// needed. If the file cannot be opened the logger discards output rather
// than failing startup.
func Open(path string) (*slog.Logger, func() error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return discard(), func() error { return nil }
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return discard(), func() error { return nil }
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo}))
	return logger, f.Close
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
