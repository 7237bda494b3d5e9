// Package logger configures the process-wide structured logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

type Config struct {
	Format Format
	Level  slog.Level
	Output io.Writer
}

// Setup installs the default slog logger. Production uses JSON output,
// everything else a human readable text handler.
func Setup(env, level string) {
	format := FormatText
	if env == "production" {
		format = FormatJSON
	}
	slog.SetDefault(NewWithConfig(Config{
		Format: format,
		Level:  ParseLevel(level),
		Output: os.Stdout,
	}))
}

func NewWithConfig(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var h slog.Handler
	if cfg.Format == FormatJSON {
		h = slog.NewJSONHandler(out, opts)
	} else {
		h = slog.NewTextHandler(out, opts)
	}
	return slog.New(h)
}

// New returns the default logger tagged with the owning package name.
func New(name string) *slog.Logger {
	return slog.Default().With("package", name)
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard is used by tests that do not care about log output.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
