// Package logging builds the debug logger. The TUI owns the terminal, so log
// output only ever goes to a file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"

	"github.com/jask/shenzhen/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a slog logger backed by pterm, writing JSON lines to cfg.File.
// An empty File yields a logger that drops everything.
func New(cfg config.LogConfig) (*slog.Logger, io.Closer, error) {
	if strings.TrimSpace(cfg.File) == "" {
		return slog.New(slog.DiscardHandler), nopCloser{}, nil
	}
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := pterm.DefaultLogger.
		WithWriter(f).
		WithLevel(level).
		WithFormatter(pterm.LogFormatterJSON)
	return slog.New(pterm.NewSlogHandler(logger)), f, nil
}

// ParseLevel maps a config level name onto pterm's levels.
func ParseLevel(s string) (pterm.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return pterm.LogLevelTrace, nil
	case "debug":
		return pterm.LogLevelDebug, nil
	case "", "info":
		return pterm.LogLevelInfo, nil
	case "warn", "warning":
		return pterm.LogLevelWarn, nil
	case "error":
		return pterm.LogLevelError, nil
	default:
		return pterm.LogLevelDisabled, fmt.Errorf("unknown log level %q", s)
	}
}
