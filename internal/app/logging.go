package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/dshills/mediator/internal/config"
)

// Log formats accepted by NewLogger.
const (
	LogFormatAuto = "auto"
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// NewLogger builds a slog logger writing to w at the configured level.
// The auto format writes text to a terminal and JSON otherwise.
func NewLogger(w io.Writer, cfg config.LogConfig) (*slog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	level, err := config.ParseLogLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	switch ResolveLogFormat(cfg.Format, w) {
	case LogFormatText:
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case LogFormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("%w: log format %q", config.ErrInvalidFormat, cfg.Format)
	}
}

// ResolveLogFormat turns "auto" (or "") into text or json depending on
// whether w is a terminal. Other formats are returned unchanged.
func ResolveLogFormat(format string, w io.Writer) string {
	if format != LogFormatAuto && format != "" {
		return format
	}
	if IsTerminal(w) {
		return LogFormatText
	}
	return LogFormatJSON
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
