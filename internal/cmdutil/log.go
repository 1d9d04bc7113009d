// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
	"log/slog"
)

// ParseLevel maps a --loglevel value to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("invalid log level: %s", s)
	}
}

// NewLogger builds the run logger. Diagnostics go to dst (stderr), never to
// the data stream.
func NewLogger(dst io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler
	switch format {
	case "json":
		h = slog.NewJSONHandler(dst, opts)
	case "text":
		h = slog.NewTextHandler(dst, opts)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	return slog.New(h), nil
}
