package config

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// Logger returns a slog logger writing to w with the configured level and format.
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	var formatter log.Formatter
	switch c.Log.Format {
	case "text", "":
		formatter = log.TextFormatter
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Log.Format)
	}
	handler := log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
	})
	return slog.New(handler), nil
}
