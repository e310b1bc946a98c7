// Package logging builds the service's slog.Logger from configuration.
// Every record carries the service attributes supplied at construction.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// New creates a logger writing to the configured output stream.
func New(cfg *Config, attrs ...slog.Attr) *slog.Logger {
	return NewWriter(cfg, cfg.Output.Writer(), attrs...)
}

// NewWriter creates a logger writing to w in the configured format. Attrs
// are attached to every record.
func NewWriter(cfg *Config, w io.Writer, attrs ...slog.Attr) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     cfg.Level.ToSlogLevel(),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.Format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	if len(attrs) > 0 {
		handler = handler.WithAttrs(attrs)
	}
	return slog.New(handler)
}

// Level represents a logging severity level.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

func (l Level) Validate() error {
	switch l {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return nil
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", l)
	}
}

// ToSlogLevel converts the Level to its slog.Level equivalent.
// Unknown levels map to slog.LevelInfo.
func (l Level) ToSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Format represents the log encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func (f Format) Validate() error {
	switch f {
	case FormatText, FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid log format: %s (must be text or json)", f)
	}
}

// Output names the process stream logs are written to.
type Output string

const (
	OutputStdout Output = "stdout"
	OutputStderr Output = "stderr"
)

func (o Output) Validate() error {
	switch o {
	case OutputStdout, OutputStderr:
		return nil
	default:
		return fmt.Errorf("invalid log output: %s (must be stdout or stderr)", o)
	}
}

// Writer returns the stream for o, defaulting to stdout.
func (o Output) Writer() io.Writer {
	if o == OutputStderr {
		return os.Stderr
	}
	return os.Stdout
}
