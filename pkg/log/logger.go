package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level represents the severity level of a log message.
type Level int

// Log levels
const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a level name (case-insensitive) into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel, nil
	case "info", "":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// Logger is the structured logging interface used across killbot components.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a Logger that includes the given fields on every entry.
	With(fields ...Field) Logger
}

// Config captures the externally supplied logging configuration.
type Config struct {
	Level  string
	Format string // "text" or "json"
}

// Option configures a logger at construction time.
type Option func(*options)

type options struct {
	level  Level
	format string
	writer io.Writer
}

// WithLevel sets the minimum log level.
func WithLevel(level Level) Option {
	return func(o *options) { o.level = level }
}

// WithFormat selects the output format: "text" (default) or "json".
func WithFormat(format string) Option {
	return func(o *options) { o.format = format }
}

// WithWriter directs output to the given writer instead of stderr.
func WithWriter(w io.Writer) Option {
	return func(o *options) { o.writer = w }
}

// New creates a logger backed by log/slog.
func New(opts ...Option) Logger {
	o := options{level: InfoLevel, format: "text", writer: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}
	ho := &slog.HandlerOptions{Level: toSlogLevel(o.level)}
	var h slog.Handler
	if o.format == "json" {
		h = slog.NewJSONHandler(o.writer, ho)
	} else {
		h = slog.NewTextHandler(o.writer, ho)
	}
	return &baseLogger{sl: slog.New(h)}
}

// ApplyConfig builds a logger from Config, returning an error on an
// unparseable level so callers can fall back to defaults.
func ApplyConfig(cfg *Config) (Logger, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	return New(WithLevel(lvl), WithFormat(cfg.Format)), nil
}

type baseLogger struct {
	sl *slog.Logger
}

func (l *baseLogger) Debug(msg string, fields ...Field) {
	l.sl.Debug(msg, attrs(fields)...)
}

func (l *baseLogger) Info(msg string, fields ...Field) {
	l.sl.Info(msg, attrs(fields)...)
}

func (l *baseLogger) Warn(msg string, fields ...Field) {
	l.sl.Warn(msg, attrs(fields)...)
}

func (l *baseLogger) Error(msg string, fields ...Field) {
	l.sl.Error(msg, attrs(fields)...)
}

func (l *baseLogger) With(fields ...Field) Logger {
	return &baseLogger{sl: l.sl.With(attrs(fields)...)}
}

func toSlogLevel(level Level) slog.Level {
	switch level {
	case DebugLevel:
		return slog.LevelDebug
	case WarnLevel:
		return slog.LevelWarn
	case ErrorLevel:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func attrs(fields []Field) []any {
	if len(fields) == 0 {
		return nil
	}
	out := make([]any, 0, len(fields))
	for _, f := range fields {
		out = append(out, slog.Any(f.Key, f.Value))
	}
	return out
}
