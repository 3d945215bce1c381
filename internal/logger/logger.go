package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

type implLogger struct {
	logger zerolog.Logger
	level  zerolog.Level
}

// New creates a Logger writing human-readable lines to stdout.
func New(level string) Logger {
	return NewWithWriter(level, os.Stdout, false)
}

// NewWithWriter creates a Logger writing to w. With jsonFormat set the lines
// are raw zerolog JSON instead of the console format.
func NewWithWriter(level string, w io.Writer, jsonFormat bool) Logger {
	lvl := parseLevel(level)

	out := w
	if !jsonFormat {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.DateTime,
			NoColor:    true,
		}
	}

	return &implLogger{
		logger: zerolog.New(out).Level(lvl).With().Timestamp().Logger(),
		level:  lvl,
	}
}

// Discard returns a Logger that drops everything.
func Discard() Logger {
	return &implLogger{
		logger: zerolog.Nop(),
		level:  zerolog.Disabled,
	}
}

// WithConnID returns a context whose log lines carry the connection ID.
func WithConnID(ctx context.Context, connID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, connID)
}

// ConnID returns the connection ID stored by WithConnID, if any.
func ConnID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *implLogger) shouldLog(level zerolog.Level) bool {
	return l.level != zerolog.Disabled && level >= l.level
}

func (l *implLogger) event(ctx context.Context, level zerolog.Level) *zerolog.Event {
	ev := l.logger.WithLevel(level)
	if id := ConnID(ctx); id != "" {
		ev = ev.Str("conn", id)
	}
	return ev
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog(zerolog.DebugLevel) {
		l.event(ctx, zerolog.DebugLevel).Msgf(msg, args...)
	}
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog(zerolog.InfoLevel) {
		l.event(ctx, zerolog.InfoLevel).Msgf(msg, args...)
	}
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog(zerolog.WarnLevel) {
		l.event(ctx, zerolog.WarnLevel).Msgf(msg, args...)
	}
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog(zerolog.ErrorLevel) {
		l.event(ctx, zerolog.ErrorLevel).Msgf(msg, args...)
	}
}
