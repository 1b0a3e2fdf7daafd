package log

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/rs/zerolog"

	goxgberr "github.com/YuminosukeSato/goxgb/pkg/errors"
)

// zerologLogger is the default Logger implementation backed by zerolog.
type zerologLogger struct {
	z zerolog.Logger
}

// NewZerologLogger wraps a zerolog.Logger in the package Logger interface.
func NewZerologLogger(z zerolog.Logger) Logger {
	return &zerologLogger{z: z}
}

func (l *zerologLogger) Debug(msg string, fields ...any) {
	applyFields(l.z.Debug(), fields).Msg(msg)
}

func (l *zerologLogger) Info(msg string, fields ...any) {
	applyFields(l.z.Info(), fields).Msg(msg)
}

func (l *zerologLogger) Warn(msg string, fields ...any) {
	applyFields(l.z.Warn(), fields).Msg(msg)
}

func (l *zerologLogger) Error(msg string, fields ...any) {
	applyFields(l.z.Error(), fields).Msg(msg)
}

func (l *zerologLogger) With(fields ...any) Logger {
	ctx := l.z.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprintf("%v", fields[i])
		switch v := fields[i+1].(type) {
		case error:
			ctx = ctx.AnErr(key, v)
		default:
			ctx = ctx.Interface(key, v)
		}
	}
	return &zerologLogger{z: ctx.Logger()}
}

func (l *zerologLogger) Enabled(_ context.Context, level Level) bool {
	return toZerologLevel(level) >= l.z.GetLevel()
}

// applyFields attaches alternating key-value pairs to a zerolog event.
// Error values are rendered through zerolog's error support, and types
// implementing zerolog.LogObjectMarshaler keep their structured form.
func applyFields(e *zerolog.Event, fields []any) *zerolog.Event {
	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprintf("%v", fields[i])
		switch v := fields[i+1].(type) {
		case zerolog.LogObjectMarshaler:
			e = e.Object(key, v)
		case error:
			e = e.AnErr(key, v)
		default:
			e = e.Interface(key, v)
		}
	}
	return e
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

var (
	defaultMu     sync.RWMutex
	defaultLogger Logger = NewZerologLogger(
		zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger(),
	)
)

// GetLogger returns the library-wide default logger.
func GetLogger() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetLogger replaces the library-wide default logger. Pass a TestLogger in
// tests to capture output.
func SetLogger(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// GetLoggerWithName returns the default logger scoped to a component name.
func GetLoggerWithName(name string) Logger {
	return GetLogger().With(ComponentKey, name)
}

func init() {
	// Route library warnings (pkg/errors.Warn) through the structured logger.
	goxgberr.SetZerologWarnFunc(func(warning error) {
		GetLogger().Warn("warning", "warning", warning)
	})
}

// SetupLogger configures the process-wide slog default for applications that
// embed goxgb, emitting JSON records with stack traces extracted from
// cockroachdb/errors values.
func SetupLogger(loglevel string) {
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     ToLogLevel(loglevel),
	}
	handler := slog.NewJSONHandler(os.Stdout, &ops)
	errFmtHandler := WrapByErrFmtHandler(handler)
	slog.SetDefault(slog.New(errFmtHandler))
}

// ToLogLevel converts a level name to a slog.Level.
func ToLogLevel(level string) slog.Level {
	switch level {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		panic(fmt.Sprintf("invalid log level :%s", level))
	}
}

const (
	ErrAttrKey = "error"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}
