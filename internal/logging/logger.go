package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger. Unlike a hand-rolled fields map, With just
// delegates straight to zerolog's own context builder, so field merging,
// typing and allocation all follow zerolog's rules instead of a second
// copy of them.
type Logger struct {
	zl zerolog.Logger
}

var global *Logger

func init() {
	global = NewDevelopment()
}

// NewProduction creates a JSON logger at info level, for production output.
func NewProduction() *Logger {
	zl := zerolog.New(os.Stdout).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// NewDevelopment creates a pretty console logger at debug level.
func NewDevelopment() *Logger {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	zl := zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// NewWithWriter creates a logger writing JSON to w at the given level.
func NewWithWriter(w io.Writer, level zerolog.Level) *Logger {
	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// SetGlobal replaces the package-level logger returned by Global.
func SetGlobal(logger *Logger) { global = logger }

// Global returns the package-level logger.
func Global() *Logger { return global }

// fieldEvent applies alternating key/value pairs to a zerolog event, giving
// error values their own AnErr() treatment so they render as a proper error
// field rather than an opaque interface dump.
func fieldEvent(e *zerolog.Event, kv []interface{}) *zerolog.Event {
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		switch v := kv[i+1].(type) {
		case error:
			e = e.AnErr(key, v)
		default:
			e = e.Interface(key, v)
		}
	}
	return e
}

func (l *Logger) Debug(msg string, kv ...interface{}) { fieldEvent(l.zl.Debug(), kv).Msg(msg) }
func (l *Logger) Info(msg string, kv ...interface{})  { fieldEvent(l.zl.Info(), kv).Msg(msg) }
func (l *Logger) Warn(msg string, kv ...interface{})  { fieldEvent(l.zl.Warn(), kv).Msg(msg) }
func (l *Logger) Error(msg string, kv ...interface{}) { fieldEvent(l.zl.Error(), kv).Msg(msg) }
func (l *Logger) Fatal(msg string, kv ...interface{}) { fieldEvent(l.zl.Fatal(), kv).Msg(msg) }

// With returns a child logger with kv permanently attached to its context,
// via zerolog's own With().Fields().
func (l *Logger) With(kv ...interface{}) *Logger {
	fields := make(map[string]interface{}, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if key, ok := kv[i].(string); ok {
			fields[key] = kv[i+1]
		}
	}
	return &Logger{zl: l.zl.With().Fields(fields).Logger()}
}

// WithContext merges any logging fields carried on ctx (see context.go).
func (l *Logger) WithContext(ctx context.Context) *Logger {
	fields := contextFields(ctx)
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

// Sync is a no-op; zerolog writes synchronously.
func (l *Logger) Sync() error { return nil }

// Package-level convenience functions mirroring the methods above, used by
// call sites that don't hold their own Logger value.

func Debug(msg string, kv ...interface{}) { global.Debug(msg, kv...) }
func Info(msg string, kv ...interface{})  { global.Info(msg, kv...) }
func Warn(msg string, kv ...interface{})  { global.Warn(msg, kv...) }
func Error(msg string, kv ...interface{}) { global.Error(msg, kv...) }
func Fatal(msg string, kv ...interface{}) { global.Fatal(msg, kv...) }
func With(kv ...interface{}) *Logger      { return global.With(kv...) }
func Sync() error                         { return global.Sync() }
