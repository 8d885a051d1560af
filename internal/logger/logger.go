package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	Level  string
	Format string
	Output io.Writer
}

type Logger struct {
	l zerolog.Logger
}

func New(conf Config) *Logger {
	out := conf.Output
	if out == nil {
		out = os.Stderr
	}

	if strings.EqualFold(conf.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}

	zerolog.TimeFieldFormat = time.RFC3339

	l := zerolog.New(out).Level(parseLevel(conf.Level)).With().Timestamp().Logger()

	return &Logger{l: l}
}

// Nop discards everything. Used by tests.
func Nop() *Logger {
	return &Logger{l: zerolog.Nop()}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// With returns a child logger carrying the given component name.
func (l *Logger) With(component string) *Logger {
	return &Logger{l: l.l.With().Str("component", component).Logger()}
}

func (l *Logger) LogErrorf(format string, v ...any) {
	l.l.Error().Msg(fmt.Sprintf(format, v...))
}

func (l *Logger) LogWarnf(format string, v ...any) {
	l.l.Warn().Msg(fmt.Sprintf(format, v...))
}

func (l *Logger) LogInfo(format string, v ...any) {
	l.l.Info().Msg(fmt.Sprintf(format, v...))
}

func (l *Logger) LogDebugf(format string, v ...any) {
	l.l.Debug().Msg(fmt.Sprintf(format, v...))
}

// Access writes a structured access record.
func (l *Logger) Access(method, path, proto, userAgent, traceID string, status int, latency time.Duration) {
	l.l.Info().
		Str("type", "access").
		Str("method", method).
		Str("url", path).
		Str("proto", proto).
		Str("userAgent", userAgent).
		Str("traceID", traceID).
		Int("status", status).
		Dur("latency", latency).
		Send()
}

// Badger adapts the logger to badger's Logger interface.
func (l *Logger) Badger() *BadgerLogger {
	return &BadgerLogger{l: l.With("badger")}
}

type BadgerLogger struct {
	l *Logger
}

func (b *BadgerLogger) Errorf(format string, v ...any) {
	b.l.LogErrorf(strings.TrimSpace(format), v...)
}

func (b *BadgerLogger) Warningf(format string, v ...any) {
	b.l.LogWarnf(strings.TrimSpace(format), v...)
}

func (b *BadgerLogger) Infof(format string, v ...any) {
	b.l.LogDebugf(strings.TrimSpace(format), v...)
}

func (b *BadgerLogger) Debugf(format string, v ...any) {
	b.l.LogDebugf(strings.TrimSpace(format), v...)
}
