// Package logging provides the structured logger shared by the GUI and the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// LoggerFunc is the callback shape library packages log through.
type LoggerFunc func(message string)

// Logger wraps zerolog with a component name.
type Logger struct {
	zlog zerolog.Logger
}

// New creates a console logger writing to out at the given level.
// An unknown level falls back to info.
func New(out io.Writer, level string) *Logger {
	if out == nil {
		out = os.Stderr
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "15:04:05",
	}
	return &Logger{
		zlog: zerolog.New(output).Level(lvl).With().Timestamp().Logger(),
	}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

// With returns a child logger tagged with a component name.
func (l *Logger) With(component string) *Logger {
	return &Logger{zlog: l.zlog.With().Str("component", component).Logger()}
}

// Info returns an info level event.
func (l *Logger) Info() *zerolog.Event {
	return l.zlog.Info()
}

// Warn returns a warn level event.
func (l *Logger) Warn() *zerolog.Event {
	return l.zlog.Warn()
}

// Error returns an error level event.
func (l *Logger) Error() *zerolog.Event {
	return l.zlog.Error()
}

// Debug returns a debug level event.
func (l *Logger) Debug() *zerolog.Event {
	return l.zlog.Debug()
}

// Func adapts the logger to a LoggerFunc that logs at debug level.
func (l *Logger) Func(component string) LoggerFunc {
	child := l.With(component)
	return func(message string) {
		child.Debug().Msg(message)
	}
}

// Printf logs a formatted message at info level.
func (l *Logger) Printf(format string, args ...interface{}) {
	l.zlog.Info().Msg(fmt.Sprintf(format, args...))
}
