// Package slog provides the structured logger used throughout the pipeline.
// It wraps zerolog behind the small Printf-style surface the rest of the
// codebase actually calls, the way the teacher's handlers only ever called
// Printf/Println on an injected *log.Logger.
package slog

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is the pipeline-wide logging handle.
type Logger struct {
	z zerolog.Logger
}

// New builds a Logger writing human-readable console output to w.
func New(w io.Writer, level string) *Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	console := zerolog.ConsoleWriter{Out: w, NoColor: !isTerminal(w)}
	l := zerolog.New(console).With().Timestamp().Logger().Level(parseLevel(level))
	return &Logger{z: l}
}

// Default returns a Logger writing to stderr at info level.
func Default() *Logger {
	return New(os.Stderr, "info")
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// Printf logs a formatted message at info level, matching the teacher's
// *log.Logger.Printf call sites.
func (l *Logger) Printf(format string, args ...interface{}) {
	l.z.Info().Msg(fmt.Sprintf(format, args...))
}

// Println logs args at info level, space separated.
func (l *Logger) Println(args ...interface{}) {
	l.z.Info().Msg(fmt.Sprintln(args...))
}

// Warnf logs a non-fatal geometric anomaly (DegenerateSlice, OpenContour).
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.z.Warn().Msg(fmt.Sprintf(format, args...))
}

// Errorf logs an error without aborting the process.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.z.Error().Msg(fmt.Sprintf(format, args...))
}

// Fatalf logs a single-line fatal message. It does not call os.Exit itself;
// callers decide how to translate the error into an exit code.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.z.Error().Msg(fmt.Sprintf(format, args...))
}
