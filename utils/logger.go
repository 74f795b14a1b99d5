package utils

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger provides leveled, printf-style logging throughout the application,
// backed by zerolog's console writer.
type Logger struct {
	z zerolog.Logger
}

// NewLogger creates a Logger writing human-readable output to stdout.
func NewLogger() *Logger {
	return NewLoggerWithWriter(os.Stdout)
}

// NewLoggerWithWriter creates a Logger writing to w; used by tests to
// capture output.
func NewLoggerWithWriter(w io.Writer) *Logger {
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: "2006-01-02 15:04:05"}
	return &Logger{z: zerolog.New(cw).With().Timestamp().Logger()}
}

// SetVerbose lowers the global level to debug; the default hides debug noise.
func SetVerbose(verbose bool) {
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func (l *Logger) Info(format string, args ...any) {
	l.z.Info().Msgf(format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.z.Warn().Msgf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.z.Error().Msgf(format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.z.Debug().Msgf(format, args...)
}
