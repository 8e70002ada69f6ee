// Package logger wraps zerolog behind a small package-level API so callers
// never hold a logger instance. Configure is called once at startup; until
// then a sensible console logger is active.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel names a zerolog level in configuration.
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal"
)

// Config controls the package-level logger.
type Config struct {
	Level LogLevel
	// Pretty switches from JSON to human-readable console output.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

var root zerolog.Logger

// Configure replaces the package-level logger. It also updates the zerolog
// global logger so third-party code logging through zerolog/log agrees with
// ours.
func Configure(config Config) {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(parseLevel(config.Level))

	var writer io.Writer = config.Output
	if config.Pretty {
		writer = zerolog.ConsoleWriter{
			Out:        config.Output,
			TimeFormat: time.RFC3339,
		}
	}

	root = zerolog.New(writer).With().Timestamp().Logger()
	log.Logger = root
}

func parseLevel(level LogLevel) zerolog.Level {
	switch level {
	case DebugLevel:
		return zerolog.DebugLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	case FatalLevel:
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// Debug starts a debug-level event.
func Debug() *zerolog.Event {
	return root.Debug()
}

// Info starts an info-level event.
func Info() *zerolog.Event {
	return root.Info()
}

// Warn starts a warn-level event.
func Warn() *zerolog.Event {
	return root.Warn()
}

// Error starts an error-level event.
func Error() *zerolog.Event {
	return root.Error()
}

// Fatal starts a fatal-level event; zerolog exits once the event is sent.
func Fatal() *zerolog.Event {
	return root.Fatal()
}

// WithField returns a child logger carrying an extra field.
func WithField(key string, value interface{}) zerolog.Logger {
	return root.With().Interface(key, value).Logger()
}

func init() {
	Configure(Config{Level: InfoLevel, Pretty: true})
}
