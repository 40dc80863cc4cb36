/*
Package logx provides a structured logging wrapper based on zerolog.

The terminal belongs to the TUI, so logs are written to a file (or any writer)
instead of stdout. Helpers mirror the level set used across the client:
Debug, Info, Warn and Error with optional key-value fields.
*/
package logx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global logger to write JSON lines to w at the given level.
// Unknown levels fall back to info.
func Init(w io.Writer, level string) {
	zerolog.TimeFieldFormat = time.RFC3339

	logger := zerolog.New(w).With().Timestamp().Logger().Level(ParseLevel(level))
	log.Logger = logger.With().Caller().Logger()
}

// InitConsole configures human-readable output, used by one-shot CLI commands.
func InitConsole(w io.Writer, level string) {
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
	}).With().Timestamp().Logger().Level(ParseLevel(level))
	log.Logger = logger
}

// OpenFile creates the log file (and its directory) and initializes the global
// logger on it. The returned closer releases the file.
func OpenFile(path, level string) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	Init(f, level)
	return f, nil
}

// Disable silences the global logger.
func Disable() {
	log.Logger = zerolog.Nop()
}

// ParseLevel maps a configured level name to a zerolog level.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Logger returns a pointer to the global zerolog.Logger instance.
func Logger() *zerolog.Logger {
	return &log.Logger
}

// checkFields drops an odd-length field list instead of letting zerolog panic.
func checkFields(level string, fields []any) []any {
	if len(fields)%2 != 0 {
		Logger().Warn().
			Int("fields_count", len(fields)).
			Str("log_level", level).
			Msg("logx call received odd number of fields, fields ignored")
		return nil
	}
	return fields
}

// Debug records a message at the Debug level.
func Debug(msg string, fields ...any) {
	fields = checkFields("Debug", fields)
	Logger().Debug().Fields(fields).CallerSkipFrame(1).Msg(msg)
}

// Info records a message at the Info level.
func Info(msg string, fields ...any) {
	fields = checkFields("Info", fields)
	Logger().Info().Fields(fields).CallerSkipFrame(1).Msg(msg)
}

// Warn records a message at the Warn level.
func Warn(msg string, fields ...any) {
	fields = checkFields("Warn", fields)
	Logger().Warn().Fields(fields).CallerSkipFrame(1).Msg(msg)
}

// Error records an error at the Error level.
func Error(err error, msg string, fields ...any) {
	fields = checkFields("Error", fields)
	Logger().Error().Err(err).Fields(fields).CallerSkipFrame(1).Msg(msg)
}
