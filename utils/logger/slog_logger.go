package logger

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// SlogLogger bridges the Logger interface to a structured slog.Logger.
// Warning and error lines map to slog.Warn and slog.Error respectively.
// Safe for concurrent use; slog handlers are required to be.
type SlogLogger struct {
	logger *slog.Logger
}

var _ Logger = (*SlogLogger)(nil)

// NewSlogLogger creates a logger backed by the given slog.Logger
func NewSlogLogger(sl *slog.Logger) *SlogLogger {
	return &SlogLogger{
		logger: sl,
	}
}

// NewTintLogger creates a slog-backed logger with a colorized tint handler,
// easy to read in terminals.
func NewTintLogger(level slog.Level) *SlogLogger {
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})
	return NewSlogLogger(slog.New(handler))
}

// Default returns a sink backed by the process-wide slog default logger.
// Callers that don't configure an explicit sink end up here.
func Default() *SlogLogger {
	return NewSlogLogger(slog.Default())
}

// Named returns the default sink tagged with a logger name, mirroring the
// named-logger convention of hierarchical logging frameworks. An empty name
// returns the plain default sink.
func Named(name string) *SlogLogger {
	if name == "" {
		return Default()
	}
	return NewSlogLogger(slog.Default().With("logger", name))
}

func (s *SlogLogger) Type() LoggerType {
	return LoggerTypeSlog
}

func (s *SlogLogger) Warningf(format string, args ...any) {
	s.logger.Warn(fmt.Sprintf(format, args...))
}

func (s *SlogLogger) Errorf(format string, args ...any) {
	s.logger.Error(fmt.Sprintf(format, args...))
}

func (s *SlogLogger) Close() error {
	return nil
}
