package logger

// Logger is the logging sink for retry diagnostics.
// The retry engine only ever emits warning lines (per-attempt outcomes) and
// error lines (exhaustion); how a sink renders or ships them is up to the
// implementation. All implementations must be safe for concurrent use across
// multiple goroutines.
type Logger interface {
	// Type returns the type of the logger
	Type() LoggerType
	// Warningf logs a formatted message at warning level
	Warningf(format string, args ...any)
	// Errorf logs a formatted message at error level
	Errorf(format string, args ...any)
	// Close closes the logger
	Close() error
}

type LoggerType string

const (
	LoggerTypeStdout LoggerType = "stdout"
	LoggerTypeFile   LoggerType = "file"
	LoggerTypeNoop   LoggerType = "noop"
	LoggerTypeWriter LoggerType = "writer"
	LoggerTypeSlog   LoggerType = "slog"
	LoggerTypeMulti  LoggerType = "multi"
	LoggerTypeMock   LoggerType = "mock"
)

// MultiLogger writes to multiple loggers simultaneously.
// Safe for concurrent use if all underlying loggers are safe.
type MultiLogger struct {
	loggers []Logger
}

var _ Logger = (*MultiLogger)(nil)

// NewMultiLogger creates a logger that writes to multiple destinations
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	return &MultiLogger{
		loggers: loggers,
	}
}

func (m *MultiLogger) Type() LoggerType {
	return LoggerTypeMulti
}

func (m *MultiLogger) Warningf(format string, args ...any) {
	for _, logger := range m.loggers {
		logger.Warningf(format, args...)
	}
}

func (m *MultiLogger) Errorf(format string, args ...any) {
	for _, logger := range m.loggers {
		logger.Errorf(format, args...)
	}
}

func (m *MultiLogger) Close() error {
	for _, logger := range m.loggers {
		logger.Close()
	}
	return nil
}
