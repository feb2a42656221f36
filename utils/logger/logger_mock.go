package logger

import (
	"fmt"

	"github.com/stretchr/testify/mock"
)

// MockLogger records log lines through testify's mock machinery so tests can
// assert on what the retry engine emitted. Format and args are flattened into
// the final message before recording, which keeps expectations simple:
//
//	m.On("Warningf", mock.Anything).Return()
//	m.AssertNumberOfCalls(t, "Warningf", 3)
type MockLogger struct {
	mock.Mock
}

// Ensure MockLogger implements Logger
var _ Logger = (*MockLogger)(nil)

func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) Type() LoggerType {
	return LoggerTypeMock
}

func (m *MockLogger) Warningf(format string, args ...any) {
	m.Called(fmt.Sprintf(format, args...))
}

func (m *MockLogger) Errorf(format string, args ...any) {
	m.Called(fmt.Sprintf(format, args...))
}

func (m *MockLogger) Close() error {
	args := m.Called()
	return args.Error(0)
}
