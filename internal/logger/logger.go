// Package logger provides a simple logging interface for di components.
// Lines are prefixed with their level (info:, warn:, error:, help:) the way
// the DeployR CLI has always printed them.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// DebugEnv enables debug output when set to any non-empty value.
const DebugEnv = "DI_DEBUG"

// Logger defines the interface for logging operations.
// All methods accept a format string and arguments, similar to fmt.Printf.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	Help(format string, args ...interface{})
}

var levelStyles = map[string]lipgloss.Style{
	"debug": lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	"info":  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	"warn":  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	"error": lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	"help":  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
}

// consoleLogger writes level-prefixed lines to a writer.
// Debug messages are only printed when DI_DEBUG is set.
type consoleLogger struct {
	mu     sync.Mutex
	w      io.Writer
	prefix string
}

// NewConsoleLogger creates a logger writing to w. The prefix, if any, is
// placed between the level and the message (e.g. "[install]").
func NewConsoleLogger(w io.Writer, prefix string) Logger {
	return &consoleLogger{w: w, prefix: prefix}
}

// NewEnvLogger creates a stderr logger that respects the DI_DEBUG environment variable.
func NewEnvLogger(prefix string) Logger {
	return NewConsoleLogger(os.Stderr, prefix)
}

func (l *consoleLogger) write(level, format string, args ...interface{}) {
	label := levelStyles[level].Render(level + ":")
	pad := strings.Repeat(" ", 7-len(level))
	msg := fmt.Sprintf(format, args...)
	if l.prefix != "" {
		msg = l.prefix + " " + msg
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range strings.Split(msg, "\n") {
		fmt.Fprintf(l.w, "%s%s%s\n", label, pad, line)
	}
}

func (l *consoleLogger) Debug(format string, args ...interface{}) {
	if os.Getenv(DebugEnv) != "" {
		l.write("debug", format, args...)
	}
}

func (l *consoleLogger) Info(format string, args ...interface{}) {
	l.write("info", format, args...)
}

func (l *consoleLogger) Warn(format string, args ...interface{}) {
	l.write("warn", format, args...)
}

func (l *consoleLogger) Error(format string, args ...interface{}) {
	l.write("error", format, args...)
}

func (l *consoleLogger) Help(format string, args ...interface{}) {
	l.write("help", format, args...)
}

// noopLogger implements Logger but discards all messages.
type noopLogger struct{}

// Noop returns a logger that discards all messages.
func Noop() Logger {
	return &noopLogger{}
}

func (l *noopLogger) Debug(format string, args ...interface{}) {}
func (l *noopLogger) Info(format string, args ...interface{})  {}
func (l *noopLogger) Warn(format string, args ...interface{})  {}
func (l *noopLogger) Error(format string, args ...interface{}) {}
func (l *noopLogger) Help(format string, args ...interface{})  {}

// LogMessage represents a captured log message.
type LogMessage struct {
	Level   string
	Message string
}

// BufferLogger captures log messages for testing.
// Safe for concurrent use.
type BufferLogger struct {
	mu       sync.Mutex
	Messages []LogMessage
}

// NewBufferLogger creates a logger that captures messages for inspection.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{
		Messages: make([]LogMessage, 0),
	}
}

func (l *BufferLogger) add(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, LogMessage{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Debug(format string, args ...interface{}) { l.add("debug", format, args...) }
func (l *BufferLogger) Info(format string, args ...interface{})  { l.add("info", format, args...) }
func (l *BufferLogger) Warn(format string, args ...interface{})  { l.add("warn", format, args...) }
func (l *BufferLogger) Error(format string, args ...interface{}) { l.add("error", format, args...) }
func (l *BufferLogger) Help(format string, args ...interface{})  { l.add("help", format, args...) }

// HasLevel returns true if any message was logged at the given level.
func (l *BufferLogger) HasLevel(level string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.Messages {
		if m.Level == level {
			return true
		}
	}
	return false
}

// Contains returns true if a message at the given level contains substr.
func (l *BufferLogger) Contains(level, substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.Messages {
		if m.Level == level && strings.Contains(m.Message, substr) {
			return true
		}
	}
	return false
}

// Clear removes all captured messages.
func (l *BufferLogger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = l.Messages[:0]
}

var defaultLogger = NewEnvLogger("")

// Default returns the package-level logger.
func Default() Logger {
	return defaultLogger
}

// SetDefault sets the package-level logger.
func SetDefault(l Logger) {
	defaultLogger = l
}
