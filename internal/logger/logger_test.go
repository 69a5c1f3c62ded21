package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleLogger_Debug(t *testing.T) {
	tests := []struct {
		name      string
		envValue  string
		expectLog bool
	}{
		{name: "logs when DI_DEBUG is set", envValue: "1", expectLog: true},
		{name: "logs when DI_DEBUG is any value", envValue: "true", expectLog: true},
		{name: "does not log when DI_DEBUG is empty", envValue: "", expectLog: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			t.Setenv(DebugEnv, tt.envValue)

			l := NewConsoleLogger(&buf, "[test]")
			l.Debug("test message %s", "arg")

			if tt.expectLog {
				assert.Contains(t, buf.String(), "[test] test message arg")
				assert.Contains(t, buf.String(), "debug:")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestConsoleLogger_Levels(t *testing.T) {
	tests := []struct {
		name  string
		log   func(Logger)
		label string
		text  string
	}{
		{name: "info", log: func(l Logger) { l.Info("Welcome %d", 42) }, label: "info:", text: "Welcome 42"},
		{name: "warn", log: func(l Logger) { l.Warn("careful") }, label: "warn:", text: "careful"},
		{name: "error", log: func(l Logger) { l.Error("broken") }, label: "error:", text: "broken"},
		{name: "help", log: func(l Logger) { l.Help("di login") }, label: "help:", text: "di login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewConsoleLogger(&buf, ""))

			out := buf.String()
			assert.Contains(t, out, tt.label)
			assert.Contains(t, out, tt.text)
			assert.True(t, strings.HasSuffix(out, "\n"))
		})
	}
}

func TestConsoleLogger_MultilinePrefixesEachLine(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleLogger(&buf, "").Help("first\nsecond")

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, line, "help:")
	}
}

func TestNoopLogger(t *testing.T) {
	l := Noop()
	assert.NotPanics(t, func() {
		l.Debug("debug")
		l.Info("info")
		l.Warn("warn")
		l.Error("error")
		l.Help("help")
	})
}

func TestBufferLogger(t *testing.T) {
	l := NewBufferLogger()

	l.Debug("debug %s", "msg")
	l.Info("info %s", "msg")
	l.Warn("warn %s", "msg")
	l.Error("error %s", "msg")
	l.Help("help %s", "msg")

	require.Len(t, l.Messages, 5)
	assert.Equal(t, "debug", l.Messages[0].Level)
	assert.Equal(t, "debug msg", l.Messages[0].Message)
	assert.Equal(t, "help", l.Messages[4].Level)

	assert.True(t, l.HasLevel("warn"))
	assert.True(t, l.Contains("error", "error"))
	assert.False(t, l.Contains("info", "error"))

	l.Clear()
	assert.Empty(t, l.Messages)
	assert.False(t, l.HasLevel("info"))
}

func TestDefaultLogger(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	buf := NewBufferLogger()
	SetDefault(buf)
	Default().Info("hello")

	assert.True(t, buf.Contains("info", "hello"))
}
