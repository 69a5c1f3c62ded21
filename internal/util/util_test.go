package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShellQuote(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"simple", "'simple'"},
		{"with space", "'with space'"},
		{"with'quote", `'with'\''quote'`},
		{"", "''"},
		{"$variable", "'$variable'"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShellQuote(tt.input))
		})
	}
}

func TestQuoteArg(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"run", "run"},
		{"-Pendpoint=http://localhost:8000/deployr", "-Pendpoint=http://localhost:8000/deployr"},
		{"my examples", "'my examples'"},
		{"p@ss$word", "'p@ss$word'"},
		{"", "''"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, QuoteArg(tt.input))
		})
	}
}

func TestCommandLine(t *testing.T) {
	assert.Equal(t, "npm start", CommandLine("npm", "start"))
	assert.Equal(t, "./gradlew run '-Pusername=o'\\''brien'", CommandLine("./gradlew", "run", "-Pusername=o'brien"))
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "file", Pluralize(1, "file", "files"))
	assert.Equal(t, "files", Pluralize(0, "file", "files"))
	assert.Equal(t, "files", Pluralize(2, "file", "files"))
}

func TestCount(t *testing.T) {
	assert.Equal(t, "1 dependency", Count(1, "dependency", "dependencies"))
	assert.Equal(t, "3 dependencies", Count(3, "dependency", "dependencies"))
}
