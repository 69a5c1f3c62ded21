// Package util holds small string helpers shared by the di commands.
package util

import "strings"

// unsafeChars need quoting before a word can be pasted into a shell.
const unsafeChars = " \t\n'\"\\$`!*?[](){};&|<>#~"

// ShellQuote wraps s in single quotes, escaping any single quotes in it.
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// QuoteArg quotes s only when a shell would otherwise split or expand it,
// so command lines shown to the user stay readable.
func QuoteArg(s string) string {
	if s == "" || strings.ContainsAny(s, unsafeChars) {
		return ShellQuote(s)
	}
	return s
}

// CommandLine renders name and args the way they would be typed.
func CommandLine(name string, args ...string) string {
	words := make([]string, 0, len(args)+1)
	words = append(words, QuoteArg(name))
	for _, a := range args {
		words = append(words, QuoteArg(a))
	}
	return strings.Join(words, " ")
}
