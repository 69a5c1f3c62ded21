package errors

import (
	"errors"
	"fmt"
	"strings"
)

// CodeInvalidCredentials is the DeployR API error code for a rejected username/password.
const CodeInvalidCredentials = 940

// CommandNotFoundError reports a token sequence that no registered command matches.
type CommandNotFoundError struct {
	Tokens      []string
	Suggestions []string
}

// NewCommandNotFound builds a CommandNotFoundError for the given tokens.
func NewCommandNotFound(tokens []string, suggestions ...string) *CommandNotFoundError {
	return &CommandNotFoundError{
		Tokens:      append([]string(nil), tokens...),
		Suggestions: suggestions,
	}
}

func (e *CommandNotFoundError) Error() string {
	msg := fmt.Sprintf("Command not found: %s", strings.Join(e.Tokens, " "))
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// IsCommandNotFound reports whether err is, or wraps, a CommandNotFoundError.
func IsCommandNotFound(err error) bool {
	var nf *CommandNotFoundError
	return errors.As(err, &nf)
}

// APIError is a failure returned by a DeployR API call.
type APIError struct {
	Call    string
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s (call %s, code %d)", e.Message, e.Call, e.Code)
	}
	return fmt.Sprintf("%s (call %s)", e.Message, e.Call)
}

// IsInvalidCredentials reports whether err carries the invalid credentials API code.
func IsInvalidCredentials(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == CodeInvalidCredentials
	}
	return false
}

// ConfigLoadError means the persisted configuration file could not be parsed.
type ConfigLoadError struct {
	Path  string
	Cause error
}

func (e *ConfigLoadError) Error() string {
	return fmt.Sprintf("Error parsing %s: %v", e.Path, e.Cause)
}

func (e *ConfigLoadError) Unwrap() error {
	return e.Cause
}

// WorkflowAbortError marks a failure that stopped a multi-stage workflow.
type WorkflowAbortError struct {
	Workflow string
	Stage    string
	Cause    error
}

func (e *WorkflowAbortError) Error() string {
	return fmt.Sprintf("%s aborted at %s: %v", e.Workflow, e.Stage, e.Cause)
}

func (e *WorkflowAbortError) Unwrap() error {
	return e.Cause
}

// Abort wraps err as a WorkflowAbortError unless it is nil or already one.
func Abort(workflow, stage string, err error) error {
	if err == nil {
		return nil
	}
	var wa *WorkflowAbortError
	if errors.As(err, &wa) {
		return err
	}
	return &WorkflowAbortError{Workflow: workflow, Stage: stage, Cause: err}
}

type shallowError struct {
	err error
}

func (e *shallowError) Error() string { return e.err.Error() }
func (e *shallowError) Unwrap() error { return e.err }

// Shallow marks err so the error reporter prints only its message.
func Shallow(err error) error {
	if err == nil {
		return nil
	}
	return &shallowError{err: err}
}

// IsShallow reports whether err was marked with Shallow anywhere in its chain.
func IsShallow(err error) bool {
	var s *shallowError
	return errors.As(err, &s)
}
