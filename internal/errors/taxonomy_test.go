package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandNotFoundError(t *testing.T) {
	err := NewCommandNotFound([]string{"usres", "login"}, "users")

	assert.Equal(t, "Command not found: usres login (did you mean users?)", err.Error())
	assert.True(t, IsCommandNotFound(fmt.Errorf("dispatch: %w", err)))
	assert.False(t, IsCommandNotFound(errors.New("other")))
}

func TestCommandNotFoundError_CopiesTokens(t *testing.T) {
	tokens := []string{"bogus"}
	err := NewCommandNotFound(tokens)
	tokens[0] = "changed"

	assert.Equal(t, []string{"bogus"}, err.Tokens)
	assert.Equal(t, "Command not found: bogus", err.Error())
}

func TestAPIError(t *testing.T) {
	err := &APIError{Call: "/r/user/login", Code: CodeInvalidCredentials, Message: "Invalid username or password."}

	assert.Equal(t, "Invalid username or password. (call /r/user/login, code 940)", err.Error())
	assert.True(t, IsInvalidCredentials(err))
	assert.True(t, IsInvalidCredentials(fmt.Errorf("login: %w", err)))
	assert.False(t, IsInvalidCredentials(&APIError{Call: "/r/user/login", Code: 500}))
	assert.False(t, IsInvalidCredentials(nil))
}

func TestConfigLoadError(t *testing.T) {
	cause := errors.New("invalid character '}'")
	err := &ConfigLoadError{Path: "/home/me/.diconf", Cause: cause}

	assert.Equal(t, "Error parsing /home/me/.diconf: invalid character '}'", err.Error())
	assert.True(t, errors.Is(err, cause))
}

func TestAbort(t *testing.T) {
	cause := errors.New("upload failed")

	err := Abort("install", "upload", cause)
	var wa *WorkflowAbortError
	require.True(t, errors.As(err, &wa))
	assert.Equal(t, "install", wa.Workflow)
	assert.Equal(t, "upload", wa.Stage)
	assert.True(t, errors.Is(err, cause))

	// an already aborted workflow keeps its original stage
	again := Abort("install", "run", err)
	require.True(t, errors.As(again, &wa))
	assert.Equal(t, "upload", wa.Stage)

	assert.Nil(t, Abort("install", "run", nil))
}

func TestShallow(t *testing.T) {
	cause := New(ErrConfig, "Cannot save", "")
	err := Shallow(cause)

	assert.True(t, IsShallow(err))
	assert.True(t, IsShallow(fmt.Errorf("logout: %w", err)))
	assert.False(t, IsShallow(cause))
	assert.Equal(t, cause.Error(), err.Error())
	assert.True(t, errors.Is(err, cause))
	assert.Nil(t, Shallow(nil))
}
