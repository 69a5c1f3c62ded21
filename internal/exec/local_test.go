package exec

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/microsoft/deployr-cli/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX shell")
	}
}

func TestLocal_Run(t *testing.T) {
	skipOnWindows(t)
	var stdout, stderr bytes.Buffer
	l := &Local{Stdout: &stdout, Stderr: &stderr}

	code, err := l.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "echo hello"}})

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "hello\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestLocal_NonZeroExitIsNotAnError(t *testing.T) {
	skipOnWindows(t)
	l := &Local{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

	code, err := l.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "exit 42"}})

	require.NoError(t, err)
	assert.Equal(t, 42, code)
}

func TestLocal_DirAndEnv(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	var stdout bytes.Buffer
	l := &Local{Stdout: &stdout, Stderr: &bytes.Buffer{}}

	_, err := l.Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "pwd; echo $endpoint"},
		Dir:  dir,
		Env:  []string{"endpoint=http://localhost:8000"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
	want, _ := filepath.EvalSymlinks(dir)
	got, _ := filepath.EvalSymlinks(lines[0])
	assert.Equal(t, want, got)
	assert.Equal(t, "http://localhost:8000", lines[1])
}

func TestLocal_MissingProgram(t *testing.T) {
	l := &Local{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

	code, err := l.Run(context.Background(), Command{Name: "npm-definitely-not-installed"})

	require.Error(t, err)
	assert.Equal(t, -1, code)
	assert.True(t, errors.IsCode(err, errors.ErrExec))
	assert.Contains(t, err.Error(), "wasn't found")
}

func TestHandleStartError_Hints(t *testing.T) {
	err := HandleStartError(Command{Name: "./gradlew"}, os.ErrNotExist)
	assert.Contains(t, err.Error(), "JDK")

	err = HandleStartError(Command{Name: "npm"}, os.ErrNotExist)
	assert.Contains(t, err.Error(), "nodejs.org")

	err = HandleStartError(Command{Name: "npm", Args: []string{"start"}}, os.ErrPermission)
	assert.Contains(t, err.Error(), "Couldn't run npm start")
}

func TestCommandString(t *testing.T) {
	c := Command{Name: "npm", Args: []string{"install", "--production", "--silent"}}
	assert.Equal(t, "npm install --production --silent", c.String())
}
