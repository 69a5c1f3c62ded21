// Package exec runs local programs: the dependency install and start
// commands of downloaded examples.
package exec

import (
	"context"
	"errors"
	"io"
	"os"
	osexec "os/exec"

	"github.com/microsoft/deployr-cli/internal/util"
)

// Command is a program invocation. Env entries are appended to the
// current process environment.
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  []string
}

// String renders the command line for display.
func (c Command) String() string {
	return util.CommandLine(c.Name, c.Args...)
}

// Runner runs commands and reports their exit code. A non-zero exit is
// not an error; failing to start the program is.
type Runner interface {
	Run(ctx context.Context, cmd Command) (exitCode int, err error)
}

// Local runs commands on this machine, streaming output to the writers.
type Local struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewLocal returns a Local attached to the process's standard streams.
func NewLocal() *Local {
	return &Local{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes cmd and waits for it to exit.
func (l *Local) Run(ctx context.Context, cmd Command) (int, error) {
	command := osexec.CommandContext(ctx, cmd.Name, cmd.Args...)
	if cmd.Dir != "" {
		command.Dir = cmd.Dir
	}
	if len(cmd.Env) > 0 {
		command.Env = append(os.Environ(), cmd.Env...)
	}
	command.Stdin = l.Stdin
	command.Stdout = l.Stdout
	command.Stderr = l.Stderr

	runErr := command.Run()
	if runErr != nil {
		var exitErr *osexec.ExitError
		if errors.As(runErr, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, HandleStartError(cmd, runErr)
	}
	return 0, nil
}

var _ Runner = (*Local)(nil)
