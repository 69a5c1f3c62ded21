// Package install implements `di install example [name]`: pick an example,
// download it, install its dependencies locally and on DeployR, then run it.
package install

import (
	"context"
	"io"
	"runtime"

	"github.com/google/uuid"
	"github.com/microsoft/deployr-cli/internal/config"
	"github.com/microsoft/deployr-cli/internal/deployr"
	"github.com/microsoft/deployr-cli/internal/errors"
	"github.com/microsoft/deployr-cli/internal/exec"
	"github.com/microsoft/deployr-cli/internal/logger"
	"github.com/microsoft/deployr-cli/internal/prompt"
)

// WorkflowName labels errors that stop an install.
const WorkflowName = "install example"

// Source lists and downloads examples.
type Source interface {
	ListExamples(ctx context.Context) ([]string, error)
	// Fetch unpacks the named example into dest.
	Fetch(ctx context.Context, name, dest string) error
}

// Workflow holds everything an install needs.
type Workflow struct {
	Config *config.Store
	Client deployr.Client
	Source Source
	Prompt prompt.Prompter
	Runner exec.Runner
	Log    logger.Logger
	Out    io.Writer
	// Login runs the login command when the server has no session for us.
	Login func(ctx context.Context) error
	// Open shows a URL in the browser.
	Open func(url string) error
	// Dir is where examples are unpacked. Empty means the working directory.
	Dir string
	// Animate shows a spinner on Out while examples are listed.
	Animate bool
	// GOOS picks the platform's start commands. Empty means runtime.GOOS.
	GOOS string
}

// Usage lines for the install resource.
var Usage = []string{
	"The `<app> install` command installs pre-built DeployR examples locally",
	"",
	"Example usages:",
	"<app> install example",
	"<app> install example <example name>",
}

// Example installs the example named in args, or asks which one to install.
func (w *Workflow) Example(ctx context.Context, args []string) error {
	s := &session{w: w, id: uuid.NewString()}
	if len(args) > 0 {
		s.wanted = args[0]
	}
	return s.run(ctx)
}

func (w *Workflow) goos() string {
	if w.GOOS != "" {
		return w.GOOS
	}
	return runtime.GOOS
}

// step is one state of an install. It returns the next state, or nil
// when the install is over.
type step func(ctx context.Context) (step, error)

func (s *session) run(ctx context.Context) error {
	s.w.Log.Debug("install %s: started", s.id)
	for next := step(s.listExamples); next != nil; {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		next, err = next(ctx)
		if err != nil {
			s.w.Log.Debug("install %s: stopped at %s: %v", s.id, s.stage, err)
			return abort(s.stage, err)
		}
	}
	s.w.Log.Debug("install %s: finished", s.id)
	return nil
}

// abort labels err with the stage it stopped at. Cancellation and the way
// back home are control flow, not failures, and pass through unchanged.
func abort(stage string, err error) error {
	if errors.Is(err, prompt.ErrAborted) || errors.Is(err, context.Canceled) || isHome(err) {
		return err
	}
	return errors.Abort(WorkflowName, stage, err)
}
