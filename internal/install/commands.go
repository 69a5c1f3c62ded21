package install

import (
	"fmt"
	"path/filepath"

	"github.com/microsoft/deployr-cli/internal/errors"
	"github.com/microsoft/deployr-cli/internal/examples"
	"github.com/microsoft/deployr-cli/internal/exec"
)

func (s *session) npm(args ...string) exec.Command {
	name := "npm"
	if s.w.goos() == "windows" {
		name = "npm.cmd"
	}
	return exec.Command{Name: name, Args: args, Dir: s.dir}
}

// startCommand builds the command that runs the example, passing the
// server, the credentials and the selected test.
func (s *session) startCommand() (exec.Command, error) {
	endpoint := s.w.Config.Endpoint()
	username := s.w.Config.Username()

	switch s.lang {
	case examples.JavaScript:
		cmd := s.npm("start")
		cmd.Env = []string{
			"endpoint=" + endpoint,
			"username=" + username,
			"password=" + s.password,
			"testmod=" + s.test,
		}
		return cmd, nil

	case examples.Java:
		name := "./gradlew"
		if s.w.goos() == "windows" {
			name = filepath.Join(s.dir, "gradlew.bat")
		}
		return exec.Command{
			Name: name,
			Args: []string{
				"run",
				"-Pendpoint=" + endpoint + "/deployr",
				"-Pusername=" + username,
				"-Ppassword=" + s.password,
				"-DtestClass=" + s.test,
			},
			Dir: s.dir,
		}, nil
	}

	return exec.Command{}, errors.New(errors.ErrInstall,
		fmt.Sprintf("%s examples cannot be started from di", s.lang),
		"Open the example in its own IDE to run it")
}
