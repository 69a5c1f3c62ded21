package exec

import (
	"errors"
	"fmt"
	"os"
	osexec "os/exec"
	"path/filepath"
	"strings"

	dierrors "github.com/microsoft/deployr-cli/internal/errors"
)

// toolHints tell the user how to get a missing toolchain.
var toolHints = map[string]string{
	"npm":         "JavaScript examples need Node.js and npm: https://nodejs.org",
	"npm.cmd":     "JavaScript examples need Node.js and npm: https://nodejs.org",
	"gradlew":     "Java examples ship a Gradle wrapper; make sure a JDK is installed and JAVA_HOME is set",
	"gradlew.bat": "Java examples ship a Gradle wrapper; make sure a JDK is installed and JAVA_HOME is set",
}

// IsNotFound reports whether err means the program does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, osexec.ErrNotFound) || errors.Is(err, os.ErrNotExist)
}

// HandleStartError wraps a failure to start cmd with a suggestion naming
// the missing tool when that is the cause.
func HandleStartError(cmd Command, err error) error {
	name := strings.TrimPrefix(filepath.Base(cmd.Name), "./")
	if IsNotFound(err) {
		hint, ok := toolHints[name]
		if !ok {
			hint = fmt.Sprintf("Make sure '%s' is installed and on your PATH", name)
		}
		return dierrors.WrapWithCode(err, dierrors.ErrExec,
			fmt.Sprintf("'%s' wasn't found", name),
			hint)
	}
	return dierrors.WrapWithCode(err, dierrors.ErrExec,
		"Couldn't run "+cmd.String(),
		"Make sure the command exists and is executable.")
}
