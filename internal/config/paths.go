package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/microsoft/deployr-cli/internal/errors"
)

// HomeDir returns the user's home directory, preferring USERPROFILE on Windows.
func HomeDir() string {
	if runtime.GOOS == "windows" {
		if p := os.Getenv("USERPROFILE"); p != "" {
			return p
		}
	}
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	h, _ := os.UserHomeDir()
	return h
}

// Find locates the config file using the search order:
// 1. Explicit path (from --diconf)
// 2. .diconf in the current directory
// 3. .diconf in parent directories (stops at home)
// 4. ~/.diconf, which is returned even if it does not exist yet
func Find(explicit string) (string, error) {
	if explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot resolve config path: "+explicit,
				"Check the path passed to --diconf")
		}
		return abs, nil
	}

	home := HomeDir()
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	dir := cwd
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		if home != "" && dir == home {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if home == "" {
		return "", errors.New(errors.ErrConfig,
			"Cannot determine home directory",
			"Set HOME or pass --diconf <path>")
	}
	return filepath.Join(home, FileName), nil
}
