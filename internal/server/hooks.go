package server

import (
	"context"
	"fmt"
	"io"

	"github.com/Masterminds/semver/v3"
	"github.com/microsoft/deployr-cli/internal/config"
	"github.com/microsoft/deployr-cli/internal/errors"
	"github.com/microsoft/deployr-cli/internal/hooks"
	"github.com/microsoft/deployr-cli/internal/logger"
	"github.com/microsoft/deployr-cli/internal/ui"
)

// MinimumVersion is the oldest server the examples are known to run on.
const MinimumVersion = "8.0.0"

// DefaultHooks persists a newly accepted endpoint and prints the about page.
func DefaultHooks(store *config.Store, log logger.Logger, out io.Writer) hooks.Set[Details] {
	return hooks.Set[Details]{
		Log: log,
		After: map[string]hooks.Hook[Details]{
			ActionEndpoint: func(ctx context.Context, d Details) error {
				if d.Endpoint == "" {
					return nil
				}
				store.SetEndpoint(d.Endpoint)
				if err := store.Save(); err != nil {
					return errors.Shallow(err)
				}
				log.Info("DeployR endpoint set to %s", ui.AccentStyle.Render(d.Endpoint))
				return nil
			},
			ActionAbout: func(ctx context.Context, d Details) error {
				printAbout(log, out, d)
				return nil
			},
		},
	}
}

func printAbout(log logger.Logger, out io.Writer, d Details) {
	fmt.Fprintln(out, ui.Brand())

	if d.Info == nil {
		log.Warn("There is no DeployR server endpoint set. Run `di endpoint` first.")
		fmt.Fprintln(out)
		return
	}

	log.Info("Version: %s", ui.HighlightStyle.Render(fmt.Sprintf("%s DeployR %q", d.Info.Version, d.Info.Edition())))
	log.Info("Server: %s", ui.HighlightStyle.Render(d.Endpoint))
	log.Info("Build Date: %s", ui.HighlightStyle.Render(d.Info.Date))
	if old, ok := outdated(d.Info.Version); ok {
		log.Warn("DeployR %s is older than %s, some examples may not run", old, MinimumVersion)
	}
	fmt.Fprintln(out)
}

// outdated reports whether version parses and is below MinimumVersion.
func outdated(version string) (string, bool) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return "", false
	}
	return v.String(), v.LessThan(semver.MustParse(MinimumVersion))
}
