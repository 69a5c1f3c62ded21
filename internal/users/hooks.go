package users

import (
	"context"

	"github.com/microsoft/deployr-cli/internal/config"
	"github.com/microsoft/deployr-cli/internal/errors"
	"github.com/microsoft/deployr-cli/internal/hooks"
	"github.com/microsoft/deployr-cli/internal/logger"
	"github.com/microsoft/deployr-cli/internal/ui"
)

// DefaultHooks persists a new session after login.
func DefaultHooks(store *config.Store, log logger.Logger) hooks.Set[Details] {
	return hooks.Set[Details]{
		Log: log,
		After: map[string]hooks.Hook[Details]{
			ActionLogin: func(ctx context.Context, d Details) error {
				if d.Username == "" {
					return nil
				}
				store.SetSession(d.Username, d.Cookie)
				if err := store.Save(); err != nil {
					return errors.Shallow(err)
				}
				log.Info("Logged in as %s", ui.AccentStyle.Render(d.Username))
				return nil
			},
		},
	}
}
