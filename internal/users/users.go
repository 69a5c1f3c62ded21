// Package users implements `di users login|logout|whoami` and the
// authentication workflow shared with the install flow.
package users

import (
	"context"
	"io"

	"github.com/microsoft/deployr-cli/internal/config"
	"github.com/microsoft/deployr-cli/internal/deployr"
	"github.com/microsoft/deployr-cli/internal/errors"
	"github.com/microsoft/deployr-cli/internal/hooks"
	"github.com/microsoft/deployr-cli/internal/logger"
	"github.com/microsoft/deployr-cli/internal/prompt"
	"github.com/microsoft/deployr-cli/internal/ui"
)

// Hook action names.
const (
	ActionLogin  = "login"
	ActionLogout = "logout"
)

const (
	// MaxLoginAttempts is how many invalid-credential answers end a login.
	MaxLoginAttempts = 3
	// MinUsernameLength is the shortest username the prompt accepts.
	MinUsernameLength = 3

	permissionDenied = "Permission denied, please try again."
)

// ErrLoginAttempts ends a login after MaxLoginAttempts rejected passwords.
var ErrLoginAttempts = errors.New(errors.ErrValidation, "Three failed login attempts.", "")

// Details identifies a user session. Cookie is empty before login.
type Details struct {
	Username string
	Cookie   string
}

// Commands implements the users resource.
type Commands struct {
	Config *config.Store
	Client deployr.Client
	Prompt prompt.Prompter
	Hooks  hooks.Set[Details]
	Log    logger.Logger
	Out    io.Writer
	// Animate shows a spinner on Out during server calls.
	Animate bool
	// SetEndpoint runs the endpoint command. Login calls it once when no
	// endpoint is configured.
	SetEndpoint func(ctx context.Context) error
}

// Usage lines for the users resource and its actions.
var (
	Usage = []string{
		"`<app> users *` commands allow you to work with existing user accounts",
		"",
		"<app> users login",
		"<app> users logout",
		"<app> users whoami",
		"",
		"You will be prompted for additional user information",
		"as required.",
	}
	LoginUsage = []string{
		"Allows the user to login DeployR",
		"",
		"<app> login",
	}
	LogoutUsage = []string{
		"Logs out the current user from DeployR",
		"",
		"<app> logout",
	}
	WhoamiUsage = []string{
		"Displays the current logged in user",
		"",
		"<app> whoami",
	}
)

// Login authenticates and hands the new session to the after hook.
func (c *Commands) Login(ctx context.Context, args []string) error {
	_, err := c.Authenticate(ctx)
	return err
}

// Authenticate runs the login pipeline, hooks included, and returns the
// new session.
func (c *Commands) Authenticate(ctx context.Context) (Details, error) {
	return hooks.Run(ctx, c.Hooks.WithLogger(c.Log), ActionLogin, Details{Username: c.Config.Username()}, c.authenticate)
}

// authenticate asks for a username once and a password until the server
// accepts it. Invalid credentials (code 940) are retried until the
// MaxLoginAttempts-th failure; any other error ends the workflow at once.
func (c *Commands) authenticate(ctx context.Context) (Details, error) {
	if c.Config.Endpoint() == "" && c.SetEndpoint != nil {
		c.Log.Debug("login: no endpoint, asking for one")
		if err := c.SetEndpoint(ctx); err != nil {
			return Details{}, err
		}
	}
	endpoint := c.Config.Endpoint()
	if endpoint == "" {
		return Details{}, errors.New(errors.ErrConfig,
			"There is no DeployR server endpoint set",
			"Run `di endpoint` first")
	}

	username, err := c.Prompt.Input("Username:", c.Config.Username(), validUsername)
	if err != nil {
		return Details{}, err
	}

	for attempts := 0; ; {
		if err := ctx.Err(); err != nil {
			return Details{}, err
		}

		password, err := c.Prompt.Password("Password:", prompt.NotEmpty(permissionDenied))
		if err != nil {
			return Details{}, err
		}

		var session *deployr.Session
		err = ui.Track(c.Out, c.Animate, "Logging in", func() error {
			var err error
			session, err = c.Client.Login(ctx, endpoint, username, password)
			return err
		})
		if err == nil {
			details := Details{Username: session.Username, Cookie: session.Cookie}
			if details.Username == "" {
				details.Username = username
			}
			return details, nil
		}

		if !errors.IsInvalidCredentials(err) {
			return Details{}, err
		}

		attempts++
		c.Log.Debug("login: invalid credentials (attempt %d of %d)", attempts, MaxLoginAttempts)
		if attempts >= MaxLoginAttempts {
			return Details{}, errors.Shallow(ErrLoginAttempts)
		}
		c.Log.Warn(permissionDenied)
	}
}

func validUsername(s string) error {
	if len(s) < MinUsernameLength {
		return errors.New(errors.ErrValidation, "Please enter a valid username", "")
	}
	return nil
}

// Logout ends the remote session on a best-effort basis and clears the
// username, cookie and password together, then persists the result.
func (c *Commands) Logout(ctx context.Context, args []string) error {
	_, err := hooks.Run(ctx, c.Hooks.WithLogger(c.Log), ActionLogout, Details{Username: c.Config.Username()}, c.unauth)
	if err != nil {
		return err
	}

	if err := c.Config.Save(); err != nil {
		return errors.Shallow(err)
	}
	c.Log.Info("User has been logged out")
	return nil
}

func (c *Commands) unauth(ctx context.Context) (Details, error) {
	details := Details{Username: c.Config.Username(), Cookie: c.Config.Cookie()}

	if endpoint := c.Config.Endpoint(); endpoint != "" {
		auth := deployr.Auth{Endpoint: endpoint, Cookie: details.Cookie}
		if err := c.Client.Logout(ctx, auth); err != nil {
			c.Log.Debug("logout: server call failed: %v", err)
		}
	}

	c.Config.ClearSession()
	return details, nil
}

// Whoami prints the logged in user.
func (c *Commands) Whoami(ctx context.Context, args []string) error {
	username := c.Config.Username()
	if username == "" {
		username = "not logged in"
	}
	c.Log.Info("You are: %s", ui.AccentStyle.Render(username))
	return nil
}
