// Package server implements `di server endpoint` and `di server about`.
package server

import (
	"context"
	"io"
	"strings"

	"github.com/microsoft/deployr-cli/internal/config"
	"github.com/microsoft/deployr-cli/internal/deployr"
	"github.com/microsoft/deployr-cli/internal/hooks"
	"github.com/microsoft/deployr-cli/internal/logger"
	"github.com/microsoft/deployr-cli/internal/prompt"
	"github.com/microsoft/deployr-cli/internal/ui"
)

// Hook action names.
const (
	ActionEndpoint = "endpoint"
	ActionAbout    = "about"
)

const invalidEndpoint = "Please enter a valid DeployR endpoint."

// Details describes a DeployR server. Info is nil when no endpoint is set.
type Details struct {
	Endpoint string
	Info     *deployr.ServerInfo
}

// Commands implements the server resource.
type Commands struct {
	Config *config.Store
	Client deployr.Client
	Prompt prompt.Prompter
	Hooks  hooks.Set[Details]
	Log    logger.Logger
	Out    io.Writer
	// Animate shows a spinner on Out during server calls.
	Animate bool
}

// Usage lines for the server resource and its actions.
var (
	Usage = []string{
		"`<app> server *` commands allow you to work with the DeployR server",
		"",
		"<app> server endpoint",
		"<app> server about",
		"",
		"You will be prompted for additional user information",
		"as required.",
	}
	EndpointUsage = []string{
		"Allows the user to set the DeployR server endpoint",
		"",
		"<app> endpoint",
	}
	AboutUsage = []string{
		"Displays DeployR server information based on the set server `endpoint`",
		"",
		"<app> about",
	}
)

// Endpoint asks for a server location until one answers, then hands it to
// the after hook.
func (c *Commands) Endpoint(ctx context.Context, args []string) error {
	_, err := hooks.Run(ctx, c.Hooks.WithLogger(c.Log), ActionEndpoint, Details{Endpoint: c.Config.Endpoint()}, c.PromptEndpoint)
	return err
}

// PromptEndpoint asks for an endpoint, normalises it and accepts it only
// once the server info call succeeds.
func (c *Commands) PromptEndpoint(ctx context.Context) (Details, error) {
	current := c.Config.Endpoint()
	title := "DeployR Server:"
	if current == "" {
		title = "DeployR Server " + ui.HighlightStyle.Render("http(s)://dhost:port") + ":"
	}

	for {
		if err := ctx.Err(); err != nil {
			return Details{}, err
		}

		input, err := c.Prompt.Input(title, current, prompt.NotEmpty(invalidEndpoint))
		if err != nil {
			return Details{}, err
		}

		endpoint := NormalizeEndpoint(input)
		var info *deployr.ServerInfo
		err = ui.Track(c.Out, c.Animate, "Contacting "+endpoint, func() error {
			info, err = c.Client.ServerInfo(ctx, endpoint)
			return err
		})
		if err != nil {
			c.Log.Debug("server info at %s: %v", endpoint, err)
			c.Log.Warn(invalidEndpoint)
			continue
		}

		return Details{Endpoint: endpoint, Info: info}, nil
	}
}

// About fetches the configured server's info and hands it to the after hook.
func (c *Commands) About(ctx context.Context, args []string) error {
	_, err := hooks.Run(ctx, c.Hooks.WithLogger(c.Log), ActionAbout, Details{}, c.fetchAbout)
	return err
}

func (c *Commands) fetchAbout(ctx context.Context) (Details, error) {
	endpoint := c.Config.Endpoint()
	if endpoint == "" {
		return Details{}, nil
	}

	var info *deployr.ServerInfo
	err := ui.Track(c.Out, c.Animate, "Contacting "+endpoint, func() error {
		var err error
		info, err = c.Client.ServerInfo(ctx, endpoint)
		return err
	})
	if err != nil {
		return Details{}, err
	}
	return Details{Endpoint: endpoint, Info: info}, nil
}

// NormalizeEndpoint accepts the forms a user is likely to type:
//
//	http(s)://dhost:port
//	http(s)://dhost:port/deployr
//	dhost:port
//	dhost:port/deployr
//
// and returns a scheme-qualified base URL without the /deployr suffix.
func NormalizeEndpoint(input string) string {
	endpoint := strings.TrimRight(strings.TrimSpace(input), "/")
	if trimmed, ok := strings.CutSuffix(endpoint, "/deployr"); ok {
		endpoint = strings.TrimRight(trimmed, "/")
	}

	lower := strings.ToLower(endpoint)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		endpoint = "http://" + endpoint
	}
	return endpoint
}
