package app

import (
	"context"

	"github.com/microsoft/deployr-cli/internal/config"
	"github.com/microsoft/deployr-cli/internal/dispatch"
	"github.com/microsoft/deployr-cli/internal/install"
	"github.com/microsoft/deployr-cli/internal/server"
	"github.com/microsoft/deployr-cli/internal/users"
)

// aliases are the single-token shortcuts.
var aliases = map[string]dispatch.Alias{
	"endpoint": {Resource: "server", Command: "endpoint"},
	"e":        {Resource: "server", Command: "endpoint"},
	"about":    {Resource: "server", Command: "about"},
	"login":    {Resource: "users", Command: "login"},
	"logout":   {Resource: "users", Command: "logout"},
	"whoami":   {Resource: "users", Command: "whoami"},
	"w":        {Resource: "users", Command: "whoami"},
}

func (a *App) registry() *dispatch.Registry {
	reg := dispatch.NewRegistry()

	reg.RegisterResource("server", a.showUsage("server"), server.Usage...)
	reg.RegisterResource("users", a.showUsage("users"), users.Usage...)
	reg.RegisterResource("install", a.showUsage("install"), install.Usage...)
	reg.RegisterResource("config", a.config.List, config.Usage...)

	for _, spec := range []dispatch.CommandSpec{
		{Resource: "server", Action: "endpoint", Usage: server.EndpointUsage, Handler: a.server.Endpoint},
		{Resource: "server", Action: "about", Usage: server.AboutUsage, Handler: a.server.About},
		{Resource: "users", Action: "login", Usage: users.LoginUsage, Handler: a.users.Login},
		{Resource: "users", Action: "logout", Usage: users.LogoutUsage, Handler: a.users.Logout},
		{Resource: "users", Action: "whoami", Usage: users.WhoamiUsage, Handler: a.users.Whoami},
		{Resource: "install", Action: "example", Usage: install.Usage, Handler: a.install.Example},
		{Resource: "config", Action: "list", Usage: config.ListUsage, Handler: a.config.List},
		{Resource: "config", Action: "get", Usage: config.GetUsage, Handler: a.config.Get},
		{Resource: "config", Action: "set", Usage: config.SetUsage, Handler: a.config.Set},
		{Resource: "config", Action: "delete", Usage: config.DeleteUsage, Handler: a.config.Delete},
	} {
		reg.Register(spec)
	}

	for token, alias := range aliases {
		reg.RegisterAlias(token, alias)
	}
	return reg
}

// showUsage is the default of a resource invoked without an action.
func (a *App) showUsage(resource string) dispatch.Handler {
	return func(ctx context.Context, args []string) error {
		return a.Router.Help([]string{resource})
	}
}

// Completions returns the tokens that may follow args on the command line.
func (a *App) Completions(args []string) []string {
	reg := a.Router.Registry()
	switch len(args) {
	case 0:
		return append(reg.Names(), dispatch.HelpToken)
	case 1:
		if args[0] == dispatch.HelpToken {
			return reg.Names()
		}
		if res, ok := reg.Resource(args[0]); ok {
			return res.Actions()
		}
	}
	return nil
}
