package dispatch

import (
	"context"
	"strings"
	"sync"

	"github.com/microsoft/deployr-cli/internal/errors"
	"github.com/microsoft/deployr-cli/internal/logger"
)

// HelpToken switches the router into the usage-only help namespace.
const HelpToken = "help"

// Router resolves argument vectors against a Registry and invokes the
// matching handler.
type Router struct {
	registry *Registry
	app      string
	usage    []string
	setup    func(ctx context.Context) error
	log      logger.Logger

	setupOnce sync.Once
	setupErr  error
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithSetup runs fn once, before the first dispatch.
func WithSetup(fn func(ctx context.Context) error) RouterOption {
	return func(r *Router) { r.setup = fn }
}

// WithUsage sets the general usage page shown by a bare `help`.
func WithUsage(lines ...string) RouterOption {
	return func(r *Router) { r.usage = lines }
}

// WithLogger sets where help output goes.
func WithLogger(l logger.Logger) RouterOption {
	return func(r *Router) { r.log = l }
}

// NewRouter creates a router for registry. app replaces the <app>
// placeholder in usage text.
func NewRouter(registry *Registry, app string, opts ...RouterOption) *Router {
	r := &Router{
		registry: registry,
		app:      app,
		log:      logger.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Registry returns the registry the router resolves against.
func (r *Router) Registry() *Registry {
	return r.registry
}

// Dispatch resolves tokens and runs the handler with the remaining tokens.
// Empty tokens are the caller's concern (the interactive home screen) and
// are reported as not found here.
func (r *Router) Dispatch(ctx context.Context, tokens []string) error {
	if err := r.runSetup(ctx); err != nil {
		return err
	}

	if len(tokens) > 0 && tokens[0] == HelpToken {
		return r.Help(tokens[1:])
	}

	spec, args, err := r.registry.Lookup(tokens)
	if err != nil {
		return err
	}
	r.log.Debug("dispatch: %s %v", spec.Name(), args)
	return spec.Handler(ctx, args)
}

func (r *Router) runSetup(ctx context.Context) error {
	r.setupOnce.Do(func() {
		if r.setup != nil {
			r.setupErr = r.setup(ctx)
		}
	})
	return r.setupErr
}

// Help prints usage for tokens without running anything.
func (r *Router) Help(tokens []string) error {
	lines, err := r.Usage(tokens)
	if err != nil {
		return err
	}
	for _, line := range lines {
		r.log.Help("%s", line)
	}
	return nil
}

// Usage resolves the usage text for tokens in the help namespace.
func (r *Router) Usage(tokens []string) ([]string, error) {
	if len(tokens) == 0 {
		return r.render(r.usage), nil
	}

	notFound := func() error {
		return errors.NewCommandNotFound(append([]string{HelpToken}, tokens...),
			r.registry.suggest(tokens[0])...)
	}

	expanded := r.registry.Expand(tokens)
	res, ok := r.registry.Resource(expanded[0])
	if !ok {
		return nil, notFound()
	}

	if len(expanded) == 1 {
		lines := res.Usage
		if len(lines) == 0 {
			lines = []string{"<app> " + res.Name + " <action>", "", "Actions: " + strings.Join(res.Actions(), ", ")}
		}
		return r.render(lines), nil
	}

	spec, ok := res.actions[expanded[1]]
	if !ok {
		return nil, notFound()
	}
	lines := spec.Usage
	if len(lines) == 0 {
		lines = []string{"<app> " + spec.Name()}
	}
	return r.render(lines), nil
}

func (r *Router) render(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.ReplaceAll(line, "<app>", r.app)
	}
	return out
}
