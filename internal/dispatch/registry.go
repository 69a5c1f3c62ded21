// Package dispatch maps argument vectors onto registered commands.
//
// Commands live in a two level namespace, resource then action
// (`di users login`). Aliases map a single token onto a fixed
// resource/action pair (`di login`, `di w`). A resource may also carry a
// default handler that runs when no action token matches.
package dispatch

import (
	"context"
	"sort"

	"github.com/microsoft/deployr-cli/internal/errors"
)

// Handler runs a resolved command with the positional tokens left over
// after resource and action were consumed.
type Handler func(ctx context.Context, args []string) error

// CommandSpec identifies a (resource, action) pair and its handler.
type CommandSpec struct {
	Resource string
	Action   string
	Usage    []string
	Handler  Handler
}

// Name is the canonical command name, e.g. "users login".
func (c *CommandSpec) Name() string {
	if c.Action == "" {
		return c.Resource
	}
	return c.Resource + " " + c.Action
}

// Alias points a single token at a fixed resource/action pair.
type Alias struct {
	Resource string
	Command  string
}

// Resource groups actions under one name.
type Resource struct {
	Name    string
	Usage   []string
	Default Handler
	actions map[string]*CommandSpec
}

// Actions returns the resource's action names in sorted order.
func (r *Resource) Actions() []string {
	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Registry holds every command the CLI knows about.
type Registry struct {
	resources map[string]*Resource
	aliases   map[string]Alias
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		resources: make(map[string]*Resource),
		aliases:   make(map[string]Alias),
	}
}

// RegisterResource declares a resource with its usage text and optional
// default handler. Registering the same name again replaces usage and default.
func (r *Registry) RegisterResource(name string, def Handler, usage ...string) {
	res := r.resource(name)
	res.Usage = usage
	res.Default = def
}

func (r *Registry) resource(name string) *Resource {
	res, ok := r.resources[name]
	if !ok {
		res = &Resource{Name: name, actions: make(map[string]*CommandSpec)}
		r.resources[name] = res
	}
	return res
}

// Register stores spec under its resource and action. Duplicates overwrite.
func (r *Registry) Register(spec CommandSpec) {
	s := spec
	r.resource(spec.Resource).actions[spec.Action] = &s
}

// RegisterAlias maps token onto alias. Duplicates overwrite.
func (r *Registry) RegisterAlias(token string, alias Alias) {
	r.aliases[token] = alias
}

// Resource returns a registered resource.
func (r *Registry) Resource(name string) (*Resource, bool) {
	res, ok := r.resources[name]
	return res, ok
}

// Alias returns the target of an alias token.
func (r *Registry) Alias(token string) (Alias, bool) {
	a, ok := r.aliases[token]
	return a, ok
}

// Expand substitutes a leading alias token with its resource and command.
func (r *Registry) Expand(tokens []string) []string {
	if len(tokens) == 0 {
		return tokens
	}
	alias, ok := r.aliases[tokens[0]]
	if !ok {
		return tokens
	}
	expanded := []string{alias.Resource, alias.Command}
	return append(expanded, tokens[1:]...)
}

// Lookup resolves tokens to a command and the remaining arguments. It never
// panics; an unresolvable sequence yields *errors.CommandNotFoundError.
func (r *Registry) Lookup(tokens []string) (*CommandSpec, []string, error) {
	if len(tokens) == 0 {
		return nil, nil, errors.NewCommandNotFound(tokens)
	}

	expanded := r.Expand(tokens)
	res, ok := r.resources[expanded[0]]
	if !ok {
		return nil, nil, errors.NewCommandNotFound(tokens, r.suggest(tokens[0])...)
	}

	if len(expanded) > 1 {
		if spec, ok := res.actions[expanded[1]]; ok {
			return spec, expanded[2:], nil
		}
	}

	if res.Default != nil {
		return &CommandSpec{Resource: res.Name, Usage: res.Usage, Handler: res.Default}, expanded[1:], nil
	}

	var suggestions []string
	if len(expanded) > 1 {
		suggestions = FindSimilar(expanded[1], res.Actions(), maxSuggestions)
	}
	return nil, nil, errors.NewCommandNotFound(tokens, suggestions...)
}

// Names returns every resource and alias token, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.resources)+len(r.aliases))
	for name := range r.resources {
		names = append(names, name)
	}
	for token := range r.aliases {
		names = append(names, token)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) suggest(token string) []string {
	return FindSimilar(token, r.Names(), maxSuggestions)
}
