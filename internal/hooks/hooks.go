// Package hooks runs a primitive command between optional before and after
// extension points. Stages run strictly in order and the first error stops
// the pipeline.
package hooks

import (
	"context"

	"github.com/microsoft/deployr-cli/internal/logger"
)

// Hook is a before or after extension point for one action. It receives
// the action's details: the input payload before the action, the result
// after it.
type Hook[T any] func(ctx context.Context, details T) error

// Core is the primitive action itself. Its result is handed to the after hook.
type Core[T any] func(ctx context.Context) (T, error)

// Set binds hooks to action names. A missing entry means "proceed".
// Stage transitions are logged at debug level to Log, or to the default
// logger when Log is nil.
type Set[T any] struct {
	Before map[string]Hook[T]
	After  map[string]Hook[T]
	Log    logger.Logger
}

// WithLogger returns a copy of s that logs to l unless s already has a logger.
func (s Set[T]) WithLogger(l logger.Logger) Set[T] {
	if s.Log == nil {
		s.Log = l
	}
	return s
}

// Step is one stage of a sequential pipeline.
type Step func(ctx context.Context) error

// Series runs steps in order and stops at the first error, which is
// returned unchanged. The context is checked before every step.
func Series(ctx context.Context, steps ...Step) error {
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Run executes before(payload), core, then after(result) for action.
// Each stage runs at most once; when one fails the rest are skipped and its
// error is returned unchanged.
func Run[T any](ctx context.Context, set Set[T], action string, payload T, core Core[T]) (T, error) {
	log := set.Log
	if log == nil {
		log = logger.Default()
	}
	result := payload

	err := Series(ctx,
		func(ctx context.Context) error {
			hook, ok := set.Before[action]
			if !ok || hook == nil {
				return nil
			}
			log.Debug("%s: before hook", action)
			return hook(ctx, payload)
		},
		func(ctx context.Context) error {
			log.Debug("%s: running", action)
			out, err := core(ctx)
			if err != nil {
				return err
			}
			result = out
			return nil
		},
		func(ctx context.Context) error {
			hook, ok := set.After[action]
			if !ok || hook == nil {
				return nil
			}
			log.Debug("%s: after hook", action)
			return hook(ctx, result)
		},
	)
	return result, err
}
