package examples

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Join runs fn for every item concurrently and waits for all of them. It
// returns how many succeeded and the first error returned, if any. A
// failing item does not cancel the others.
func Join[T any](ctx context.Context, items []T, fn func(ctx context.Context, item T) error) (int, error) {
	var (
		g         errgroup.Group
		succeeded atomic.Int64
	)
	for _, item := range items {
		g.Go(func() error {
			if err := fn(ctx, item); err != nil {
				return err
			}
			succeeded.Add(1)
			return nil
		})
	}
	err := g.Wait()
	return int(succeeded.Load()), err
}
