package examples

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoin_AllSucceed(t *testing.T) {
	var mu sync.Mutex
	var seen []int

	n, err := Join(context.Background(), []int{1, 2, 3}, func(ctx context.Context, i int) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, i)
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.ElementsMatch(t, []int{1, 2, 3}, seen)
}

func TestJoin_OneFailureDoesNotStopOthers(t *testing.T) {
	const total, failing = 5, 3
	boom := errors.New("upload 3 failed")

	var mu sync.Mutex
	calls := 0
	items := []int{1, 2, 3, 4, 5}

	n, err := Join(context.Background(), items, func(ctx context.Context, i int) error {
		mu.Lock()
		calls++
		mu.Unlock()
		if i == failing {
			return boom
		}
		return nil
	})

	assert.Same(t, boom, err, "exactly the failing upload's error is surfaced")
	assert.Equal(t, total-1, n)
	assert.Equal(t, total, calls, "every upload runs to completion")
}

func TestJoin_Empty(t *testing.T) {
	n, err := Join(context.Background(), []string(nil), func(context.Context, string) error {
		t.Fatal("must not be called")
		return nil
	})

	assert.NoError(t, err)
	assert.Zero(t, n)
}
