package async_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dobby152/askelio-sub003/pkg/async"
)

func TestRun(t *testing.T) {
	t.Run("returns result", func(t *testing.T) {
		f := async.Run(context.Background(), func(ctx context.Context) (int, error) {
			return 42, nil
		})

		res, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, 42, res)
	})

	t.Run("returns error", func(t *testing.T) {
		wantErr := errors.New("boom")
		f := async.Run(context.Background(), func(ctx context.Context) (int, error) {
			return 0, wantErr
		})

		_, err := f.Await()
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("pre-cancelled context short-circuits", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		called := false
		f := async.Run(ctx, func(ctx context.Context) (int, error) {
			called = true
			return 1, nil
		})

		_, err := f.Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})
}

func TestFutureAwaitWithTimeout(t *testing.T) {
	t.Run("completes before timeout", func(t *testing.T) {
		f := async.Run(context.Background(), func(ctx context.Context) (string, error) {
			return "done", nil
		})

		res, err := f.AwaitWithTimeout(time.Second)
		require.NoError(t, err)
		assert.Equal(t, "done", res)
	})

	t.Run("times out on slow computation", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)

		f := async.Run(context.Background(), func(ctx context.Context) (string, error) {
			<-release
			return "late", nil
		})

		_, err := f.AwaitWithTimeout(10 * time.Millisecond)
		assert.ErrorIs(t, err, async.ErrTimeout)
	})
}

func TestFutureSharedOutcome(t *testing.T) {
	release := make(chan struct{})
	f := async.Run(context.Background(), func(ctx context.Context) (int, error) {
		<-release
		return 7, nil
	})

	assert.False(t, f.IsComplete())

	const waiters = 10
	results := make([]int, waiters)
	var wg sync.WaitGroup
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := f.Await()
			require.NoError(t, err)
			results[i] = res
		}(i)
	}

	close(release)
	wg.Wait()

	for _, res := range results {
		assert.Equal(t, 7, res)
	}
	assert.True(t, f.IsComplete())
}
