package watch_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/cfpwatch/watch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("first request to a host is immediate", func(t *testing.T) {
		t.Parallel()

		l := watch.NewDomainLimiter(10)

		start := time.Now()
		require.NoError(t, l.Wait(ctx, "www.comsoc.org"))
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("second request to the same host waits", func(t *testing.T) {
		t.Parallel()

		l := watch.NewDomainLimiter(10)
		require.NoError(t, l.Wait(ctx, "www.comsoc.org"))

		start := time.Now()
		require.NoError(t, l.Wait(ctx, "WWW.ComSoc.org"))
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("hosts are limited independently", func(t *testing.T) {
		t.Parallel()

		l := watch.NewDomainLimiter(10)
		require.NoError(t, l.Wait(ctx, "www.comsoc.org"))

		start := time.Now()
		require.NoError(t, l.Wait(ctx, "ieeexplore.ieee.org"))
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("zero rps disables limiting", func(t *testing.T) {
		t.Parallel()

		l := watch.NewDomainLimiter(0)

		start := time.Now()
		for range 5 {
			require.NoError(t, l.Wait(ctx, "www.comsoc.org"))
		}
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("gives up when the context ends", func(t *testing.T) {
		t.Parallel()

		l := watch.NewDomainLimiter(1)
		require.NoError(t, l.Wait(ctx, "www.comsoc.org"))

		short, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()

		assert.Error(t, l.Wait(short, "www.comsoc.org"))
	})

	t.Run("concurrent callers all get through", func(t *testing.T) {
		t.Parallel()

		l := watch.NewDomainLimiter(100)

		var wg sync.WaitGroup
		errs := make(chan error, 5)
		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- l.Wait(ctx, "www.comsoc.org")
			}()
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			assert.NoError(t, err)
		}
	})
}

func TestHost(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "www.comsoc.org", watch.Host("https://www.comsoc.org/publications/journals/ieee-twc"))
	assert.Equal(t, "localhost:8080", watch.Host("http://localhost:8080/cfp"))
	assert.Empty(t, watch.Host("/relative/path"))
	assert.Empty(t, watch.Host("http://[::1"))
}
