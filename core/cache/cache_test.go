package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetOrLoad(t *testing.T) {
	c := New[int](time.Minute)
	var calls int

	load := func(context.Context) (int, error) {
		calls++
		return 42, nil
	}

	v, err := c.GetOrLoad(context.Background(), "k", load)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = c.GetOrLoad(context.Background(), "k", load)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)
}

func TestCache_Expiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New[string](time.Minute)
	c.now = func() time.Time { return now }

	c.Put("k", "v1")
	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v1", v)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestCache_ZeroTTL(t *testing.T) {
	c := New[int](0)
	var calls int
	load := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	_, _ = c.GetOrLoad(context.Background(), "k", load)
	v, _ := c.GetOrLoad(context.Background(), "k", load)
	assert.Equal(t, 2, v)
	assert.Equal(t, 0, c.Len())
}

func TestCache_LoadError(t *testing.T) {
	c := New[int](time.Minute)

	_, err := c.GetOrLoad(context.Background(), "k", func(context.Context) (int, error) {
		return 0, errors.New("storage down")
	})
	assert.ErrorContains(t, err, "storage down")
	assert.Equal(t, 0, c.Len(), "errors are not cached")
}

func TestCache_Stampede(t *testing.T) {
	c := New[int](time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})

	load := func(context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 7, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.GetOrLoad(context.Background(), "k", load)
			assert.NoError(t, err)
			assert.Equal(t, 7, v)
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestCache_Invalidate(t *testing.T) {
	c := New[int](time.Minute)
	c.Put("k", 1)
	c.Invalidate("k")

	_, ok := c.Get("k")
	assert.False(t, ok)
}
