package records

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

func TestCache_GetCollapsesLoads(t *testing.T) {
	var loads atomic.Int32
	release := make(chan struct{})

	cache := NewCache(func(context.Context) (*Table, error) {
		loads.Add(1)
		<-release
		return ParseYAML([]byte(seedYAML))
	}, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.Get(context.Background())
			assert.NoError(t, err)
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), loads.Load())
	assert.False(t, cache.IsExpired())
	assert.True(t, cache.IsValidCell(100), "lookup reads the loaded table")

	_, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), loads.Load(), "fresh table is not rebuilt")

	cache.Invalidate()
	assert.True(t, cache.IsExpired())
	_, err = cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), loads.Load())
}

func TestCache_ErrorKeepsPreviousTable(t *testing.T) {
	fail := false
	cache := NewCache(func(context.Context) (*Table, error) {
		if fail {
			return nil, errors.New("db down")
		}
		return ParseYAML([]byte(seedYAML))
	}, 0)

	_, err := cache.Get(context.Background())
	require.NoError(t, err)

	fail = true
	_, err = cache.Get(context.Background())
	assert.ErrorContains(t, err, "db down")
	assert.True(t, cache.IsValidCell(200))
}

func TestCache_EmptyBeforeFirstLoad(t *testing.T) {
	cache := NewCache(YAMLSource("does-not-exist.yaml"), time.Minute)

	assert.False(t, cache.IsValidCell(100))
	_, err := cache.Get(context.Background())
	assert.Error(t, err)
}
