package repositories

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryCache_SetGet(t *testing.T) {
	cache := NewInMemoryCacheRepository()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "employees-1--10", `{"list":[]}`, time.Minute))

	value, err := cache.Get(ctx, "employees-1--10")
	require.NoError(t, err)
	assert.Equal(t, `{"list":[]}`, value)

	_, err = cache.Get(ctx, "нет такого ключа")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestInMemoryCache_SetBytes(t *testing.T) {
	cache := NewInMemoryCacheRepository()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", []byte("значение"), time.Minute))
	value, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "значение", value)

	assert.Error(t, cache.Set(ctx, "key", 42, time.Minute))
}

func TestInMemoryCache_TTLExpiry(t *testing.T) {
	cache := NewInMemoryCacheRepository()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", "value", 10*time.Millisecond))

	_, err := cache.Get(ctx, "key")
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = cache.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrCacheMiss, "просроченная запись — это промах")
}

func TestInMemoryCache_Del(t *testing.T) {
	cache := NewInMemoryCacheRepository()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", "1", time.Minute))
	require.NoError(t, cache.Set(ctx, "b", "2", time.Minute))

	require.NoError(t, cache.Del(ctx, "a", "b"))

	_, err := cache.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = cache.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestInMemoryCache_DelByPrefix(t *testing.T) {
	cache := NewInMemoryCacheRepository()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "employees-1--10", "a", time.Minute))
	require.NoError(t, cache.Set(ctx, "employees-2-иван-10", "b", time.Minute))
	require.NoError(t, cache.Set(ctx, "timesheets-1--10", "c", time.Minute))

	require.NoError(t, cache.DelByPrefix(ctx, "employees-"))

	_, err := cache.Get(ctx, "employees-1--10")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = cache.Get(ctx, "employees-2-иван-10")
	assert.ErrorIs(t, err, ErrCacheMiss)

	// Чужая сущность не задета.
	value, err := cache.Get(ctx, "timesheets-1--10")
	require.NoError(t, err)
	assert.Equal(t, "c", value)
}

func TestInMemoryCache_ConcurrentAccess(t *testing.T) {
	cache := NewInMemoryCacheRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("employees-%d--10", n)
			_ = cache.Set(ctx, key, "value", time.Minute)
			_, _ = cache.Get(ctx, key)
			_ = cache.DelByPrefix(ctx, "employees-")
		}(i)
	}
	wg.Wait()
}
