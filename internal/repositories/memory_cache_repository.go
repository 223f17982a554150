package repositories

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

// InMemoryCacheRepository — процессный кеш под RWMutex. Запись с истёкшим
// сроком считается отсутствующей и удаляется лениво при следующем Get.
type InMemoryCacheRepository struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

func NewInMemoryCacheRepository() CacheRepositoryInterface {
	return &InMemoryCacheRepository{entries: make(map[string]cacheEntry)}
}

func (r *InMemoryCacheRepository) Get(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	entry, ok := r.entries[key]
	r.mu.RUnlock()

	if !ok {
		return "", ErrCacheMiss
	}
	if time.Now().After(entry.expiresAt) {
		r.mu.Lock()
		// Перепроверка: запись могли успеть обновить.
		if current, stillThere := r.entries[key]; stillThere && time.Now().After(current.expiresAt) {
			delete(r.entries, key)
		}
		r.mu.Unlock()
		return "", ErrCacheMiss
	}
	return entry.value, nil
}

func (r *InMemoryCacheRepository) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	var stored string
	switch v := value.(type) {
	case string:
		stored = v
	case []byte:
		stored = string(v)
	default:
		return fmt.Errorf("неподдерживаемый тип значения кеша: %T", value)
	}

	r.mu.Lock()
	r.entries[key] = cacheEntry{value: stored, expiresAt: time.Now().Add(expiration)}
	r.mu.Unlock()
	return nil
}

func (r *InMemoryCacheRepository) Del(_ context.Context, keys ...string) error {
	r.mu.Lock()
	for _, key := range keys {
		delete(r.entries, key)
	}
	r.mu.Unlock()
	return nil
}

func (r *InMemoryCacheRepository) DelByPrefix(_ context.Context, prefix string) error {
	r.mu.Lock()
	for key := range r.entries {
		if strings.HasPrefix(key, prefix) {
			delete(r.entries, key)
		}
	}
	r.mu.Unlock()
	return nil
}
