package repositories

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss возвращается Get, когда ключа нет или срок его жизни истёк.
var ErrCacheMiss = errors.New("ключ не найден в кеше")

// CacheRepositoryInterface — контракт кеша результатов списочных запросов.
// Значения — сериализованные JSON-строки; ключ начинается с имени сущности,
// поэтому запись в сущность инвалидирует её списки одним DelByPrefix.
// Кеш — ускоритель чтения, источником истины остаётся база.
type CacheRepositoryInterface interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
	DelByPrefix(ctx context.Context, prefix string) error
}
