// Package cache defines the cache interface for the notes service.
package cache

import (
	"context"
	"time"
)

// Cache определяет интерфейс кэширования списков заметок.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
