package core

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrCacheMiss   = errors.New("cache: key not found")
	ErrCacheKey    = errors.New("cache: key cannot be empty")
	ErrCacheNilVal = errors.New("cache: value cannot be nil")
)

// Cache is a key -> (value, expiry) store owned by the calling layer.
// Values are serialized by the implementation; Get decodes into dst.
type Cache interface {
	Get(ctx context.Context, key string, dst interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
