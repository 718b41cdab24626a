package usecase

import (
	"context"
	"time"
)

// CatalogCache is the slice of the Redis client the community usecases
// touch. Implementations must degrade gracefully: a cache miss and a
// cache outage both read as (found=false, nil).
type CatalogCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	InvalidateCatalog(ctx context.Context) error
}
