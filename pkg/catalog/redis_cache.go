package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CachedProvider is a read-through cache decorator. Catalog lists change
// rarely and are re-fetched on every funnel step, so a short redis TTL cuts
// most of the database traffic. Any redis failure falls straight through to
// the inner provider; the cache is never on the correctness path.
type CachedProvider struct {
	inner Provider
	rdb   *redis.Client
	ttl   time.Duration
}

var _ Provider = &CachedProvider{}

func NewCachedProvider(inner Provider, rdb *redis.Client, ttl time.Duration) *CachedProvider {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachedProvider{inner: inner, rdb: rdb, ttl: ttl}
}

func (p *CachedProvider) ListCategories(ctx context.Context, tenantId uuid.UUID) ([]string, error) {
	key := fmt.Sprintf("catalog:%s:categories", tenantId)
	return p.throughList(ctx, key, func() ([]string, error) {
		return p.inner.ListCategories(ctx, tenantId)
	})
}

func (p *CachedProvider) ListBrands(ctx context.Context, tenantId uuid.UUID) ([]string, error) {
	key := fmt.Sprintf("catalog:%s:brands", tenantId)
	return p.throughList(ctx, key, func() ([]string, error) {
		return p.inner.ListBrands(ctx, tenantId)
	})
}

func (p *CachedProvider) ListModels(ctx context.Context, tenantId uuid.UUID, brand string) ([]string, error) {
	key := fmt.Sprintf("catalog:%s:models:%s", tenantId, brand)
	return p.throughList(ctx, key, func() ([]string, error) {
		return p.inner.ListModels(ctx, tenantId, brand)
	})
}

func (p *CachedProvider) ListBodyTypes(ctx context.Context, tenantId uuid.UUID, brand, model string) ([]string, error) {
	key := fmt.Sprintf("catalog:%s:bodytypes:%s:%s", tenantId, brand, model)
	return p.throughList(ctx, key, func() ([]string, error) {
		return p.inner.ListBodyTypes(ctx, tenantId, brand, model)
	})
}

func (p *CachedProvider) ListOptionPacks(ctx context.Context, tenantId uuid.UUID) ([]string, error) {
	key := fmt.Sprintf("catalog:%s:options", tenantId)
	return p.throughList(ctx, key, func() ([]string, error) {
		return p.inner.ListOptionPacks(ctx, tenantId)
	})
}

// FindAvailability is intentionally uncached: stock state is the one thing
// that must be fresh at order time.
func (p *CachedProvider) FindAvailability(ctx context.Context, tenantId uuid.UUID, brand, model string) (bool, error) {
	return p.inner.FindAvailability(ctx, tenantId, brand, model)
}

func (p *CachedProvider) throughList(ctx context.Context, key string, fetch func() ([]string, error)) ([]string, error) {
	if p.rdb != nil {
		if raw, err := p.rdb.Get(ctx, key).Result(); err == nil {
			var cached []string
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	list, err := fetch()
	if err != nil {
		return nil, err
	}

	if p.rdb != nil {
		if raw, err := json.Marshal(list); err == nil {
			if err := p.rdb.Set(ctx, key, raw, p.ttl).Err(); err != nil {
				log.Printf("[WARN] catalog cache set failed for %s: %v", key, err)
			}
		}
	}
	return list, nil
}
