package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront-backend/models"
	"storefront-backend/repository"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	ProductCachePrefix     = "product:detail:"
	ProductListCachePrefix = "products:v:"
	CacheVersionKey        = "products:version"

	DefaultCacheTTL = 10 * time.Minute
)

// ProductListEntry is the cached form of one catalog page.
type ProductListEntry struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
}

// CatalogCache handles Redis caching for the product catalog. List entries
// are scoped to a version counter, so invalidation is a single INCR instead
// of a key scan. A nil CatalogCache, or one built from a nil client, is
// disabled: every lookup misses and every write is a no-op.
type CatalogCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCatalogCache(client *redis.Client) *CatalogCache {
	return &CatalogCache{redis: client, ttl: DefaultCacheTTL}
}

func (cm *CatalogCache) enabled() bool {
	return cm != nil && cm.redis != nil
}

// GetProduct retrieves a cached product by the id or slug it was looked up
// with.
func (cm *CatalogCache) GetProduct(ctx context.Context, key string) (*models.Product, bool) {
	if !cm.enabled() {
		return nil, false
	}
	cachedData, err := cm.redis.Get(ctx, ProductCachePrefix+key).Result()
	if err != nil {
		return nil, false
	}
	var product models.Product
	if err := json.Unmarshal([]byte(cachedData), &product); err != nil {
		zap.L().Warn("Failed to unmarshal cached product", zap.Error(err))
		return nil, false
	}
	return &product, true
}

// SetProductAsync caches a single product asynchronously.
func (cm *CatalogCache) SetProductAsync(key string, product *models.Product) {
	if !cm.enabled() {
		return
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		productJSON, err := json.Marshal(product)
		if err != nil {
			zap.L().Warn("Failed to marshal product for cache", zap.Error(err), zap.String("key", key))
			return
		}
		if err := cm.redis.Set(bgCtx, ProductCachePrefix+key, productJSON, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product", zap.Error(err), zap.String("key", key))
		}
	}()
}

// GetProductList retrieves one cached catalog page.
func (cm *CatalogCache) GetProductList(ctx context.Context, key string) (*ProductListEntry, bool) {
	if !cm.enabled() {
		return nil, false
	}
	version, err := cm.getCacheVersion(ctx)
	if err != nil || version == 0 {
		return nil, false
	}

	cachedData, err := cm.redis.Get(ctx, cm.versionedKey(version, key)).Result()
	if err != nil {
		return nil, false
	}

	var entry ProductListEntry
	if err := json.Unmarshal([]byte(cachedData), &entry); err != nil {
		zap.L().Warn("Failed to unmarshal cached product list", zap.Error(err))
		return nil, false
	}
	return &entry, true
}

// SetProductListAsync caches one catalog page asynchronously.
func (cm *CatalogCache) SetProductListAsync(key string, entry *ProductListEntry) {
	if !cm.enabled() {
		return
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := cm.getCacheVersion(bgCtx)
		if err != nil || version == 0 {
			return
		}
		jsonBytes, err := json.Marshal(entry)
		if err != nil {
			zap.L().Warn("Failed to marshal product list for cache", zap.Error(err))
			return
		}
		if err := cm.redis.Set(bgCtx, cm.versionedKey(version, key), jsonBytes, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product list", zap.Error(err))
		}
	}()
}

// Invalidate drops every cached list page by bumping the version, and
// deletes the given detail keys asynchronously.
func (cm *CatalogCache) Invalidate(ctx context.Context, detailKeys ...string) {
	if !cm.enabled() {
		return
	}

	if newVersion, err := cm.redis.Incr(ctx, CacheVersionKey).Result(); err != nil {
		zap.L().Error("Failed to invalidate catalog cache", zap.Error(err))
	} else {
		zap.L().Info("Catalog cache invalidated", zap.Int64("new_version", newVersion))
	}

	if len(detailKeys) == 0 {
		return
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		keys := make([]string, 0, len(detailKeys))
		for _, k := range detailKeys {
			keys = append(keys, ProductCachePrefix+k)
		}
		if err := cm.redis.Del(bgCtx, keys...).Err(); err != nil {
			zap.L().Warn("Failed to delete product cache entries", zap.Error(err))
		}
	}()
}

func (cm *CatalogCache) versionedKey(version int64, key string) string {
	return fmt.Sprintf("%s%d:%s", ProductListCachePrefix, version, key)
}

// getCacheVersion retrieves the current cache version, initializing the
// counter on first use.
func (cm *CatalogCache) getCacheVersion(ctx context.Context) (int64, error) {
	const maxRetries = 3

	for i := 0; i < maxRetries; i++ {
		ver, err := cm.redis.Get(ctx, CacheVersionKey).Int64()
		if err == nil && ver > 0 {
			return ver, nil
		}

		if err == redis.Nil {
			if err := cm.redis.Set(ctx, CacheVersionKey, 1, 0).Err(); err == nil {
				return 1, nil
			}
		}

		if i < maxRetries-1 {
			time.Sleep(time.Millisecond * 50)
		}
	}

	return 0, fmt.Errorf("failed to get cache version after %d retries", maxRetries)
}

// ListKey builds a deterministic cache key for one catalog page.
func ListKey(filters repository.ProductFilters, sort string, limit, offset int) string {
	category := ""
	if filters.CategoryID != nil {
		category = filters.CategoryID.String()
	}
	return fmt.Sprintf("q:%s:c:%s:st:%s:s:%s:l:%d:o:%d",
		filters.Search, category, filters.Status, sort, limit, offset)
}
