package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"carnes-boutique/logger"
	"carnes-boutique/models"
)

const (
	cachePrefix     = "catalog:"
	cacheVersionKey = cachePrefix + "version"
	DefaultCacheTTL = 10 * time.Minute
)

// CachedCatalogRepository caches catalog reads in Redis under a versioned key.
// Every write bumps catalog:version, so entries loaded before the write are never read again.
// Cache failures are logged and fall through to the wrapped repository.
type CachedCatalogRepository struct {
	next   CatalogRepositoryInterface
	client *redis.Client
	ttl    time.Duration
}

// NewCachedCatalogRepository wraps next with a Redis read cache
func NewCachedCatalogRepository(next CatalogRepositoryInterface, client *redis.Client, ttl time.Duration) *CachedCatalogRepository {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedCatalogRepository{next: next, client: client, ttl: ttl}
}

var _ CatalogRepositoryInterface = (*CachedCatalogRepository)(nil)

// NewRedisClient parses a redis:// URL and checks the connection
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Log.Info("✓ Connected to Redis", zap.String("addr", opts.Addr))
	return client, nil
}

func (c *CachedCatalogRepository) ReplaceAll(ctx context.Context, snapshot *models.CatalogSnapshot) error {
	if err := c.next.ReplaceAll(ctx, snapshot); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachedCatalogRepository) List(ctx context.Context) ([]models.CatalogItem, error) {
	return c.cachedList(ctx, "all", func() ([]models.CatalogItem, error) {
		return c.next.List(ctx)
	})
}

func (c *CachedCatalogRepository) ListByRegion(ctx context.Context, region string) ([]models.CatalogItem, error) {
	return c.cachedList(ctx, "region:"+region, func() ([]models.CatalogItem, error) {
		return c.next.ListByRegion(ctx, region)
	})
}

func (c *CachedCatalogRepository) GetByID(ctx context.Context, id string) (*models.CatalogItem, error) {
	return c.next.GetByID(ctx, id)
}

func (c *CachedCatalogRepository) SetImage(ctx context.Context, id string, imageFileID string) error {
	if err := c.next.SetImage(ctx, id, imageFileID); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachedCatalogRepository) ListSnapshots(ctx context.Context, limit int) ([]models.CatalogSnapshot, error) {
	return c.next.ListSnapshots(ctx, limit)
}

func cacheKey(version int64, name string) string {
	return fmt.Sprintf("%sv%d:%s", cachePrefix, version, name)
}

// version returns the current cache generation; a missing key is generation 0
func (c *CachedCatalogRepository) version(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (c *CachedCatalogRepository) cachedList(ctx context.Context, name string, load func() ([]models.CatalogItem, error)) ([]models.CatalogItem, error) {
	// The version is read before loading: rows loaded across a write land under the old generation.
	version, err := c.version(ctx)
	if err != nil {
		logger.Warn(ctx, "⚠️  Catalog cache unavailable", zap.String("key", cacheVersionKey), zap.Error(err))
		return load()
	}
	key := cacheKey(version, name)

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var items []models.CatalogItem
		if jsonErr := json.Unmarshal(data, &items); jsonErr == nil {
			return items, nil
		}
		logger.Warn(ctx, "⚠️  Discarding corrupt catalog cache entry", zap.String("key", key))
	case errors.Is(err, redis.Nil):
		// miss
	default:
		logger.Warn(ctx, "⚠️  Catalog cache unavailable", zap.String("key", key), zap.Error(err))
	}

	items, err := load()
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(items); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			logger.Warn(ctx, "⚠️  Failed to cache catalog", zap.String("key", key), zap.Error(err))
		}
	}
	return items, nil
}

// invalidate moves readers to a new generation; old entries expire with their TTL
func (c *CachedCatalogRepository) invalidate(ctx context.Context) {
	version, err := c.client.Incr(ctx, cacheVersionKey).Result()
	if err != nil {
		logger.Warn(ctx, "⚠️  Failed to invalidate catalog cache", zap.Error(err))
		return
	}
	logger.Info(ctx, "🧹 Catalog cache invalidated", zap.Int64("version", version))
}
