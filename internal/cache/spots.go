package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"skitourspots/internal/model"
)

const (
	// spotCatalogKey holds the JSON-encoded full spot catalog.
	spotCatalogKey = "spots:catalog"

	// SpotCatalogTTL bounds staleness when an invalidation is lost.
	SpotCatalogTTL = 5 * time.Minute
)

// SpotCache is a read-through cache for the spot catalog. The catalog is
// read-mostly: it changes only on spot creation, which invalidates the key.
// Using an interface enables testing with fakes and alternative backends.
type SpotCache interface {
	// GetCatalog returns the cached catalog. found=false on a miss.
	GetCatalog(ctx context.Context) (spots []model.Spot, found bool, err error)

	// SetCatalog stores the catalog with a bounded TTL.
	SetCatalog(ctx context.Context, spots []model.Spot) error

	// Invalidate drops the cached catalog.
	Invalidate(ctx context.Context) error
}

// RedisSpotCache implements SpotCache on Redis.
type RedisSpotCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewSpotCache creates a SpotCache backed by Redis.
func NewSpotCache(client *redis.Client, logger *zap.Logger) SpotCache {
	return &RedisSpotCache{client: client, logger: logger}
}

func (c *RedisSpotCache) GetCatalog(ctx context.Context) ([]model.Spot, bool, error) {
	data, err := c.client.Get(ctx, spotCatalogKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get spot catalog: %w", err)
	}

	var spots []model.Spot
	if err := json.Unmarshal(data, &spots); err != nil {
		// A corrupt entry behaves like a miss; the next SetCatalog heals it.
		c.logger.Warn("discarding corrupt spot catalog cache entry", zap.Error(err))
		return nil, false, nil
	}

	return spots, true, nil
}

func (c *RedisSpotCache) SetCatalog(ctx context.Context, spots []model.Spot) error {
	data, err := json.Marshal(spots)
	if err != nil {
		return fmt.Errorf("marshal spot catalog: %w", err)
	}

	if err := c.client.Set(ctx, spotCatalogKey, data, SpotCatalogTTL).Err(); err != nil {
		return fmt.Errorf("set spot catalog: %w", err)
	}

	c.logger.Debug("spot catalog cached", zap.Int("spots", len(spots)))
	return nil
}

func (c *RedisSpotCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, spotCatalogKey).Err(); err != nil {
		return fmt.Errorf("invalidate spot catalog: %w", err)
	}
	return nil
}
