package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/athletiq/athlete-tracker/internal/telemetry/metrics"
)

const (
	DefaultCacheTTL = 10 * time.Minute

	insightsKeyPrefix = "athlete-tracker-insights||"
)

// Cache keeps computed per-player insights in redis so that repeated
// dashboard loads skip the full recalculation. Entries are dropped
// whenever the player's data changes.
type Cache struct {
	redisClient *redis.Client
	ttl         time.Duration
	metrics     *metrics.Manager
}

func NewCache(redisClient *redis.Client, ttl time.Duration, metricsManager *metrics.Manager) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		redisClient: redisClient,
		ttl:         ttl,
		metrics:     metricsManager,
	}
}

// Get returns the cached insights for a player, or (nil, nil) on a
// cache miss.
func (c *Cache) Get(ctx context.Context, playerID string) (*Insights, error) {
	cmd := c.redisClient.Get(ctx, insightsKeyPrefix+playerID)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			c.metrics.CounterInsightsCacheMiss.Inc()
			return nil, nil
		}
		return nil, fmt.Errorf("get cached insights: %w", err)
	}

	var insights Insights
	if err := json.Unmarshal([]byte(cmd.Val()), &insights); err != nil {
		// treat a corrupt entry as a miss, it will be overwritten
		log.Errorf("unmarshal cached insights for player %s: %s", playerID, err)
		c.metrics.CounterInsightsCacheMiss.Inc()
		return nil, nil
	}

	c.metrics.CounterInsightsCacheHit.Inc()
	return &insights, nil
}

func (c *Cache) Set(ctx context.Context, playerID string, insights *Insights) error {
	insightsJson, err := json.Marshal(insights)
	if err != nil {
		return fmt.Errorf("marshal insights: %w", err)
	}
	if err := c.redisClient.Set(ctx, insightsKeyPrefix+playerID, insightsJson, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached insights: %w", err)
	}
	return nil
}

func (c *Cache) Invalidate(ctx context.Context, playerID string) error {
	if err := c.redisClient.Del(ctx, insightsKeyPrefix+playerID).Err(); err != nil {
		return fmt.Errorf("invalidate cached insights: %w", err)
	}
	return nil
}
