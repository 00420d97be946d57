package places

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"safenav_gateway/internal/geo"
	"safenav_gateway/platform/logger"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "suggest:"

// SuggestionCache is a short-TTL Redis cache for geocoder suggestion
// lists. It only ever caches successful non-empty remote results, so the
// catalog fallback path is never frozen in. All cache errors are
// absorbed; a broken cache degrades to a pass-through.
type SuggestionCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

// NewSuggestionCache creates a suggestion cache against the given Redis
// address.
func NewSuggestionCache(addr string, ttl time.Duration, log *logger.Logger) *SuggestionCache {
	return &SuggestionCache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: ttl,
		log: log,
	}
}

// Get returns the cached candidate list for the query, if present.
func (c *SuggestionCache) Get(ctx context.Context, query string) ([]geo.PlaceCandidate, bool) {
	raw, err := c.rdb.Get(ctx, cacheKey(query)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Debug("suggestion cache read failed", "error", err)
		}
		return nil, false
	}

	var places []geo.PlaceCandidate
	if err := json.Unmarshal(raw, &places); err != nil {
		c.log.Debug("suggestion cache entry corrupt", "error", err)
		return nil, false
	}
	return places, true
}

// Set stores the candidate list for the query with the configured TTL.
func (c *SuggestionCache) Set(ctx context.Context, query string, places []geo.PlaceCandidate) {
	raw, err := json.Marshal(places)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(query), raw, c.ttl).Err(); err != nil {
		c.log.Debug("suggestion cache write failed", "error", err)
	}
}

// Close releases the underlying Redis connection.
func (c *SuggestionCache) Close() error {
	return c.rdb.Close()
}

func cacheKey(query string) string {
	return cacheKeyPrefix + strings.ToLower(strings.TrimSpace(query))
}
