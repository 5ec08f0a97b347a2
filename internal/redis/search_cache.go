package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"saferoute/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

type Searcher interface {
	Search(ctx context.Context, req domain.SearchRequest) ([]domain.Place, error)
}

// SearchCache keeps place search results in Redis for a while so repeated
// lookups do not hit the public geocoder. Cache failures fall through to
// the inner searcher.
type SearchCache struct {
	inner  Searcher
	client *goredis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

func NewSearchCache(inner Searcher, r *Redis, ttl time.Duration, logger *slog.Logger) *SearchCache {
	return &SearchCache{
		inner:  inner,
		client: r.Client,
		prefix: "search:",
		ttl:    ttl,
		logger: logger,
	}
}

func (c *SearchCache) Search(ctx context.Context, req domain.SearchRequest) ([]domain.Place, error) {
	key := c.key(req)

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var places []domain.Place
		if err := json.Unmarshal(data, &places); err == nil {
			return places, nil
		}
		c.logger.Warn("search cache entry corrupt", slog.String("key", key))
	case !errors.Is(err, goredis.Nil):
		c.logger.Warn("search cache get failed", slog.String("key", key), slog.Any("error", err))
	}

	places, err := c.inner.Search(ctx, req)
	if err != nil {
		return nil, err
	}
	// Empty results are not cached so a transient miss can be retried.
	if len(places) == 0 {
		return places, nil
	}

	b, err := json.Marshal(places)
	if err != nil {
		return places, nil
	}
	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		c.logger.Warn("search cache set failed", slog.String("key", key), slog.Any("error", err))
	}
	return places, nil
}

func (c *SearchCache) key(req domain.SearchRequest) string {
	q := strings.ToLower(strings.TrimSpace(req.Query))
	if req.Bias == nil {
		return c.prefix + q
	}
	return fmt.Sprintf("%s%s|%.3f,%.3f", c.prefix, q, req.Bias.Lat, req.Bias.Lng)
}
