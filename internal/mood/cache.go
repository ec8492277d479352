package mood

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const versionKeyPrefix = "moods:version:"

// SeriesCache keeps aggregated series in Redis with per-owner versioning.
// Every journal write bumps the owner's version, which retires all cached
// series for that owner without touching other users.
type SeriesCache struct {
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
}

// NewSeriesCache instantiates the cache helper. A nil client disables
// caching; Fetch then always calls the loader.
func NewSeriesCache(client *redis.Client, ttl time.Duration) *SeriesCache {
	return &SeriesCache{client: client, ttl: ttl}
}

func (c *SeriesCache) version(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	key := versionKeyPrefix + ownerID.String()
	ver, err := c.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		if err := c.client.Set(ctx, key, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	if ver <= 0 {
		ver = 1
	}
	return ver, nil
}

// Fetch loads the cached series for an owner or populates it using the
// loader. Concurrent fetches for the same key collapse into one build.
func (c *SeriesCache) Fetch(ctx context.Context, ownerID uuid.UUID, loader func(context.Context) (Series, error)) (Series, error) {
	if loader == nil {
		return Series{}, errors.New("mood: cache loader required")
	}
	if c == nil || c.client == nil {
		return loader(ctx)
	}

	ver, err := c.version(ctx, ownerID)
	if err != nil {
		return Series{}, err
	}
	key := fmt.Sprintf("moods:series:%s:%d", ownerID, ver)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var cached Series
		if err := json.Unmarshal(payload, &cached); err == nil {
			return cached, nil
		}
		// Unreadable payload: fall through and rebuild.
	} else if err != redis.Nil {
		return Series{}, err
	}

	resultChan := c.group.DoChan(key, func() (interface{}, error) {
		built, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(built)
		if err != nil {
			return nil, err
		}
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			return nil, err
		}
		return built, nil
	})

	select {
	case <-ctx.Done():
		return Series{}, ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			return Series{}, res.Err
		}
		return res.Val.(Series), nil
	}
}

// Bump invalidates all cached series for one owner.
func (c *SeriesCache) Bump(ctx context.Context, ownerID uuid.UUID) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, versionKeyPrefix+ownerID.String()).Err()
}
