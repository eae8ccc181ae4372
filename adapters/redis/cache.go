package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pravaah/domain/core"
	"pravaah/domain/station"
	"pravaah/ports"
)

const latestReadingTTL = 24 * time.Hour

// ReadingsCacheImpl caches the most recent reading per station so the
// nearby water bodies view does not hit Postgres on every poll.
type ReadingsCacheImpl struct {
	rdb *redis.Client
}

// NewReadingsCache creates a Redis-backed readings cache
func NewReadingsCache(rdb *redis.Client) ports.ReadingsCache {
	return &ReadingsCacheImpl{rdb: rdb}
}

func latestReadingKey(stationID core.StationID) string {
	return fmt.Sprintf("station:%s:latest", stationID)
}

func (c *ReadingsCacheImpl) SetLatest(ctx context.Context, reading *station.Reading) error {
	serialized, err := json.Marshal(reading)
	if err != nil {
		return fmt.Errorf("could not serialize reading: %w", err)
	}

	key := latestReadingKey(reading.StationID)
	if err := c.rdb.Set(ctx, key, serialized, latestReadingTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache reading for %s: %w", reading.StationID, err)
	}
	return nil
}

func (c *ReadingsCacheImpl) GetLatest(ctx context.Context, stationID core.StationID) (*station.Reading, error) {
	raw, err := c.rdb.Get(ctx, latestReadingKey(stationID)).Bytes()
	if err == redis.Nil {
		return nil, core.ErrStationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached reading for %s: %w", stationID, err)
	}

	var reading station.Reading
	if err := json.Unmarshal(raw, &reading); err != nil {
		return nil, fmt.Errorf("could not deserialize cached reading: %w", err)
	}
	return &reading, nil
}
