package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"pravaah/domain/alert"
	"pravaah/ports"
)

// AlertPublisherImpl pushes raised alerts onto a Redis channel so
// external consumers (SMS gateways, sibling dashboards) can subscribe
// without touching the database.
type AlertPublisherImpl struct {
	rdb     *redis.Client
	channel string
}

// NewAlertPublisher creates a Redis pub/sub alert publisher
func NewAlertPublisher(rdb *redis.Client, channel string) ports.AlertPublisher {
	return &AlertPublisherImpl{rdb: rdb, channel: channel}
}

func (p *AlertPublisherImpl) Publish(ctx context.Context, alerts []alert.Alert) error {
	for _, a := range alerts {
		serialized, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("could not serialize alert %s: %w", a.ID, err)
		}
		if err := p.rdb.Publish(ctx, p.channel, serialized).Err(); err != nil {
			return fmt.Errorf("failed to publish alert %s: %w", a.ID, err)
		}
	}
	return nil
}

// NewClient connects to Redis from a URL and verifies the connection.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}
