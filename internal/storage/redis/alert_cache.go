package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/KartikeAnuj/Disaster-Management/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

// AlertCache holds the active public alerts for the near-location hot path.
// A cache miss returns (nil, nil); callers fall back to the store.
type AlertCache struct {
	client *goredis.Client
	key    string
}

func NewAlertCache(r *Redis) *AlertCache {
	return &AlertCache{
		client: r.Client,
		key:    "alerts:active",
	}
}

func (c *AlertCache) GetActive(ctx context.Context) ([]domain.CachedAlert, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var alerts []domain.CachedAlert
	if err := json.Unmarshal(data, &alerts); err != nil {
		return nil, err
	}

	return alerts, nil
}

func (c *AlertCache) SetActive(ctx context.Context, alerts []domain.CachedAlert, ttl time.Duration) error {
	b, err := json.Marshal(alerts)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key, b, ttl).Err()
}

func (c *AlertCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}
