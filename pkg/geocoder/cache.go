package geocoder

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bootcamp-directory/pkg/helpers"
)

// Cached is a read-through redis cache in front of another Geocoder.
// Redis errors degrade to a direct lookup.
type Cached struct {
	Next   Geocoder
	Redis  *redis.Client
	TTL    time.Duration
	Logger *logrus.Logger
}

func NewCached(next Geocoder, rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *Cached {
	return &Cached{Next: next, Redis: rdb, TTL: ttl, Logger: logger}
}

func cacheKey(zipcode string) string {
	return "geocode:zip:" + strings.ToLower(strings.TrimSpace(zipcode))
}

func (c *Cached) Geocode(ctx context.Context, zipcode string) (Location, error) {
	if c.Redis == nil {
		return c.Next.Geocode(ctx, zipcode)
	}
	key := cacheKey(zipcode)
	var loc Location
	found, err := helpers.RedisGetJSON(ctx, c.Redis, key, &loc)
	if err != nil && c.Logger != nil {
		c.Logger.WithError(err).WithField("key", key).Warn("geocode cache read failed")
	}
	if found {
		return loc, nil
	}
	loc, err = c.Next.Geocode(ctx, zipcode)
	if err != nil {
		return Location{}, err
	}
	if err := helpers.RedisSetJSON(ctx, c.Redis, key, loc, c.TTL); err != nil && c.Logger != nil {
		c.Logger.WithError(err).WithField("key", key).Warn("geocode cache write failed")
	}
	return loc, nil
}
