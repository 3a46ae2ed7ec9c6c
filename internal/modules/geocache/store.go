// README: Location cache backed by Redis so instances share lookups.
package geocache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"sweetspot/internal/modules/itinerary"
)

const keyPrefix = "geocache:stop:%s"

type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(redis *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{redis: redis, ttl: ttl}
}

func (s *Store) Get(ctx context.Context, key string) (*itinerary.LatLng, bool, error) {
	val, err := s.redis.Get(ctx, redisKey(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var loc itinerary.LatLng
	if err := json.Unmarshal(val, &loc); err != nil {
		return nil, false, fmt.Errorf("decode cached location: %w", err)
	}
	return &loc, true, nil
}

func (s *Store) Set(ctx context.Context, key string, loc itinerary.LatLng) error {
	val, err := json.Marshal(loc)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, redisKey(key), val, s.ttl).Err()
}

func redisKey(key string) string {
	return fmt.Sprintf(keyPrefix, key)
}
