package geocache

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"sweetspot/internal/modules/itinerary"
)

// MemoryStore keeps locations in process. Used when no Redis is configured.
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{cache: cache.New(ttl, ttl/4)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (*itinerary.LatLng, bool, error) {
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, false, nil
	}
	loc := v.(itinerary.LatLng)
	return &loc, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, loc itinerary.LatLng) error {
	s.cache.Set(key, loc, cache.DefaultExpiration)
	return nil
}
