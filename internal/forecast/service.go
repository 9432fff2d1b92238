package forecast

import (
	"context"
	"fmt"
	"log"
)

// Service is the cache-through hourly forecast fetcher.
type Service struct {
	provider Provider
	cache    *Cache
}

func NewService(provider Provider, cache *Cache) *Service {
	return &Service{provider: provider, cache: cache}
}

// Hourly returns the raw forecast for the coordinate, serving from the TTL
// cache when a fresh entry exists.
func (s *Service) Hourly(ctx context.Context, lat, lng float64, hours int) (Payload, error) {
	if hours <= 0 {
		hours = DefaultHours
	}
	key := cacheKey(lat, lng, hours)

	if payload, ok := s.cache.Get(key); ok {
		return payload, nil
	}

	payload, err := s.provider.Hourly(ctx, lat, lng, hours)
	if err != nil {
		log.Printf("forecast: %s fetch failed for %s: %v", s.provider.Name(), key, err)
		return nil, err
	}

	s.cache.Put(key, payload)
	return payload, nil
}

// cacheKey rounds coordinates to ~11m so tiny GPS jitter between refreshes
// still hits the cache.
func cacheKey(lat, lng float64, hours int) string {
	return fmt.Sprintf("%.4f:%.4f:%d", lat, lng, hours)
}
