package maps

import (
	"context"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"googlemaps.github.io/maps"

	"sweetspot/internal/modules/itinerary"
)

// LocationCache stores resolved stop locations by lookup key. A miss is
// (nil, false, nil).
type LocationCache interface {
	Get(ctx context.Context, key string) (*itinerary.LatLng, bool, error)
	Set(ctx context.Context, key string, loc itinerary.LatLng) error
}

// PlacesService resolves itinerary stops to coordinates and place ids.
type PlacesService struct {
	loader *Loader
	cache  LocationCache
	region string
}

// NewPlacesService creates a PlacesService. cache may be nil.
func NewPlacesService(loader *Loader, cache LocationCache, region string) *PlacesService {
	return &PlacesService{loader: loader, cache: cache, region: region}
}

// Locate finds a stop by name and address with a text search, falling back to
// geocoding the address. A stop that cannot be found returns (nil, nil).
func (s *PlacesService) Locate(ctx context.Context, stop itinerary.Stop, city string) (*itinerary.LatLng, error) {
	key := LookupKey(stop.Name, stop.Address, city)
	if s.cache != nil {
		if loc, ok, err := s.cache.Get(ctx, key); err != nil {
			ctxzap.Warn(ctx, "location cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			return loc, nil
		}
	}

	client, err := s.loader.Client(ctx)
	if err != nil {
		return nil, err
	}

	loc, err := s.textSearch(ctx, client, stop, city)
	if err != nil {
		return nil, err
	}
	if loc == nil && stop.Address != "" {
		if loc, err = s.geocode(ctx, client, stop.Address, city); err != nil {
			return nil, err
		}
	}
	if loc == nil {
		return nil, nil
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, *loc); err != nil {
			ctxzap.Warn(ctx, "location cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return loc, nil
}

func (s *PlacesService) textSearch(ctx context.Context, client *maps.Client, stop itinerary.Stop, city string) (*itinerary.LatLng, error) {
	r := &maps.TextSearchRequest{
		Query:  joinNonEmpty(stop.Name, stop.Address, city),
		Region: s.region,
	}
	resp, err := client.TextSearch(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}
	best := resp.Results[0]
	return &itinerary.LatLng{
		Lat:     best.Geometry.Location.Lat,
		Lng:     best.Geometry.Location.Lng,
		PlaceID: best.PlaceID,
	}, nil
}

func (s *PlacesService) geocode(ctx context.Context, client *maps.Client, address, city string) (*itinerary.LatLng, error) {
	results, err := client.Geocode(ctx, &maps.GeocodingRequest{
		Address: joinNonEmpty(address, city),
		Region:  s.region,
	})
	if err != nil {
		return nil, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &itinerary.LatLng{
		Lat:     results[0].Geometry.Location.Lat,
		Lng:     results[0].Geometry.Location.Lng,
		PlaceID: results[0].PlaceID,
	}, nil
}

// LookupKey normalizes a stop into a cache key.
func LookupKey(name, address, city string) string {
	return strings.ToLower(strings.Join([]string{
		strings.Join(strings.Fields(name), " "),
		strings.Join(strings.Fields(address), " "),
		strings.Join(strings.Fields(city), " "),
	}, "|"))
}

func joinNonEmpty(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}
