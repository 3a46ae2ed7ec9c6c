package maps

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	"sweetspot/internal/modules/itinerary"
)

// RouteService estimates walks between consecutive stops.
type RouteService struct {
	loader *Loader
	region string
}

func NewRouteService(loader *Loader, region string) *RouteService {
	return &RouteService{loader: loader, region: region}
}

// WalkingLeg returns the walking duration and distance from origin to destination.
func (s *RouteService) WalkingLeg(ctx context.Context, origin, destination string) (*itinerary.Leg, error) {
	client, err := s.loader.Client(ctx)
	if err != nil {
		return nil, err
	}

	r := &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        maps.TravelModeWalking,
		Region:      s.region,
	}
	routes, _, err := client.Directions(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return nil, fmt.Errorf("no route found")
	}

	leg := routes[0].Legs[0]
	return &itinerary.Leg{
		Duration: FormatWalk(leg.Duration),
		Distance: leg.Distance.HumanReadable,
	}, nil
}

// FormatWalk renders a walk rounded up to whole minutes.
func FormatWalk(d time.Duration) string {
	mins := int((d + time.Minute - 1) / time.Minute)
	if mins < 1 {
		mins = 1
	}
	return fmt.Sprintf("%d min", mins)
}
