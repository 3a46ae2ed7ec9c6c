// README: Adds map links, coordinates and walking legs to validated itineraries.
package maps

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"sweetspot/internal/modules/itinerary"
)

type Locator interface {
	Locate(ctx context.Context, stop itinerary.Stop, city string) (*itinerary.LatLng, error)
}

type Router interface {
	WalkingLeg(ctx context.Context, origin, destination string) (*itinerary.Leg, error)
}

// Enricher decorates stops in place. Lookups are best effort: a failed lookup
// is logged and the stop keeps its plain search link.
type Enricher struct {
	locator Locator
	router  Router
}

// NewEnricher accepts nil collaborators; links are always produced.
func NewEnricher(locator Locator, router Router) *Enricher {
	return &Enricher{locator: locator, router: router}
}

// Enrich mutates the stops of one itinerary. It is safe to run concurrently
// for different itineraries of the same response.
func (e *Enricher) Enrich(ctx context.Context, it *itinerary.Itinerary, city string) {
	for i := range it.Stops {
		stop := &it.Stops[i]
		if e.locator != nil {
			loc, err := e.locator.Locate(ctx, *stop, city)
			if err != nil {
				ctxzap.Debug(ctx, "stop lookup failed", zap.String("stop", stop.Name), zap.Error(err))
			} else if loc != nil {
				stop.Location = loc
			}
		}

		placeID := ""
		if stop.Location != nil {
			placeID = stop.Location.PlaceID
		}
		if stop.MapsLink == "" || placeID != "" {
			stop.MapsLink = SearchLink(placeID, stop.Name, stop.Address, city)
		}

		if e.router != nil && i > 0 {
			leg, err := e.router.WalkingLeg(ctx, routeEndpoint(it.Stops[i-1], city), routeEndpoint(*stop, city))
			if err != nil {
				ctxzap.Debug(ctx, "walking leg failed", zap.String("stop", stop.Name), zap.Error(err))
				continue
			}
			stop.WalkFromPrevious = leg
		}
	}
}

func routeEndpoint(s itinerary.Stop, city string) string {
	if s.Location != nil && s.Location.PlaceID != "" {
		return "place_id:" + s.Location.PlaceID
	}
	return joinNonEmpty(s.Name, s.Address, city)
}
