// README: Google Maps search links for itinerary stops.
package maps

import (
	"net/url"
	"strings"
)

const searchBase = "https://www.google.com/maps/search/?api=1"

// SearchLink builds a Maps URL that opens the place search for the stop.
// placeID pins the result when known.
func SearchLink(placeID string, parts ...string) string {
	var terms []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			terms = append(terms, p)
		}
	}
	if len(terms) == 0 {
		return ""
	}
	q := url.Values{}
	q.Set("query", strings.Join(terms, ", "))
	if placeID != "" {
		q.Set("query_place_id", placeID)
	}
	return searchBase + "&" + q.Encode()
}
