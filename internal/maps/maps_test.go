package maps

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"sweetspot/internal/modules/itinerary"
)

func TestSearchLink(t *testing.T) {
	tests := []struct {
		name    string
		placeID string
		parts   []string
		query   string
	}{
		{"name and city", "", []string{"Café Sacher", "", "Vienna"}, "Café Sacher, Vienna"},
		{"with place id", "ChIJ123", []string{"Giolitti", "Via degli Uffici del Vicario 40", "Rome"}, "Giolitti, Via degli Uffici del Vicario 40, Rome"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link := SearchLink(tt.placeID, tt.parts...)
			u, err := url.Parse(link)
			if err != nil {
				t.Fatalf("invalid link %q: %v", link, err)
			}
			q := u.Query()
			if q.Get("api") != "1" {
				t.Errorf("missing api=1 in %s", link)
			}
			if q.Get("query") != tt.query {
				t.Errorf("query = %q, want %q", q.Get("query"), tt.query)
			}
			if q.Get("query_place_id") != tt.placeID {
				t.Errorf("place id = %q, want %q", q.Get("query_place_id"), tt.placeID)
			}
		})
	}
	if SearchLink("", " ", "") != "" {
		t.Error("expected empty link for empty query")
	}
}

func TestLookupKeyNormalizes(t *testing.T) {
	a := LookupKey("Crumb  & Co.", " 1 Baker St ", "London")
	b := LookupKey("crumb & co.", "1 baker st", "LONDON")
	if a != b {
		t.Errorf("%q != %q", a, b)
	}
}

func TestFormatWalk(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "1 min"},
		{0, "1 min"},
		{5 * time.Minute, "5 min"},
		{5*time.Minute + time.Second, "6 min"},
	}
	for _, tt := range tests {
		if got := FormatWalk(tt.d); got != tt.want {
			t.Errorf("FormatWalk(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestLoaderWithoutKey(t *testing.T) {
	l := NewLoader("")
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Client(context.Background()); !errors.Is(err, ErrNoAPIKey) {
				t.Errorf("expected ErrNoAPIKey, got %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestLoaderCreatesClientOnce(t *testing.T) {
	l := NewLoader("AIza-test-key")
	c1, err := l.Client(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c2, _ := l.Client(context.Background())
	if c1 != c2 {
		t.Error("expected the same client instance")
	}
}

type fakeLocator struct {
	locs map[string]*itinerary.LatLng
	err  error
}

func (f *fakeLocator) Locate(_ context.Context, stop itinerary.Stop, _ string) (*itinerary.LatLng, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.locs[stop.Name], nil
}

type fakeRouter struct {
	calls []string
}

func (f *fakeRouter) WalkingLeg(_ context.Context, origin, destination string) (*itinerary.Leg, error) {
	f.calls = append(f.calls, origin+" -> "+destination)
	return &itinerary.Leg{Duration: "4 min", Distance: "0.3 km"}, nil
}

func TestEnricher(t *testing.T) {
	it := &itinerary.Itinerary{Stops: []itinerary.Stop{
		{Name: "A", Address: "1 Main St"},
		{Name: "B"},
	}}
	loc := &fakeLocator{locs: map[string]*itinerary.LatLng{"A": {Lat: 1, Lng: 2, PlaceID: "pA"}}}
	router := &fakeRouter{}

	NewEnricher(loc, router).Enrich(context.Background(), it, "Paris")

	a, b := it.Stops[0], it.Stops[1]
	if a.Location == nil || a.Location.PlaceID != "pA" {
		t.Fatalf("stop A location not set: %+v", a.Location)
	}
	if u, _ := url.Parse(a.MapsLink); u.Query().Get("query_place_id") != "pA" {
		t.Errorf("stop A link should carry the place id: %s", a.MapsLink)
	}
	if b.Location != nil {
		t.Error("stop B should stay unlocated")
	}
	if b.MapsLink == "" {
		t.Error("stop B should still get a search link")
	}
	if a.WalkFromPrevious != nil || b.WalkFromPrevious == nil {
		t.Errorf("only the second stop gets a walking leg: %+v %+v", a.WalkFromPrevious, b.WalkFromPrevious)
	}
	if len(router.calls) != 1 || router.calls[0] != "place_id:pA -> B, Paris" {
		t.Errorf("router calls = %v", router.calls)
	}
}

func TestEnricherToleratesLookupFailure(t *testing.T) {
	it := &itinerary.Itinerary{Stops: []itinerary.Stop{{Name: "A", MapsLink: "https://example.com/a"}}}
	NewEnricher(&fakeLocator{err: errors.New("quota")}, nil).Enrich(context.Background(), it, "Paris")

	if it.Stops[0].MapsLink != "https://example.com/a" {
		t.Errorf("existing link should be kept, got %s", it.Stops[0].MapsLink)
	}
	if it.Stops[0].Location != nil {
		t.Error("location should stay empty on failure")
	}
}
