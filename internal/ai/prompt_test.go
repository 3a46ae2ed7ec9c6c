package ai

import (
	"strconv"
	"strings"
	"testing"

	"sweetspot/internal/modules/trip"
	"sweetspot/internal/types"
)

func TestBuildItineraryPromptContainsFields(t *testing.T) {
	tests := []struct {
		name string
		req  trip.TripRequest
	}{
		{
			name: "full",
			req: trip.TripRequest{
				City:            "Lisbon",
				Days:            4,
				Budget:          types.Money{Amount: 75, Currency: "EUR"},
				TreatFocus:      []string{"pastel de nata", "gelato"},
				SpecialRequests: "one of us is vegan",
				Exclusions:      "no marzipan",
				Neighborhood:    "Alfama",
				PriceRange:      "mid-range",
				Pace:            "leisurely",
			},
		},
		{
			name: "minimal",
			req:  trip.TripRequest{City: "Osaka", Days: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, opts := range []PromptOptions{{}, {Grounded: true, Strict: true, ItineraryCount: 2}} {
				p := BuildItineraryPrompt(tt.req, opts)
				for _, want := range fieldValues(tt.req) {
					if !strings.Contains(p, want) {
						t.Errorf("prompt missing %q (opts %+v)", want, opts)
					}
				}
			}
		})
	}
}

func fieldValues(r trip.TripRequest) []string {
	vals := []string{r.City, strconv.Itoa(r.Days), r.SpecialRequests, r.Exclusions, r.Neighborhood, r.PriceRange, r.Pace, r.Budget.Currency}
	if r.Budget.Amount != 0 {
		vals = append(vals, strconv.FormatInt(r.Budget.Amount, 10))
	}
	vals = append(vals, r.TreatFocus...)
	out := vals[:0]
	for _, v := range vals {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func TestBuildItineraryPromptOptions(t *testing.T) {
	req := trip.TripRequest{City: "Vienna", Days: 2}

	p := BuildItineraryPrompt(req, PromptOptions{})
	if !strings.Contains(p, "exactly 3 ") {
		t.Error("default itinerary count should be 3")
	}
	if strings.Contains(p, "search tool") {
		t.Error("ungrounded prompt should not mention the search tool")
	}
	if strings.Contains(p, "non-negotiable") {
		t.Error("lenient prompt should not demand address and hours")
	}

	p = BuildItineraryPrompt(req, PromptOptions{Grounded: true, Strict: true, ItineraryCount: 5})
	for _, want := range []string{"exactly 5 ", "search tool", "non-negotiable", `"hours_of_operation"`} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildItineraryPromptDeterministic(t *testing.T) {
	req := trip.TripRequest{City: "Vienna", Days: 2, TreatFocus: []string{"strudel"}}
	if BuildItineraryPrompt(req, PromptOptions{}) != BuildItineraryPrompt(req, PromptOptions{}) {
		t.Error("prompt must be deterministic")
	}
}

func TestBuildImagePrompt(t *testing.T) {
	p := BuildImagePrompt("Frozen Assets", "Reykjavik")
	if !strings.Contains(p, "Frozen Assets") || !strings.Contains(p, "Reykjavik") {
		t.Errorf("image prompt missing theme or city: %s", p)
	}
}
