// README: Trip request submitted from the form, JSON API or a share link.
package trip

import (
	"errors"
	"fmt"
	"strings"

	"sweetspot/internal/types"
)

var (
	ErrBadRequest = errors.New("bad request")
)

// TripRequest is immutable once handed to the planner; it is passed by value.
type TripRequest struct {
	City            string      `json:"city" form:"city"`
	Days            int         `json:"days" form:"days"`
	Budget          types.Money `json:"budget"`
	TreatFocus      []string    `json:"treat_focus,omitempty" form:"treat_focus"`
	SpecialRequests string      `json:"special_requests,omitempty" form:"special_requests"`
	Exclusions      string      `json:"exclusions,omitempty" form:"exclusions"`
	Neighborhood    string      `json:"neighborhood,omitempty" form:"neighborhood"`
	PriceRange      string      `json:"price_range,omitempty" form:"price_range"`
	Pace            string      `json:"pace,omitempty" form:"pace"`
}

// Defaults holds the values a fresh form starts with.
type Defaults struct {
	Days     int
	Currency string
}

func (d Defaults) Request() TripRequest {
	return TripRequest{
		Days:   d.Days,
		Budget: types.Money{Currency: d.Currency},
	}
}

// Normalize trims free text, uppercases the currency and splits comma
// separated focus tags so every tag is a single non-empty entry.
func (r TripRequest) Normalize() TripRequest {
	out := r
	out.City = strings.TrimSpace(r.City)
	out.SpecialRequests = strings.TrimSpace(r.SpecialRequests)
	out.Exclusions = strings.TrimSpace(r.Exclusions)
	out.Neighborhood = strings.TrimSpace(r.Neighborhood)
	out.PriceRange = strings.TrimSpace(r.PriceRange)
	out.Pace = strings.TrimSpace(r.Pace)
	out.Budget.Currency = strings.ToUpper(strings.TrimSpace(r.Budget.Currency))
	out.TreatFocus = splitTags(r.TreatFocus)
	return out
}

func (r TripRequest) Validate() error {
	if r.City == "" {
		return fmt.Errorf("%w: city is required", ErrBadRequest)
	}
	if r.Days < 1 {
		return fmt.Errorf("%w: days must be at least 1", ErrBadRequest)
	}
	if r.Budget.Amount < 0 {
		return fmt.Errorf("%w: budget must not be negative", ErrBadRequest)
	}
	return nil
}

// Fingerprint identifies requests that would produce the same prompt.
func (r TripRequest) Fingerprint() string {
	return EncodeQuery(r).Encode()
}

func splitTags(in []string) []string {
	var out []string
	for _, raw := range in {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				out = append(out, tag)
			}
		}
	}
	return out
}
