// README: Itinerary response contract returned by the model and rendered as cards.
package itinerary

import "errors"

var (
	ErrMalformedResponse   = errors.New("malformed response")
	ErrUnexpectedStructure = errors.New("unexpected response structure")
	ErrEmptyResponse       = errors.New("empty response")
)

type Response struct {
	City              string      `json:"city"`
	SuggestedSchedule string      `json:"suggested_schedule,omitempty"`
	Itineraries       []Itinerary `json:"itineraries"`
	Citations         []Citation  `json:"citations,omitempty"`
}

type Itinerary struct {
	Theme              string `json:"theme"`
	TotalEstimatedCost string `json:"total_estimated_cost"`
	Stops              []Stop `json:"stops"`
	Image              *Image `json:"image,omitempty"`
}

type Stop struct {
	Name             string           `json:"name"`
	Address          string           `json:"address,omitempty"`
	HoursOfOperation string           `json:"hours_of_operation,omitempty"`
	Notes            string           `json:"notes"`
	Reason           string           `json:"reason"`
	Recommendations  []Recommendation `json:"recommendations"`
	MapsLink         string           `json:"maps_link,omitempty"`
	Location         *LatLng          `json:"location,omitempty"`
	WalkFromPrevious *Leg             `json:"walk_from_previous,omitempty"`
}

type Recommendation struct {
	Item        string `json:"item"`
	Description string `json:"description"`
}

// Image is a generated picture for one itinerary.
type Image struct {
	MIMEType string `json:"mime_type"`
	Data     []byte `json:"data"`
}

type LatLng struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	PlaceID string  `json:"place_id,omitempty"`
}

// Leg is the walk from the previous stop in the same itinerary.
type Leg struct {
	Duration string `json:"duration"`
	Distance string `json:"distance"`
}

// Citation is a source the model reports having used when grounded on search.
type Citation struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Contract selects which optional stop fields are required.
type Contract struct {
	// Strict requires address and hours_of_operation on every stop.
	Strict bool
}
