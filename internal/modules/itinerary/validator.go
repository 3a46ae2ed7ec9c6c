// README: Turns raw model text into a typed Response or a tagged failure.
package itinerary

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const fence = "```"

// Parse cleans, repairs and strictly validates raw model output. Failures wrap
// ErrEmptyResponse, ErrMalformedResponse or ErrUnexpectedStructure. Parse never
// returns a partially populated Response.
func Parse(raw string, c Contract) (*Response, error) {
	text := StripFence(raw)
	if text == "" {
		return nil, ErrEmptyResponse
	}
	// Prose around the object is dropped; a top-level array is left for the
	// decoder to reject as the wrong shape.
	if text[0] != '[' {
		if obj, ok := extractJSONObject(text); ok {
			text = obj
		}
	}
	text = ApplyKeyRenames(text)

	var w wireResponse
	if err := json.Unmarshal([]byte(text), &w); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: %s has type %s, want %s", ErrUnexpectedStructure, fieldOrRoot(typeErr.Field), typeErr.Value, typeErr.Type)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return w.toResponse(c)
}

// StripFence removes a leading ``` or ```json line and a trailing ``` line.
func StripFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, fence) {
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[i+1:]
		} else {
			s = strings.TrimPrefix(strings.TrimPrefix(s, fence+"json"), fence)
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, fence)
	return strings.TrimSpace(s)
}

// extractJSONObject returns the first balanced {...} in s that is valid JSON,
// so braces in surrounding prose are skipped. With no valid candidate it
// returns the first balanced one for the decoder to report.
func extractJSONObject(s string) (string, bool) {
	first := ""
	for offset := 0; offset < len(s); {
		start, end, ok := balancedObject(s, offset)
		if !ok {
			break
		}
		candidate := s[start:end]
		if json.Valid([]byte(candidate)) {
			return candidate, true
		}
		if first == "" {
			first = candidate
		}
		offset = start + 1
	}
	return first, first != ""
}

// balancedObject finds the first balanced {...} at or after offset. Braces
// inside JSON strings are skipped.
func balancedObject(s string, offset int) (int, int, bool) {
	start, depth := -1, 0
	inString, escaped := false, false
	for i := offset; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					return start, i + 1, true
				}
			}
		}
	}
	return 0, 0, false
}

func fieldOrRoot(f string) string {
	if f == "" {
		return "response"
	}
	return f
}

// Wire types keep every field a pointer so absence is distinguishable from "".

type wireResponse struct {
	City              *string          `json:"city"`
	SuggestedSchedule *string          `json:"suggested_schedule"`
	Itineraries       *[]wireItinerary `json:"itineraries"`
}

type wireItinerary struct {
	Theme              *string     `json:"theme"`
	TotalEstimatedCost *string     `json:"total_estimated_cost"`
	Stops              *[]wireStop `json:"stops"`
}

type wireStop struct {
	Name             *string               `json:"name"`
	Address          *string               `json:"address"`
	HoursOfOperation *string               `json:"hours_of_operation"`
	Notes            *string               `json:"notes"`
	Reason           *string               `json:"reason"`
	Recommendations  *[]wireRecommendation `json:"recommendations"`
	MapsLink         *string               `json:"maps_link"`
}

type wireRecommendation struct {
	Item        *string `json:"item"`
	Description *string `json:"description"`
}

func missing(path string) error {
	return fmt.Errorf("%w: %s is missing", ErrUnexpectedStructure, path)
}

func (w wireResponse) toResponse(c Contract) (*Response, error) {
	if w.City == nil {
		return nil, missing("city")
	}
	if w.Itineraries == nil {
		return nil, missing("itineraries")
	}
	if len(*w.Itineraries) == 0 {
		return nil, fmt.Errorf("%w: itineraries is empty", ErrUnexpectedStructure)
	}

	out := &Response{
		City:              *w.City,
		SuggestedSchedule: deref(w.SuggestedSchedule),
		Itineraries:       make([]Itinerary, 0, len(*w.Itineraries)),
	}
	for i, wi := range *w.Itineraries {
		it, err := wi.toItinerary(fmt.Sprintf("itineraries[%d]", i), c)
		if err != nil {
			return nil, err
		}
		out.Itineraries = append(out.Itineraries, it)
	}
	return out, nil
}

func (w wireItinerary) toItinerary(path string, c Contract) (Itinerary, error) {
	switch {
	case w.Theme == nil:
		return Itinerary{}, missing(path + ".theme")
	case w.TotalEstimatedCost == nil:
		return Itinerary{}, missing(path + ".total_estimated_cost")
	case w.Stops == nil:
		return Itinerary{}, missing(path + ".stops")
	case len(*w.Stops) == 0:
		return Itinerary{}, fmt.Errorf("%w: %s.stops is empty", ErrUnexpectedStructure, path)
	}

	it := Itinerary{
		Theme:              *w.Theme,
		TotalEstimatedCost: *w.TotalEstimatedCost,
		Stops:              make([]Stop, 0, len(*w.Stops)),
	}
	for j, ws := range *w.Stops {
		s, err := ws.toStop(fmt.Sprintf("%s.stops[%d]", path, j), c)
		if err != nil {
			return Itinerary{}, err
		}
		it.Stops = append(it.Stops, s)
	}
	return it, nil
}

type requiredField struct {
	name string
	v    *string
}

func (w wireStop) toStop(path string, c Contract) (Stop, error) {
	required := []requiredField{
		{"name", w.Name},
		{"notes", w.Notes},
		{"reason", w.Reason},
	}
	if c.Strict {
		required = append(required,
			requiredField{"address", w.Address},
			requiredField{"hours_of_operation", w.HoursOfOperation},
		)
	}
	for _, f := range required {
		if f.v == nil {
			return Stop{}, missing(path + "." + f.name)
		}
	}
	if w.Recommendations == nil {
		return Stop{}, missing(path + ".recommendations")
	}

	s := Stop{
		Name:             *w.Name,
		Address:          deref(w.Address),
		HoursOfOperation: deref(w.HoursOfOperation),
		Notes:            *w.Notes,
		Reason:           *w.Reason,
		MapsLink:         deref(w.MapsLink),
		Recommendations:  make([]Recommendation, 0, len(*w.Recommendations)),
	}
	for k, wr := range *w.Recommendations {
		if wr.Item == nil {
			return Stop{}, missing(fmt.Sprintf("%s.recommendations[%d].item", path, k))
		}
		s.Recommendations = append(s.Recommendations, Recommendation{
			Item:        *wr.Item,
			Description: deref(wr.Description),
		})
	}
	return s, nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
