// README: View models and templates for the form and itinerary cards.
package view

import (
	"embed"
	"encoding/base64"
	"html/template"
	"strconv"
	"strings"

	"sweetspot/internal/modules/itinerary"
	"sweetspot/internal/modules/trip"
)

//go:embed templates/*.html
var templateFS embed.FS

// PlaceholderImage is shown when an itinerary has no generated picture.
const PlaceholderImage = "data:image/svg+xml;base64," +
	"PHN2ZyB4bWxucz0iaHR0cDovL3d3dy53My5vcmcvMjAwMC9zdmciIHZpZXdCb3g9IjAgMCAxNiA5Ij48cmVjdCB3aWR0aD0iMTYiIGhlaWdodD0iOSIgZmlsbD0iI2ZjZTdmMyIvPjx0ZXh0IHg9IjgiIHk9IjUuNSIgZm9udC1zaXplPSIzIiB0ZXh0LWFuY2hvcj0ibWlkZGxlIj7wn42wPC90ZXh0Pjwvc3ZnPg=="

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

type Card struct {
	Theme    string
	Cost     string
	ImageSrc template.URL
	HasImage bool
	Stops    []itinerary.Stop
}

// FormView pre-fills the trip form.
type FormView struct {
	City            string
	Days            string
	Budget          string
	Currency        string
	TreatFocus      string
	SpecialRequests string
	Exclusions      string
	Neighborhood    string
	PriceRange      string
	Pace            string
}

type ErrorView struct {
	Message  string
	RetryURL string
	EditURL  string
}

type Page struct {
	Form      FormView
	City      string
	Schedule  string
	Cards     []Card
	Citations []itinerary.Citation
	ShareURL  string
	EditURL   string
	Error     *ErrorView
}

func NewForm(r trip.TripRequest) FormView {
	f := FormView{
		City:            r.City,
		Currency:        r.Budget.Currency,
		TreatFocus:      strings.Join(r.TreatFocus, ", "),
		SpecialRequests: r.SpecialRequests,
		Exclusions:      r.Exclusions,
		Neighborhood:    r.Neighborhood,
		PriceRange:      r.PriceRange,
		Pace:            r.Pace,
	}
	if r.Days > 0 {
		f.Days = strconv.Itoa(r.Days)
	}
	if r.Budget.Amount > 0 {
		f.Budget = strconv.FormatInt(r.Budget.Amount, 10)
	}
	return f
}

func NewCards(resp *itinerary.Response) []Card {
	if resp == nil {
		return nil
	}
	cards := make([]Card, 0, len(resp.Itineraries))
	for _, it := range resp.Itineraries {
		cards = append(cards, Card{
			Theme:    it.Theme,
			Cost:     it.TotalEstimatedCost,
			ImageSrc: ImageSrc(it.Image),
			HasImage: it.Image != nil,
			Stops:    it.Stops,
		})
	}
	return cards
}

// ImageSrc returns a data URI for img, or the placeholder.
func ImageSrc(img *itinerary.Image) template.URL {
	if img == nil || len(img.Data) == 0 {
		return template.URL(PlaceholderImage)
	}
	mime := img.MIMEType
	if mime == "" {
		mime = "image/png"
	}
	return template.URL("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.Data))
}
