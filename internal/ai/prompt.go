// README: Prompt construction for itinerary and image generation.
package ai

import (
	"fmt"
	"strings"

	"sweetspot/internal/modules/trip"
)

const DefaultItineraryCount = 3

// PromptOptions mirrors the generation mode so the instructions match what
// the provider can enforce.
type PromptOptions struct {
	Grounded       bool
	Strict         bool
	ItineraryCount int
}

const persona = `You are a witty, well-travelled treat curator. Plan dessert-focused outings for a curious family ` +
	`of three, including an adventurous eleven-year-old. Favour places that are worth the detour: real craft, ` +
	`creative menus, no tourist traps. Write like a savvy friend sharing the inside scoop. The word "delicious" is banned.`

const groundingInstruction = `Use your search tool to confirm that every place is open, that its address and hours ` +
	`are current, and which menu items people are talking about right now.`

// BuildItineraryPrompt renders the trip parameters, the output contract and an
// example object into one instruction string. Every non-empty field of r
// appears verbatim.
func BuildItineraryPrompt(r trip.TripRequest, opts PromptOptions) string {
	count := opts.ItineraryCount
	if count <= 0 {
		count = DefaultItineraryCount
	}

	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\n\n")
	if opts.Grounded {
		b.WriteString(groundingInstruction)
		b.WriteString("\n\n")
	}

	b.WriteString("Trip details:\n")
	fmt.Fprintf(&b, "- Destination: %s\n", r.City)
	fmt.Fprintf(&b, "- Duration: %d day(s)\n", r.Days)
	if !r.Budget.IsZero() {
		fmt.Fprintf(&b, "- Budget per person: %s\n", r.Budget.String())
	}
	if r.Budget.Currency != "" {
		fmt.Fprintf(&b, "- Quote prices in: %s\n", r.Budget.Currency)
	}
	if len(r.TreatFocus) > 0 {
		fmt.Fprintf(&b, "- Favourite treats: %s\n", strings.Join(r.TreatFocus, ", "))
	}
	if r.Neighborhood != "" {
		fmt.Fprintf(&b, "- Base the outings around %s; keep stops within walking distance.\n", r.Neighborhood)
	}
	if r.PriceRange != "" {
		fmt.Fprintf(&b, "- Price preference: %s\n", r.PriceRange)
	}
	if r.Pace != "" {
		fmt.Fprintf(&b, "- Pace: %s\n", r.Pace)
	}
	fmt.Fprintf(&b, "- Special requests: %s\n", orNone(r.SpecialRequests))
	fmt.Fprintf(&b, "- Avoid: %s\n", orNone(r.Exclusions))

	b.WriteString("\nTask:\n")
	fmt.Fprintf(&b, "Create exactly %d distinct themed itineraries. For each one:\n", count)
	b.WriteString(`1. "theme": a short, witty theme name.
2. "total_estimated_cost": a human-readable estimate such as "$40-60 per person".
3. "stops": 2-4 stops per day. Each stop has "name", "notes" (a practical, funny tip), "reason" ` +
		`(why it is exceptional, be specific) and "recommendations" (1-2 entries of "item" and "description").
`)
	if opts.Strict {
		b.WriteString(`Every stop MUST include the full street "address" and current "hours_of_operation". This is non-negotiable.
`)
	} else {
		b.WriteString(`Include "address" and "hours_of_operation" for each stop when you know them.
`)
	}
	b.WriteString(`Also give a top-level "suggested_schedule" describing the pace of the whole trip.

Output: a single JSON object matching the example below, using exactly these keys. ` +
		`No text or markdown before or after the object.

`)
	b.WriteString(exampleObject(r.City))
	return b.String()
}

// BuildImagePrompt describes one itinerary picture keyed by theme and city.
func BuildImagePrompt(theme, city string) string {
	return fmt.Sprintf("A vibrant, appetising editorial photo for a dessert tour called %q in %s. "+
		"Close-up of signature pastries and sweets on a cafe table, warm natural light, no text, no people.", theme, city)
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func exampleObject(city string) string {
	return fmt.Sprintf(`{
  "city": %q,
  "suggested_schedule": "Two stops before lunch, one after. Stretchy trousers advised.",
  "itineraries": [
    {
      "theme": "Theme name",
      "total_estimated_cost": "Estimated cost",
      "stops": [
        {
          "name": "Stop name",
          "address": "Full street address",
          "hours_of_operation": "Opening hours",
          "notes": "Practical tip",
          "reason": "Why it is worth the detour",
          "recommendations": [
            { "item": "Must-try item", "description": "Why to order it" }
          ]
        }
      ]
    }
  ]
}
`, city)
}
