package ai

import "sweetspot/internal/modules/itinerary"

// GenerateRequest is one call to the text model.
type GenerateRequest struct {
	Prompt string

	// Schema asks the provider to constrain output to the itinerary contract
	// when it supports structured output.
	Schema bool

	// Grounding enables web search grounding when the provider supports it.
	Grounding bool

	Temperature float32
}

// Generation is the unparsed model output plus any grounding sources.
type Generation struct {
	Text      string
	Citations []itinerary.Citation
	Model     string
}

type ImageRequest struct {
	Prompt      string
	AspectRatio string
}

const DefaultAspectRatio = "16:9"
