package ai

import (
	"context"

	"sweetspot/internal/modules/itinerary"
)

// Generator produces raw model text for a prompt. Implementations return
// errors wrapping the taxonomy in errors.go.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*Generation, error)
}

// ImageGenerator produces one picture per call. Callers treat failure as
// non-fatal.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req ImageRequest) (*itinerary.Image, error)
}
