package ai

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"sweetspot/internal/modules/itinerary"
)

// 1x1 transparent PNG.
const mockPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

// MockProvider returns a fixed itinerary without calling any API. The body
// is fenced and uses a drifted key so the repair path runs in local setups.
type MockProvider struct {
	City string
}

func NewMockProvider() *MockProvider {
	return &MockProvider{City: "Mock City"}
}

func (m *MockProvider) Generate(ctx context.Context, req GenerateRequest) (*Generation, error) {
	ctxzap.Info(ctx, "mock generation", zap.Int("prompt_length", len(req.Prompt)))
	body := fmt.Sprintf("```json\n"+`{
  "city": %q,
  "suggested_schedule": "Two stops a day, pace yourselves.",
  "itineraries": [
    {
      "theme_name": "The Sugar-High Scramble",
      "total_estimated_cost": "$30-45 per person",
      "stops": [
        {
          "name": "Crumb & Co.",
          "address": "1 Baker Street",
          "hours_of_operation": "8am-6pm",
          "notes": "Go early, the cinnamon buns vanish by ten.",
          "reason": "Laminated dough with structural engineering credentials.",
          "recommendations": [{"item": "Cinnamon bun", "description": "A spiral of regret-free decisions."}]
        }
      ]
    },
    {
      "theme": "Frozen Assets",
      "total_estimated_cost": "$20 per person",
      "stops": [
        {
          "name": "Polar Scoops",
          "address": "22 Harbour Road",
          "hours_of_operation": "12pm-10pm",
          "notes": "Ask for the off-menu flavour.",
          "reason": "Churned in small batches every morning.",
          "recommendations": [{"item": "Salted caramel", "description": "Salty, sweet, slightly smug."}]
        }
      ]
    }
  ]
}`+"\n```", m.City)
	var citations []itinerary.Citation
	if req.Grounding {
		citations = []itinerary.Citation{{URI: "https://example.com/sweets", Title: "Mock source"}}
	}
	return &Generation{Text: body, Citations: citations, Model: "mock"}, nil
}

func (m *MockProvider) GenerateImage(ctx context.Context, req ImageRequest) (*itinerary.Image, error) {
	data, err := base64.StdEncoding.DecodeString(mockPNG)
	if err != nil {
		return nil, err
	}
	return &itinerary.Image{MIMEType: "image/png", Data: data}, nil
}
