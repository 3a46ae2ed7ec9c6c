package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GeminiProvider implements Generator with schema-constrained JSON output.
// It cannot ground on search; use GroundedProvider for that.
type GeminiProvider struct {
	client    *genai.Client
	modelName string
	strict    bool
}

// NewGeminiProvider initializes a new Gemini client.
// strict marks address and hours as required in the response schema.
func NewGeminiProvider(ctx context.Context, apiKey, modelName string, strict bool) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiProvider{
		client:    client,
		modelName: modelName,
		strict:    strict,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

func (p *GeminiProvider) Generate(ctx context.Context, req GenerateRequest) (*Generation, error) {
	// GenerativeModel carries per-call settings, so build one per request.
	model := p.client.GenerativeModel(p.modelName)
	model.SetTemperature(req.Temperature)
	if req.Schema {
		model.ResponseMIMEType = "application/json"
		model.ResponseSchema = itinerarySchema(p.strict)
	}
	if req.Grounding {
		ctxzap.Debug(ctx, "search grounding not supported by structured provider, ignoring")
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			return nil, fmt.Errorf("%w: %v", ErrBlocked, err)
		}
		return nil, classifyError(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, ErrNoCandidates
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}

	ctxzap.Debug(ctx, "gemini generation finished",
		zap.String("model", p.modelName),
		zap.Int("response_length", text.Len()),
	)

	return &Generation{Text: text.String(), Model: p.modelName}, nil
}

func itinerarySchema(strict bool) *genai.Schema {
	str := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: desc}
	}

	stopRequired := []string{"name", "notes", "reason", "recommendations"}
	if strict {
		stopRequired = append(stopRequired, "address", "hours_of_operation")
	}

	recommendation := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"item":        str("Name of the must-try item."),
			"description": str("Why it is worth ordering."),
		},
		Required: []string{"item", "description"},
	}
	stop := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":               str("Name of the establishment."),
			"address":            str("Full street address."),
			"hours_of_operation": str("Current opening hours."),
			"notes":              str("A short practical tip."),
			"reason":             str("Why this place is exceptional."),
			"recommendations":    {Type: genai.TypeArray, Items: recommendation},
		},
		Required: stopRequired,
	}
	itin := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"theme":                str("Witty theme name."),
			"total_estimated_cost": str("Human readable cost estimate."),
			"stops":                {Type: genai.TypeArray, Items: stop},
		},
		Required: []string{"theme", "total_estimated_cost", "stops"},
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"city":               str("Destination city."),
			"suggested_schedule": str("Overall pacing suggestion."),
			"itineraries":        {Type: genai.TypeArray, Items: itin},
		},
		Required: []string{"city", "itineraries"},
	}
}
