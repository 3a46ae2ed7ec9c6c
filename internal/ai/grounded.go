package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"sweetspot/internal/modules/itinerary"
)

// GroundedProvider uses the Gen AI SDK, which supports Google Search grounding
// and Imagen. The API rejects a response schema alongside tools, so grounded
// output is free text and relies on the validator to extract the JSON.
type GroundedProvider struct {
	client     *genai.Client
	modelName  string
	imageModel string
}

func NewGroundedProvider(ctx context.Context, apiKey, modelName, imageModel string) (*GroundedProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GroundedProvider{
		client:     client,
		modelName:  modelName,
		imageModel: imageModel,
	}, nil
}

func (p *GroundedProvider) Generate(ctx context.Context, req GenerateRequest) (*Generation, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	}
	if req.Grounding {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	} else if req.Schema {
		cfg.ResponseMIMEType = "application/json"
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.modelName, genai.Text(req.Prompt), cfg)
	if err != nil {
		return nil, classifyGenAIError(err)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("%w: %s", ErrBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, ErrNoCandidates
	}

	cand := resp.Candidates[0]
	var text strings.Builder
	for _, part := range cand.Content.Parts {
		if part != nil && !part.Thought {
			text.WriteString(part.Text)
		}
	}

	citations := groundingCitations(cand.GroundingMetadata)
	ctxzap.Debug(ctx, "grounded generation finished",
		zap.String("model", p.modelName),
		zap.Int("response_length", text.Len()),
		zap.Int("citations", len(citations)),
	)

	return &Generation{Text: text.String(), Citations: citations, Model: p.modelName}, nil
}

func (p *GroundedProvider) GenerateImage(ctx context.Context, req ImageRequest) (*itinerary.Image, error) {
	aspect := req.AspectRatio
	if aspect == "" {
		aspect = DefaultAspectRatio
	}
	resp, err := p.client.Models.GenerateImages(ctx, p.imageModel, req.Prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    aspect,
		OutputMIMEType: "image/jpeg",
	})
	if err != nil {
		return nil, classifyGenAIError(err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil || len(resp.GeneratedImages[0].Image.ImageBytes) == 0 {
		return nil, ErrNoCandidates
	}

	img := resp.GeneratedImages[0].Image
	mime := img.MIMEType
	if mime == "" {
		mime = "image/jpeg"
	}
	return &itinerary.Image{MIMEType: mime, Data: img.ImageBytes}, nil
}

func groundingCitations(md *genai.GroundingMetadata) []itinerary.Citation {
	if md == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(md.GroundingChunks))
	var out []itinerary.Citation
	for _, chunk := range md.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		if _, dup := seen[chunk.Web.URI]; dup {
			continue
		}
		seen[chunk.Web.URI] = struct{}{}
		out = append(out, itinerary.Citation{URI: chunk.Web.URI, Title: chunk.Web.Title})
	}
	return out
}

// classifyGenAIError handles the SDK's HTTP error type before falling back to
// the shared classification.
func classifyGenAIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return classifyHTTP(apiErr.Code, apiErr.Message, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return classifyHTTP(apiErrPtr.Code, apiErrPtr.Message, err)
	}
	return classifyError(err)
}
