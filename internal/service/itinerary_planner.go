// README: Orchestrates prompt, generation, validation and decoration for one submission.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"sweetspot/internal/ai"
	"sweetspot/internal/modules/itinerary"
	"sweetspot/internal/modules/trip"
	"sweetspot/internal/pkg/logger"
)

const defaultPlanTimeout = 90 * time.Second

type PlannerOptions struct {
	Grounded         bool
	Strict           bool
	ItineraryCount   int
	Temperature      float32
	ImageConcurrency int
	// Timeout bounds a generation once started; it keeps running if the
	// caller goes away.
	Timeout time.Duration
}

// Decorator adds map data to one itinerary in place.
type Decorator interface {
	Enrich(ctx context.Context, it *itinerary.Itinerary, city string)
}

// ItineraryPlanner turns a trip request into a validated, decorated itinerary.
type ItineraryPlanner struct {
	gen      ai.Generator
	img      ai.ImageGenerator
	maps     Decorator
	opts     PlannerOptions
	inflight singleflight.Group
}

// NewItineraryPlanner creates a planner. img and maps may be nil to skip
// image and map decoration.
func NewItineraryPlanner(gen ai.Generator, img ai.ImageGenerator, maps Decorator, opts PlannerOptions) *ItineraryPlanner {
	if opts.ImageConcurrency < 1 {
		opts.ImageConcurrency = 1
	}
	if opts.ItineraryCount < 1 {
		opts.ItineraryCount = ai.DefaultItineraryCount
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultPlanTimeout
	}
	return &ItineraryPlanner{gen: gen, img: img, maps: maps, opts: opts}
}

type Result struct {
	SubmissionID string
	Request      trip.TripRequest
	Itinerary    *itinerary.Response
	// Shared is set when the model output came from an identical in-flight
	// submission.
	Shared bool
}

// Plan runs one submission. Identical requests already in flight share a single
// generation; parsing and decoration run per submission, so every Result owns
// its Response. If ctx ends first Plan returns ctx.Err() and the generation
// finishes in the background for any other waiters.
func (p *ItineraryPlanner) Plan(ctx context.Context, req trip.TripRequest) (*Result, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	ctx = logger.AddFields(ctx, zap.String("submission_id", id), zap.String("city", req.City))
	ctxzap.Info(ctx, "planning itinerary", zap.Int("days", req.Days), zap.Strings("treat_focus", req.TreatFocus))

	detached := context.WithoutCancel(ctx)
	ch := p.inflight.DoChan(req.Fingerprint(), func() (any, error) {
		runCtx, cancel := context.WithTimeout(detached, p.opts.Timeout)
		defer cancel()
		return p.generate(runCtx, req)
	})

	select {
	case <-ctx.Done():
		ctxzap.Info(ctx, "submission abandoned by caller", zap.Error(ctx.Err()))
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		gen := res.Val.(*ai.Generation)
		resp, err := p.build(ctx, gen, res.Shared)
		if err != nil {
			return nil, err
		}
		return &Result{
			SubmissionID: id,
			Request:      req,
			Itinerary:    resp,
			Shared:       res.Shared,
		}, nil
	}
}

// generate is the only step shared between identical submissions. Its
// result is read-only.
func (p *ItineraryPlanner) generate(ctx context.Context, req trip.TripRequest) (*ai.Generation, error) {
	ctx = logger.WithAction(ctx, "generate")
	prompt := ai.BuildItineraryPrompt(req, ai.PromptOptions{
		Grounded:       p.opts.Grounded,
		Strict:         p.opts.Strict,
		ItineraryCount: p.opts.ItineraryCount,
	})

	start := time.Now()
	gen, err := p.gen.Generate(ctx, ai.GenerateRequest{
		Prompt:      prompt,
		Schema:      !p.opts.Grounded,
		Grounding:   p.opts.Grounded,
		Temperature: p.opts.Temperature,
	})
	if err != nil {
		ctxzap.Error(ctx, "generation failed", zap.Error(err))
		return nil, err
	}
	ctxzap.Info(ctx, "generation finished",
		zap.String("model", gen.Model),
		zap.Int("response_length", len(gen.Text)),
		zap.Duration("took", time.Since(start)),
	)
	return gen, nil
}

// build parses the shared generation into a Response owned by one submission.
func (p *ItineraryPlanner) build(ctx context.Context, gen *ai.Generation, shared bool) (*itinerary.Response, error) {
	resp, err := itinerary.Parse(gen.Text, itinerary.Contract{Strict: p.opts.Strict})
	if err != nil {
		ctxzap.Error(ctx, "itinerary response rejected",
			zap.Error(err),
			zap.String("model", gen.Model),
			zap.Bool("shared", shared),
			zap.String("raw_response", gen.Text),
		)
		return nil, err
	}
	if len(gen.Citations) > 0 {
		resp.Citations = append([]itinerary.Citation(nil), gen.Citations...)
	}

	ctxzap.Info(ctx, "itinerary generated",
		zap.String("model", gen.Model),
		zap.Bool("shared", shared),
		zap.Int("itineraries", len(resp.Itineraries)),
		zap.Int("citations", len(resp.Citations)),
	)

	p.decorate(ctx, resp)
	return resp, nil
}

// decorate attaches images and map data. Each itinerary is handled by its own
// goroutine and touches only its own fields; failures leave fields empty.
func (p *ItineraryPlanner) decorate(ctx context.Context, resp *itinerary.Response) {
	if p.img == nil && p.maps == nil {
		return
	}
	ctx = logger.WithAction(ctx, "decorate")

	var g errgroup.Group
	g.SetLimit(p.opts.ImageConcurrency)
	for i := range resp.Itineraries {
		it := &resp.Itineraries[i]
		g.Go(func() error {
			if p.maps != nil {
				p.maps.Enrich(ctx, it, resp.City)
			}
			if p.img != nil {
				it.Image = p.image(ctx, it.Theme, resp.City)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (p *ItineraryPlanner) image(ctx context.Context, theme, city string) *itinerary.Image {
	img, err := p.img.GenerateImage(ctx, ai.ImageRequest{
		Prompt:      ai.BuildImagePrompt(theme, city),
		AspectRatio: ai.DefaultAspectRatio,
	})
	if err != nil {
		ctxzap.Warn(ctx, "image generation failed, using placeholder", zap.String("theme", theme), zap.Error(err))
		return nil
	}
	return img
}
