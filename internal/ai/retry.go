package ai

import (
	"context"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"sweetspot/internal/modules/itinerary"
	pkgretry "sweetspot/internal/pkg/retry"
)

// Retrying retries transient collaborator failures (rate limits, outages,
// network) with backoff. Everything else is returned after the first attempt.
type Retrying struct {
	gen  Generator
	img  ImageGenerator
	opts []retry.Option
}

// NewRetrying wraps gen and img; img may be nil.
func NewRetrying(gen Generator, img ImageGenerator, cfg *pkgretry.RetryConfig) *Retrying {
	if cfg == nil {
		cfg = pkgretry.DefaultRetryConfig()
	}
	return &Retrying{gen: gen, img: img, opts: cfg.ToRetryOptions()}
}

func (r *Retrying) Generate(ctx context.Context, req GenerateRequest) (*Generation, error) {
	return retry.DoWithData(func() (*Generation, error) {
		return r.gen.Generate(ctx, req)
	}, r.options(ctx, "generate")...)
}

func (r *Retrying) GenerateImage(ctx context.Context, req ImageRequest) (*itinerary.Image, error) {
	if r.img == nil {
		return nil, ErrImagesDisabled
	}
	return retry.DoWithData(func() (*itinerary.Image, error) {
		return r.img.GenerateImage(ctx, req)
	}, r.options(ctx, "generate_image")...)
}

func (r *Retrying) options(ctx context.Context, op string) []retry.Option {
	return append(append([]retry.Option{}, r.opts...),
		retry.Context(ctx),
		retry.RetryIf(Retryable),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			ctxzap.Warn(ctx, "retrying model call",
				zap.String("op", op),
				zap.Uint("attempt", n+1),
				zap.Error(err),
			)
		}),
	)
}
