// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"sweetspot/internal/ai"
	"sweetspot/internal/modules/itinerary"
	"sweetspot/internal/modules/trip"
	"sweetspot/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
	Retry bool   `json:"retry"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg, Retry: status != http.StatusBadRequest})
}

func logServed(ctx context.Context, res *service.Result) {
	ctxzap.Info(ctx, "itinerary served",
		zap.String("submission_id", res.SubmissionID),
		zap.Bool("shared_generation", res.Shared),
	)
}

func writeItineraryError(c *gin.Context, err error) {
	status, msg := userError(err)
	writeError(c, status, msg)
}

// userError maps any planning failure to one status and one message safe to
// show. Raw model output never reaches this point.
func userError(err error) (int, string) {
	switch {
	case errors.Is(err, trip.ErrBadRequest):
		return http.StatusBadRequest, "Please enter a city and a trip length of at least one day."
	case errors.Is(err, itinerary.ErrMalformedResponse):
		return http.StatusBadGateway, "Failed to generate a valid itinerary. The model returned an unexpected format."
	case errors.Is(err, itinerary.ErrUnexpectedStructure):
		return http.StatusBadGateway, "The AI returned data in an unexpected structure. Please try refining your query."
	case errors.Is(err, itinerary.ErrEmptyResponse):
		return http.StatusBadGateway, "The generated itinerary was empty or invalid. Please try adjusting your request."
	case errors.Is(err, ai.ErrRateLimited):
		return http.StatusTooManyRequests, "Too many sweet tooths at once. Please wait a moment and try again."
	case errors.Is(err, ai.ErrServiceUnavailable):
		return http.StatusServiceUnavailable, "The itinerary service is temporarily unavailable. Please try again later."
	case errors.Is(err, ai.ErrCredentialInvalid):
		return http.StatusInternalServerError, "The itinerary service is not configured correctly. Please try again later."
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "Planning took too long. Please try again."
	default:
		return http.StatusBadGateway, "There was an issue generating your dessert itinerary. Please check your connection or try again later."
	}
}
