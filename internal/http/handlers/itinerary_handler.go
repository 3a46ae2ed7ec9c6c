// README: JSON API for planning itineraries and inspecting share links.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"sweetspot/internal/modules/itinerary"
	"sweetspot/internal/modules/trip"
	"sweetspot/internal/service"
)

type Planner interface {
	Plan(ctx context.Context, req trip.TripRequest) (*service.Result, error)
}

// Options shared by the page and API handlers.
type Options struct {
	Defaults trip.Defaults
	// PublicURL prefixes share links; empty yields root-relative links.
	PublicURL string
	Timeout   time.Duration
}

func (o Options) shareURL(r trip.TripRequest) string {
	return trip.ShareURL(strings.TrimSuffix(o.PublicURL, "/")+"/", r)
}

type ItineraryHandler struct {
	planner Planner
	opts    Options
}

func NewItineraryHandler(planner Planner, opts Options) *ItineraryHandler {
	return &ItineraryHandler{planner: planner, opts: opts}
}

type planResponse struct {
	SubmissionID string              `json:"submission_id"`
	ShareURL     string              `json:"share_url"`
	Request      trip.TripRequest    `json:"request"`
	Itinerary    *itinerary.Response `json:"itinerary"`
}

// Create handles POST /api/itineraries.
func (h *ItineraryHandler) Create(c *gin.Context) {
	var req trip.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := withTimeout(c.Request.Context(), h.opts.Timeout)
	defer cancel()

	res, err := h.planner.Plan(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		ctxzap.Info(ctx, "plan failed", zap.Error(err))
		writeItineraryError(c, err)
		return
	}

	logServed(ctx, res)
	writeJSON(c, http.StatusOK, planResponse{
		SubmissionID: res.SubmissionID,
		ShareURL:     h.opts.shareURL(res.Request),
		Request:      res.Request,
		Itinerary:    res.Itinerary,
	})
}

// Share handles GET /api/share and shows how a share query decodes.
func (h *ItineraryHandler) Share(c *gin.Context) {
	req, auto := trip.DecodeQuery(c.Request.URL.Query(), h.opts.Defaults)
	req = req.Normalize()
	writeJSON(c, http.StatusOK, map[string]any{
		"request":     req,
		"auto_submit": auto,
		"share_url":   h.opts.shareURL(req),
	})
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
