// README: Server-rendered form and results pages.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"sweetspot/internal/modules/trip"
	"sweetspot/internal/view"
)

const pageTemplate = "index.html"

type PageHandler struct {
	planner Planner
	opts    Options
}

func NewPageHandler(planner Planner, opts Options) *PageHandler {
	return &PageHandler{planner: planner, opts: opts}
}

// Index handles GET /. A share link carrying a city is planned straight away
// unless edit is set, which only pre-fills the form.
func (h *PageHandler) Index(c *gin.Context) {
	q := c.Request.URL.Query()
	req, auto := trip.DecodeQuery(q, h.opts.Defaults)
	if q.Has("edit") || !auto {
		c.HTML(http.StatusOK, pageTemplate, view.Page{Form: view.NewForm(req)})
		return
	}
	h.plan(c, req)
}

// Submit handles POST /itineraries from the form.
func (h *PageHandler) Submit(c *gin.Context) {
	var req trip.TripRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, pageTemplate, view.Page{
			Form:  view.NewForm(h.opts.Defaults.Request()),
			Error: &view.ErrorView{Message: "Some fields could not be read. Please check the form and try again."},
		})
		return
	}
	h.plan(c, req)
}

func (h *PageHandler) plan(c *gin.Context, req trip.TripRequest) {
	ctx, cancel := withTimeout(c.Request.Context(), h.opts.Timeout)
	defer cancel()

	res, err := h.planner.Plan(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		ctxzap.Info(ctx, "plan failed", zap.Error(err))
		status, msg := userError(err)
		norm := req.Normalize()
		ev := &view.ErrorView{Message: msg, EditURL: editURL(h.opts.shareURL(norm))}
		if status != http.StatusBadRequest {
			ev.RetryURL = h.opts.shareURL(norm)
		}
		c.HTML(status, pageTemplate, view.Page{Form: view.NewForm(norm), Error: ev})
		return
	}

	logServed(ctx, res)
	share := h.opts.shareURL(res.Request)
	c.HTML(http.StatusOK, pageTemplate, view.Page{
		Form:      view.NewForm(res.Request),
		City:      res.Itinerary.City,
		Schedule:  res.Itinerary.SuggestedSchedule,
		Cards:     view.NewCards(res.Itinerary),
		Citations: res.Itinerary.Citations,
		ShareURL:  share,
		EditURL:   editURL(share),
	})
}

func editURL(share string) string {
	if strings.Contains(share, "?") {
		return share + "&edit=1"
	}
	return share + "?edit=1"
}
