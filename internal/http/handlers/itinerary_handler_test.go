// README: Handler tests against a stub planner.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"sweetspot/internal/ai"
	"sweetspot/internal/http/handlers"
	"sweetspot/internal/modules/itinerary"
	"sweetspot/internal/modules/trip"
	"sweetspot/internal/service"
	"sweetspot/internal/view"
)

// stubPlanner is a test double for handlers.Planner.
type stubPlanner struct {
	err   error
	calls int
	last  trip.TripRequest
}

func (s *stubPlanner) Plan(_ context.Context, req trip.TripRequest) (*service.Result, error) {
	s.calls++
	req = req.Normalize()
	s.last = req
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	return &service.Result{
		SubmissionID: "sub-1",
		Request:      req,
		Itinerary: &itinerary.Response{
			City:              req.City,
			SuggestedSchedule: "Pace yourselves.",
			Itineraries: []itinerary.Itinerary{{
				Theme:              "Frozen Assets",
				TotalEstimatedCost: "$20",
				Stops:              []itinerary.Stop{{Name: "Polar Scoops", Notes: "n", Reason: "r", MapsLink: "https://maps.example/p"}},
			}},
		},
	}, nil
}

var opts = handlers.Options{Defaults: trip.Defaults{Days: 3, Currency: "USD"}, PublicURL: "https://sweet.test"}

func buildTestRouter(p handlers.Planner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(view.Templates())
	api := handlers.NewItineraryHandler(p, opts)
	pages := handlers.NewPageHandler(p, opts)
	r.POST("/api/itineraries", api.Create)
	r.GET("/api/share", api.Share)
	r.GET("/", pages.Index)
	r.POST("/itineraries", pages.Submit)
	return r
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreate_OK(t *testing.T) {
	r := buildTestRouter(&stubPlanner{})
	w := doJSON(r, http.MethodPost, "/api/itineraries", map[string]any{
		"city":        "Oslo",
		"days":        2,
		"budget":      map[string]any{"amount": 50, "currency": "nok"},
		"treat_focus": []string{"cinnamon buns"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		SubmissionID string              `json:"submission_id"`
		ShareURL     string              `json:"share_url"`
		Itinerary    *itinerary.Response `json:"itinerary"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.SubmissionID != "sub-1" || resp.Itinerary == nil || resp.Itinerary.City != "Oslo" {
		t.Errorf("unexpected response %+v", resp)
	}
	u, err := url.Parse(resp.ShareURL)
	if err != nil || u.Host != "sweet.test" {
		t.Fatalf("bad share url %q", resp.ShareURL)
	}
	if u.Query().Get("currency") != "NOK" || u.Query().Get("treat_focus") != "cinnamon buns" {
		t.Errorf("share url should carry the normalized request: %s", resp.ShareURL)
	}
}

func TestCreate_InvalidJSON(t *testing.T) {
	r := buildTestRouter(&stubPlanner{})
	req := httptest.NewRequest(http.MethodPost, "/api/itineraries", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCreate_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		body       map[string]any
		wantStatus int
		wantMsg    string
	}{
		{"missing days", nil, map[string]any{"city": "Oslo"}, http.StatusBadRequest, "at least one day"},
		{"malformed", fmt.Errorf("%w: x", itinerary.ErrMalformedResponse), nil, http.StatusBadGateway, "unexpected format"},
		{"structure", fmt.Errorf("%w: city is missing", itinerary.ErrUnexpectedStructure), nil, http.StatusBadGateway, "unexpected structure"},
		{"empty", ai.ErrNoCandidates, nil, http.StatusBadGateway, "empty or invalid"},
		{"rate limited", ai.ErrRateLimited, nil, http.StatusTooManyRequests, "try again"},
		{"unavailable", ai.ErrServiceUnavailable, nil, http.StatusServiceUnavailable, "unavailable"},
		{"credential", ai.ErrCredentialInvalid, nil, http.StatusInternalServerError, "not configured"},
		{"unknown", fmt.Errorf("%w: eof", ai.ErrUnknownTransport), nil, http.StatusBadGateway, "check your connection"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := tt.body
			if body == nil {
				body = map[string]any{"city": "Oslo", "days": 1}
			}
			w := doJSON(buildTestRouter(&stubPlanner{err: tt.err}), http.MethodPost, "/api/itineraries", body)
			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			if !strings.Contains(w.Body.String(), tt.wantMsg) {
				t.Errorf("body %s should contain %q", w.Body.String(), tt.wantMsg)
			}
			if strings.Contains(w.Body.String(), "city is missing") {
				t.Error("internal error detail leaked to the client")
			}
		})
	}
}

func TestShare(t *testing.T) {
	r := buildTestRouter(&stubPlanner{})
	w := doJSON(r, http.MethodGet, "/api/share?city=Lyon&treat_focus=praline,bugnes", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Request    trip.TripRequest `json:"request"`
		AutoSubmit bool             `json:"auto_submit"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.AutoSubmit || resp.Request.Days != 3 || len(resp.Request.TreatFocus) != 2 {
		t.Errorf("unexpected decode %+v", resp)
	}
}

func TestIndex_FormOnly(t *testing.T) {
	p := &stubPlanner{}
	r := buildTestRouter(p)
	for _, path := range []string{"/", "/?city=Lyon&edit=1"} {
		w := doJSON(r, http.MethodGet, path, nil)
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, w.Code)
		}
		if !strings.Contains(w.Body.String(), `name="city"`) {
			t.Errorf("%s: form not rendered", path)
		}
	}
	if p.calls != 0 {
		t.Errorf("form-only views must not plan, got %d calls", p.calls)
	}
}

func TestIndex_AutoSubmitsShareLink(t *testing.T) {
	p := &stubPlanner{}
	w := doJSON(buildTestRouter(p), http.MethodGet, "/?city=Lyon&days=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if p.calls != 1 || p.last.City != "Lyon" || p.last.Days != 2 {
		t.Errorf("expected one plan for Lyon/2, got %d calls last=%+v", p.calls, p.last)
	}
	body := w.Body.String()
	for _, want := range []string{"Frozen Assets", "https://maps.example/p", view.PlaceholderImage, "edit=1"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestSubmit_Form(t *testing.T) {
	p := &stubPlanner{}
	form := url.Values{
		"city":        {"Kyoto"},
		"days":        {"2"},
		"budget":      {"40"},
		"currency":    {"jpy"},
		"treat_focus": {"matcha, mochi"},
	}
	req := httptest.NewRequest(http.MethodPost, "/itineraries", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	buildTestRouter(p).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if p.last.Budget.Amount != 40 || p.last.Budget.Currency != "JPY" {
		t.Errorf("budget not bound: %+v", p.last.Budget)
	}
	if len(p.last.TreatFocus) != 2 {
		t.Errorf("treat focus not split: %v", p.last.TreatFocus)
	}
}

func TestSubmit_ErrorOffersRetry(t *testing.T) {
	p := &stubPlanner{err: ai.ErrServiceUnavailable}
	form := url.Values{"city": {"Kyoto"}, "days": {"2"}}
	req := httptest.NewRequest(http.MethodPost, "/itineraries", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	buildTestRouter(p).ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Try again") {
		t.Error("error page should offer a retry")
	}
	if !strings.Contains(w.Body.String(), `value="Kyoto"`) {
		t.Error("form should stay pre-filled after an error")
	}
}

func TestShareURLTrailingSlash(t *testing.T) {
	gin.SetMode(gin.TestMode)
	p := &stubPlanner{}
	for _, base := range []string{"https://sweet.test", "https://sweet.test/"} {
		o := opts
		o.PublicURL = base
		r := gin.New()
		r.POST("/api/itineraries", handlers.NewItineraryHandler(p, o).Create)

		w := doJSON(r, http.MethodPost, "/api/itineraries", map[string]any{"city": "Oslo", "days": 1})
		var resp struct {
			ShareURL string `json:"share_url"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(resp.ShareURL, "https://sweet.test/?") {
			t.Errorf("base %q: share url %q", base, resp.ShareURL)
		}
	}
}
