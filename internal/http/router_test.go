package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sweetspot/internal/ai"
	"sweetspot/internal/http/handlers"
	"sweetspot/internal/maps"
	"sweetspot/internal/modules/trip"
	"sweetspot/internal/service"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	mock := ai.NewMockProvider()
	planner := service.NewItineraryPlanner(mock, mock, maps.NewEnricher(nil, nil), service.PlannerOptions{
		Strict:           true,
		ImageConcurrency: 2,
	})
	return NewRouter(RouterDeps{
		Planner: planner,
		Options: handlers.Options{Defaults: trip.Defaults{Days: 3, Currency: "USD"}},
		Logger:  zap.NewNop(),
	})
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || w.Body.String() != "OK" {
		t.Errorf("unexpected health response %d %q", w.Code, w.Body.String())
	}
}

func TestCreateEndToEndWithMocks(t *testing.T) {
	body := strings.NewReader(`{"city":"Paris","days":2,"treat_focus":["macarons"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/itineraries", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		ShareURL  string `json:"share_url"`
		Itinerary struct {
			City        string `json:"city"`
			Itineraries []struct {
				Image *struct{} `json:"image"`
				Stops []struct {
					MapsLink string `json:"maps_link"`
				} `json:"stops"`
			} `json:"itineraries"`
		} `json:"itinerary"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Itinerary.City == "" || len(resp.Itinerary.Itineraries) == 0 {
		t.Fatalf("unexpected itinerary %+v", resp.Itinerary)
	}
	for _, it := range resp.Itinerary.Itineraries {
		if it.Image == nil {
			t.Error("expected an image per itinerary")
		}
		for _, s := range it.Stops {
			if !strings.HasPrefix(s.MapsLink, "https://www.google.com/maps/search/") {
				t.Errorf("unexpected maps link %q", s.MapsLink)
			}
		}
	}
	if !strings.HasPrefix(resp.ShareURL, "/?") {
		t.Errorf("expected a relative share url, got %q", resp.ShareURL)
	}
}

func TestServerStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewServer("127.0.0.1:0", newTestRouter(), 0, zap.NewNop())
	cancel()
	if err := s.Run(ctx); err != nil {
		t.Errorf("expected clean shutdown, got %v", err)
	}
}
