package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"diarquia/config"
	"diarquia/handlers"
	"diarquia/models"
)

type stubBookingService struct{}

func (stubBookingService) ProcessBooking(ctx context.Context, req models.BookingRequest) (*models.BookingResult, error) {
	return &models.BookingResult{}, nil
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Env:               "development",
		AllowedOrigins:    []string{"http://localhost:8080"},
		MaxRequestsPerMin: 1000,
	}
	r := gin.New()
	RegisterRoutes(r, cfg, handlers.NewBookingHandler(stubBookingService{}, cfg, zap.NewNop()))
	return r
}

func get(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, models.Envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)

	var env models.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not an envelope: %v (%s)", err, w.Body.String())
	}
	return w, env
}

func TestIndexRoute(t *testing.T) {
	w, env := get(t, testRouter(), "/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !env.Success || env.Message != "La Diarquía - API de Reservas" {
		t.Errorf("unexpected envelope: %+v", env)
	}
	data, ok := env.Data.(map[string]any)
	if !ok || data["endpoints"] == nil {
		t.Errorf("banner should list endpoints, got %+v", env.Data)
	}
}

func TestHealthRoute(t *testing.T) {
	w, env := get(t, testRouter(), "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	data, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected data payload, got %+v", env)
	}
	if data["timestamp"] == nil || data["environment"] != "development" {
		t.Errorf("health payload incomplete: %+v", data)
	}
}

func TestUnmatchedRouteIs404WithPath(t *testing.T) {
	w, env := get(t, testRouter(), "/api/nope")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if env.Success || env.Message != "Ruta no encontrada" {
		t.Errorf("unexpected envelope: %+v", env)
	}
	details, ok := env.Details.(map[string]any)
	if !ok || details["path"] != "/api/nope" {
		t.Errorf("404 must echo the requested path, got %+v", env.Details)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := testRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/bookings", nil)
	req.Header.Set("Origin", "http://localhost:8080")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:8080" {
		t.Errorf("allow-origin = %q", got)
	}
}

func TestRequestIDHeader(t *testing.T) {
	w, _ := get(t, testRouter(), "/health")
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("every response should carry a request id")
	}
}
