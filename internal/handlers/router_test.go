package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sya-pos/possyncgo/internal/config"
	"github.com/sya-pos/possyncgo/internal/relay"
	"github.com/sya-pos/possyncgo/internal/sync"
)

func newTestRouter() *Router {
	hub := relay.NewHub()
	svc := sync.NewService(nil, nil, hub)
	return NewRouter(nil, hub, svc, &config.Config{})
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Health response should be JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %q", body["status"])
	}
}

func TestStatusEndpoint(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest("GET", "/api/status", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Status response should be JSON: %v", err)
	}
	if body["status"] != "running" {
		t.Errorf("Expected status running, got %q", body["status"])
	}
}

func TestStatsEndpoint(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest("GET", "/api/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var stats relay.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("Stats response should decode as a presence snapshot: %v", err)
	}
	if stats.ConnectedClients != 0 || stats.TotalEvents != 0 {
		t.Errorf("Fresh hub should report zero activity, got %+v", stats)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
}

func TestSyncRoutesRequireBody(t *testing.T) {
	router := newTestRouter()

	// An empty body is a 400 before the service is ever touched.
	req := httptest.NewRequest("POST", "/api/sync/sales", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for empty body, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Error response should be JSON: %v", err)
	}
	if body["error"] == "" {
		t.Error("Error response should carry a message")
	}
}
