package unit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/adapters/handler"
)

// Health handlers need database and Redis connections for real checks; unit
// tests exercise the handler logic with nil dependencies and leave live
// dependency checks to deployment probes.

type healthBody struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
	Checks map[string]struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"checks"`
}

func TestHealthHandler_Health_ProcessCheck(t *testing.T) {
	h := handler.NewHealthHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response healthBody
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Status != "UP" {
		t.Errorf("expected status 'UP', got %q", response.Status)
	}
	if _, ok := response.Checks["process"]; !ok {
		t.Error("expected 'process' check in response")
	}
	if response.Uptime == "" {
		t.Error("expected non-empty uptime")
	}
}

func TestHealthHandler_Live(t *testing.T) {
	h := handler.NewHealthHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()

	h.Live(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

// Without dependencies the readiness check reports DOWN.
func TestHealthHandler_Ready_NoDependencies(t *testing.T) {
	h := handler.NewHealthHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()

	h.Ready(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}

	var response healthBody
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Status != "DOWN" {
		t.Errorf("expected status 'DOWN', got %q", response.Status)
	}
	if check := response.Checks["database"]; check.Status != "DOWN" {
		t.Errorf("expected database DOWN, got %q", check.Status)
	}
}

func TestHealthHandler_ContentType(t *testing.T) {
	h := handler.NewHealthHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	contentType := rec.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("expected Content-Type 'application/json', got %q", contentType)
	}
}
