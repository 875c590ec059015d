package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sovereign-dp/relm/internal/presets"
	"github.com/sovereign-dp/relm/pkg/protocol"
)

func TestHealthCheck(t *testing.T) {
	h := NewHandler(presets.Default())
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.HealthCheck(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthCheckRejectsNonGet(t *testing.T) {
	h := NewHandler(presets.Default())
	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()

	h.HealthCheck(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestGetPresetsListsCatalog(t *testing.T) {
	h := NewHandler(presets.Default())
	req := httptest.NewRequest(http.MethodGet, "/api/presets", nil)
	rec := httptest.NewRecorder()

	h.GetPresets(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp protocol.PresetsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Presets) != 3 {
		t.Errorf("expected 3 presets, got %d", len(resp.Presets))
	}
}

func TestReleaseLaplaceHappyPath(t *testing.T) {
	h := NewHandler(presets.Default())
	body, _ := json.Marshal(protocol.LaplaceReleaseRequest{
		Epsilon:     1.0,
		Sensitivity: 1.0,
		Data:        []float64{1, 2, 3},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/release/laplace", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.ReleaseLaplace(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestReleaseLaplaceRejectsBadEpsilon(t *testing.T) {
	h := NewHandler(presets.Default())
	body, _ := json.Marshal(protocol.LaplaceReleaseRequest{
		Epsilon:     -1.0,
		Sensitivity: 1.0,
		Data:        []float64{1},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/release/laplace", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.ReleaseLaplace(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReleaseLaplaceRejectsMalformedBody(t *testing.T) {
	h := NewHandler(presets.Default())
	req := httptest.NewRequest(http.MethodPost, "/api/release/laplace", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()

	h.ReleaseLaplace(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
