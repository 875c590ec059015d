// Copyright 2026 Sovereign-Mohawk Core Team
// Licensed under the Apache License, Version 2.0

// Package api exposes a small HTTP surface over pkg/relm: a health
// check, the active preset catalog, a Prometheus scrape endpoint, and a
// one-shot Laplace release demo. It is a reference server for
// cmd/relm-server, not a production API gateway.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sovereign-dp/relm/internal/presets"
	"github.com/sovereign-dp/relm/pkg/protocol"
	"github.com/sovereign-dp/relm/pkg/relm"
)

// Handler serves the relm demo HTTP API.
type Handler struct {
	catalog *presets.Catalog
}

// NewHandler creates a handler backed by the given preset catalog.
func NewHandler(catalog *presets.Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// RegisterRoutes wires every endpoint onto mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.HealthCheck)
	mux.HandleFunc("/api/presets", h.GetPresets)
	mux.HandleFunc("/api/release/laplace", h.ReleaseLaplace)
	mux.Handle("/metrics", promhttp.Handler())
}

// HealthCheck reports basic liveness.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "relm"})
}

// GetPresets lists the catalog this server was started with.
func (h *Handler) GetPresets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := protocol.PresetsResponse{}
	for name, b := range h.catalog.Bundles {
		resp.Presets = append(resp.Presets, protocol.PresetSummary{
			Name:        name,
			Epsilon:     b.Epsilon,
			Sensitivity: b.Sensitivity,
			Alpha:       b.Alpha,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// ReleaseLaplace constructs and immediately releases a single Laplace
// mechanism from a JSON request body. Each request gets a fresh
// mechanism instance; the single-use budget is per-instance, not
// per-endpoint.
func (h *Handler) ReleaseLaplace(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req protocol.LaplaceReleaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, protocol.ErrorResponse{Error: err.Error()})
		return
	}

	mechanism, err := relm.NewLaplaceMechanism(req.Epsilon, req.Sensitivity, 0)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, protocol.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := mechanism.Release(req.Data)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, protocol.ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, protocol.ReleaseResponse{
		Mechanism:  "laplace",
		Result:     result,
		ReleasedAt: time.Now(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
