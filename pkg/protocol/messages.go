// Copyright 2026 Sovereign-Mohawk Core Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package protocol defines the JSON request/response shapes for the
// relm HTTP demo server (internal/api).
package protocol

import "time"

// LaplaceReleaseRequest asks the server to construct a one-shot Laplace
// mechanism and release it against the given data.
type LaplaceReleaseRequest struct {
	Epsilon     float64   `json:"epsilon"`
	Sensitivity float64   `json:"sensitivity"`
	Data        []float64 `json:"data"`
}

// ReleaseResponse wraps any mechanism's output along with bookkeeping
// useful to a caller comparing multiple releases.
type ReleaseResponse struct {
	Mechanism  string      `json:"mechanism"`
	Result     interface{} `json:"result"`
	ReleasedAt time.Time   `json:"released_at"`
}

// PresetSummary describes one named parameter bundle for display.
type PresetSummary struct {
	Name        string  `json:"name"`
	Epsilon     float64 `json:"epsilon"`
	Sensitivity float64 `json:"sensitivity"`
	Alpha       float64 `json:"alpha,omitempty"`
}

// PresetsResponse lists the catalog a server instance was started with.
type PresetsResponse struct {
	Presets []PresetSummary `json:"presets"`
}

// ErrorResponse is the JSON body returned alongside any non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}
