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

// Package presets loads named bundles of mechanism construction
// parameters from YAML. Mechanisms themselves take no environment input
// (spec.md §6 forbids ambient configuration at the release boundary);
// presets are sugar for the caller that picks epsilon/sensitivity/alpha
// values for a deployment once, ahead of constructing any mechanism.
package presets

import (
	"fmt"
	"os"

	yaml "go.yaml.in/yaml/v2"
)

// Bundle holds the constructor parameters for one named preset.
type Bundle struct {
	Epsilon     float64 `yaml:"epsilon"`
	Sensitivity float64 `yaml:"sensitivity"`
	Alpha       float64 `yaml:"alpha,omitempty"`
	Precision   int     `yaml:"precision,omitempty"`
}

// Catalog is a named collection of bundles, typically loaded once per
// process from a deployment's preset file.
type Catalog struct {
	Bundles map[string]Bundle `yaml:"presets"`
}

// Default returns the built-in catalog used when no preset file is
// supplied: a conservative, moderate, and permissive privacy budget for
// general use.
func Default() *Catalog {
	return &Catalog{
		Bundles: map[string]Bundle{
			"conservative": {Epsilon: 0.1, Sensitivity: 1.0, Alpha: 0.05, Precision: 35},
			"moderate":     {Epsilon: 1.0, Sensitivity: 1.0, Alpha: 0.1, Precision: 35},
			"permissive":   {Epsilon: 5.0, Sensitivity: 1.0, Alpha: 0.2, Precision: 35},
		},
	}
}

// Load reads a catalog of presets from a YAML file at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("presets: read %s: %w", path, err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("presets: parse %s: %w", path, err)
	}
	return &c, nil
}

// Get looks up a named bundle, reporting whether it exists.
func (c *Catalog) Get(name string) (Bundle, bool) {
	b, ok := c.Bundles[name]
	return b, ok
}
