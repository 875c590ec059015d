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

// Command relm-bench runs a mechanism RELM_BENCH_ROUNDS times under a
// chosen preset and prints latency statistics.
package main

import (
	"log"
	"time"

	"github.com/sovereign-dp/relm/internal/benchstats"
	"github.com/sovereign-dp/relm/internal/config"
	"github.com/sovereign-dp/relm/internal/presets"
	"github.com/sovereign-dp/relm/pkg/relm"
)

func main() {
	log.Println("relm-bench starting...")

	cfg := config.Load()

	catalog := presets.Default()
	if cfg.PresetFile != "" {
		loaded, err := presets.Load(cfg.PresetFile)
		if err != nil {
			log.Fatalf("failed to load preset file %s: %v", cfg.PresetFile, err)
		}
		catalog = loaded
	}

	bundle, ok := catalog.Get(cfg.PresetName)
	if !ok {
		log.Fatalf("unknown preset %q", cfg.PresetName)
	}
	log.Printf("using preset %q: epsilon=%v sensitivity=%v", cfg.PresetName, bundle.Epsilon, bundle.Sensitivity)

	collector := benchstats.NewCollector(cfg.BenchRounds)
	data := []float64{1, 2, 3, 4, 5}

	deadline := time.Now().Add(cfg.BenchTimeout)
	for i := 0; i < cfg.BenchRounds && time.Now().Before(deadline); i++ {
		mechanism, err := relm.NewLaplaceMechanism(bundle.Epsilon, bundle.Sensitivity, 0)
		if err != nil {
			log.Fatalf("failed to construct mechanism: %v", err)
		}

		start := time.Now()
		if _, err := mechanism.Release(data); err != nil {
			log.Fatalf("release failed: %v", err)
		}
		collector.Record(benchstats.MetricReleaseLatency, "laplace", float64(time.Since(start).Nanoseconds()))
	}

	agg := collector.Aggregation(benchstats.MetricReleaseLatency, "laplace")
	if agg == nil {
		log.Println("no rounds completed within the configured timeout")
		return
	}
	log.Printf("laplace release latency over %d rounds: mean=%.0fns min=%.0fns max=%.0fns",
		agg.Count, agg.Mean, agg.Min, agg.Max)
}
