// Copyright 2026 Sovereign-Mohawk Core Team
// Licensed under the Apache License, Version 2.0

// Package telemetry exposes Prometheus counters for mechanism releases.
// It is ambient observability only: no mechanism's output or timing
// depends on whether a collector is registered, and nothing here is on
// any decision path. A mechanism that is never scraped behaves
// identically to one that is.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	releaseTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "relm",
			Name:      "releases_total",
			Help:      "Number of first (budget-consuming) Release calls, by mechanism kind, whether or not the release then succeeded.",
		},
		[]string{"mechanism"},
	)

	rejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "relm",
			Name:      "releases_rejected_total",
			Help:      "Number of Release calls rejected because the mechanism was already exhausted.",
		},
		[]string{"mechanism"},
	)

	rejectionLoopLength = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "relm",
			Name:      "sample_and_flip_iterations",
			Help:      "Iterations taken by rejection-sampling based mechanisms (sample_and_flip, permute_and_flip) before acceptance.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 16),
		},
		[]string{"mechanism"},
	)
)

func init() {
	prometheus.MustRegister(releaseTotal, rejectedTotal, rejectionLoopLength)
}

// RecordRelease increments the first-release counter for a mechanism
// kind. It is called when the budget is consumed, before the release's
// own validation runs.
func RecordRelease(kind string) {
	releaseTotal.WithLabelValues(kind).Inc()
}

// RecordRejected increments the exhausted-reuse counter for a mechanism kind.
func RecordRejected(kind string) {
	rejectedTotal.WithLabelValues(kind).Inc()
}

// RecordIterations reports how many rejection/acceptance rounds a
// sampling loop needed before it terminated.
func RecordIterations(kind string, iterations int) {
	rejectionLoopLength.WithLabelValues(kind).Observe(float64(iterations))
}

// CollectorsTo registers this package's collectors on reg, for callers
// who want them on a private registry as well as the global default
// that init registers them on.
func CollectorsTo(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{releaseTotal, rejectedTotal, rejectionLoopLength} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
