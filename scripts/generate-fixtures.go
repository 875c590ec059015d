// generate-fixtures.go
// Generates synthetic histograms and linear-query workloads for
// exercising SmallDB and PrivateMultiplicativeWeights outside the unit
// test suite.
// Usage: go run scripts/generate-fixtures.go

package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"
)

// HistogramFixture is a synthetic dataset: a non-negative integer count
// per universe element.
type HistogramFixture struct {
	Name      string  `json:"name"`
	Universe  int     `json:"universe_size"`
	Histogram []int64 `json:"histogram"`
	Sum       int64   `json:"sum"`
}

// QueryWorkload is a batch of {0,1}-valued linear queries over a
// histogram fixture's universe, along with the epsilon and alpha a
// SmallDB or PMW run against it would plausibly use.
type QueryWorkload struct {
	Name    string      `json:"name"`
	Epsilon float64     `json:"epsilon"`
	Alpha   float64     `json:"alpha"`
	Queries [][]float64 `json:"queries"`
}

// Scenario bundles a fixture with the workloads generated against it.
type Scenario struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Histogram   HistogramFixture  `json:"histogram"`
	Workloads   []QueryWorkload   `json:"workloads"`
}

const (
	outputDir   = "test-data"
	universe    = 200
	maxCount    = 20
)

func main() {
	fmt.Println("generating synthetic relm fixtures...")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		panic(fmt.Sprintf("failed to create output directory: %v", err))
	}

	src := rand.New(rand.NewSource(time.Now().UnixNano()))

	scenarios := map[string]struct {
		numQueries int
		epsilon    float64
		alpha      float64
	}{
		"tight-budget":   {numQueries: 5, epsilon: 0.1, alpha: 0.1},
		"moderate":       {numQueries: 20, epsilon: 1.0, alpha: 0.1},
		"loose-budget":   {numQueries: 50, epsilon: 5.0, alpha: 0.2},
	}

	for name, cfg := range scenarios {
		fmt.Printf("  scenario: %s\n", name)

		histogram := generateHistogram(src, name)
		workload := QueryWorkload{
			Name:    name,
			Epsilon: cfg.epsilon,
			Alpha:   cfg.alpha,
			Queries: generateQueries(src, cfg.numQueries, universe),
		}

		scenario := Scenario{
			GeneratedAt: time.Now(),
			Histogram:   histogram,
			Workloads:   []QueryWorkload{workload},
		}

		filename := fmt.Sprintf("%s/%s.json", outputDir, name)
		data, err := json.MarshalIndent(scenario, "", "  ")
		if err != nil {
			panic(fmt.Sprintf("failed to marshal scenario %s: %v", name, err))
		}
		if err := os.WriteFile(filename, data, 0644); err != nil {
			panic(fmt.Sprintf("failed to write %s: %v", filename, err))
		}
		fmt.Printf("    wrote %s (sum=%d, %d queries)\n", filename, histogram.Sum, len(workload.Queries))
	}

	fmt.Println("done.")
}

func generateHistogram(src *rand.Rand, name string) HistogramFixture {
	h := make([]int64, universe)
	var sum int64
	for i := range h {
		h[i] = int64(src.Intn(maxCount))
		sum += h[i]
	}
	return HistogramFixture{
		Name:      name,
		Universe:  universe,
		Histogram: h,
		Sum:       sum,
	}
}

func generateQueries(src *rand.Rand, numQueries, universe int) [][]float64 {
	queries := make([][]float64, numQueries)
	for i := range queries {
		q := make([]float64, universe)
		for j := range q {
			q[j] = float64(src.Intn(2))
		}
		queries[i] = q
	}
	return queries
}
