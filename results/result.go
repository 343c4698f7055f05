// Package results models the benchmark results document produced by the
// Dependency Buster benchmark suite. Every field is optional: rendering
// substitutes defaults for anything absent rather than rejecting
// incomplete documents.
package results

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Results is the top-level benchmark results document.
type Results struct {
	Timestamp       string             `json:"timestamp"`
	System          map[string]string  `json:"system"`
	TestDetails     map[string]any     `json:"test_details"`
	Winners         *Winners           `json:"winners"`
	Implementations map[string]Metrics `json:"results"`
	Summary         *Summary           `json:"summary"`
}

// Metrics maps metric names to measured values for one implementation.
// A nil Metrics behaves like an implementation with no measurements.
type Metrics map[string]float64

// Value returns the named metric and whether it was measured.
func (m Metrics) Value(key string) (float64, bool) {
	v, ok := m[key]

	return v, ok
}

// ValueOrZero returns the named metric, or 0 when it was not measured.
func (m Metrics) ValueOrZero(key string) float64 {
	return m[key]
}

// Winners maps benchmark categories to the implementation that won them.
// The report mirrors the document's category order row for row, so
// decoding keeps the keys in the order they appear in the JSON object.
type Winners struct {
	Categories []string
	ByCategory map[string]string
}

// UnmarshalJSON decodes the winners object token by token to preserve
// key order, which encoding/json's map decoding would discard.
func (w *Winners) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("winners: %w", err)
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("winners: expected object, got %v", tok)
	}

	w.ByCategory = make(map[string]string)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("winners: %w", err)
		}

		category, ok := tok.(string)
		if !ok {
			return fmt.Errorf("winners: expected key, got %v", tok)
		}

		var winner string
		if err := dec.Decode(&winner); err != nil {
			return fmt.Errorf("winners[%s]: %w", category, err)
		}

		w.Categories = append(w.Categories, category)
		w.ByCategory[category] = winner
	}

	return nil
}

// Summary carries the pre-computed highlights of a benchmark run.
// Each insight is only rendered when present.
type Summary struct {
	FastestStartup     *StartupInsight  `json:"fastest_startup"`
	LowestMemory       *MemoryInsight   `json:"lowest_memory"`
	FastestAnalysis    *AnalysisInsight `json:"fastest_analysis"`
	PerformanceRanking []Ranking        `json:"performance_ranking"`
}

// StartupInsight names the implementation with the fastest startup.
type StartupInsight struct {
	Language             string  `json:"language"`
	TimeMs               float64 `json:"time_ms"`
	ImprovementVsSlowest string  `json:"improvement_vs_slowest"`
}

// MemoryInsight names the implementation with the lowest peak memory.
type MemoryInsight struct {
	Language             string  `json:"language"`
	MemoryMB             float64 `json:"memory_mb"`
	ImprovementVsHighest string  `json:"improvement_vs_highest"`
}

// AnalysisInsight names the implementation with the fastest full analysis.
type AnalysisInsight struct {
	Language             string  `json:"language"`
	TimeMs               float64 `json:"time_ms"`
	ImprovementVsSlowest string  `json:"improvement_vs_slowest"`
}

// Ranking is one entry of the overall performance ranking.
type Ranking struct {
	Rank     int     `json:"rank"`
	Language string  `json:"language"`
	Score    float64 `json:"score"`
}
