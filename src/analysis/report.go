// Package analysis summarizes observation sets per box-plot group and writes the
// optional JSON report that accompanies a rendering run.
package analysis

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ChartReport describes one rendered (solver, metric) chart.
type ChartReport struct {
	Solver       string         `json:"solver"`
	Metric       string         `json:"metric"`
	File         string         `json:"file"`
	TrendFile    string         `json:"trend_file,omitempty"`
	Observations int            `json:"observations"`
	Groups       []GroupSummary `json:"groups"`
}

// Report is the JSON document written next to the charts of one variant.
type Report struct {
	Variant     string        `json:"variant"`
	GeneratedAt time.Time     `json:"generated_at"`
	Charts      []ChartReport `json:"charts"`
}

// WriteReport writes r as indented JSON, creating parent directories.
func WriteReport(path string, r Report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

// ReadReport loads a report written by WriteReport.
func ReadReport(path string) (Report, error) {
	var r Report
	b, err := os.ReadFile(path)
	if err != nil {
		return r, err
	}
	if err := json.Unmarshal(b, &r); err != nil {
		return r, fmt.Errorf("parse report %s: %w", path, err)
	}
	return r, nil
}
