// Package report writes navcheck query results as CSV and summarizes them.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"
)

// Record is one executed query.
type Record struct {
	Query      string `csv:"query"`
	Kind       string `csv:"kind"`
	From       string `csv:"from"`
	To         string `csv:"to"`
	Found      bool   `csv:"found"`
	Nodes      int    `csv:"nodes"`
	Cost       int    `csv:"cost"`
	DurationUS int64  `csv:"duration_us"`
	Passed     bool   `csv:"passed"`
	Note       string `csv:"note"`
}

// Write encodes records with a header row.
func Write(w io.Writer, records []Record) error {
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// WriteFile writes records to path, creating parent directories.
func WriteFile(path string, records []Record) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report %s: %w", path, err)
	}
	if err := Write(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read decodes a report produced by Write.
func Read(r io.Reader) ([]Record, error) {
	var records []Record
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	return records, nil
}

// Summary aggregates a run.
type Summary struct {
	Queries int
	Passed  int
	Failed  int
	Found   int

	MeanDuration time.Duration
	P50Duration  time.Duration
	P95Duration  time.Duration

	// Path statistics over found path queries.
	MeanNodes float64
	P95Nodes  float64
	MeanCost  float64
}

// Summarize computes pass counts and latency/path-size distributions.
func Summarize(records []Record) Summary {
	s := Summary{Queries: len(records)}
	if len(records) == 0 {
		return s
	}

	durations := make([]float64, 0, len(records))
	var nodes, costs []float64
	for _, r := range records {
		if r.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
		if r.Found {
			s.Found++
		}
		durations = append(durations, float64(r.DurationUS))
		if r.Found && r.Kind == "path" {
			nodes = append(nodes, float64(r.Nodes))
			costs = append(costs, float64(r.Cost))
		}
	}

	slices.Sort(durations)
	s.MeanDuration = micros(stat.Mean(durations, nil))
	s.P50Duration = micros(stat.Quantile(0.5, stat.Empirical, durations, nil))
	s.P95Duration = micros(stat.Quantile(0.95, stat.Empirical, durations, nil))

	if len(nodes) > 0 {
		slices.Sort(nodes)
		s.MeanNodes = stat.Mean(nodes, nil)
		s.P95Nodes = stat.Quantile(0.95, stat.Empirical, nodes, nil)
		s.MeanCost = stat.Mean(costs, nil)
	}
	return s
}

func micros(v float64) time.Duration {
	return time.Duration(v * float64(time.Microsecond))
}

// LogArgs returns the summary as slog key-value pairs.
func (s Summary) LogArgs() []any {
	return []any{
		"queries", s.Queries,
		"passed", s.Passed,
		"failed", s.Failed,
		"found", s.Found,
		"mean", s.MeanDuration,
		"p50", s.P50Duration,
		"p95", s.P95Duration,
		"mean_nodes", s.MeanNodes,
		"p95_nodes", s.P95Nodes,
		"mean_cost", s.MeanCost,
	}
}
