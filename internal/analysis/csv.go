package analysis

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
)

// Output file names of the two summary tables.
const (
	MethodSummaryFile = "consolidated_vectorized_summary.csv"
	RatioSummaryFile  = "vectorized_vs_consolidated_ratios.csv"
)

var (
	methodSummaryHeader = []string{"platform", "method", "mean", "median", "std", "min", "max"}
	ratioSummaryHeader  = []string{"platform", "mean_ratio", "median_ratio", "mean_pct_change", "median_pct_change", "std", "min_ratio", "max_ratio"}
)

// WriteMethodSummaryCSV writes one row per platform and method.
func WriteMethodSummaryCSV(path string, rows []MethodSummary) error {
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = []string{
			r.Platform,
			r.Method,
			formatFloat(r.Mean),
			formatFloat(r.Median),
			formatFloat(r.Std),
			formatFloat(r.Min),
			formatFloat(r.Max),
		}
	}
	return writeCSV(path, methodSummaryHeader, records)
}

// WriteRatioSummaryCSV writes one row per platform.
func WriteRatioSummaryCSV(path string, rows []RatioSummary) error {
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = []string{
			r.Platform,
			formatFloat(r.MeanRatio),
			formatFloat(r.MedianRatio),
			formatFloat(r.MeanPctChange),
			formatFloat(r.MedianPctChange),
			formatFloat(r.Std),
			formatFloat(r.MinRatio),
			formatFloat(r.MaxRatio),
		}
	}
	return writeCSV(path, ratioSummaryHeader, records)
}

func writeCSV(path string, header []string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// formatFloat renders NaN as an empty cell and infinities as inf/-inf.
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return ""
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}
