package analysis

import (
	"fmt"
	"strings"

	"github.com/iwanhae/vecbench/internal/storage"
)

// Method names a measured runtime column.
type Method struct {
	Column string
	Name   string
}

// Methods are the two benchmarked write strategies, in report order.
var Methods = []Method{
	{Column: storage.ColumnConsolidatedTime, Name: MethodName(storage.ColumnConsolidatedTime)},
	{Column: storage.ColumnVectorizedTime, Name: MethodName(storage.ColumnVectorizedTime)},
}

// MethodName turns a runtime column into its display name: "vectorized_time" -> "Vectorized".
func MethodName(column string) string {
	name := strings.TrimSuffix(column, "_time")
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + strings.ToLower(name[1:])
}

// MethodSummary is the runtime summary of one method on one platform.
type MethodSummary struct {
	Platform string
	Method   string
	Summary
}

// RatioSummary summarizes the vectorized/consolidated ratio of one platform.
// Percentage changes are deviations from 1.0: (ratio - 1) * 100.
type RatioSummary struct {
	Platform        string
	MeanRatio       float64
	MedianRatio     float64
	MeanPctChange   float64
	MedianPctChange float64
	Std             float64
	MinRatio        float64
	MaxRatio        float64
}

// PctChange returns the percentage deviation of a ratio from 1.0.
func PctChange(ratio float64) float64 {
	return (ratio - 1) * 100
}

// MethodSummaries describes every method of every dataset, in dataset then method order.
func MethodSummaries(datasets []*storage.Dataset) ([]MethodSummary, error) {
	rows := make([]MethodSummary, 0, len(datasets)*len(Methods))
	for _, ds := range datasets {
		for _, m := range Methods {
			values, err := ds.Column(m.Column)
			if err != nil {
				return nil, err
			}
			s, err := Describe(values)
			if err != nil {
				return nil, fmt.Errorf("%s: %s: %w", ds.Name, m.Column, err)
			}
			rows = append(rows, MethodSummary{Platform: ds.Name, Method: m.Name, Summary: s})
		}
	}
	return rows, nil
}

// RatioSummaries describes the ratio column of every ratio table.
func RatioSummaries(tables []*RatioTable) ([]RatioSummary, error) {
	rows := make([]RatioSummary, 0, len(tables))
	for _, t := range tables {
		s, err := Describe(t.Ratio)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", t.Platform, ColumnVectorizedRatio, err)
		}
		rows = append(rows, RatioSummary{
			Platform:        t.Platform,
			MeanRatio:       s.Mean,
			MedianRatio:     s.Median,
			MeanPctChange:   PctChange(s.Mean),
			MedianPctChange: PctChange(s.Median),
			Std:             s.Std,
			MinRatio:        s.Min,
			MaxRatio:        s.Max,
		})
	}
	return rows, nil
}

// Lookup returns the summary for a platform and method.
func Lookup(rows []MethodSummary, platform, method string) (MethodSummary, bool) {
	for _, r := range rows {
		if r.Platform == platform && r.Method == method {
			return r, true
		}
	}
	return MethodSummary{}, false
}

// Platforms returns the distinct platforms of the summary rows in first-seen order.
func Platforms(rows []MethodSummary) []string {
	var platforms []string
	seen := make(map[string]bool)
	for _, r := range rows {
		if !seen[r.Platform] {
			seen[r.Platform] = true
			platforms = append(platforms, r.Platform)
		}
	}
	return platforms
}
