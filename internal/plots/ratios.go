package plots

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/iwanhae/vecbench/internal/analysis"
)

// PerformanceRatios builds the 1x2 figure of mean ratio and mean percentage
// change per platform. Bars are green where vectorized writes win.
func PerformanceRatios(rows []analysis.RatioSummary) (*Figure, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no ratio summaries to plot")
	}

	platforms := make([]string, len(rows))
	ratios := make([]float64, len(rows))
	ratioLabels := make([]string, len(rows))
	changes := make([]float64, len(rows))
	changeLabels := make([]string, len(rows))
	for i, r := range rows {
		platforms[i] = r.Platform
		ratios[i] = r.MeanRatio
		ratioLabels[i] = fmt.Sprintf("%.2fx", r.MeanRatio)
		changes[i] = r.MeanPctChange
		changeLabels[i] = fmt.Sprintf("%+.1f%%", r.MeanPctChange)
	}

	ratio := newPlot("Vectorized vs Consolidated Performance Ratios", "Platform", "Ratio (Vectorized / Consolidated)")
	if err := signedBars(ratio, platforms, ratios, func(v float64) bool { return v < 1 }); err != nil {
		return nil, fmt.Errorf("ratio: %w", err)
	}
	baseline(ratio, 1, "Equal performance", colorBaseline)
	if err := barLabels(ratio, ratios, ratioLabels); err != nil {
		return nil, fmt.Errorf("ratio: %w", err)
	}
	headroom(ratio)

	change := newPlot("Vectorized Performance Change vs Consolidated", "Platform", "Percentage Change (%)")
	if err := signedBars(change, platforms, changes, func(v float64) bool { return v < 0 }); err != nil {
		return nil, fmt.Errorf("percentage change: %w", err)
	}
	baseline(change, 0, "No change", colorBaseline)
	if err := barLabels(change, changes, changeLabels); err != nil {
		return nil, fmt.Errorf("percentage change: %w", err)
	}
	headroom(change)

	return &Figure{
		Width:  15 * vg.Inch,
		Height: 6 * vg.Inch,
		Plots:  [][]*plot.Plot{{ratio, change}},
	}, nil
}

// WritePerformanceRatios renders the performance ratio figure to path.
func WritePerformanceRatios(path string, rows []analysis.RatioSummary, dpi int) error {
	fig, err := PerformanceRatios(rows)
	if err != nil {
		return err
	}
	return fig.Save(path, dpi)
}
