package plots

import (
	"fmt"
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/iwanhae/vecbench/internal/analysis"
)

// legendTitle heads the legend of the grouped runtime panels.
const legendTitle = "Method"

// pivot holds one value per platform for each method, platforms sorted by name.
type pivot struct {
	platforms    []string
	consolidated []analysis.Summary
	vectorized   []analysis.Summary
}

func pivotSummaries(rows []analysis.MethodSummary) (*pivot, error) {
	platforms := analysis.Platforms(rows)
	slices.Sort(platforms)

	pv := &pivot{platforms: platforms}
	for _, platform := range platforms {
		cons, ok := analysis.Lookup(rows, platform, analysis.Methods[0].Name)
		if !ok {
			return nil, fmt.Errorf("%s: no %s summary", platform, analysis.Methods[0].Name)
		}
		vec, ok := analysis.Lookup(rows, platform, analysis.Methods[1].Name)
		if !ok {
			return nil, fmt.Errorf("%s: no %s summary", platform, analysis.Methods[1].Name)
		}
		pv.consolidated = append(pv.consolidated, cons.Summary)
		pv.vectorized = append(pv.vectorized, vec.Summary)
	}
	return pv, nil
}

func (pv *pivot) series(stat func(analysis.Summary) float64) []barSeries {
	cons := make([]float64, len(pv.platforms))
	vec := make([]float64, len(pv.platforms))
	for i := range pv.platforms {
		cons[i] = stat(pv.consolidated[i])
		vec[i] = stat(pv.vectorized[i])
	}
	return []barSeries{
		{label: analysis.Methods[0].Name, values: cons, color: colorConsolidated},
		{label: analysis.Methods[1].Name, values: vec, color: colorVectorized},
	}
}

// Efficiency returns vectorized mean runtime as a percentage of consolidated mean runtime.
func Efficiency(cons, vec analysis.Summary) float64 {
	return vec.Mean / cons.Mean * 100
}

// StatisticalSummary builds the 2x2 figure of mean, median and std runtimes
// per platform plus the vectorized efficiency against a 100% baseline.
func StatisticalSummary(rows []analysis.MethodSummary) (*Figure, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no method summaries to plot")
	}
	pv, err := pivotSummaries(rows)
	if err != nil {
		return nil, err
	}

	panels := []struct {
		title  string
		yLabel string
		stat   func(analysis.Summary) float64
	}{
		{"Mean Runtime: Consolidated vs Vectorized", "Mean Runtime (units)", func(s analysis.Summary) float64 { return s.Mean }},
		{"Median Runtime: Consolidated vs Vectorized", "Median Runtime (units)", func(s analysis.Summary) float64 { return s.Median }},
		{"Runtime Variability (Std Dev)", "Standard Deviation (units)", func(s analysis.Summary) float64 { return s.Std }},
	}

	var bars []*plot.Plot
	for _, panel := range panels {
		p := newPlot(panel.title, "Platform", panel.yLabel)
		p.Legend.Add(legendTitle)
		if err := groupedBars(p, pv.platforms, pv.series(panel.stat)); err != nil {
			return nil, fmt.Errorf("%s: %w", panel.title, err)
		}
		bars = append(bars, p)
	}

	eff, err := efficiencyPlot(pv)
	if err != nil {
		return nil, err
	}

	return &Figure{
		Width:  15 * vg.Inch,
		Height: 10 * vg.Inch,
		Plots: [][]*plot.Plot{
			{bars[0], bars[1]},
			{bars[2], eff},
		},
	}, nil
}

func efficiencyPlot(pv *pivot) (*plot.Plot, error) {
	p := newPlot("Vectorized Efficiency vs Consolidated", "Platform", "Vectorized as % of Consolidated\n(Lower = Better)")

	values := make([]float64, len(pv.platforms))
	labels := make([]string, len(pv.platforms))
	for i := range pv.platforms {
		values[i] = Efficiency(pv.consolidated[i], pv.vectorized[i])
		labels[i] = fmt.Sprintf("%.0f%%", values[i])
	}

	err := groupedBars(p, pv.platforms, []barSeries{{label: "Vectorized", values: values, color: colorEfficiency}})
	if err != nil {
		return nil, fmt.Errorf("efficiency: %w", err)
	}
	baseline(p, 100, "Consolidated baseline (100%)", colorAlarm)
	if err := barLabels(p, values, labels); err != nil {
		return nil, fmt.Errorf("efficiency: %w", err)
	}
	headroom(p)
	return p, nil
}

// WriteStatisticalSummary renders the statistical summary figure to path.
func WriteStatisticalSummary(path string, rows []analysis.MethodSummary, dpi int) error {
	fig, err := StatisticalSummary(rows)
	if err != nil {
		return err
	}
	return fig.Save(path, dpi)
}
