package plots

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/iwanhae/vecbench/internal/analysis"
)

// RuntimeFile is the name of the runtime line plot of one platform.
func RuntimeFile(platform string) string {
	return "runtime_" + platform + ".png"
}

// MethodFile is the name of the cross-platform line plot of one method.
func MethodFile(method string) string {
	return strings.ToLower(method) + "_by_platform.png"
}

func runtimeLine(p *plot.Plot, label string, chunks, runtimes []float64, c color.Color) error {
	xys := make(plotter.XYs, 0, len(chunks))
	for i := range chunks {
		if !isFinite(chunks[i]) || !isFinite(runtimes[i]) {
			continue
		}
		xys = append(xys, plotter.XY{X: chunks[i], Y: runtimes[i]})
	}
	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return fmt.Errorf("failed to create %s line: %w", label, err)
	}
	line.Color = c
	line.Width = vg.Points(1.5)
	points.Color = c
	points.Shape = draw.CircleGlyph{}
	points.Radius = vg.Points(2)

	p.Add(line, points)
	p.Legend.Add(label, line, points)
	return nil
}

// RuntimeComparison plots both methods' runtime against chunk count for one platform.
func RuntimeComparison(table *analysis.RatioTable) (*Figure, error) {
	p := newPlot(fmt.Sprintf("Runtime vs Chunks (%s)", table.Platform), "Number of Chunks", "Runtime (ms)")
	p.Legend.Top = true
	p.Legend.Left = true

	if err := runtimeLine(p, analysis.Methods[0].Name, table.Chunks, table.Consolidated, colorConsolidated); err != nil {
		return nil, err
	}
	if err := runtimeLine(p, analysis.Methods[1].Name, table.Chunks, table.Vectorized, colorVectorized); err != nil {
		return nil, err
	}

	return &Figure{Width: 10 * vg.Inch, Height: 6 * vg.Inch, Plots: [][]*plot.Plot{{p}}}, nil
}

// MethodAcrossPlatforms plots one method's runtime against chunk count, one line per platform.
func MethodAcrossPlatforms(tables []*analysis.RatioTable, method analysis.Method) (*Figure, error) {
	p := newPlot(fmt.Sprintf("%s Runtime Across Platforms", method.Name), "Number of Chunks", "Runtime (ms)")
	p.Legend.Top = true
	p.Legend.Left = true

	colors := seriesColors(len(tables))
	for i, t := range tables {
		runtimes := t.Consolidated
		if method.Column == analysis.Methods[1].Column {
			runtimes = t.Vectorized
		}
		if err := runtimeLine(p, t.Platform, t.Chunks, runtimes, colors[i]); err != nil {
			return nil, err
		}
	}

	return &Figure{Width: 12 * vg.Inch, Height: 6 * vg.Inch, Plots: [][]*plot.Plot{{p}}}, nil
}

// WriteRuntimePlots renders the per-platform and per-method line plots into dir
// and returns the written paths.
func WriteRuntimePlots(dir string, tables []*analysis.RatioTable, dpi int) ([]string, error) {
	var written []string
	for _, t := range tables {
		fig, err := RuntimeComparison(t)
		if err != nil {
			return written, fmt.Errorf("%s: %w", t.Platform, err)
		}
		path := filepath.Join(dir, RuntimeFile(t.Platform))
		if err := fig.Save(path, dpi); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	for _, m := range analysis.Methods {
		fig, err := MethodAcrossPlatforms(tables, m)
		if err != nil {
			return written, fmt.Errorf("%s: %w", m.Name, err)
		}
		path := filepath.Join(dir, MethodFile(m.Name))
		if err := fig.Save(path, dpi); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
