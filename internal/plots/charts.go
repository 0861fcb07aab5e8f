package plots

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	colorConsolidated = color.RGBA{0x1f, 0x77, 0xb4, 255} // blue
	colorVectorized   = color.RGBA{0xff, 0x7f, 0x0e, 255} // orange
	colorEfficiency   = color.RGBA{0x2c, 0xa0, 0x2c, 180} // green
	colorBetter       = color.RGBA{0x2c, 0xa0, 0x2c, 180} // green
	colorWorse        = color.RGBA{0xd6, 0x27, 0x28, 180} // red
	colorBaseline     = color.RGBA{0, 0, 0, 180}
	colorAlarm        = color.RGBA{255, 0, 0, 180}
)

// barSeries is one colored series of a grouped bar chart.
type barSeries struct {
	label  string
	values []float64
	color  color.Color
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	return p
}

// barWidth shrinks bars as the number of bars in the chart grows.
func barWidth(bars int) vg.Length {
	w := 240 / float64(max(bars, 1))
	return vg.Points(math.Max(4, math.Min(w, 28)))
}

// groupedBars draws one bar per series side by side for every category.
func groupedBars(p *plot.Plot, categories []string, series []barSeries) error {
	w := barWidth(len(categories) * len(series))
	for i, s := range series {
		bars, err := plotter.NewBarChart(finite(s.values), w)
		if err != nil {
			return fmt.Errorf("failed to create %s bars: %w", s.label, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = s.color
		bars.Offset = w*vg.Length(i) - w*vg.Length(len(series)-1)/2

		p.Add(bars)
		p.Legend.Add(s.label, bars)
	}
	nominalX(p, categories)
	return nil
}

// signedBars draws one bar per category, colored by whether the value beats the baseline.
func signedBars(p *plot.Plot, categories []string, values []float64, better func(float64) bool) error {
	w := barWidth(len(categories))
	for i, v := range finite(values) {
		bars, err := plotter.NewBarChart(plotter.Values{v}, w)
		if err != nil {
			return fmt.Errorf("failed to create bar for %s: %w", categories[i], err)
		}
		bars.XMin = float64(i)
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = colorWorse
		if better(values[i]) {
			bars.Color = colorBetter
		}
		p.Add(bars)
	}
	nominalX(p, categories)
	return nil
}

// baseline draws a dashed horizontal reference line and keeps it inside the Y range.
func baseline(p *plot.Plot, y float64, label string, c color.Color) {
	fn := plotter.NewFunction(func(float64) float64 { return y })
	fn.Color = c
	fn.Width = vg.Points(1.5)
	fn.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	p.Add(fn)
	p.Legend.Add(label, fn)

	if p.Y.Max < y {
		p.Y.Max = y
	}
	if p.Y.Min > y {
		p.Y.Min = y
	}
}

// barLabels writes a text label at the end of every bar, above positive bars and below negative ones.
func barLabels(p *plot.Plot, values []float64, labels []string) error {
	xys := make(plotter.XYs, len(values))
	for i, v := range finite(values) {
		xys[i].X = float64(i)
		xys[i].Y = v
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return fmt.Errorf("failed to create bar labels: %w", err)
	}
	for i := range l.TextStyle {
		l.TextStyle[i].XAlign = draw.XCenter
		l.TextStyle[i].YAlign = draw.YBottom
		if xys[i].Y < 0 {
			l.TextStyle[i].YAlign = draw.YTop
		}
	}
	p.Add(l)
	return nil
}

// headroom grows the Y range so labels above and below bars stay visible.
func headroom(p *plot.Plot) {
	span := p.Y.Max - p.Y.Min
	if span <= 0 {
		span = 1
	}
	p.Y.Max += span * 0.1
	if p.Y.Min < 0 {
		p.Y.Min -= span * 0.1
	}
}

// nominalX labels the categories along X, rotated so long dataset names fit.
func nominalX(p *plot.Plot, categories []string) {
	p.NominalX(categories...)
	p.X.Min = -0.5
	p.X.Max = float64(len(categories)) - 0.5
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.Legend.Top = true
}

// seriesColors returns n distinct colors, cycling through a qualitative palette.
func seriesColors(n int) []color.Color {
	size := min(max(n, 3), 9)
	colors := []color.Color{colorConsolidated, colorVectorized, colorEfficiency, colorWorse}
	if pal, err := brewer.GetPalette(brewer.TypeQualitative, "Set1", size); err == nil {
		colors = pal.Colors()
	}

	out := make([]color.Color, n)
	for i := range out {
		out[i] = colors[i%len(colors)]
	}
	return out
}

// finite replaces NaN and infinite values with zero; gonum plotters reject them
// and an undefined statistic is drawn as an empty bar.
func finite(values []float64) plotter.Values {
	out := make(plotter.Values, len(values))
	for i, v := range values {
		if isFinite(v) {
			out[i] = v
		}
	}
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
