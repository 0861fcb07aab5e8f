package plots

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Output file names of the two summary figures.
const (
	StatisticalSummaryFile = "statistical_summary.png"
	PerformanceRatiosFile  = "performance_ratios.png"
)

// DefaultDPI is the resolution the figures are rendered at when none is given.
const DefaultDPI = 300

// Figure is a grid of plots rendered onto a single image.
type Figure struct {
	Width  vg.Length
	Height vg.Length
	Plots  [][]*plot.Plot
}

// Save renders the figure as a PNG at the given DPI.
func (f *Figure) Save(path string, dpi int) error {
	if len(f.Plots) == 0 || len(f.Plots[0]) == 0 {
		return fmt.Errorf("figure has no plots")
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	img := vgimg.NewWith(vgimg.UseWH(f.Width, f.Height), vgimg.UseDPI(dpi))
	dc := draw.New(img)

	t := draw.Tiles{
		Rows:      len(f.Plots),
		Cols:      len(f.Plots[0]),
		PadX:      vg.Millimeter * 8,
		PadY:      vg.Millimeter * 8,
		PadTop:    vg.Millimeter * 4,
		PadBottom: vg.Millimeter * 4,
		PadLeft:   vg.Millimeter * 4,
		PadRight:  vg.Millimeter * 4,
	}

	canvases := plot.Align(f.Plots, t, dc)
	for j := range f.Plots {
		for i := range f.Plots[j] {
			if f.Plots[j][i] != nil {
				f.Plots[j][i].Draw(canvases[j][i])
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(file); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}
