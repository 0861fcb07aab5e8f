package report

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/iwanhae/vecbench/internal/analysis"
	"github.com/iwanhae/vecbench/internal/config"
	"github.com/iwanhae/vecbench/internal/metrics"
	"github.com/iwanhae/vecbench/internal/plots"
	"github.com/iwanhae/vecbench/internal/storage"
	"github.com/iwanhae/vecbench/internal/utils"
)

var section = strings.Repeat("=", 50)

// Result is everything a report run produced.
type Result struct {
	Datasets        []*storage.Dataset
	Skipped         utils.MultiError
	MethodSummaries []analysis.MethodSummary
	RatioSummaries  []analysis.RatioSummary
	// Artifacts are the written file paths, in write order.
	Artifacts []string
}

// Run loads every benchmark file under cfg.DataDir, summarizes the runtimes
// and ratios, and writes the figures and summary tables to cfg.OutputDir.
// Progress and summaries are printed to out.
//
// A directory without matching files is not an error: the returned result is empty.
func Run(ctx context.Context, cfg *config.Config, out io.Writer) (*Result, error) {
	store, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	loaded, err := store.LoadDir(ctx, cfg.DataDir, cfg.Patterns)
	if err != nil {
		return nil, err
	}
	for _, f := range loaded.Files {
		if f.Err != nil {
			fmt.Fprintf(out, "Error loading %s: %v\n", f.Path, f.Err)
			continue
		}
		fmt.Fprintf(out, "Loaded %s: %d rows\n", f.Dataset.Name, f.Dataset.Len())
	}

	result := &Result{Datasets: loaded.Datasets, Skipped: loaded.Skipped}
	if len(result.Datasets) == 0 {
		fmt.Fprintln(out, "No CSV files found! Make sure your CSV files are in the current directory.")
		fmt.Fprintln(out, "Expected files like: platform.csv")
		return result, nil
	}
	for _, ds := range result.Datasets {
		info, err := store.Inspect(ctx, ds.Name, storage.DefaultHeadRows)
		if err != nil {
			return nil, err
		}
		FprintTableInfo(out, info)
	}
	fmt.Fprintf(out, "\nFound %d platform datasets\n", len(result.Datasets))
	fmt.Fprintf(out, "\n%s\nCREATING VISUALIZATIONS\n%s\n", section, section)

	fmt.Fprintln(out, "Calculating performance ratios...")
	tables, err := analysis.RatioTables(result.Datasets)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate ratios: %w", err)
	}

	result.MethodSummaries, err = analysis.MethodSummaries(result.Datasets)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize runtimes: %w", err)
	}
	analysis.FprintMethodSummaries(out, result.MethodSummaries)

	result.RatioSummaries, err = analysis.RatioSummaries(tables)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize ratios: %w", err)
	}
	analysis.FprintRatioSummaries(out, result.RatioSummaries)

	if cfg.RuntimePlots {
		written, err := plots.WriteRuntimePlots(cfg.OutputDir, tables, cfg.PlotDPI)
		for _, path := range written {
			result.addArtifact(path, "png")
		}
		if err != nil {
			return nil, fmt.Errorf("failed to write runtime plots: %w", err)
		}
	}

	fmt.Fprintf(out, "\n%s\nCREATING STATISTICAL VISUALIZATIONS\n%s\n", section, section)
	if err := result.write(cfg.OutputDir, plots.StatisticalSummaryFile, "png", func(path string) error {
		return plots.WriteStatisticalSummary(path, result.MethodSummaries, cfg.PlotDPI)
	}); err != nil {
		return nil, err
	}
	if err := result.write(cfg.OutputDir, plots.PerformanceRatiosFile, "png", func(path string) error {
		return plots.WritePerformanceRatios(path, result.RatioSummaries, cfg.PlotDPI)
	}); err != nil {
		return nil, err
	}
	if err := result.write(cfg.OutputDir, analysis.MethodSummaryFile, "csv", func(path string) error {
		return analysis.WriteMethodSummaryCSV(path, result.MethodSummaries)
	}); err != nil {
		return nil, err
	}
	if err := result.write(cfg.OutputDir, analysis.RatioSummaryFile, "csv", func(path string) error {
		return analysis.WriteRatioSummaryCSV(path, result.RatioSummaries)
	}); err != nil {
		return nil, err
	}

	fmt.Fprintln(out, "\nSummary data saved to:")
	for _, path := range result.Artifacts {
		fmt.Fprintf(out, "- %s\n", path)
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			return nil, fmt.Errorf("failed to write metrics: %w", err)
		}
		log.Printf("report: metrics written to %s", cfg.MetricsFile)
	}
	return result, nil
}

func (r *Result) write(dir, name, kind string, fn func(path string) error) error {
	path := filepath.Join(dir, name)
	if err := fn(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	r.addArtifact(path, kind)
	return nil
}

func (r *Result) addArtifact(path, kind string) {
	r.Artifacts = append(r.Artifacts, path)
	metrics.ArtifactsWritten.WithLabelValues(kind).Inc()
	log.Printf("report: wrote %s", path)
}

// FprintTableInfo prints the shape, columns, chunk range and preview rows of a table.
func FprintTableInfo(w io.Writer, info *storage.TableInfo) {
	columns := info.ColumnNames()
	fmt.Fprintf(w, "\n=== %s ===\n", info.Name)
	fmt.Fprintf(w, "Shape: (%d, %d)\n", info.Rows, len(columns))
	fmt.Fprintf(w, "Columns: [%s]\n", strings.Join(columns, ", "))
	fmt.Fprintf(w, "Chunks range: %.2f to %.2f\n", info.ChunksMin, info.ChunksMax)
	fmt.Fprintln(w, "Sample data:")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "\t%s\t\n", strings.Join(columns, "\t"))
	for i, row := range info.Head {
		cells := make([]string, len(columns))
		for j, c := range columns {
			cells[j] = fmt.Sprint(row[c])
		}
		fmt.Fprintf(tw, "%d\t%s\t\n", i, strings.Join(cells, "\t"))
	}
	tw.Flush()
}
