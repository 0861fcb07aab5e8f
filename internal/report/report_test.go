package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/iwanhae/vecbench/internal/analysis"
	"github.com/iwanhae/vecbench/internal/config"
	"github.com/iwanhae/vecbench/internal/metrics"
	"github.com/iwanhae/vecbench/internal/plots"
	"github.com/iwanhae/vecbench/internal/storage"
)

// ReportTestSuite runs the report end to end against temporary directories.
type ReportTestSuite struct {
	suite.Suite
	dataDir string
	cfg     *config.Config
	out     bytes.Buffer
}

// SetupTest creates fresh data and output directories for each test.
func (s *ReportTestSuite) SetupTest() {
	s.dataDir = s.T().TempDir()
	s.cfg = config.Default()
	s.cfg.DataDir = s.dataDir
	s.cfg.OutputDir = filepath.Join(s.T().TempDir(), "out")
	s.cfg.PlotDPI = 40
	s.out.Reset()
}

// TestReportSuite runs the entire report test suite.
func TestReportSuite(t *testing.T) {
	suite.Run(t, new(ReportTestSuite))
}

// writeResults writes a benchmark CSV whose vectorized runtime is factor times the consolidated one.
func (s *ReportTestSuite) writeResults(name string, rows int, factor float64) {
	var b strings.Builder
	b.WriteString("bytes_written,consolidated_time,vectorized_time\n")
	for i := 1; i <= rows; i++ {
		fmt.Fprintf(&b, "%d,%d,%g\n", 32*i*storage.BytesPerChunk, 100*i, factor*float64(100*i))
	}
	s.writeFile(name, b.String())
}

func (s *ReportTestSuite) writeFile(name, content string) {
	require.NoError(s.T(), os.WriteFile(filepath.Join(s.dataDir, name), []byte(content), 0644))
}

func (s *ReportTestSuite) run() *Result {
	result, err := Run(context.Background(), s.cfg, &s.out)
	require.NoError(s.T(), err)
	return result
}

// TestNoFiles verifies an empty directory prints the no data message and writes nothing.
func (s *ReportTestSuite) TestNoFiles() {
	result := s.run()

	require.Empty(s.T(), result.Datasets)
	require.Empty(s.T(), result.Artifacts)
	require.Contains(s.T(), s.out.String(), "No CSV files found!")
	require.Contains(s.T(), s.out.String(), "Expected files like: platform.csv")
	_, err := os.Stat(s.cfg.OutputDir)
	require.True(s.T(), os.IsNotExist(err))
}

// TestOutputsCreated verifies every artifact is written and the summaries are consistent.
func (s *ReportTestSuite) TestOutputsCreated() {
	s.writeResults("linux-latest.csv", 5, 0.5)
	s.writeResults("macos.csv", 4, 2)

	pngBefore := testutil.ToFloat64(metrics.ArtifactsWritten.WithLabelValues("png"))
	csvBefore := testutil.ToFloat64(metrics.ArtifactsWritten.WithLabelValues("csv"))

	result := s.run()

	require.Len(s.T(), result.Datasets, 2)
	require.Equal(s.T(), []string{
		filepath.Join(s.cfg.OutputDir, plots.StatisticalSummaryFile),
		filepath.Join(s.cfg.OutputDir, plots.PerformanceRatiosFile),
		filepath.Join(s.cfg.OutputDir, analysis.MethodSummaryFile),
		filepath.Join(s.cfg.OutputDir, analysis.RatioSummaryFile),
	}, result.Artifacts)
	for _, path := range result.Artifacts {
		info, err := os.Stat(path)
		require.NoError(s.T(), err)
		require.Greater(s.T(), info.Size(), int64(0))
	}
	require.Equal(s.T(), pngBefore+2, testutil.ToFloat64(metrics.ArtifactsWritten.WithLabelValues("png")))
	require.Equal(s.T(), csvBefore+2, testutil.ToFloat64(metrics.ArtifactsWritten.WithLabelValues("csv")))

	require.Len(s.T(), result.RatioSummaries, 2)
	require.Equal(s.T(), "linux-latest", result.RatioSummaries[0].Platform)
	require.InDelta(s.T(), 0.5, result.RatioSummaries[0].MeanRatio, 1e-12)
	require.InDelta(s.T(), -50.0, result.RatioSummaries[0].MeanPctChange, 1e-9)
	require.InDelta(s.T(), 2.0, result.RatioSummaries[1].MedianRatio, 1e-12)

	f, err := os.Open(filepath.Join(s.cfg.OutputDir, analysis.MethodSummaryFile))
	require.NoError(s.T(), err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(s.T(), err)
	require.Len(s.T(), records, 5)
	require.Equal(s.T(), []string{"linux-latest", "Consolidated", "300", "300"}, records[1][:4])

	out := s.out.String()
	require.Contains(s.T(), out, "Loaded linux-latest: 5 rows")
	require.Contains(s.T(), out, "=== macos ===")
	require.Contains(s.T(), out, "Shape: (4, 4)")
	require.Contains(s.T(), out, "Columns: [bytes_written, consolidated_time, vectorized_time, chunks]")
	require.Contains(s.T(), out, "Chunks range: 32.00 to 160.00")
	require.Contains(s.T(), out, "Found 2 platform datasets")
	require.Contains(s.T(), out, "Summary data saved to:")
}

// TestCorruptFileSkipped verifies a bad file is reported and the rest of the report still runs.
func (s *ReportTestSuite) TestCorruptFileSkipped() {
	s.writeResults("linux.csv", 3, 0.8)
	s.writeFile("garbage-run.csv", "foo,bar\n1,2\n")

	result := s.run()

	require.Len(s.T(), result.Datasets, 1)
	require.Equal(s.T(), 1, result.Skipped.Len())
	require.Len(s.T(), result.Artifacts, 4)
	require.Contains(s.T(), s.out.String(), "Error loading "+filepath.Join(s.dataDir, "garbage-run.csv"))
}

// TestLoadMessagesInLoadOrder verifies load and skip messages follow discovery order.
func (s *ReportTestSuite) TestLoadMessagesInLoadOrder() {
	s.writeResults("linux-latest.csv", 2, 0.5)
	s.writeFile("broken-run.csv", "foo,bar\n1,2\n")
	s.writeResults("macos.csv", 2, 2)

	s.run()

	out := s.out.String()
	loadedLinux := strings.Index(out, "Loaded linux-latest: 2 rows")
	skipped := strings.Index(out, "Error loading "+filepath.Join(s.dataDir, "broken-run.csv"))
	loadedMacos := strings.Index(out, "Loaded macos: 2 rows")
	require.GreaterOrEqual(s.T(), loadedLinux, 0)
	require.Greater(s.T(), skipped, loadedLinux)
	require.Greater(s.T(), loadedMacos, skipped)
}

// TestRuntimePlots verifies the optional line plots are written before the summary figures.
func (s *ReportTestSuite) TestRuntimePlots() {
	s.writeResults("linux.csv", 3, 0.8)
	s.cfg.RuntimePlots = true

	result := s.run()

	require.Len(s.T(), result.Artifacts, 7)
	require.Equal(s.T(), filepath.Join(s.cfg.OutputDir, plots.RuntimeFile("linux")), result.Artifacts[0])
}

// TestMissingRuntimeColumnFails verifies a loadable file without runtime columns terminates the run.
func (s *ReportTestSuite) TestMissingRuntimeColumnFails() {
	s.writeFile("linux.csv", "bytes_written,consolidated_time\n2097152,10\n")

	_, err := Run(context.Background(), s.cfg, &s.out)
	require.ErrorIs(s.T(), err, storage.ErrMissingColumn)
}

// TestMetricsFile verifies the textfile is written when configured.
func (s *ReportTestSuite) TestMetricsFile() {
	s.writeResults("linux.csv", 2, 1)
	s.cfg.MetricsFile = filepath.Join(s.T().TempDir(), "vecbench.prom")

	s.run()

	_, err := os.Stat(s.cfg.MetricsFile)
	require.NoError(s.T(), err)
}

func TestFprintTableInfo(t *testing.T) {
	var buf bytes.Buffer
	FprintTableInfo(&buf, &storage.TableInfo{
		Name: "empty",
		Columns: []storage.ColumnInfo{
			{Name: "bytes_written", Type: "BIGINT"},
			{Name: "chunks", Type: "DOUBLE"},
		},
		ChunksMin: math.NaN(),
		ChunksMax: math.NaN(),
	})
	out := buf.String()
	require.Contains(t, out, "=== empty ===")
	require.Contains(t, out, "Shape: (0, 2)")
	require.Contains(t, out, "Chunks range: NaN to NaN")
}
