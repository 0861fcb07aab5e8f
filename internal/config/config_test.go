package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DATA_DIR", "FILE_PATTERNS", "OUTPUT_DIR", "PLOT_DPI", "RUNTIME_PLOTS", "DB_PATH", "METRICS_FILE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	require.Equal(t, ".", cfg.DataDir)
	require.Equal(t, []string{"*latest.csv", "*-*.csv", "*.csv"}, cfg.Patterns)
	require.Equal(t, ".", cfg.OutputDir)
	require.Equal(t, 300, cfg.PlotDPI)
	require.False(t, cfg.RuntimePlots)
	require.Empty(t, cfg.DBPath)
	require.Empty(t, cfg.MetricsFile)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATA_DIR", "/data")
	t.Setenv("FILE_PATTERNS", " linux-*.csv , ,mac.csv")
	t.Setenv("OUTPUT_DIR", "/out")
	t.Setenv("PLOT_DPI", "96")
	t.Setenv("RUNTIME_PLOTS", "true")
	t.Setenv("METRICS_FILE", "/out/report.prom")

	cfg := Load()
	require.Equal(t, "/data", cfg.DataDir)
	require.Equal(t, []string{"linux-*.csv", "mac.csv"}, cfg.Patterns)
	require.Equal(t, "/out", cfg.OutputDir)
	require.Equal(t, 96, cfg.PlotDPI)
	require.True(t, cfg.RuntimePlots)
	require.Equal(t, "/out/report.prom", cfg.MetricsFile)
}

func TestLoadInvalidFallsBack(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name:  "non numeric dpi",
			key:   "PLOT_DPI",
			value: "high",
			check: func(t *testing.T, cfg *Config) { require.Equal(t, 300, cfg.PlotDPI) },
		},
		{
			name:  "negative dpi",
			key:   "PLOT_DPI",
			value: "-5",
			check: func(t *testing.T, cfg *Config) { require.Equal(t, 300, cfg.PlotDPI) },
		},
		{
			name:  "bad bool",
			key:   "RUNTIME_PLOTS",
			value: "sometimes",
			check: func(t *testing.T, cfg *Config) { require.False(t, cfg.RuntimePlots) },
		},
		{
			name:  "only separators",
			key:   "FILE_PATTERNS",
			value: ", ,",
			check: func(t *testing.T, cfg *Config) { require.Equal(t, DefaultPatterns, cfg.Patterns) },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			tc.check(t, Load())
		})
	}
}
