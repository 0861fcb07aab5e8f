package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// DefaultPatterns are the globs searched for benchmark result files, in order.
var DefaultPatterns = []string{"*latest.csv", "*-*.csv", "*.csv"}

// Config holds all configuration for the report, loaded from environment variables.
type Config struct {
	DataDir      string
	Patterns     []string
	OutputDir    string
	PlotDPI      int
	RuntimePlots bool
	DBPath       string
	MetricsFile  string
}

// Default returns the configuration the report runs with when no environment overrides are set.
func Default() *Config {
	return &Config{
		DataDir:   ".",
		Patterns:  append([]string(nil), DefaultPatterns...),
		OutputDir: ".",
		PlotDPI:   300,
	}
}

// Load reads configuration from environment variables and returns a new Config struct.
// It falls back to default values if environment variables are not set or invalid.
func Load() *Config {
	def := Default()

	cfg := &Config{
		DataDir:      getEnv("DATA_DIR", def.DataDir),
		Patterns:     getEnvAsList("FILE_PATTERNS", def.Patterns),
		OutputDir:    getEnv("OUTPUT_DIR", def.OutputDir),
		PlotDPI:      int(getEnvAsInt64("PLOT_DPI", int64(def.PlotDPI))),
		RuntimePlots: getEnvAsBool("RUNTIME_PLOTS", def.RuntimePlots),
		DBPath:       getEnv("DB_PATH", def.DBPath),
		MetricsFile:  getEnv("METRICS_FILE", def.MetricsFile),
	}
	if cfg.PlotDPI <= 0 {
		log.Printf("config: PLOT_DPI must be positive, got %d. using fallback %d", cfg.PlotDPI, def.PlotDPI)
		cfg.PlotDPI = def.PlotDPI
	}

	log.Printf("config: loaded configuration: DataDir=%s, Patterns=%v, OutputDir=%s, PlotDPI=%d, RuntimePlots=%t",
		cfg.DataDir, cfg.Patterns, cfg.OutputDir, cfg.PlotDPI, cfg.RuntimePlots)
	return cfg
}

// getEnv retrieves a non-empty string environment variable or returns a fallback value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt64 retrieves an int64 environment variable or returns a fallback value.
func getEnvAsInt64(key string, fallback int64) int64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		log.Printf("config: invalid value for %s: %v. using fallback %d", key, err, fallback)
		return fallback
	}
	return value
}

// getEnvAsBool retrieves a boolean environment variable or returns a fallback value.
func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("config: invalid value for %s: %v. using fallback %t", key, err, fallback)
		return fallback
	}
	return value
}

// getEnvAsList retrieves a comma separated environment variable or returns a fallback value.
// Empty elements are dropped.
func getEnvAsList(key string, fallback []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}

	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		log.Printf("config: %s has no usable entries. using fallback %v", key, fallback)
		return fallback
	}
	return values
}
