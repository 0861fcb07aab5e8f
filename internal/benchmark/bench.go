package benchmark

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Scratch files written by every iteration and removed after it.
const (
	ConsolidatedFile = "consolidated.bin"
	VectorizedFile   = "vectorized.bin"
)

// Header is the CSV header of the benchmark results.
var Header = []string{"bytes_written", "consolidated_time", "vectorized_time"}

// Config controls the chunk counts and sizes a run sweeps over.
type Config struct {
	// Dir holds the scratch files.
	Dir string
	// MinChunks is the first chunk count; counts grow by Step while below MaxChunks.
	MinChunks  int
	MaxChunks  int
	Step       int
	ChunkBytes int
}

// DefaultConfig sweeps 32 to 992 chunks of 2 MiB, staying below IOVMax.
func DefaultConfig() Config {
	return Config{
		Dir:        ".",
		MinChunks:  32,
		MaxChunks:  IOVMax,
		Step:       32,
		ChunkBytes: 128 * 128 * 128,
	}
}

func (c Config) validate() error {
	if c.MinChunks <= 0 || c.Step <= 0 || c.ChunkBytes <= 0 {
		return fmt.Errorf("chunk counts, step and chunk size must be positive: min=%d step=%d chunk-bytes=%d",
			c.MinChunks, c.Step, c.ChunkBytes)
	}
	return nil
}

// Sample is the timing of both write strategies for one chunk count.
type Sample struct {
	BytesWritten int64
	Consolidated time.Duration
	Vectorized   time.Duration
}

// Record formats the sample as a results row, with times in whole milliseconds.
func (s Sample) Record() []string {
	return []string{
		strconv.FormatInt(s.BytesWritten, 10),
		strconv.FormatInt(s.Consolidated.Milliseconds(), 10),
		strconv.FormatInt(s.Vectorized.Milliseconds(), 10),
	}
}

// MakeChunks allocates nchunks zeroed buffers of size bytes each.
func MakeChunks(nchunks, size int) [][]byte {
	chunks := make([][]byte, nchunks)
	for i := range chunks {
		chunks[i] = make([]byte, size)
	}
	return chunks
}

// Kernel times a consolidated and a vectorized write of nchunks chunks into dir.
// The consolidated timing includes building the shard.
func Kernel(dir string, nchunks, chunkBytes int) (Sample, error) {
	chunks := MakeChunks(nchunks, chunkBytes)
	sample := Sample{BytesWritten: int64(nchunks) * int64(chunkBytes)}

	start := time.Now()
	if err := WriteConsolidated(filepath.Join(dir, ConsolidatedFile), Consolidate(chunks)); err != nil {
		return sample, err
	}
	sample.Consolidated = time.Since(start)

	start = time.Now()
	if err := WriteVectorized(filepath.Join(dir, VectorizedFile), chunks); err != nil {
		return sample, err
	}
	sample.Vectorized = time.Since(start)
	return sample, nil
}

// Run sweeps the configured chunk counts and writes one CSV row per successful
// iteration to out. A failing iteration is logged and skipped.
func Run(ctx context.Context, cfg Config, out io.Writer) ([]Sample, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	w := csv.NewWriter(out)
	if err := w.Write(Header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	w.Flush()

	var samples []Sample
	for nchunks := cfg.MinChunks; nchunks < cfg.MaxChunks; nchunks += cfg.Step {
		if ctx.Err() != nil {
			return samples, fmt.Errorf("benchmark interrupted: %w", ctx.Err())
		}

		sample, err := Kernel(cfg.Dir, nchunks, cfg.ChunkBytes)
		cleanup(cfg.Dir)
		if err != nil {
			log.Printf("benchmark: error at %d chunks: %v", nchunks, err)
			continue
		}

		if err := w.Write(sample.Record()); err != nil {
			return samples, fmt.Errorf("failed to write results: %w", err)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return samples, fmt.Errorf("failed to write results: %w", err)
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

func cleanup(dir string) {
	for _, name := range []string{ConsolidatedFile, VectorizedFile} {
		if err := os.Remove(filepath.Join(dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("benchmark: failed to remove %s: %v", name, err)
		}
	}
}
