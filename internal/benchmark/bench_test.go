package benchmark

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// patterned returns chunks whose bytes identify their chunk and offset.
func patterned(nchunks, size int) [][]byte {
	chunks := MakeChunks(nchunks, size)
	for i, c := range chunks {
		for j := range c {
			c[j] = byte(i*7 + j)
		}
	}
	return chunks
}

func TestConsolidate(t *testing.T) {
	require.Equal(t, []byte("abcdef"), Consolidate([][]byte{[]byte("ab"), nil, []byte("cde"), []byte("f")}))
	require.Empty(t, Consolidate(nil))
}

func TestWritesProduceSameShard(t *testing.T) {
	dir := t.TempDir()
	chunks := patterned(5, 4096)
	want := Consolidate(chunks)

	consolidated := filepath.Join(dir, ConsolidatedFile)
	require.NoError(t, WriteConsolidated(consolidated, want))
	got, err := os.ReadFile(consolidated)
	require.NoError(t, err)
	require.Equal(t, want, got)

	vectorized := filepath.Join(dir, VectorizedFile)
	require.NoError(t, WriteVectorized(vectorized, chunks))
	got, err = os.ReadFile(vectorized)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestWriteVectorizedBatchesAboveIOVMax(t *testing.T) {
	path := filepath.Join(t.TempDir(), VectorizedFile)
	chunks := patterned(IOVMax+300, 16)
	chunks[10] = nil

	require.NoError(t, WriteVectorized(path, chunks))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, Consolidate(chunks), got)
}

func TestWriteOverwritesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConsolidatedFile)
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{1}, 100), 0644))

	require.NoError(t, WriteConsolidated(path, []byte{2, 2}))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte{2, 2}, got)
}

func TestWriteToMissingDirectoryFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", ConsolidatedFile)
	require.Error(t, WriteConsolidated(path, []byte{1}))
	require.Error(t, WriteVectorized(path, [][]byte{{1}}))
}

func TestSampleRecord(t *testing.T) {
	s := Sample{BytesWritten: 67108864, Consolidated: 1500 * time.Microsecond, Vectorized: 42 * time.Millisecond}
	require.Equal(t, []string{"67108864", "1", "42"}, s.Record())
}

func TestRun(t *testing.T) {
	cfg := Config{Dir: filepath.Join(t.TempDir(), "scratch"), MinChunks: 2, MaxChunks: 8, Step: 2, ChunkBytes: 1024}

	var out bytes.Buffer
	samples, err := Run(context.Background(), cfg, &out)
	require.NoError(t, err)
	require.Len(t, samples, 3)

	records, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	require.Equal(t, [][]string{
		Header,
		samples[0].Record(),
		samples[1].Record(),
		samples[2].Record(),
	}, records)
	require.Equal(t, "2048", records[1][0])
	require.Equal(t, "6144", records[3][0])

	for _, name := range []string{ConsolidatedFile, VectorizedFile} {
		_, err := os.Stat(filepath.Join(cfg.Dir, name))
		require.True(t, os.IsNotExist(err), "%s left behind", name)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := Config{Dir: t.TempDir(), MinChunks: 1, MaxChunks: 4, Step: 1, ChunkBytes: 8}
	var out bytes.Buffer
	samples, err := Run(ctx, cfg, &out)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, samples)
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Step = 0
	_, err := Run(context.Background(), cfg, &bytes.Buffer{})
	require.Error(t, err)
}
