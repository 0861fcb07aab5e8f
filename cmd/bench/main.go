package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwanhae/vecbench/internal/benchmark"
)

func main() {
	def := benchmark.DefaultConfig()

	// Define flags
	outputFile := flag.String("o", "results.csv", "Results csv file path, also echoed to stdout")
	dir := flag.String("dir", def.Dir, "Directory for the scratch files")
	minChunks := flag.Int("min", def.MinChunks, "First chunk count")
	maxChunks := flag.Int("max", def.MaxChunks, "Chunk count upper bound (exclusive)")
	step := flag.Int("step", def.Step, "Chunk count increment")
	chunkBytes := flag.Int("chunk-bytes", def.ChunkBytes, "Size of each chunk in bytes")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-stopCh
		log.Println("Received shutdown signal, stopping after the current iteration...")
		cancel()
	}()

	f, err := os.Create(*outputFile)
	if err != nil {
		log.Fatalf("Error: failed to create %s: %v", *outputFile, err)
	}
	defer f.Close()

	cfg := benchmark.Config{
		Dir:        *dir,
		MinChunks:  *minChunks,
		MaxChunks:  *maxChunks,
		Step:       *step,
		ChunkBytes: *chunkBytes,
	}
	samples, err := benchmark.Run(ctx, cfg, io.MultiWriter(os.Stdout, f))
	if err != nil {
		log.Fatalf("Error running benchmark: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("Error: failed to close %s: %v", *outputFile, err)
	}

	fmt.Fprintf(os.Stderr, "Wrote %d samples to %s\n", len(samples), *outputFile)
}
