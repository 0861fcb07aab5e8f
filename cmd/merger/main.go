package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwanhae/vecbench/internal/storage"
)

func main() {
	// Define flags
	outputFile := flag.String("o", "", "Output file path, .csv or .parquet (required)")
	flag.Parse()

	// Validate output flag
	if *outputFile == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) is required")
		flag.Usage()
		os.Exit(1)
	}
	format, err := storage.FormatFromPath(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	// Get input files from remaining arguments
	inputFiles := flag.Args()
	if len(inputFiles) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one input csv file is required")
		flag.Usage()
		os.Exit(1)
	}

	// Validate input files exist
	for _, file := range inputFiles {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			log.Fatalf("Error: input file does not exist: %s", file)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	merged, err := mergeResultFiles(ctx, inputFiles, *outputFile, format)
	if err != nil {
		log.Fatalf("Error merging result files: %v", err)
	}

	fmt.Printf("Successfully merged %d of %d files into %s\n", merged, len(inputFiles), *outputFile)
}

// mergeResultFiles loads every input as a dataset and exports them as one
// table tagged with a dataset column. Unreadable inputs are skipped.
func mergeResultFiles(ctx context.Context, inputFiles []string, outputFile string, format storage.ExportFormat) (int, error) {
	store, err := storage.New("")
	if err != nil {
		return 0, err
	}
	defer store.Close()

	result, err := store.LoadFiles(ctx, inputFiles)
	if err != nil {
		return 0, err
	}
	if len(result.Datasets) == 0 {
		return 0, fmt.Errorf("no input could be loaded: %w", result.Skipped.ErrOrNil())
	}

	if err := store.Export(ctx, outputFile, format); err != nil {
		return 0, err
	}
	return len(result.Datasets), nil
}
