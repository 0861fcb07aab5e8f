package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwanhae/vecbench/internal/config"
	"github.com/iwanhae/vecbench/internal/metrics"
	"github.com/iwanhae/vecbench/internal/report"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-stopCh
		log.Println("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	cfg := config.Load()
	metrics.Init()

	result, err := report.Run(ctx, cfg, os.Stdout)
	if err != nil {
		log.Fatalf("failed to build report: %v", err)
	}
	log.Printf("Report finished: %d dataset(s), %d skipped, %d artifact(s)",
		len(result.Datasets), result.Skipped.Len(), len(result.Artifacts))
}
