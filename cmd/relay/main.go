package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/nguyentantai21042004/meeting-scribe/internal/config"
	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
	"github.com/nguyentantai21042004/meeting-scribe/internal/relay"
	"github.com/nguyentantai21042004/meeting-scribe/internal/server"
	"github.com/nguyentantai21042004/meeting-scribe/internal/session"
	"github.com/nguyentantai21042004/meeting-scribe/internal/summarizer"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	config.LoadDefaultEnv()

	// Load configuration
	cfg, err := config.LoadOptional(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewWithWriter(cfg.Logging.Level, os.Stdout, cfg.Logging.Format == "json")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Meeting Scribe Relay")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Model: %s", cfg.Gemini.Model)
	log.Info(ctx, "Max concurrent summaries: %d (0 = unlimited)", cfg.Performance.MaxConcurrentSummaries)
	log.Info(ctx, "Single-flight stop: %v", cfg.Relay.SingleFlightStop)

	if !cfg.HasAPIKey() {
		log.Error(ctx, "GEMINI_API_KEY is missing. Every summary request will fail until it is set.")
	}

	// Initialize dependencies
	registry := session.NewMemory()
	defer registry.Close()

	sum := summarizer.New(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Timeout, log)
	r := relay.New(registry, sum, log, relay.Options{
		SingleFlightStop:       cfg.Relay.SingleFlightStop,
		MaxConcurrentSummaries: cfg.Performance.MaxConcurrentSummaries,
	})
	srv := server.New(cfg.Server, r, log)

	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	if err := srv.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error(ctx, "Relay error: %v", err)
		os.Exit(1)
	}
}
