package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"portfolio-dashboard/internal/dashboard"
	"portfolio-dashboard/internal/llm/claude"
	"portfolio-dashboard/internal/logger"
	"portfolio-dashboard/internal/mailer"
	"portfolio-dashboard/internal/marketdata"
	"portfolio-dashboard/internal/news"
	"portfolio-dashboard/internal/report"
	"portfolio-dashboard/internal/store"
	"portfolio-dashboard/internal/trace"

	"github.com/joho/godotenv"
)

// initializeSystem initializes environment, logger, and tracer
func initializeSystem() error {
	// Load environment variables
	_ = godotenv.Load()

	// Initialize logger
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize tracer
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// loadConfig loads and validates the configuration
func loadConfig(ctx context.Context, path string) (*store.Config, error) {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}

	if cfg.DebugMode {
		logCfg := logger.LoadConfigFromEnv()
		logCfg.Level = "DEBUG"
		if err := logger.InitWithConfig(logCfg); err != nil {
			logger.Warn(ctx, "Failed to enable debug logging", "error", err)
		}
	}

	return cfg, nil
}

// initializeRunner wires the full report pipeline from the configuration.
// A missing model API key is fatal; a missing mail password only disables
// email delivery.
func initializeRunner(ctx context.Context, cfg *store.Config) *dashboard.Runner {
	provider, err := marketdata.NewProvider(cfg)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to initialize market data provider", err)
		os.Exit(1)
	}
	if cfg.Data.Source == "MOCK" {
		logger.Warn(ctx, "Using MOCK market data for testing")
	}

	analyzer, err := claude.NewAnalyzer(cfg)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to initialize analyzer", err)
		os.Exit(1)
	}

	scraper := news.NewScraper(30 * time.Second)

	mail := mailer.New(cfg, os.Getenv("EMAIL_PASSWORD"))
	if os.Getenv("EMAIL_PASSWORD") == "" {
		logger.Warn(ctx, "EMAIL_PASSWORD not set - email delivery disabled")
	}

	return dashboard.NewRunner(cfg, provider, analyzer, scraper, report.NewRenderer(cfg), mail)
}
