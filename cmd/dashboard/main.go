package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"portfolio-dashboard/internal/logger"
	"portfolio-dashboard/internal/trace"

	"github.com/robfig/cron/v3"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	schedule := flag.String("schedule", "", "cron expression; overrides schedule_cron from the config")
	once := flag.Bool("once", false, "run a single report cycle and exit, ignoring any schedule")
	flag.Parse()

	must(initializeSystem())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer trace.Shutdown(context.Background())

	cfg, err := loadConfig(ctx, *configPath)
	must(err)

	runner := initializeRunner(ctx, cfg)

	cronSpec := cfg.ScheduleCron
	if *schedule != "" {
		cronSpec = *schedule
	}

	if *once || cronSpec == "" {
		must(runner.Run(ctx))
		return
	}

	// Daemon mode: run on the cron schedule until interrupted.
	c := cron.New()
	_, err = c.AddFunc(cronSpec, func() {
		if err := runner.Run(ctx); err != nil {
			logger.ErrorWithErr(ctx, "Scheduled run failed", err)
		}
	})
	must(err)

	logger.Info(ctx, "Dashboard scheduler started", "cron", cronSpec)
	c.Start()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	logger.Info(ctx, "Shutting down...")
	<-c.Stop().Done()
}
