// Package main is the entry point for skirmish.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/samdwyer/skirmish/internal/config"
	"github.com/samdwyer/skirmish/internal/observability"
	"github.com/samdwyer/skirmish/internal/session"
	"github.com/samdwyer/skirmish/internal/telemetry"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	flag.Parse()

	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "skirmish: %v\n", err)
		return 2
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "skirmish: %v\n", err)
		return 2
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry.Enabled)
	if err != nil {
		logger.Warn("telemetry setup failed, continuing without tracing", zap.Error(err))
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn("telemetry shutdown failed", zap.Error(err))
			}
		}()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		logger.Error("creating screen", zap.Error(err))
		fmt.Fprintf(os.Stderr, "skirmish: %v\n", err)
		return 1
	}

	sess, err := session.New(cfg, screen, logger)
	if err != nil {
		logger.Error("starting session", zap.Error(err))
		fmt.Fprintf(os.Stderr, "skirmish: %v\n", err)
		return 1
	}

	runErr := sess.Run(ctx)
	sess.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "skirmish: %v\n", runErr)
		return 1
	}
	return 0
}
