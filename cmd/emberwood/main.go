// Package main is the entry point for Emberwood.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/samdwyer/emberwood/internal/config"
	"github.com/samdwyer/emberwood/internal/game"
	"github.com/samdwyer/emberwood/internal/logger"
	"github.com/samdwyer/emberwood/internal/telemetry"
)

// Version is set at build time with -ldflags.
var Version = "dev"

func main() {
	logger.Init(logger.DefaultConfig(), os.Stderr)
	if err := run(); err != nil {
		slog.Error("emberwood failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Loads .env for local development, which makes
	// HONEYCOMB_EMBERWOOD_API_KEY available.
	cfg, dotenv, err := config.Load()
	if err != nil {
		return err
	}

	// The terminal belongs to the game, so logs go to a file.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	log := logger.Init(cfg.Logger(Version), logFile)
	if !dotenv {
		log.Debug(".env file not loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gameCfg := game.Config{
		Seed:           cfg.Seed,
		PlayerName:     cfg.PlayerName,
		AmbushChance:   cfg.AmbushChance,
		TracerProvider: telemetry.NoopProvider(),
	}
	if cfg.TelemetryEnabled {
		// Spans go to the global provider installed by Setup.
		gameCfg.TracerProvider = nil
		setupOTelEnv()
		shutdown, err := telemetry.Setup(ctx, Version)
		if err != nil {
			// Not fatal: the game still works without observability.
			log.Warn("telemetry setup failed", "error", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.Error("telemetry shutdown failed", "error", err)
				}
			}()
		}
	}

	g, err := game.New(gameCfg)
	if err != nil {
		return fmt.Errorf("initialize game: %w", err)
	}
	defer g.Close()

	log.Info("starting", "seed", cfg.Seed, "telemetry", cfg.TelemetryEnabled)
	if err := g.Run(ctx); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	log.Info("game over", "state", g.State().String())
	return nil
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	// Always set endpoint to Honeycomb
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// The .env file may hold an unexpanded variable reference, so the
	// headers are built here.
	apiKey := os.Getenv("HONEYCOMB_EMBERWOOD_API_KEY")
	dataset := os.Getenv("HONEYCOMB_EMBERWOOD_DATASET")
	if dataset == "" {
		dataset = "emberwood"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
