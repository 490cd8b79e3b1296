package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nyanbar/nyanbar/internal/api"
	"github.com/nyanbar/nyanbar/internal/config"
	"github.com/nyanbar/nyanbar/internal/database"
	"github.com/nyanbar/nyanbar/internal/logger"
	"github.com/nyanbar/nyanbar/internal/startup"
)

func main() {
	// Optional .env for local development; missing file is fine.
	_ = godotenv.Load()

	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Path:       cfg.Logging.Path,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	})
	defer log.Close()

	log.Info().
		Str("version", config.Version).
		Str("logLevel", cfg.Logging.Level).
		Msg("starting nyanbar")

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	log.Info().Msg("running database migrations")
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	server := api.NewServer(db, cfg, log.Logger)

	// Verify catalog reachability before going live; a dead upstream is
	// logged but does not block startup.
	err = startup.Probe(
		context.Background(),
		"anilist",
		startup.DefaultBackoff(),
		func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.AniListClient().Test(ctx)
		},
		log.Logger,
	)
	if err != nil {
		log.Warn().Err(err).Msg("catalog unreachable, metadata endpoints may fail until network is restored")
	}

	if cfg.Checker.Enabled {
		interval := time.Duration(cfg.Checker.IntervalMinutes) * time.Minute
		if err := server.Checker().Start(interval); err != nil {
			log.Error().Err(err).Msg("failed to start episode checker")
		}
	}

	go func() {
		if err := server.Start(cfg.Server.Address()); err != nil {
			log.Info().Msg("server stopped")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("received shutdown signal")

	if err := server.Checker().Stop(); err != nil {
		log.Error().Err(err).Msg("episode checker shutdown error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("server stopped")
}
