package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vmaia/cardswipe/internal/api"
	"github.com/vmaia/cardswipe/internal/config"
	"github.com/vmaia/cardswipe/internal/db"
	"github.com/vmaia/cardswipe/internal/logger"
	"github.com/vmaia/cardswipe/internal/repository/sqlite"
	"github.com/vmaia/cardswipe/internal/scryfall"
	"github.com/vmaia/cardswipe/internal/services"
	"github.com/vmaia/cardswipe/internal/session"
	"github.com/vmaia/cardswipe/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("CardSwipe Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("scryfall_base_url=%s", cfg.ScryfallBaseURL)
	log.Debug("scryfall_timeout=%v", cfg.ScryfallTimeout)
	log.Debug("refill_worker_count=%d", cfg.RefillWorkers)
	log.Debug("refill_queue_size=%d", cfg.RefillQueueSize)
	log.Debug("queue_batch_size=%d", cfg.QueueBatchSize)
	log.Debug("queue_low_water=%d", cfg.QueueLowWater)
	log.Debug("session_ttl=%v", cfg.SessionTTL)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Initialize repositories and services
	cardRepo := sqlite.NewCardRepository(database.DB)
	ratingRepo := sqlite.NewRatingRepository(database.DB)
	setRepo := sqlite.NewSetRepository(database.DB)

	client := scryfall.New(cfg.ScryfallBaseURL, cfg.ScryfallTimeout)

	cardService := services.NewCardService(cardRepo, ratingRepo, client)
	statsService := services.NewStatsService(ratingRepo)
	setService := services.NewSetService(setRepo, client)

	// Background refill pool and per-session controllers
	refillPool := worker.NewPool(cfg.RefillWorkers, cfg.RefillQueueSize)
	sessions := session.NewManager(cardService, refillPool, cfg.QueueBatchSize, cfg.QueueLowWater, cfg.SessionTTL)

	srv := &api.Server{
		CardService:      cardService,
		StatsService:     statsService,
		SetService:       setService,
		Sessions:         sessions,
		DB:               database,
		TopCardsMaxLimit: cfg.TopCardsMaxLimit,
	}

	ctx, cancel := context.WithCancel(context.Background())
	refillPool.Start(ctx)
	sessions.Start(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping background workers")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("closing sessions")
	sessions.Stop()
	log.Debug("stopping refill pool")
	refillPool.Stop()

	log.Info("===========================================")
	log.Info("CardSwipe Server Stopped")
	log.Info("===========================================")
}
