package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/squadup/internal/config"
	"github.com/mauv0809/squadup/internal/database"
	"github.com/mauv0809/squadup/internal/enrollment"
	server "github.com/mauv0809/squadup/internal/http"
	"github.com/mauv0809/squadup/internal/metrics"
	"github.com/mauv0809/squadup/internal/notifier/slack"
	"github.com/mauv0809/squadup/internal/overwatch"
	"github.com/mauv0809/squadup/internal/processor"
	"github.com/mauv0809/squadup/internal/pubsub"
	"github.com/mauv0809/squadup/internal/session"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	log.Info("Database initialization time recorded", "duration_ms", time.Since(startTime).Milliseconds())
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	store := enrollment.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	statsClient := overwatch.NewClient(cfg.Stats.BaseURL, cfg.Stats.Timeout, cfg.Stats.RatePerSec)
	notifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	proc := processor.New(store, notifier)

	var events pubsub.PubSubClient
	if cfg.ProjectID != "" {
		events, err = pubsub.New(context.Background(), cfg.ProjectID, cfg.EventsTopic)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
	} else {
		// Without a Pub/Sub project, events are handled in-process.
		dryRun := cfg.Slack.Token == ""
		log.Warn("GCP_PROJECT not set, handling events in-process", "dry_run", dryRun)
		events = pubsub.NewLoopback(func(ctx context.Context, event pubsub.EventType, data []byte) error {
			return proc.HandleEvent(ctx, event, data, dryRun)
		})
	}
	defer func() {
		if err := events.Close(); err != nil {
			log.Error("Failed to close pubsub client", "error", err)
		}
	}()

	service := enrollment.NewService(store, statsClient, events, metricsSvc, enrollment.Options{
		Platform:     cfg.Stats.Platform,
		Region:       cfg.Stats.Region,
		StatsTimeout: cfg.Stats.Timeout,
	})
	sessions := session.NewManager(cfg.SessionSecret, session.DefaultTTL)

	s := server.NewServer(
		service,
		sessions,
		db,
		metricsSvc,
		metricsHandler,
		proc,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
