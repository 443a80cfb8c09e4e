package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/afriverse/editorial-api/internal/api"
	"github.com/afriverse/editorial-api/internal/config"
	"github.com/afriverse/editorial-api/internal/database"
	"github.com/afriverse/editorial-api/internal/notify"
	"github.com/afriverse/editorial-api/internal/repository"
	"github.com/afriverse/editorial-api/internal/scheduler"
	"github.com/afriverse/editorial-api/internal/service"
	"github.com/afriverse/editorial-api/pkg/logger"
)

func main() {
	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting AfriVerse editorial API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}
	if err := db.RunMigrations(migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	repos := repository.New(db)

	// Initialize services
	notifier := notify.NewLogNotifier(log)
	services := service.NewServices(repos, cfg, notifier, log)

	// Start the scheduled-publish sweep
	sched := scheduler.New(services.Workflow, log)
	if err := sched.Start(cfg.Workflow.SweepSchedule); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.Workflow.SweepSchedule).Msg("Failed to start scheduler")
	}

	// Initialize router
	router := api.NewRouter(services, repos.User, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop the publish sweep
	sched.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
