package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/campuswatch/campuswatch-be/internal/api"
	"github.com/campuswatch/campuswatch-be/internal/auth"
	"github.com/campuswatch/campuswatch-be/internal/config"
	"github.com/campuswatch/campuswatch-be/internal/database"
	"github.com/campuswatch/campuswatch-be/internal/logger"
	"github.com/campuswatch/campuswatch-be/internal/monitoring"
	"github.com/campuswatch/campuswatch-be/internal/services"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up the token service
	tokens := auth.NewService(cfg.JWTSecret, cfg.TokenTTL)

	// Set up services
	userService := services.NewUserService(db)
	reportService := services.NewReportService(db)

	// Set up and run the background stats updater
	statUpdater, err := monitoring.NewStatUpdater(reportService, cfg.StatsCron)
	if err != nil {
		log.Fatal().Err(err).Str("cron", cfg.StatsCron).Msg("Invalid stats schedule")
	}
	go statUpdater.Run()

	// Set up router
	router := api.NewRouter(tokens, userService, reportService, statUpdater, cfg.CORSOrigin)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	statUpdater.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
