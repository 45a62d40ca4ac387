// Package main runs the event service HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/eventworks/backend/config"
	"github.com/eventworks/backend/internal/events"
	"github.com/eventworks/backend/internal/identity"
	"github.com/eventworks/backend/internal/router"
	"github.com/eventworks/backend/internal/team"
	"github.com/eventworks/backend/pkg/database"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	userClient := identity.NewClient(cfg.Identity.BaseURL,
		identity.WithTimeout(time.Duration(cfg.Identity.TimeoutSec)*time.Second))

	// Events
	eventRepo := events.NewRepository(pool)
	eventService := events.NewService(eventRepo, userClient, logger)
	eventHandler := events.NewHandler(eventService, logger)

	// Organizing team
	teamRepo := team.NewRepository(pool)
	teamService := team.NewService(eventService, teamRepo, logger)
	teamHandler := team.NewHandler(teamService, logger)

	engine := router.New(logger, cfg.Server.CORSAllowedOrigins, eventHandler, teamHandler)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
