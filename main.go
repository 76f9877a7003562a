package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ms-users/internal/config"
	"ms-users/internal/database"
	"ms-users/internal/logger"
	"ms-users/internal/users/user_api"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[CONFIG] %v", err)
	}

	logger, err := logger.NewLogger(cfg.Log.Dir, "user-service", cfg.Log.Level)
	if err != nil {
		log.Fatalf("[LOGGER] %v", err)
	}
	defer logger.Close()

	logger.Info("APP", "Starting User Service initialization")
	if cfg.DotEnvLoaded {
		logger.Info("CONFIG", "Loaded environment variables from .env file")
	} else {
		logger.Warn("CONFIG", ".env file not found, using environment variables")
	}

	ctx := context.Background()

	store, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("DATABASE", err.Error())
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		logger.Fatal("DATABASE", err.Error())
	}
	logger.Info("DATABASE", "places table ready")

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      user_api.NewRouter(store, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP", fmt.Sprintf("🚀 User Service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	} else {
		logger.Info("HTTP", "✅ User Service shutdown complete")
	}
}
