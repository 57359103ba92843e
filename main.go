package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"careerboard/config"
	"careerboard/config/database"
	"careerboard/pkg/logger"
	"careerboard/router"
	"careerboard/socket"

	"go.uber.org/zap"
)

func main() {
	// 1. Load .env (optional) and the environment.
	cfg, envFound, err := config.Load()
	logger.Init(levelOrDefault(cfg))
	defer logger.Sync()
	if err != nil {
		logger.Log.Fatal("Invalid configuration", zap.Error(err))
	}
	if !envFound {
		logger.Log.Info("No .env file found, using environment variables from OS")
	}

	// 2. Connect to PostgreSQL and make sure the tables exist.
	db, err := database.Connect(cfg.DSN(), cfg.DBConnectRetries)
	if err != nil {
		logger.Log.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	logger.Log.Info("Successfully connected to the database")

	if err := database.Migrate(db); err != nil {
		logger.Log.Fatal("Failed to apply schema", zap.Error(err))
	}

	// 3. The hub fans created/updated rows out to connected clients.
	hub := socket.NewHub()
	go hub.Run()

	handler, err := router.Setup(db, hub, cfg)
	if err != nil {
		logger.Log.Fatal("Failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Log.Info("Backend listening", zap.String("addr", srv.Addr), zap.String("api_prefix", cfg.APIPrefix))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("Server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Graceful shutdown failed", zap.Error(err))
	}
}

func levelOrDefault(cfg *config.Config) string {
	if cfg == nil {
		return "info"
	}
	return cfg.LogLevel
}
