package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fair_rps/internal/config"
	httpServer "fair_rps/internal/http"
	"fair_rps/internal/logger"
	"fair_rps/internal/presets"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	if os.Getenv("LOG_LEVEL") == "" {
		cfg.LogLevel = "info"
	}
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	catalog, err := presets.Load(cfg.PresetsFile)
	if err != nil {
		logger.Fatal("failed to load presets", "file", cfg.PresetsFile, "error", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	httpServer.RegisterRoutes(r, cfg, catalog)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "key_policy", cfg.KeyPolicy)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
