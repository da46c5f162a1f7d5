package http

import (
	"time"

	"fair_rps/internal/config"
	"fair_rps/internal/http/handlers"
	"fair_rps/internal/http/middleware"
	"fair_rps/internal/presets"
	"fair_rps/internal/session"
	"fair_rps/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes mounts the verification API, websocket play and metrics.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, catalog *presets.Catalog) {
	h := handlers.NewHandler(catalog)
	healthHandler := handlers.NewHealthHandler(cfg.ServiceVersion)

	policy, _ := session.ParseKeyPolicy(cfg.KeyPolicy)
	limit := middleware.RateLimit(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.APIRateLimit, time.Duration(cfg.APIRateWindow)*time.Second)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	v1.Use(limit)
	{
		v1.POST("/verify", h.Verify)
		v1.POST("/relation", h.Relation)
		v1.GET("/presets", h.ListPresets)
	}

	r.GET("/ws/play", limit, ws.HandleWS(ws.Options{
		Presets:       h.Presets,
		KeyPolicy:     policy,
		AllowedOrigin: cfg.AllowedOrigin,
	}))
}
