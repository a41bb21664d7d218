package main

import (
	stdlog "log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Bey1222/yonk-backend/config"
	"github.com/Bey1222/yonk-backend/gateway"
	"github.com/Bey1222/yonk-backend/middleware"
	"github.com/Bey1222/yonk-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("invalid configuration: %v", err)
	}

	logger.Initialize(cfg.Env)
	defer logger.Sync()
	log := logger.Log

	log.Info("Starting gateway...")

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.SecurityHeaders())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	gateway.Register(r, cfg, log)

	log.Info("Gateway listening", zap.String("port", cfg.GatewayPort))
	if err := r.Run(":" + cfg.GatewayPort); err != nil {
		log.Fatal("Failed to start gateway", zap.Error(err))
	}
}
