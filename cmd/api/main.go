package main

import (
	stdlog "log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Bey1222/yonk-backend/config"
	"github.com/Bey1222/yonk-backend/controllers"
	"github.com/Bey1222/yonk-backend/database"
	"github.com/Bey1222/yonk-backend/middleware"
	"github.com/Bey1222/yonk-backend/pkg/logger"
	"github.com/Bey1222/yonk-backend/routes"
	"github.com/Bey1222/yonk-backend/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("invalid configuration: %v", err)
	}

	logger.Initialize(cfg.Env)
	defer logger.Sync()
	log := logger.Log

	log.Info("Starting storefront API...")

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	api := services.NewCatalogClient(cfg.UpstreamBaseURL, log)
	dir := services.NewDirectoryCache(api, log)
	search := services.NewSearchService(api, dir, log)
	shops := services.NewShopService(api, log)
	basket := services.NewBasketService(database.NewBasketRepository(redisClient, cfg.SessionTTL), log)
	wishlist := services.NewWishlistService(database.NewWishlistRepository(redisClient, cfg.SessionTTL), log)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Register(r, cfg, routes.Deps{
		Search:    controllers.NewSearchController(search, log),
		Shops:     controllers.NewShopController(dir, shops, api, log),
		Basket:    controllers.NewBasketController(basket, log),
		Wishlist:  controllers.NewWishlistController(wishlist, log),
		CartRelay: controllers.NewCartRelayController(api, log),
	})

	log.Info("Storefront API listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
