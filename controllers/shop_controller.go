package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Bey1222/yonk-backend/models"
	"github.com/Bey1222/yonk-backend/services"
)

type ShopController struct {
	dir   *services.DirectoryCache
	shops *services.ShopService
	api   services.CatalogAPI
	log   *zap.Logger
}

func NewShopController(dir *services.DirectoryCache, shops *services.ShopService, api services.CatalogAPI, log *zap.Logger) *ShopController {
	return &ShopController{dir: dir, shops: shops, api: api, log: log}
}

// GetShop handles GET /shops/:id, serving the shop and its product list
// from the directory cache.
func (sc *ShopController) GetShop(c *gin.Context) {
	shopID := c.Param("id")

	record, err := sc.dir.GetShop(c.Request.Context(), shopID)
	if err != nil {
		sc.respondUpstreamError(c, err, "shop lookup failed", zap.String("shop_id", shopID))
		return
	}

	dest, err := services.ResolveCategoryTag(record.Shop.Category)
	if err != nil {
		// Data/code mismatch: the shop carries a category no screen
		// handles. Abort instead of responding with a broken target.
		sc.log.Error("unroutable shop category",
			zap.String("shop_id", shopID),
			zap.String("category", string(record.Shop.Category)),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "shop category is not routable"})
		return
	}

	// Open state is evaluated fresh on every lookup; "now" moves.
	open := services.IsOpen(record.Shop.Opens, record.Shop.Closes, time.Now().Hour())

	c.JSON(http.StatusOK, gin.H{
		"shop":     record.Shop,
		"products": record.Products,
		"screen":   dest.Screen,
		"summary":  record.Shop.Summary(),
		"open":     open,
	})
}

// ListShops handles GET /shops?category=TAG.
func (sc *ShopController) ListShops(c *gin.Context) {
	tag, ok := models.ParseCategory(c.Query("category"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}

	listings, err := sc.shops.ListByCategory(c.Request.Context(), tag)
	if err != nil {
		sc.respondUpstreamError(c, err, "shop listing failed", zap.String("category", string(tag)))
		return
	}
	c.JSON(http.StatusOK, gin.H{"shops": listings})
}

// ListProducts handles GET /products?category=TAG&shopId=ID.
func (sc *ShopController) ListProducts(c *gin.Context) {
	tag, ok := models.ParseCategory(c.Query("category"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}

	products, err := sc.api.FetchProductsByCategory(c.Request.Context(), tag, c.Query("shopId"))
	if err != nil {
		sc.respondUpstreamError(c, err, "product listing failed", zap.String("category", string(tag)))
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (sc *ShopController) respondUpstreamError(c *gin.Context, err error, msg string, fields ...zap.Field) {
	switch {
	case errors.Is(err, services.ErrNoToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, services.ErrShopNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
	case errors.Is(err, services.ErrUpstreamUnavailable):
		sc.log.Warn(msg, append(fields, zap.Error(err))...)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
	default:
		sc.log.Error(msg, append(fields, zap.Error(err))...)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "request failed"})
	}
}
