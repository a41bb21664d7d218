package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Bey1222/yonk-backend/services"
)

// CartRelayController exposes the upstream cart mutations as typed
// endpoints. These are never retried; a duplicated POST would create a
// duplicate cart line upstream.
type CartRelayController struct {
	api services.CatalogAPI
	log *zap.Logger
}

func NewCartRelayController(api services.CatalogAPI, log *zap.Logger) *CartRelayController {
	return &CartRelayController{api: api, log: log}
}

// AddToCart handles POST /cart/addToCart.
func (cc *CartRelayController) AddToCart(c *gin.Context) {
	cc.relay(c, cc.api.AddToCart)
}

// ReduceQuantity handles POST /cart/reduceQuantity.
func (cc *CartRelayController) ReduceQuantity(c *gin.Context) {
	cc.relay(c, cc.api.ReduceQuantity)
}

func (cc *CartRelayController) relay(c *gin.Context, call func(context.Context, services.UpstreamCartRequest) (json.RawMessage, error)) {
	var req services.UpstreamCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if req.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product id is required"})
		return
	}

	resp, err := call(c.Request.Context(), req)
	switch {
	case err == nil:
		c.Data(http.StatusOK, "application/json", resp)
	case errors.Is(err, services.ErrNoToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, services.ErrUpstreamUnavailable):
		cc.log.Warn("cart relay failed", zap.String("product_id", req.ProductID), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "cart service unavailable"})
	default:
		cc.log.Error("cart relay rejected", zap.String("product_id", req.ProductID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "cart mutation rejected"})
	}
}
