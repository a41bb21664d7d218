package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Bey1222/yonk-backend/middleware"
	"github.com/Bey1222/yonk-backend/models"
	"github.com/Bey1222/yonk-backend/services"
)

type WishlistController struct {
	svc *services.WishlistService
	log *zap.Logger
}

func NewWishlistController(svc *services.WishlistService, log *zap.Logger) *WishlistController {
	return &WishlistController{svc: svc, log: log}
}

// GetWishlist handles GET /wishlist.
func (wc *WishlistController) GetWishlist(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	wishlist, err := wc.svc.Get(c.Request.Context(), userID)
	if err != nil {
		wc.log.Error("failed to load wishlist", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wishlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"wishlist": wishlist})
}

type addWishlistRequest struct {
	ProductID string             `json:"product_id" binding:"required"`
	Name      string             `json:"name"`
	Price     float64            `json:"price"`
	Image     string             `json:"image"`
	Shop      models.ShopSummary `json:"shop"`
}

// AddItem handles POST /wishlist/items. Adding an already-present product
// id is a no-op and still returns 200.
func (wc *WishlistController) AddItem(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req addWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	wishlist, err := wc.svc.Add(c.Request.Context(), userID, models.WishlistItem{
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		Image:     req.Image,
		Shop:      req.Shop,
	})
	if err != nil {
		wc.respondWishlistError(c, userID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wishlist": wishlist})
}

// RemoveItem handles DELETE /wishlist/items/:product_id.
func (wc *WishlistController) RemoveItem(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	wishlist, err := wc.svc.Remove(c.Request.Context(), userID, c.Param("product_id"))
	if err != nil {
		wc.respondWishlistError(c, userID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wishlist": wishlist})
}

func (wc *WishlistController) respondWishlistError(c *gin.Context, userID string, err error) {
	switch {
	case errors.Is(err, services.ErrMissingProductID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "product id is required"})
	case errors.Is(err, services.ErrWishlistItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "wishlist item not found"})
	default:
		wc.log.Error("wishlist operation failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "wishlist operation failed"})
	}
}
