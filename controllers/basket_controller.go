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

type BasketController struct {
	svc *services.BasketService
	log *zap.Logger
}

func NewBasketController(svc *services.BasketService, log *zap.Logger) *BasketController {
	return &BasketController{svc: svc, log: log}
}

// GetBasket handles GET /basket.
func (bc *BasketController) GetBasket(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	basket, err := bc.svc.Get(c.Request.Context(), userID)
	if err != nil {
		bc.log.Error("failed to load basket", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load basket"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"basket": basket, "total": basket.Total()})
}

type addLineRequest struct {
	ProductID  string                    `json:"product_id" binding:"required"`
	Name       string                    `json:"name"`
	Image      string                    `json:"image"`
	Selections []models.Selection        `json:"selections"`
	AddOns     map[string][]models.AddOn `json:"add_ons"`
	Note       string                    `json:"note"`
	Shop       models.ShopSummary        `json:"shop"`
}

// AddLine handles POST /basket/items. Every call appends one independent
// line, duplicates included.
func (bc *BasketController) AddLine(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req addLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bc.log.Warn("invalid basket payload", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	basket, err := bc.svc.AddLine(c.Request.Context(), userID, models.BasketLine{
		ProductID:  req.ProductID,
		Name:       req.Name,
		Image:      req.Image,
		Selections: req.Selections,
		AddOns:     req.AddOns,
		Note:       req.Note,
		Shop:       req.Shop,
	})
	if err != nil {
		bc.respondBasketError(c, userID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"basket": basket, "total": basket.Total()})
}

type adjustQuantityRequest struct {
	Selection string `json:"selection" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gte=1"`
}

// AdjustQuantity handles PATCH /basket/items/:line_id.
func (bc *BasketController) AdjustQuantity(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req adjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	basket, err := bc.svc.AdjustQuantity(c.Request.Context(), userID, c.Param("line_id"), req.Selection, req.Quantity)
	if err != nil {
		bc.respondBasketError(c, userID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"basket": basket, "total": basket.Total()})
}

// RemoveLine handles DELETE /basket/items/:line_id.
func (bc *BasketController) RemoveLine(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	basket, err := bc.svc.RemoveLine(c.Request.Context(), userID, c.Param("line_id"))
	if err != nil {
		bc.respondBasketError(c, userID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"basket": basket, "total": basket.Total()})
}

// ClearBasket handles DELETE /basket.
func (bc *BasketController) ClearBasket(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := bc.svc.Clear(c.Request.Context(), userID); err != nil {
		bc.log.Error("failed to clear basket", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear basket"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "basket cleared"})
}

func (bc *BasketController) respondBasketError(c *gin.Context, userID string, err error) {
	switch {
	case errors.Is(err, services.ErrMissingProductID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "product id is required"})
	case errors.Is(err, services.ErrLineNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "basket line not found"})
	case errors.Is(err, services.ErrSelectionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "selection not found"})
	default:
		bc.log.Error("basket operation failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "basket operation failed"})
	}
}
