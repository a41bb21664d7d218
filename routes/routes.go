package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/Bey1222/yonk-backend/config"
	"github.com/Bey1222/yonk-backend/controllers"
	"github.com/Bey1222/yonk-backend/middleware"
	"github.com/Bey1222/yonk-backend/pkg/apperr"
)

// Deps carries the controllers the router wires up.
type Deps struct {
	Search    *controllers.SearchController
	Shops     *controllers.ShopController
	Basket    *controllers.BasketController
	Wishlist  *controllers.WishlistController
	CartRelay *controllers.CartRelayController
}

// Register wires all storefront routes. Everything except the health check
// sits behind bearer auth.
func Register(r *gin.Engine, cfg config.Config, deps Deps) {
	r.Use(middleware.SecurityHeaders())
	r.Use(apperr.Middleware())

	limiter := middleware.NewRateLimiter(rate.Limit(20), 40, 5*time.Minute)
	r.Use(limiter.Middleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperr.ErrNotFound)
	})

	protected := r.Group("/")
	protected.Use(middleware.JWTAuth([]byte(cfg.JWTSecret)))

	protected.GET("/search", deps.Search.Search)

	protected.GET("/shops", deps.Shops.ListShops)
	protected.GET("/shops/:id", deps.Shops.GetShop)
	protected.GET("/products", deps.Shops.ListProducts)

	protected.GET("/basket", deps.Basket.GetBasket)
	protected.POST("/basket/items", deps.Basket.AddLine)
	protected.PATCH("/basket/items/:line_id", deps.Basket.AdjustQuantity)
	protected.DELETE("/basket/items/:line_id", deps.Basket.RemoveLine)
	protected.DELETE("/basket", deps.Basket.ClearBasket)

	protected.GET("/wishlist", deps.Wishlist.GetWishlist)
	protected.POST("/wishlist/items", deps.Wishlist.AddItem)
	protected.DELETE("/wishlist/items/:product_id", deps.Wishlist.RemoveItem)

	protected.POST("/cart/addToCart", deps.CartRelay.AddToCart)
	protected.POST("/cart/reduceQuantity", deps.CartRelay.ReduceQuantity)
}
