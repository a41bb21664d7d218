package gateway

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Bey1222/yonk-backend/config"
	"github.com/Bey1222/yonk-backend/middleware"
)

// Register wires the proxy routes. Registration and login are public; every
// other route requires a valid bearer token before being forwarded.
func Register(r *gin.Engine, cfg config.Config, log *zap.Logger) {
	forward := func(c *gin.Context) {
		Forward(c, log, ForwardOptions{
			TargetBase:  cfg.UpstreamBaseURL,
			StripPrefix: "/api/v1",
		})
	}

	// Public: account creation and login have no token yet.
	public := r.Group("/api/v1/user")
	public.POST("/register", forward)
	public.POST("/login", forward)
	public.POST("/verifyOTP", forward)
	public.POST("/resendOTP", forward)
	public.POST("/setPassword", forward)

	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth([]byte(cfg.JWTSecret)))

	protected.POST("/user/updateProfile", forward)

	protected.GET("/products", forward)
	protected.GET("/products/*any", forward)
	protected.GET("/shops", forward)
	protected.GET("/shops/*any", forward)

	protected.POST("/cart/*any", forward)
	protected.GET("/cart/*any", forward)
}
