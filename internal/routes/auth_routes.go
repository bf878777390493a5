package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sagrop_cms/internal/auth"
	"github.com/sagrop_cms/internal/middleware"
	"github.com/sagrop_cms/pkg/logging"
)

// SetupAuthRoutes 设置认证相关路由
func SetupAuthRoutes(api *gin.RouterGroup, d Dependencies) {
	// POST /api/v1/login，按 IP 限流
	api.POST("/login",
		middleware.RateLimit(d.LoginLimiter, logging.Source(d.Logger, "ratelimit")),
		d.Auth.Login,
	)

	// 受保护的认证路由
	protected := api.Group("")
	protected.Use(auth.AdminRequired(d.Tokens, logging.Source(d.Logger, "auth")))
	{
		protected.POST("/logout", d.Auth.Logout)
		protected.GET("/check-admin", d.Auth.CheckAdmin)
	}
}
