package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/sagrop_cms/docs"
	"github.com/sagrop_cms/internal/auth"
	"github.com/sagrop_cms/internal/config"
	"github.com/sagrop_cms/internal/handlers"
	"github.com/sagrop_cms/internal/middleware"
	"github.com/sagrop_cms/pkg/logging"
)

// Dependencies 汇总了构建路由所需的全部组件
type Dependencies struct {
	Config       *config.Configuration
	Logger       *slog.Logger
	Tokens       *auth.TokenManager
	LoginLimiter *middleware.IPRateLimiter

	Auth        *handlers.AuthHandler
	Articles    *handlers.ArticleHandler
	Commodities *handlers.CommodityHandler
	Mailing     *handlers.MailingHandler
	Uploads     *handlers.UploadHandler
	RuntimeConf *handlers.ConfigHandler
	ClientLog   *handlers.LogHandler
}

// SetupRouter 创建 gin 引擎，注册全局中间件与全部路由
func SetupRouter(d Dependencies) *gin.Engine {
	router := gin.New()

	security := middleware.DefaultSecurityHeadersConfig(d.Config.IsProduction())
	security.ExcludePaths = []string{"/swagger/"}

	router.Use(
		middleware.Recovery(logging.Source(d.Logger, "recovery")),
		middleware.RequestLogger(logging.Source(d.Logger, "http")),
		cors.New(corsConfig()),
		middleware.SecurityHeaders(security),
		gzip.Gzip(gzip.DefaultCompression),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	docs.SwaggerInfo.BasePath = d.Config.RoutePrefix()
	docs.SwaggerInfo.Title = d.Config.AppName + " API"
	docs.SwaggerInfo.Version = d.Config.APIVersion
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.Static("/uploads", d.Config.UploadsDir)

	api := router.Group(d.Config.RoutePrefix())
	SetupAuthRoutes(api, d)
	SetupContentRoutes(api, d)

	return router
}

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	return cfg
}
