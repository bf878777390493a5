package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sagrop_cms/internal/auth"
	"github.com/sagrop_cms/pkg/logging"
)

// SetupContentRoutes 设置文章、商品、订阅、上传、配置与日志路由
func SetupContentRoutes(api *gin.RouterGroup, d Dependencies) {
	admin := auth.AdminRequired(d.Tokens, logging.Source(d.Logger, "auth"))

	// 公共路由
	api.GET("/articles", d.Articles.GetArticles)
	api.GET("/articles/:id", d.Articles.GetArticle)
	api.GET("/commodities", d.Commodities.GetCommodities)
	api.POST("/add-email", d.Mailing.AddEmail)
	api.POST("/upload-image", d.Uploads.UploadImage)
	api.GET("/config", d.RuntimeConf.GetConfig)
	api.POST("/log", d.ClientLog.ClientLog)

	// 需要管理员 Token 的路由
	api.POST("/articles", admin, d.Articles.CreateArticle)
	api.PUT("/articles/:id", admin, d.Articles.UpdateArticle)
	api.DELETE("/articles/:id", admin, d.Articles.DeleteArticle)

	api.POST("/commodities", admin, d.Commodities.CreateCommodity)
	api.PUT("/commodities/:id", admin, d.Commodities.UpdateCommodity)
	api.DELETE("/commodities/:id", admin, d.Commodities.DeleteCommodity)

	api.POST("/send-article-email", admin, d.Mailing.SendArticleEmail)
	api.PUT("/config", admin, d.RuntimeConf.UpdateConfig)
}
