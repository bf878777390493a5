package routes

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/sagrop_cms/internal/auth"
	"github.com/sagrop_cms/internal/config"
	"github.com/sagrop_cms/internal/handlers"
	"github.com/sagrop_cms/internal/middleware"
	"github.com/sagrop_cms/internal/repositories"
	"github.com/sagrop_cms/internal/services"
	"github.com/sagrop_cms/pkg/logging"
)

// NewDependencies 组装仓库、服务与处理器
func NewDependencies(cfg *config.Configuration, db *gorm.DB, mailer services.Mailer, logger *slog.Logger) (Dependencies, error) {
	tokens, err := auth.NewTokenManager(cfg.JWTSecret)
	if err != nil {
		return Dependencies{}, fmt.Errorf("token manager: %w", err)
	}

	userRepo := repositories.NewGormUserRepository(db)
	articleRepo := repositories.NewGormArticleRepository(db)
	commodityRepo := repositories.NewGormCommodityRepository(db)
	mailingRepo := repositories.NewGormMailingListRepository(db)

	images := services.NewImageStore(cfg.UploadsDir, cfg.UploadAllowedTypes, logging.Source(logger, "upload"))
	runtimeConf := services.NewConfigService(cfg, logging.Source(logger, "config"))

	authService := services.NewAuthService(userRepo, tokens, logging.Source(logger, "auth"))
	articleService := services.NewArticleService(articleRepo, images, logging.Source(logger, "articles"))
	commodityService := services.NewCommodityService(commodityRepo, logging.Source(logger, "commodities"))
	newsletter := services.NewNewsletterService(mailingRepo, mailer, cfg.EmailTemplatePath, cfg.EmailConcurrency, logging.Source(logger, "email"))

	return Dependencies{
		Config:       cfg,
		Logger:       logger,
		Tokens:       tokens,
		LoginLimiter: middleware.NewLoginRateLimiter(),

		Auth:        handlers.NewAuthHandler(authService),
		Articles:    handlers.NewArticleHandler(articleService),
		Commodities: handlers.NewCommodityHandler(commodityService),
		Mailing:     handlers.NewMailingHandler(newsletter),
		Uploads:     handlers.NewUploadHandler(images, runtimeConf),
		RuntimeConf: handlers.NewConfigHandler(runtimeConf),
		ClientLog:   handlers.NewLogHandler(logger),
	}, nil
}
