// @title Sagrop CMS API
// @version 1.0
// @description 文章、商品行情、邮件订阅与图片上传的后台接口
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/sagrop_cms/internal/config"
	"github.com/sagrop_cms/internal/routes"
	"github.com/sagrop_cms/internal/services"
	"github.com/sagrop_cms/pkg/db"
	"github.com/sagrop_cms/pkg/email"
	"github.com/sagrop_cms/pkg/logging"
)

const shutdownTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func Run(ctx context.Context) error {
	// .env 是可选的，环境变量优先
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		JSON:       cfg.IsProduction(),
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer logger.Close()

	gormDB, err := db.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close(gormDB)

	if err := db.Migrate(gormDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("database ready", "source", "db")

	deps, err := routes.NewDependencies(cfg, gormDB, newMailer(cfg, logger), logger.Logger)
	if err != nil {
		return err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := routes.SetupRouter(deps)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go deps.LoginLimiter.Run(workerCtx, 10*time.Minute)

	srv := &http.Server{
		Addr:              ":" + cfg.ListenPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "port", cfg.ListenPort(), "prefix", cfg.RoutePrefix())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Shutting down server...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exiting")
	return nil
}

func newMailer(cfg *config.Configuration, logger *logging.Logger) services.Mailer {
	sender, err := email.NewSMTPSender(email.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.EmailUser,
		Password: cfg.EmailPassword,
	})
	if err != nil {
		logger.Warn("email disabled", "source", "email", "error", err)
		return email.DisabledSender{}
	}
	return sender
}
