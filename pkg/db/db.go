package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sagrop_cms/internal/config"
	"github.com/sagrop_cms/internal/models"
)

const sqlitePrefix = "sqlite://"

// Open 根据 DATABASE_URL 初始化 GORM 数据库连接
// 支持 postgres:// / postgresql:// 以及 sqlite://<path>（sqlite://:memory: 用于测试）
func Open(cfg *config.Configuration) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// 配置 GORM 日志级别
	logLevel := logger.Warn
	if cfg.DBLogQueries {
		logLevel = logger.Info
	}
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second, // 慢 SQL 阈值
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	gormDB, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB from GORM: %w", err)
	}

	// 设置数据库连接池参数
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)
	if gormDB.Dialector.Name() == "sqlite" {
		// SQLite 只允许一个写者；内存库每个连接都是独立的数据库，连接不能被回收
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	}

	return gormDB, nil
}

func dialectorFor(databaseURL string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return postgres.Open(databaseURL), nil
	case strings.HasPrefix(databaseURL, sqlitePrefix):
		path := strings.TrimPrefix(databaseURL, sqlitePrefix)
		if path != ":memory:" {
			// 确保数据库文件所在的目录存在
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		return sqlite.Open(path), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", databaseURL)
	}
}

// Migrate 自动迁移数据库表结构
func Migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&models.User{},
		&models.MailingListEntry{},
		&models.Article{},
		&models.Commodity{},
	)
}

// Close 关闭底层连接池 (通常在应用退出时调用)
func Close(gormDB *gorm.DB) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
