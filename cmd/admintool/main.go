// Command admintool 提供管理员账号与数据维护相关的命令行操作
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/sagrop_cms/internal/auth"
	"github.com/sagrop_cms/internal/config"
	"github.com/sagrop_cms/internal/models"
	"github.com/sagrop_cms/internal/repositories"
	"github.com/sagrop_cms/pkg/db"
	"github.com/sagrop_cms/pkg/utils"
)

const defaultDatabaseURL = "sqlite://data/cms.db"

var errUsage = errors.New("usage: admintool <hash|create-admin|secret|renumber> [flags]")

func main() {
	_ = godotenv.Load()

	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "hash":
		fs := flag.NewFlagSet("hash", flag.ContinueOnError)
		password := fs.String("password", "", "password to hash")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		hash, err := auth.HashPassword(*password)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Hashed Password: %s\n", hash)
		return nil

	case "secret":
		secret, err := newSecret()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "JWT Secret: %s\n", secret)
		return nil

	case "create-admin":
		fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)
		dbURL := fs.String("db", envOr("DATABASE_URL", defaultDatabaseURL), "database URL")
		email := fs.String("email", "", "admin email")
		password := fs.String("password", "", "admin password")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return createAdmin(ctx, *dbURL, *email, *password, out)

	case "renumber":
		fs := flag.NewFlagSet("renumber", flag.ContinueOnError)
		dbURL := fs.String("db", envOr("DATABASE_URL", defaultDatabaseURL), "database URL")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return renumber(ctx, *dbURL, out)

	default:
		return errUsage
	}
}

func createAdmin(ctx context.Context, dbURL, email, password string, out io.Writer) error {
	email = utils.NormalizeEmail(email)
	if !utils.ValidateEmailFormat(email) {
		return utils.ErrInvalidEmailFormat
	}
	if err := utils.ValidatePasswordStrength(password); err != nil {
		return err
	}

	gormDB, err := openDB(dbURL)
	if err != nil {
		return err
	}
	defer db.Close(gormDB)

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	user := &models.User{Email: email, PasswordHash: hash}
	if err := repositories.NewGormUserRepository(gormDB).Create(ctx, user); err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}
	fmt.Fprintf(out, "Admin created: %s (id %d)\n", user.Email, user.ID)
	return nil
}

func renumber(ctx context.Context, dbURL string, out io.Writer) error {
	gormDB, err := openDB(dbURL)
	if err != nil {
		return err
	}
	defer db.Close(gormDB)

	if err := repositories.NewGormArticleRepository(gormDB).Renumber(ctx); err != nil {
		return fmt.Errorf("renumbering articles: %w", err)
	}
	fmt.Fprintln(out, "Articles renumbered.")
	return nil
}

func openDB(dbURL string) (*gorm.DB, error) {
	gormDB, err := db.Open(&config.Configuration{
		DatabaseURL:       dbURL,
		DBMaxOpenConns:    2,
		DBMaxIdleConns:    1,
		DBConnMaxLifetime: time.Hour,
	})
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(gormDB); err != nil {
		db.Close(gormDB)
		return nil, err
	}
	return gormDB, nil
}

// newSecret 生成 32 字节 (256 位) 的随机 JWT 密钥
func newSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
