package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Configuration defines the structure for application settings.
// It is loaded once at startup and passed explicitly to every component.
type Configuration struct {
	AppName    string `env:"APP_NAME,required,notEmpty"`
	APIVersion string `env:"API_VERSION,required,notEmpty"`
	AppEnv     string `env:"NODE_ENV" envDefault:"development"`

	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`

	APIEndpoint string `env:"API_ENDPOINT" envDefault:"http://localhost"`
	APIPort     string `env:"API_PORT"`
	Port        string `env:"PORT" envDefault:"5000"`
	APIPath     string `env:"API_PATH" envDefault:"/api"`

	DatabaseURL       string        `env:"DATABASE_URL" envDefault:"sqlite://data/cms.db"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"20"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"1h"`
	DBLogQueries      bool          `env:"DB_LOG_QUERIES" envDefault:"false"`

	MaxUploadSize      int64    `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"` // 10 MiB
	UploadsDir         string   `env:"UPLOADS_DIR" envDefault:"public/uploads"`
	UploadAllowedTypes []string `env:"UPLOAD_ALLOWED_TYPES" envSeparator:"," envDefault:"image/jpeg,image/png,image/gif,image/webp"`

	EmailUser         string `env:"EMAIL_USER"`
	EmailPassword     string `env:"EMAIL_PASSWORD"`
	SMTPHost          string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort          int    `env:"SMTP_PORT" envDefault:"587"`
	EmailTemplatePath string `env:"EMAIL_TEMPLATE_PATH" envDefault:"templates/email/article_notification.html"`
	EmailConcurrency  int    `env:"EMAIL_CONCURRENCY" envDefault:"8"`

	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile       string `env:"LOG_FILE" envDefault:"logs/app.log"`
	LogMaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"1"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"5"`
}

// ErrInvalidAPIVersion is returned when API_VERSION has no usable major component.
var ErrInvalidAPIVersion = errors.New("API_VERSION must start with a major version number")

// LoadConfig parses environment variables into a Configuration.
// It should be called once at application startup.
func LoadConfig() (*Configuration, error) {
	cfg := &Configuration{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.MajorVersion() == "" {
		return nil, ErrInvalidAPIVersion
	}
	return cfg, nil
}

// IsProduction reports whether NODE_ENV is "production".
func (c *Configuration) IsProduction() bool {
	return c.AppEnv == "production"
}

// ListenPort prefers API_PORT over PORT.
func (c *Configuration) ListenPort() string {
	if c.APIPort != "" {
		return c.APIPort
	}
	return c.Port
}

// MajorVersion returns the leading component of API_VERSION ("1.4.2" -> "1").
func (c *Configuration) MajorVersion() string {
	major, _, _ := strings.Cut(strings.TrimPrefix(strings.TrimSpace(c.APIVersion), "v"), ".")
	return major
}

// RoutePrefix is the versioned mount point of the JSON API, e.g. "/api/v1".
func (c *Configuration) RoutePrefix() string {
	return strings.TrimRight(c.APIPath, "/") + "/v" + c.MajorVersion()
}

// APIURL is the externally advertised base URL of the API.
func (c *Configuration) APIURL() string {
	return fmt.Sprintf("%s:%s%s", c.APIEndpoint, c.ListenPort(), c.RoutePrefix())
}
