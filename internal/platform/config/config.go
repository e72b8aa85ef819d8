package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	// MinBcryptCost is the lowest cost accepted for password hashing.
	MinBcryptCost = 10

	devJWTSecret = "defaultsecret"
)

type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	APIPort  string `env:"API_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	JWTSecret  string        `env:"JWT_SECRET" envDefault:"defaultsecret"`
	JWTExp     time.Duration `env:"JWT_EXPIRATION" envDefault:"1h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"`
	DBHost      string `env:"DB_HOST" envDefault:"localhost"`
	DBPort      string `env:"DB_PORT" envDefault:"5432"`
	DBUser      string `env:"DB_USER" envDefault:"user"`
	DBPassword  string `env:"DB_PASSWORD" envDefault:"password"`
	DBName      string `env:"DB_NAME" envDefault:"healthcare"`
	DBSslMode   string `env:"DB_SSLMODE" envDefault:"disable"`

	RedisAddr       string `env:"REDIS_ADDR"` // empty disables priority alerts
	RedisPassword   string `env:"REDIS_PASSWORD"`
	RedisDB         int    `env:"REDIS_DB" envDefault:"0"`
	AlertQueueName  string `env:"ALERT_QUEUE_NAME" envDefault:"priority_alerts"`
	AlertWebhookURL string `env:"ALERT_WEBHOOK_URL"`

	AuthRateLimit float64 `env:"AUTH_RATE_LIMIT" envDefault:"1"`
	AuthRateBurst int     `env:"AUTH_RATE_BURST" envDefault:"10"`

	StaticDir string `env:"STATIC_DIR"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, relying on environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreDriverPostgres, StoreDriverMemory, c.StoreDriver)
	}
	if c.BcryptCost < MinBcryptCost {
		return fmt.Errorf("BCRYPT_COST must be at least %d, got %d", MinBcryptCost, c.BcryptCost)
	}
	if c.AuthRateLimit <= 0 {
		return fmt.Errorf("AUTH_RATE_LIMIT must be positive, got %v", c.AuthRateLimit)
	}
	if c.AuthRateBurst <= 0 {
		return fmt.Errorf("AUTH_RATE_BURST must be positive, got %d", c.AuthRateBurst)
	}
	if c.JWTExp <= 0 {
		return errors.New("JWT_EXPIRATION must be positive")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if !c.IsDevelopment() && c.JWTSecret == devJWTSecret {
		return errors.New("JWT_SECRET must be set outside development")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) UseRedis() bool {
	return c.RedisAddr != ""
}

// DBConnStr returns a keyword/value DSN understood by the pgx driver.
func (c *Config) DBConnStr() string {
	return "host=" + c.DBHost +
		" port=" + c.DBPort +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" sslmode=" + c.DBSslMode
}
