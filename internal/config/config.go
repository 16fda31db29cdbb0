package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`

	DBDriver    string `env:"DB_DRIVER" envDefault:"mysql"`
	DatabaseDSN string `env:"DATABASE_DSN" envDefault:"user:password@tcp(localhost:3306)/cards?charset=utf8mb4&parseTime=True&loc=Local"`
	ResetDB     bool   `env:"RESET_DB"`

	RedisAddr    string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB      int           `env:"REDIS_DB" envDefault:"0"`
	RedisPass    string        `env:"REDIS_PASSWORD"`
	CardCacheTTL time.Duration `env:"CARD_CACHE_TTL" envDefault:"5m"`

	NATSURL           string `env:"NATS_URL"`
	NATSToken         string `env:"NATS_TOKEN"`
	NATSSubjectPrefix string `env:"NATS_SUBJECT_PREFIX" envDefault:"ledger"`

	JWTSecret   string `env:"JWT_SECRET" envDefault:"change-me"`
	SwaggerHost string `env:"SWAGGER_HOST"`

	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogDevelopment bool   `env:"LOG_DEVELOPMENT"`

	// IssueMaxAttempts bounds card-number draws per issued card.
	IssueMaxAttempts int `env:"ISSUE_MAX_ATTEMPTS" envDefault:"10"`
}

// Load builds Config from the environment, reading a local .env file first
// when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.IssueMaxAttempts < 1 {
		return nil, fmt.Errorf("ISSUE_MAX_ATTEMPTS must be positive, got %d", cfg.IssueMaxAttempts)
	}
	return &cfg, nil
}
