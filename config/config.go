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
	DriverPostgres = "postgres"
	DriverLibSQL   = "libsql"
	DriverMemory   = "memory"
)

// Config holds every setting of the server process.
type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"memory"`
	DatabaseURL   string `env:"DATABASE_URL"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"data/tournaments.db"`

	JWTSecretKey          string        `env:"JWT_SECRET_KEY,required,notEmpty"`
	OrganizerPasswordHash string        `env:"ORGANIZER_PASSWORD_HASH,required,notEmpty"`
	TokenTTL              time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// RedisURL switches tournament locking to Redis so several server
	// processes can share one database.
	RedisURL     string        `env:"REDIS_URL"`
	RedisLockTTL time.Duration `env:"REDIS_LOCK_TTL" envDefault:"10s"`

	R2 R2Config `envPrefix:"R2_"`
}

// R2Config configures the Cloudflare R2 bucket that receives tournament archives.
type R2Config struct {
	AccountID       string `env:"ACCOUNT_ID"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
	BucketName      string `env:"BUCKET_NAME"`
	PublicBaseURL   string `env:"PUBLIC_BASE_URL"`
}

// Enabled reports whether every R2 setting is present.
func (c R2Config) Enabled() bool {
	return c.AccountID != "" && c.AccessKeyID != "" && c.SecretAccessKey != "" &&
		c.BucketName != "" && c.PublicBaseURL != ""
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) validate() error {
	switch c.StorageDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required with STORAGE_DRIVER=postgres")
		}
	case DriverLibSQL:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required with STORAGE_DRIVER=libsql")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.RedisURL != "" && c.RedisLockTTL <= 0 {
		return fmt.Errorf("REDIS_LOCK_TTL must be positive, got %s", c.RedisLockTTL)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	return nil
}
