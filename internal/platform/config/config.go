// Package config loads the process configuration once at startup.
// Components receive the values they need at construction time instead of
// reading the environment ad hoc.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all environment-driven settings for the server.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	// Database
	DBUser        string `env:"DB_USER" envDefault:"root"`
	DBPassword    string `env:"DB_PASSWORD"`
	DBHost        string `env:"DB_HOST" envDefault:"localhost"`
	DBPort        string `env:"DB_PORT" envDefault:"3306"`
	DBName        string `env:"DB_NAME" envDefault:"media"`
	RunMigrations bool   `env:"RUN_MIGRATIONS" envDefault:"false"`

	// Redis (optional; the session store falls back to MySQL without it)
	RedisHost     string `env:"REDIS_HOST"`
	RedisPort     string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Tokens
	JWTSecret            string        `env:"JWT_SECRET"`
	AccessTokenTTL       time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTokenTTL      time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`
	MaxSessionsPerUser   int           `env:"MAX_SESSIONS_PER_USER" envDefault:"5"`
	VerifyIdentityExists bool          `env:"VERIFY_IDENTITY_EXISTS" envDefault:"false"`

	// Media host (S3-compatible object storage)
	S3Region        string        `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint      string        `env:"S3_ENDPOINT"`
	S3Bucket        string        `env:"S3_BUCKET" envDefault:"media"`
	S3AccessKey     string        `env:"S3_ACCESS_KEY"`
	S3SecretKey     string        `env:"S3_SECRET_KEY"`
	S3PublicBaseURL string        `env:"S3_PUBLIC_BASE_URL"`
	S3Timeout       time.Duration `env:"S3_TIMEOUT" envDefault:"30s"`

	// Upload staging
	UploadTempDir string `env:"UPLOAD_TEMP_DIR" envDefault:"./tmp"`

	// Cookies
	CookieSecure bool `env:"COOKIE_SECURE" envDefault:"false"`
}

// RedisAddr returns the Redis address or "" when Redis is not configured.
func (c *Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return c.RedisHost + ":" + c.RedisPort
}

// Load reads a .env file when present, then parses the environment into a
// Config. A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
