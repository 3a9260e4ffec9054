package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Rechesh"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"rechesh"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		// Comma-separated list of origins allowed to call the API
		// from a browser.
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	S3 struct {
		Endpoint  string `envconfig:"S3_ENDPOINT"`
		Region    string `envconfig:"S3_REGION" default:"us-east-1"`
		Bucket    string `envconfig:"S3_BUCKET" default:"rechesh-files"`
		AccessKey string `envconfig:"S3_ACCESS_KEY"`
		SecretKey string `envconfig:"S3_SECRET_KEY"`
		// Path-style addressing is required for MinIO and most
		// other self-hosted S3 endpoints.
		UsePathStyle bool          `envconfig:"S3_USE_PATH_STYLE" default:"true"`
		PresignTTL   time.Duration `envconfig:"S3_PRESIGN_TTL" default:"15m"`
	}

	Auth struct {
		Enabled  bool   `envconfig:"AUTH_ENABLED" default:"false"`
		Secret   string `envconfig:"AUTH_SECRET"`
		Issuer   string `envconfig:"AUTH_ISSUER" default:"rechesh"`
		Audience string `envconfig:"AUTH_AUDIENCE" default:"rechesh-api"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
