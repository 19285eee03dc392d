package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Finplan"`
		Port int    `envconfig:"PORT" default:"8080"`
		// LocalOwner scopes saved plans when the TUI runs without a token.
		LocalOwner string `envconfig:"LOCAL_OWNER" default:"local"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"finplan"`
	}

	Server struct {
		Timeout         time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
		AllowedOrigins  []string      `envconfig:"SERVER_ALLOWED_ORIGINS" default:"http://localhost:5173"`
	}

	Auth struct {
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
		Issuer    string `envconfig:"AUTH_ISSUER"`
	}

	Offers struct {
		BaseURL       string        `envconfig:"OFFERS_BASE_URL"`
		Token         string        `envconfig:"OFFERS_TOKEN"`
		Timeout       time.Duration `envconfig:"OFFERS_TIMEOUT" default:"10s"`
		RateSheetPath string        `envconfig:"OFFERS_RATE_SHEET"`
	}

	Redis struct {
		Addr     string        `envconfig:"REDIS_ADDR"`
		Password string        `envconfig:"REDIS_PASSWORD"`
		DB       int           `envconfig:"REDIS_DB" default:"0"`
		QuoteTTL time.Duration `envconfig:"REDIS_QUOTE_TTL" default:"15m"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// Validate reports settings that only make sense together.
func (c *Config) Validate() error {
	if c.Offers.BaseURL == "" && c.Offers.RateSheetPath == "" {
		return fmt.Errorf("one of OFFERS_BASE_URL or OFFERS_RATE_SHEET must be set")
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
