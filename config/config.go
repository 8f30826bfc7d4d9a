package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all application configuration, read from the environment
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	DBPath   string `env:"DB_PATH,   default=user_management.db"`
	UseHTTPS bool   `env:"USE_HTTPS, default=false"`

	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=true"`

	OIDC OIDCConfig
}

// OIDCConfig configures the optional operator sign-in. Leaving the issuer
// empty disables authentication entirely.
type OIDCConfig struct {
	Issuer       string `env:"OIDC_ISSUER"`
	ClientID     string `env:"OIDC_CLIENT_ID"`
	ClientSecret string `env:"OIDC_CLIENT_SECRET"`
	CallbackURL  string `env:"OIDC_CALLBACK_URL"`
}

// AuthEnabled reports whether operator sign-in is configured
func (c *Config) AuthEnabled() bool {
	return c.OIDC.Issuer != ""
}

// Load reads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return &cfg, nil
}
