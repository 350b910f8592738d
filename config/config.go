// Package config resolves the environment-driven configuration of the
// pipeline. Missing required settings are fatal: the caller reports a single
// structured error and performs no further work.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Defaults for the optional settings.
const (
	DefaultWorkloadName = "slack-gateway-agent"
	DefaultUserID       = "m2m-user-001"
	DefaultModelID      = "claude-sonnet-4-20250514"
)

// MissingEnvError reports a required environment variable that is not set.
type MissingEnvError struct {
	Var string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("required environment variable %s is not set", e.Var)
}

// Config holds the resolved pipeline settings.
type Config struct {
	// GatewayURL is the tool gateway endpoint. Required.
	GatewayURL string
	// AuthScope is the OAuth2 scope requested for gateway access. Required.
	AuthScope string
	// WorkloadName identifies the workload/session identity.
	WorkloadName string
	// UserID identifies the machine user on whose behalf tokens are minted.
	UserID string
	// ModelID selects the model backing the agent runtime.
	ModelID string
	// TokenURL, ClientID and ClientSecret configure the M2M token exchange.
	// Optional: when absent the surrounding runtime is expected to inject a
	// pre-minted token.
	TokenURL     string
	ClientID     string
	ClientSecret string
}

// Load reads configuration from the environment. A .env file is honored
// when present (development convenience); real environment variables win.
func Load() (*Config, error) {
	// Ignore the error: a missing .env file is the normal production case.
	_ = godotenv.Load()

	cfg := &Config{
		GatewayURL:   os.Getenv("GATEWAY_URL"),
		AuthScope:    os.Getenv("AUTH_SCOPE"),
		WorkloadName: envOrDefault("WORKLOAD_NAME", DefaultWorkloadName),
		UserID:       envOrDefault("USER_ID", DefaultUserID),
		ModelID:      envOrDefault("MODEL_ID", DefaultModelID),
		TokenURL:     os.Getenv("TOKEN_URL"),
		ClientID:     os.Getenv("CLIENT_ID"),
		ClientSecret: os.Getenv("CLIENT_SECRET"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the required settings.
func (c *Config) Validate() error {
	if c.GatewayURL == "" {
		return &MissingEnvError{Var: "GATEWAY_URL"}
	}
	if c.AuthScope == "" {
		return &MissingEnvError{Var: "AUTH_SCOPE"}
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
