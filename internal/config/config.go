package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port              string
	Environment       string
	LogLevel          string
	DatabaseDSN       string
	AuthSecret        string
	AuthJWKSURL       string
	PlatformPrincipal string
	PolicyFile        string
	GenesisTime       time.Time
	Policy            *Policy
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:              getEnvWithDefault("PORT", "8080"),
		Environment:       getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:          getEnvWithDefault("LOG_LEVEL", "info"),
		DatabaseDSN:       getEnvWithDefault("DATABASE_DSN", "stackstay.db"),
		AuthSecret:        os.Getenv("AUTH_SECRET"),
		AuthJWKSURL:       os.Getenv("AUTH_JWKS_URL"),
		PlatformPrincipal: os.Getenv("PLATFORM_PRINCIPAL"),
		PolicyFile:        os.Getenv("POLICY_FILE"),
	}

	// Validate required fields
	if cfg.PlatformPrincipal == "" {
		return nil, fmt.Errorf("PLATFORM_PRINCIPAL is required")
	}
	if cfg.AuthSecret == "" && cfg.AuthJWKSURL == "" {
		return nil, fmt.Errorf("AUTH_SECRET or AUTH_JWKS_URL is required")
	}

	genesis, err := parseGenesis(os.Getenv("GENESIS_TIME"))
	if err != nil {
		return nil, err
	}
	cfg.GenesisTime = genesis

	policy, err := LoadPolicy(cfg.PolicyFile)
	if err != nil {
		return nil, err
	}
	cfg.Policy = policy

	return cfg, nil
}

// parseGenesis accepts RFC 3339 or a unix-seconds integer. Unset means the
// tick clock starts at midnight UTC of the current day, which keeps local
// runs deterministic within a day.
func parseGenesis(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	if ts, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Unix(ts, 0).UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("GENESIS_TIME must be RFC3339 or unix seconds: %v", err)
	}
	return t.UTC(), nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
