package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/framevault/studio-gate/config"
	apperrors "github.com/framevault/studio-gate/internal/errors"
)

// InitLogger initializes the structured logger.
func InitLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (config.AppConfig, error) {
	// Load .env file if it exists (development)
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	return cfg, nil
}

// ValidateAuthConfig checks that the selected auth mode has the values it
// needs. A hole here is a fatal configuration error, deliberately loud and
// distinct from per-user auth failures.
func ValidateAuthConfig(cfg *config.AppConfig) error {
	if cfg == nil {
		return apperrors.Configuration("configuration is required")
	}
	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		if !cfg.IsDev {
			return apperrors.Configuration("mock auth mode is only allowed in development")
		}
		return nil
	case config.AuthModeGoTrue:
		if cfg.Auth.Provider.URL == "" {
			return apperrors.Configuration("IDENTITY_PROVIDER_URL is required")
		}
		if cfg.Auth.Provider.AnonKey == "" {
			return apperrors.Configuration("IDENTITY_PROVIDER_ANON_KEY is required")
		}
		return nil
	case config.AuthModeOIDC:
		if cfg.Auth.Provider.URL == "" {
			return apperrors.Configuration("IDENTITY_PROVIDER_URL is required")
		}
		if cfg.Auth.Provider.ClientID == "" {
			return apperrors.Configuration("IDENTITY_PROVIDER_CLIENT_ID is required")
		}
		return nil
	default:
		return apperrors.Configurationf("unsupported auth mode %q", cfg.Auth.Mode)
	}
}
