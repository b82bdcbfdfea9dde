// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"os"
	"strings"
	"time"
)

type HTTPConfig struct {
	Addr string
}

type AuthConfig struct {
	JWTSecret      string
	AccessTokenTTL time.Duration
}

type ProgressConfig struct {
	// Monotone makes watched minutes non-decreasing and completion sticky.
	// Off by default: a smaller sample overwrites the stored value.
	Monotone bool
}

type AppConfig struct {
	ServiceName    string
	Env            string
	LogLevel       string
	DatabaseURL    string
	PlaybackSecret string
	HTTP           HTTPConfig
	Auth           AuthConfig
	Progress       ProgressConfig
}

// Production reports whether the service runs with production guarantees
// (Postgres required, no in-memory fallbacks).
func (c AppConfig) Production() bool {
	return strings.EqualFold(c.Env, "production")
}

func Load() (AppConfig, error) {
	cfg := AppConfig{
		ServiceName:    envStr("SERVICE_NAME", "videotrack"),
		Env:            envStr("APP_ENV", "development"),
		LogLevel:       envStr("LOG_LEVEL", "info"),
		DatabaseURL:    envStr("DATABASE_URL", ""),
		PlaybackSecret: envStr("PLAYBACK_SIGNING_SECRET", ""),
		HTTP: HTTPConfig{
			Addr: envStr("HTTP_ADDR", ":8080"),
		},
		Auth: AuthConfig{
			JWTSecret:      envStr("JWT_SECRET", ""),
			AccessTokenTTL: envDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		},
		Progress: ProgressConfig{
			Monotone: envBool("PROGRESS_MONOTONE", false),
		},
	}
	if cfg.Auth.JWTSecret == "" {
		return AppConfig{}, errors.New("JWT_SECRET is required")
	}
	if cfg.Production() && cfg.DatabaseURL == "" {
		return AppConfig{}, errors.New("DATABASE_URL is required in production")
	}
	return cfg, nil
}

func envStr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envBool(key string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
