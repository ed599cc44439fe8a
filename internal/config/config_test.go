package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLoad_DevDefaults(t *testing.T) {
	t.Setenv("CONFIG_ENV", "missing-env")
	t.Setenv("APP_AUTH_JWT_SECRET", "")
	t.Setenv("APP_MODE", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8080 || cfg.Database.Driver != "mysql" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Auth.JWTSecret != DevJWTSecret {
		t.Fatalf("expected dev secret fallback, got %q", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.SessionTTL != 7*24*time.Hour {
		t.Fatalf("session ttl = %v", cfg.Auth.SessionTTL)
	}
	if cfg.Login.MaxFailures != 5 || cfg.Login.LockWindow != 15*time.Minute {
		t.Fatalf("login defaults: %+v", cfg.Login)
	}
}

func TestLoad_ReleaseRequiresSecret(t *testing.T) {
	t.Setenv("CONFIG_ENV", "missing-env")
	t.Setenv("APP_MODE", "release")
	t.Setenv("APP_AUTH_JWT_SECRET", "")

	if _, err := Load(); !errors.Is(err, ErrMissingJWTSecret) {
		t.Fatalf("expected ErrMissingJWTSecret, got %v", err)
	}

	t.Setenv("APP_AUTH_JWT_SECRET", "s3cret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with secret: %v", err)
	}
	if cfg.Auth.JWTSecret != "s3cret" || cfg.Auth.SessionSecret != "s3cret" {
		t.Fatalf("secrets not applied: %+v", cfg.Auth)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_ENV", "missing-env")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_DATABASE_DRIVER", "sqlite")
	t.Setenv("APP_EVENTS_KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9090 || cfg.Database.Driver != "sqlite" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if len(cfg.Events.Kafka.Brokers) != 2 {
		t.Fatalf("brokers = %v", cfg.Events.Kafka.Brokers)
	}
}

func TestString_MasksSecrets(t *testing.T) {
	cfg := &Config{Auth: AuthConfig{JWTSecret: "top-secret", AdminPasswordHash: "$2a$10$xyz"}}
	s := cfg.String()
	if strings.Contains(s, "top-secret") || strings.Contains(s, "$2a$10$xyz") {
		t.Fatalf("secret leaked: %s", s)
	}
}
