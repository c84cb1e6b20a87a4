package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func baseEnv() map[string]string {
	return map[string]string{
		"APP_NAME":   "campus-prep",
		"APP_ENV":    "test",
		"HTTP_PORT":  "8080",
		"JWT_SECRET": "s3cret",
	}
}

func TestApply_Defaults(t *testing.T) {
	cfg, err := apply(Defaults(), envFrom(baseEnv()))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Storage.Driver != DriverMemory || cfg.Storage.SessionDriver != DriverMemory {
		t.Fatalf("expected memory drivers, got %+v", cfg.Storage)
	}
	if cfg.Auth.AdminEmail != "admin@campusprep.com" || cfg.Auth.AdminPassword != "admin123" {
		t.Fatalf("unexpected admin defaults: %+v", cfg.Auth)
	}
	if cfg.JWT.ExpiresIn != 24*time.Hour {
		t.Fatalf("expected 24h token expiry, got %s", cfg.JWT.ExpiresIn)
	}
}

func TestApply_MissingRequired(t *testing.T) {
	env := baseEnv()
	delete(env, "JWT_SECRET")
	delete(env, "HTTP_PORT")

	_, err := apply(Defaults(), envFrom(env))
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
}

func TestApply_Overrides(t *testing.T) {
	env := baseEnv()
	env["STORAGE_DRIVER"] = "Redis"
	env["SESSION_DRIVER"] = "redis"
	env["SESSION_TTL"] = "30m"
	env["REDIS_DB"] = "2"
	env["AUTH_ALLOW_REREGISTER"] = "true"

	cfg, err := apply(Defaults(), envFrom(env))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Storage.Driver != DriverRedis {
		t.Fatalf("expected redis driver, got %s", cfg.Storage.Driver)
	}
	if cfg.Storage.SessionTTL != 30*time.Minute {
		t.Fatalf("expected 30m, got %s", cfg.Storage.SessionTTL)
	}
	if cfg.Redis.DB != 2 || !cfg.Auth.AllowReregister {
		t.Fatalf("unexpected overrides: %+v %+v", cfg.Redis, cfg.Auth)
	}
}

func TestApply_Invalid(t *testing.T) {
	env := baseEnv()
	env["STORAGE_DRIVER"] = "sqlite"
	env["SESSION_TTL"] = "soon"

	_, err := apply(Defaults(), envFrom(env))
	if !errors.Is(err, errInvalidEnv) {
		t.Fatalf("expected errInvalidEnv, got %v", err)
	}
}

func TestApply_PostgresNeedsDatabase(t *testing.T) {
	env := baseEnv()
	env["STORAGE_DRIVER"] = "postgres"

	_, err := apply(Defaults(), envFrom(env))
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte(`
app:
  name: from-file
  env: staging
  http_port: "9000"
jwt:
  secret: file-secret
storage:
  session_ttl: 2h
`)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("SESSION_DRIVER", "")
	t.Setenv("SESSION_TTL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.App.AppName != "from-file" || cfg.JWT.Secret != "file-secret" {
		t.Fatalf("expected values from file, got %+v", cfg)
	}
	if cfg.App.HTTPPort != "8081" {
		t.Fatalf("expected env to win, got %s", cfg.App.HTTPPort)
	}
	if cfg.Storage.SessionTTL != 2*time.Hour {
		t.Fatalf("expected 2h session ttl, got %s", cfg.Storage.SessionTTL)
	}
}
