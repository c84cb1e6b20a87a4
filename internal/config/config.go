package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App      AppConfig      `yaml:"app"`
	Storage  StorageConfig  `yaml:"storage"`
	Redis    RedisConfig    `yaml:"redis"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
}

type AppConfig struct {
	AppName     string `yaml:"name"`
	Environment string `yaml:"env"`
	HTTPPort    string `yaml:"http_port"`
}

// StorageConfig selects the backends for persistent records and sessions.
type StorageConfig struct {
	Driver        string        `yaml:"driver"`
	SessionDriver string        `yaml:"session_driver"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type DatabaseConfig struct {
	DBHost         string        `yaml:"host"`
	DBPort         string        `yaml:"port"`
	DBName         string        `yaml:"name"`
	DBUser         string        `yaml:"user"`
	DBPassword     string        `yaml:"password"`
	DBSSLMode      string        `yaml:"ssl_mode"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	PoolMaxConns   int32         `yaml:"pool_max_conns"`
}

type JWTConfig struct {
	Secret    string        `yaml:"secret"`
	ExpiresIn time.Duration `yaml:"expires_in"`
}

type AuthConfig struct {
	AdminEmail      string `yaml:"admin_email"`
	AdminPassword   string `yaml:"admin_password"`
	AllowReregister bool   `yaml:"allow_reregister"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

func Defaults() Config {
	return Config{
		Storage: StorageConfig{
			Driver:        DriverMemory,
			SessionDriver: DriverMemory,
			SessionTTL:    24 * time.Hour,
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Database: DatabaseConfig{
			DBHost:         "localhost",
			DBPort:         "5432",
			DBSSLMode:      "disable",
			ConnectTimeout: 5 * time.Second,
		},
		JWT: JWTConfig{ExpiresIn: 24 * time.Hour},
		Auth: AuthConfig{
			AdminEmail:    "admin@campusprep.com",
			AdminPassword: "admin123",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads CONFIG_FILE (if set) over the defaults, then applies the
// environment on top.
func Load() (Config, error) {
	cfg := Defaults()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	return apply(cfg, os.Getenv)
}

func apply(cfg Config, getenv func(string) string) (Config, error) {
	var invalid []string

	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	secret := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			invalid = append(invalid, key)
			return
		}
		*dst = d
	}
	boolean := func(key string, dst *bool) {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			invalid = append(invalid, key)
			return
		}
		*dst = b
	}
	integer := func(key string, dst *int) {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			invalid = append(invalid, key)
			return
		}
		*dst = n
	}

	str("APP_NAME", &cfg.App.AppName)
	str("APP_ENV", &cfg.App.Environment)
	str("HTTP_PORT", &cfg.App.HTTPPort)

	str("STORAGE_DRIVER", &cfg.Storage.Driver)
	str("SESSION_DRIVER", &cfg.Storage.SessionDriver)
	dur("SESSION_TTL", &cfg.Storage.SessionTTL)

	str("REDIS_ADDR", &cfg.Redis.Addr)
	secret("REDIS_PASSWORD", &cfg.Redis.Password)
	integer("REDIS_DB", &cfg.Redis.DB)

	str("DB_HOST", &cfg.Database.DBHost)
	str("DB_PORT", &cfg.Database.DBPort)
	str("DB_NAME", &cfg.Database.DBName)
	str("DB_USER", &cfg.Database.DBUser)
	secret("DB_PASSWORD", &cfg.Database.DBPassword)
	str("DB_SSL_MODE", &cfg.Database.DBSSLMode)
	dur("DB_CONNECT_TIMEOUT", &cfg.Database.ConnectTimeout)

	secret("JWT_SECRET", &cfg.JWT.Secret)
	dur("JWT_EXPIRES_IN", &cfg.JWT.ExpiresIn)

	str("ADMIN_EMAIL", &cfg.Auth.AdminEmail)
	secret("ADMIN_PASSWORD", &cfg.Auth.AdminPassword)
	boolean("AUTH_ALLOW_REREGISTER", &cfg.Auth.AllowReregister)

	str("LOG_LEVEL", &cfg.Log.Level)
	boolean("LOG_PRETTY", &cfg.Log.Pretty)

	cfg.Storage.Driver = strings.ToLower(cfg.Storage.Driver)
	cfg.Storage.SessionDriver = strings.ToLower(cfg.Storage.SessionDriver)
	switch cfg.Storage.Driver {
	case DriverMemory, DriverRedis, DriverPostgres:
	default:
		invalid = append(invalid, "STORAGE_DRIVER")
	}
	switch cfg.Storage.SessionDriver {
	case DriverMemory, DriverRedis:
	default:
		invalid = append(invalid, "SESSION_DRIVER")
	}

	var missing []string
	req := func(key, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, key)
		}
	}
	req("APP_NAME", cfg.App.AppName)
	req("APP_ENV", cfg.App.Environment)
	req("HTTP_PORT", cfg.App.HTTPPort)
	req("JWT_SECRET", cfg.JWT.Secret)
	req("ADMIN_EMAIL", cfg.Auth.AdminEmail)
	req("ADMIN_PASSWORD", cfg.Auth.AdminPassword)
	if cfg.Storage.Driver == DriverPostgres {
		req("DB_NAME", cfg.Database.DBName)
		req("DB_USER", cfg.Database.DBUser)
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}
