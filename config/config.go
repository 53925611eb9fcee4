package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

const defaultJWTSecret = "profile_form_dev_secret_replace_it_!@#$%^"

// Config содержит все внешние параметры сервера.
// Секреты, которые раньше читались из окружения браузерного приложения,
// передаются компонентам явно через эту структуру.
type Config struct {
	HTTPAddr string

	ProfileAPIURL   string
	ProfileAPIToken string

	GeoAPIURL   string
	GeoAPIKey   string
	GeoIPDBPath string
	GeoIPAddr   string

	StorageBackend string
	SQLitePath     string
	RedisAddr      string
	RedisPassword  string

	JWTSecret   string
	HTTPTimeout time.Duration

	KeepFetchedLocation bool

	LogLevel  string
	LogFormat string
}

// Default возвращает конфигурацию со значениями по умолчанию.
func Default() Config {
	return Config{
		HTTPAddr:       ":8080",
		ProfileAPIURL:  "https://api-staging-0.gotartifact.com/v2/users/me",
		GeoAPIURL:      "https://ipgeolocation.abstractapi.com/v1/",
		StorageBackend: BackendSQLite,
		SQLitePath:     "ProfileForm.db",
		RedisAddr:      "localhost:6379",
		JWTSecret:      defaultJWTSecret,
		HTTPTimeout:    10 * time.Second,
		LogLevel:       "info",
		LogFormat:      "console",
	}
}

// Load загружает .env (если он есть) и читает конфигурацию из окружения.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not read .env file")
	}
	return FromEnv(os.Getenv)
}

// FromEnv собирает конфигурацию из произвольного источника переменных.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()

	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	str("HTTP_ADDR", &cfg.HTTPAddr)
	str("PROFILE_API_URL", &cfg.ProfileAPIURL)
	str("PROFILE_API_TOKEN", &cfg.ProfileAPIToken)
	str("GEO_API_URL", &cfg.GeoAPIURL)
	str("GEO_API_KEY", &cfg.GeoAPIKey)
	str("GEOIP_DB_PATH", &cfg.GeoIPDBPath)
	str("GEOIP_IP", &cfg.GeoIPAddr)
	str("STORAGE_BACKEND", &cfg.StorageBackend)
	str("SQLITE_PATH", &cfg.SQLitePath)
	str("REDIS_ADDR", &cfg.RedisAddr)
	str("REDIS_PASSWORD", &cfg.RedisPassword)
	str("JWT_SECRET", &cfg.JWTSecret)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("LOG_FORMAT", &cfg.LogFormat)

	if v := getenv("HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid HTTP_TIMEOUT %q: %w", v, err)
		}
		cfg.HTTPTimeout = d
	}

	if v := getenv("KEEP_FETCHED_LOCATION"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid KEEP_FETCHED_LOCATION %q: %w", v, err)
		}
		cfg.KeepFetchedLocation = b
	}

	switch cfg.StorageBackend {
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		return cfg, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	return cfg, nil
}

// UsesDefaultJWTSecret сообщает, что секрет не был переопределен.
func (c Config) UsesDefaultJWTSecret() bool {
	return c.JWTSecret == defaultJWTSecret
}
