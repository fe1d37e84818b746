package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds process settings. Values come from, in increasing priority:
// built-in defaults, the optional TOML file named by PARCEL_CONFIG, and the
// environment (including a .env file).
type Config struct {
	Port string `toml:"port"`

	RegistryBackend string `toml:"registry_backend"` // json | bolt | postgres | memory
	RegistryPath    string `toml:"registry_path"`
	BoltPath        string `toml:"bolt_path"`
	DatabaseURL     string `toml:"database_url"`

	RouteCache     string        `toml:"route_cache"` // none | lru | redis
	RouteCacheSize int           `toml:"route_cache_size"`
	RedisAddr      string        `toml:"redis_addr"`
	RouteCacheTTL  time.Duration `toml:"route_cache_ttl"`

	DefaultSpeedKmh float64 `toml:"default_speed_kmh"`

	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

func Defaults() Config {
	return Config{
		Port:            "8080",
		RegistryBackend: "json",
		RegistryPath:    "data/registro_paquetes.json",
		BoltPath:        "data/registry.bbolt",
		RouteCache:      "lru",
		RouteCacheSize:  256,
		RedisAddr:       "localhost:6379",
		RouteCacheTTL:   24 * time.Hour,
		DefaultSpeedKmh: 80,
		LogLevel:        "info",
		LogFormat:       "console",
	}
}

// LoadDotEnv reads a .env file into the environment if one exists.
// It reports whether a file was loaded; a missing file is normal.
func LoadDotEnv() bool {
	return godotenv.Load() == nil
}

// Load resolves the configuration from defaults, PARCEL_CONFIG and the environment.
func Load() (Config, error) {
	cfg := Defaults()

	if path := strings.TrimSpace(os.Getenv("PARCEL_CONFIG")); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("load config: decode %q: %w", path, err)
		}
	}

	cfg.Port = Get("PORT", cfg.Port)
	cfg.RegistryBackend = strings.ToLower(Get("REGISTRY_BACKEND", cfg.RegistryBackend))
	cfg.RegistryPath = Get("REGISTRY_PATH", cfg.RegistryPath)
	cfg.BoltPath = Get("BOLT_PATH", cfg.BoltPath)
	cfg.DatabaseURL = Get("DATABASE_URL", cfg.DatabaseURL)
	cfg.RouteCache = strings.ToLower(Get("ROUTE_CACHE", cfg.RouteCache))
	cfg.RedisAddr = Get("REDIS_ADDR", cfg.RedisAddr)
	cfg.LogLevel = Get("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = Get("LOG_FORMAT", cfg.LogFormat)

	var err error
	if cfg.RouteCacheSize, err = getInt("ROUTE_CACHE_SIZE", cfg.RouteCacheSize); err != nil {
		return Config{}, err
	}
	if cfg.RouteCacheTTL, err = getDuration("ROUTE_CACHE_TTL", cfg.RouteCacheTTL); err != nil {
		return Config{}, err
	}
	if cfg.DefaultSpeedKmh, err = getFloat("DEFAULT_SPEED_KMH", cfg.DefaultSpeedKmh); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerations and numeric ranges.
func (c Config) Validate() error {
	switch c.RegistryBackend {
	case "json", "bolt", "memory":
	case "postgres":
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("config: DATABASE_URL is required for registry backend postgres")
		}
	default:
		return fmt.Errorf("config: unknown registry backend %q", c.RegistryBackend)
	}

	switch c.RouteCache {
	case "none", "redis":
	case "lru":
		if c.RouteCacheSize <= 0 {
			return fmt.Errorf("config: ROUTE_CACHE_SIZE must be positive, got %d", c.RouteCacheSize)
		}
	default:
		return fmt.Errorf("config: unknown route cache %q", c.RouteCache)
	}

	if !(c.DefaultSpeedKmh > 0) || math.IsInf(c.DefaultSpeedKmh, 1) {
		return fmt.Errorf("config: DEFAULT_SPEED_KMH must be positive, got %v", c.DefaultSpeedKmh)
	}
	return nil
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return f, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}
