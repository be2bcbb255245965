package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultDataDir is the directory under the user's home where JSON bundles live
const DefaultDataDir = "metalscrape"

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Catalog CatalogConfig
	Store   StoreConfig
	Vendor  VendorConfig
	Cache   CacheConfig
	Log     LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Environment     string        `mapstructure:"environment"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	StaticDir       string        `mapstructure:"static_dir"` // optional client bundle
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// CatalogConfig holds search paging limits
type CatalogConfig struct {
	DefaultPageSize int `mapstructure:"default_page_size"`
	MaxPageSize     int `mapstructure:"max_page_size"`
}

// StoreConfig selects where product bundles are persisted
type StoreConfig struct {
	Type        string `mapstructure:"type"` // "json" or "postgres"
	DataDir     string `mapstructure:"data_dir"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
	MaxConns    int    `mapstructure:"max_conns"`
}

// VendorConfig holds vendor site access configuration
type VendorConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	Workers           int           `mapstructure:"workers"`
	Timeout           time.Duration `mapstructure:"timeout"`
	Quantity          int           `mapstructure:"quantity"`
}

// CacheConfig holds price quote cache configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Mode string `mapstructure:"mode"` // "development" or "production"
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/metalscrape/")

	// METALSCRAPE_STORE_DATA_DIR -> store.data_dir
	v.SetEnvPrefix("METALSCRAPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if config.Store.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("unable to resolve home directory: %w", err)
		}
		config.Store.DataDir = filepath.Join(home, DefaultDataDir)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
// Every key needs a default so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})
	v.SetDefault("server.static_dir", "")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("catalog.default_page_size", 20)
	v.SetDefault("catalog.max_page_size", 200)

	v.SetDefault("store.type", "json")
	v.SetDefault("store.data_dir", "")
	v.SetDefault("store.postgres_dsn", "")
	v.SetDefault("store.max_conns", 4)

	v.SetDefault("vendor.base_url", "https://www.metalsdepot.com")
	v.SetDefault("vendor.requests_per_second", 4.0)
	v.SetDefault("vendor.burst", 8)
	v.SetDefault("vendor.workers", 8)
	v.SetDefault("vendor.timeout", "30s")
	v.SetDefault("vendor.quantity", 1)

	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "24h")

	v.SetDefault("log.mode", "development")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Store.Type != "json" && config.Store.Type != "postgres" {
		return fmt.Errorf("store type must be 'json' or 'postgres', got: %s", config.Store.Type)
	}

	if config.Store.Type == "postgres" && config.Store.PostgresDSN == "" {
		return fmt.Errorf("postgres DSN is required when store type is 'postgres' (set METALSCRAPE_STORE_POSTGRES_DSN)")
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("redis URL is required when cache type is 'redis'")
	}

	if config.Catalog.DefaultPageSize <= 0 || config.Catalog.MaxPageSize <= 0 {
		return fmt.Errorf("page sizes must be positive, got default=%d max=%d",
			config.Catalog.DefaultPageSize, config.Catalog.MaxPageSize)
	}

	if config.Catalog.DefaultPageSize > config.Catalog.MaxPageSize {
		return fmt.Errorf("default page size %d exceeds max page size %d",
			config.Catalog.DefaultPageSize, config.Catalog.MaxPageSize)
	}

	if config.Vendor.Workers < 1 {
		return fmt.Errorf("vendor workers must be at least 1, got: %d", config.Vendor.Workers)
	}

	if config.Vendor.Quantity < 1 {
		return fmt.Errorf("vendor quantity must be at least 1, got: %d", config.Vendor.Quantity)
	}

	return nil
}
