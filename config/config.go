package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	FoodDB    FoodDBConfig
	Cache     CacheConfig
	Matching  MatchingConfig
	Ledger    LedgerConfig
	Logging   LoggingConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StoreConfig holds pantry persistence configuration
type StoreConfig struct {
	Type       string `mapstructure:"type"` // "sqlite" or "memory"
	SQLitePath string `mapstructure:"sqlite_path"`
}

// FoodDBConfig holds the external food database API configuration
type FoodDBConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Enabled bool   `mapstructure:"enabled"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type       string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL   string        `mapstructure:"redis_url"`
	TTL        time.Duration `mapstructure:"ttl"`
	MaxEntries int           `mapstructure:"max_entries"`
}

// MatchingConfig holds ingredient matcher configuration
type MatchingConfig struct {
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`
	EnableFuzzyMatching bool    `mapstructure:"enable_fuzzy_matching"`
	FuzzyEditDistance   int     `mapstructure:"fuzzy_edit_distance"`
}

// LedgerConfig holds deduction configuration
type LedgerConfig struct {
	DeductionTimeout time.Duration `mapstructure:"deduction_timeout"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP  int `mapstructure:"per_ip"`
	FoodDB int `mapstructure:"fooddb"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/prepsense/")

	// Environment variable settings: PANTRY_STORE_TYPE overrides store.type
	v.SetEnvPrefix("PANTRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Store defaults
	v.SetDefault("store.type", "sqlite")
	v.SetDefault("store.sqlite_path", "data/pantry.db")

	// Food database defaults. The empty api_key default registers the key so
	// the PANTRY_FOODDB_API_KEY override is visible to Unmarshal.
	v.SetDefault("fooddb.api_key", "")
	v.SetDefault("fooddb.base_url", "https://api.nal.usda.gov/fdc")
	v.SetDefault("fooddb.enabled", true)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.max_entries", 10000)

	// Matching defaults
	v.SetDefault("matching.similarity_threshold", 75.0)
	v.SetDefault("matching.enable_fuzzy_matching", true)
	v.SetDefault("matching.fuzzy_edit_distance", 1)

	// Ledger defaults
	v.SetDefault("ledger.deduction_timeout", "5s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.fooddb", 1000)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Store.Type != "sqlite" && config.Store.Type != "memory" {
		return fmt.Errorf("store type must be 'sqlite' or 'memory', got: %s", config.Store.Type)
	}

	if config.Store.Type == "sqlite" && config.Store.SQLitePath == "" {
		return fmt.Errorf("sqlite path is required when store type is 'sqlite'")
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("redis URL is required when cache type is 'redis'")
	}

	if config.FoodDB.Enabled && config.FoodDB.APIKey == "" {
		return fmt.Errorf("food database API key is required when fooddb is enabled (set PANTRY_FOODDB_API_KEY)")
	}

	if config.Matching.SimilarityThreshold < 0 || config.Matching.SimilarityThreshold > 100 {
		return fmt.Errorf("matching similarity threshold must be in [0,100], got: %v", config.Matching.SimilarityThreshold)
	}

	return nil
}
