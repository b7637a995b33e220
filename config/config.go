package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers understood by STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Availability store.
	StoreDriver  string `mapstructure:"STORE_DRIVER"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`
	PostgresDSN  string `mapstructure:"POSTGRES_DSN"`
	SQLitePath   string `mapstructure:"SQLITE_PATH"`

	// Redis configuration cache. Empty REDIS_ADDR disables it.
	RedisAddr      string        `mapstructure:"REDIS_ADDR"`
	RedisPassword  string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int           `mapstructure:"REDIS_CACHE_DB"`
	ConfigCacheTTL time.Duration `mapstructure:"CONFIG_CACHE_TTL"`

	// Booking rules.
	BookingTimezone     string `mapstructure:"BOOKING_TIMEZONE"`
	SlotRemainderPolicy string `mapstructure:"SLOT_REMAINDER_POLICY"`

	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("STORE_DRIVER", DriverMemory)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "slotbook")
	v.SetDefault("POSTGRES_DSN", "")
	v.SetDefault("SQLITE_PATH", "slotbook.db")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("CONFIG_CACHE_TTL", "5m")
	v.SetDefault("BOOKING_TIMEZONE", "UTC")
	v.SetDefault("SLOT_REMAINDER_POLICY", "drop")
	v.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})
}

// Load reads config.yaml from "." or "./config" when present, overlays environment
// variables, and validates the result.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	cfg.SlotRemainderPolicy = strings.ToLower(strings.TrimSpace(cfg.SlotRemainderPolicy))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig populates AppConfig and exits the process on invalid configuration.
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = *cfg
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory, DriverMongo, DriverSQLite:
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required when STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.SlotRemainderPolicy {
	case "drop", "extend":
	default:
		return fmt.Errorf("unknown SLOT_REMAINDER_POLICY %q (want drop or extend)", c.SlotRemainderPolicy)
	}

	if _, err := time.LoadLocation(c.BookingTimezone); err != nil {
		return fmt.Errorf("invalid BOOKING_TIMEZONE %q: %w", c.BookingTimezone, err)
	}
	if c.MaxRequestsPerMin <= 0 {
		return fmt.Errorf("MAX_REQUESTS_PER_MIN must be positive, got %d", c.MaxRequestsPerMin)
	}
	if c.ConfigCacheTTL < 0 {
		return fmt.Errorf("CONFIG_CACHE_TTL must not be negative")
	}
	return nil
}

// Location resolves BookingTimezone. Validate has already rejected unloadable zones.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.BookingTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
