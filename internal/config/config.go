package config

import (
	"strings"
	"time"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Cache    CacheConfig    `mapstructure:"cache" validate:"required"`
	Engine   EngineConfig   `mapstructure:"engine" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error fatal"`
	// Comma-separated list of origins allowed by CORS; "*" allows all
	CORSAllowedOrigins string `mapstructure:"cors_allowed_origins"`
}

// AllowedOrigins splits CORSAllowedOrigins into a list, dropping blanks.
func (s ServerConfig) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(s.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// DatabaseConfig contains all database-related configuration settings.
// An empty URL runs the service on in-memory stores.
type DatabaseConfig struct {
	URL          string `mapstructure:"url" validate:"omitempty,url"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=1"`
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
}

// Enabled reports whether a PostgreSQL database is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// CacheConfig controls the chart cache. An empty RedisAddr keeps the cache
// in process memory.
type CacheConfig struct {
	RedisAddr     string `mapstructure:"redis_addr" validate:"omitempty,hostname_port"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db" validate:"gte=0"`
	TTLMinutes    int    `mapstructure:"ttl_minutes" validate:"gt=0"`
	MaxEntries    int    `mapstructure:"max_entries" validate:"gt=0"`
}

// TTL returns the cache entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// EngineConfig tunes the chart calculation engine.
type EngineConfig struct {
	HouseSystem         string `mapstructure:"house_system" validate:"required,oneof=porphyry equal"`
	IncludeMinorAspects bool   `mapstructure:"include_minor_aspects"`
	ParallelBodies      bool   `mapstructure:"parallel_bodies"`
	// Maximum concurrent chart computations in a batch request
	BatchWorkers int `mapstructure:"batch_workers" validate:"gt=0,lte=64"`
}
