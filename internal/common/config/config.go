// internal/common/config/config.go
package config

import (
	"time"

	"restaurant-workers/internal/geo"
)

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig               `mapstructure:"app"`
	Camunda  CamundaConfig           `mapstructure:"camunda"`
	Redis    RedisConfig             `mapstructure:"redis"`
	Workers  map[string]WorkerConfig `mapstructure:"workers"`
	Logging  LoggingConfig           `mapstructure:"logging"`
	Location LocationConfig          `mapstructure:"location"`
	Ranking  RankingConfig           `mapstructure:"ranking"`
	Metrics  MetricsConfig           `mapstructure:"metrics"`
	Tracing  TracingConfig           `mapstructure:"tracing"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	Plaintext      bool   `mapstructure:"plaintext"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

// RedisConfig configures the ranking result cache. An empty address
// disables the cache.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Enabled reports whether a cache address is configured.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// LocationConfig holds the reference used before any fix arrives.
type LocationConfig struct {
	DefaultLatitude  float64 `mapstructure:"default_latitude"`
	DefaultLongitude float64 `mapstructure:"default_longitude"`
	RequestTimeout   int     `mapstructure:"request_timeout"` // milliseconds
}

// Fallback returns the configured default reference location.
func (l LocationConfig) Fallback() geo.Coordinate {
	return geo.Coordinate{Latitude: l.DefaultLatitude, Longitude: l.DefaultLongitude}
}

// RankingConfig controls sort direction and result caching.
type RankingConfig struct {
	// Order is farthest_first or nearest_first.
	Order    string `mapstructure:"order"`
	CacheTTL int    `mapstructure:"cache_ttl"` // seconds; 0 disables caching
}

// CacheTTLDuration returns CacheTTL as a duration.
func (r RankingConfig) CacheTTLDuration() time.Duration {
	return time.Duration(r.CacheTTL) * time.Second
}

// MetricsConfig configures the health and metrics HTTP listener.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// TracingConfig selects where job spans are exported.
type TracingConfig struct {
	// Exporter is none or stdout.
	Exporter string `mapstructure:"exporter"`
}
