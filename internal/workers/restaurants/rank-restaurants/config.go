// internal/workers/restaurants/rank-restaurants/config.go
package rankrestaurants

import (
	"time"

	"restaurant-workers/internal/common/config"
	"restaurant-workers/internal/geo"
	"restaurant-workers/internal/workers/restaurants"
)

type Config struct {
	restaurants.JobConfig
	// CacheTTL of zero disables the result cache.
	CacheTTL time.Duration
	// Fallback is used when a job carries no reference location.
	Fallback geo.Coordinate
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		JobConfig: restaurants.LoadJobConfig(config.GetWorkerConfig(cfg, TaskType)),
		CacheTTL:  cfg.Ranking.CacheTTLDuration(),
		Fallback:  cfg.Location.Fallback(),
	}
}
