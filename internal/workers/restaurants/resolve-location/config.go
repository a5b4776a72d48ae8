// internal/workers/restaurants/resolve-location/config.go
package resolvelocation

import (
	"restaurant-workers/internal/common/config"
	"restaurant-workers/internal/geo"
	"restaurant-workers/internal/workers/restaurants"
)

type Config struct {
	restaurants.JobConfig
	Fallback geo.Coordinate
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		JobConfig: restaurants.LoadJobConfig(config.GetWorkerConfig(cfg, TaskType)),
		Fallback:  cfg.Location.Fallback(),
	}
}
