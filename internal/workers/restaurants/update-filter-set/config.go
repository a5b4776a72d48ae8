// internal/workers/restaurants/update-filter-set/config.go
package updatefilterset

import (
	"restaurant-workers/internal/common/config"
	"restaurant-workers/internal/workers/restaurants"
)

type Config struct {
	restaurants.JobConfig
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{JobConfig: restaurants.LoadJobConfig(config.GetWorkerConfig(cfg, TaskType))}
}
