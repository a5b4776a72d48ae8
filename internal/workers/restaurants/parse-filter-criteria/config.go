// internal/workers/restaurants/parse-filter-criteria/config.go
package parsefiltercriteria

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
