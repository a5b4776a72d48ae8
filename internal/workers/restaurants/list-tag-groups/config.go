// internal/workers/restaurants/list-tag-groups/config.go
package listtaggroups

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
