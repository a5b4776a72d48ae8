// internal/workers/restaurants/rank-restaurants/handler.go
package rankrestaurants

import (
	"context"
	"errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"restaurant-workers/internal/common/database"
	"restaurant-workers/internal/common/logger"
	"restaurant-workers/internal/common/metrics"
	"restaurant-workers/internal/common/validation"
	"restaurant-workers/internal/filter"
	"restaurant-workers/internal/geo"
	"restaurant-workers/internal/ranking"
	"restaurant-workers/internal/workers/restaurants"
	"restaurant-workers/pkg/registry"
)

const (
	TaskType = "rank-restaurants"
)

type Handler struct {
	config    *Config
	engine    *ranking.Engine
	cache     Cache
	schema    *validation.Schema
	lifecycle *restaurants.Lifecycle
	logger    logger.Logger
}

// NewHandler builds a handler. A nil cache disables caching.
func NewHandler(config *Config, engine *ranking.Engine, cache Cache, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		engine:    engine,
		cache:     cache,
		schema:    validation.MustCompile(registry.InputSchema(TaskType)),
		lifecycle: restaurants.NewLifecycle(TaskType, config.Retry, log),
		logger:    log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := restaurants.DecodeInput(job, h.schema, &input); err != nil {
		h.lifecycle.Fail(ctx, client, job, err)
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.lifecycle.Fail(ctx, client, job, err)
		return
	}

	h.lifecycle.Complete(ctx, client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	set, err := restaurants.ParseFilters(input.Filters)
	if err != nil {
		return nil, err
	}

	ref := h.config.Fallback
	if input.ReferenceLocation != nil {
		ref = *input.ReferenceLocation
	}

	order := h.engine.Order().String()
	key := cacheKey(h.engine.CatalogVersion(), order, set, ref)

	if output, ok := h.lookup(ctx, key); ok {
		metrics.RankingsComputed.WithLabelValues(order, "hit").Inc()
		return output, nil
	}

	output := h.rank(set, ref)
	countFilters(set)
	metrics.RankingResultSize.Observe(float64(output.Total))

	cacheOutcome := "disabled"
	if h.cachingEnabled() {
		cacheOutcome = "miss"
		h.store(ctx, key, output)
	}
	metrics.RankingsComputed.WithLabelValues(order, cacheOutcome).Inc()

	h.logger.Info("restaurants ranked", map[string]interface{}{
		"resultId": output.ResultID,
		"filters":  len(set),
		"total":    output.Total,
		"order":    order,
	})

	return output, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) rank(set filter.Set, ref geo.Coordinate) *Output {
	scored := h.engine.Score(set, ref)
	ranked := make([]RankedRestaurant, len(scored))
	for i, s := range scored {
		ranked[i] = RankedRestaurant{
			ID:         s.Restaurant.ID,
			Title:      s.Restaurant.Title,
			Tags:       restaurants.TagNames(s.Restaurant.Tags),
			Latitude:   s.Restaurant.Location.Latitude,
			Longitude:  s.Restaurant.Location.Longitude,
			DistanceKm: s.DistanceKm,
		}
	}

	return &Output{
		ResultID:          uuid.NewString(),
		CatalogVersion:    h.engine.CatalogVersion(),
		Order:             h.engine.Order().String(),
		ReferenceLocation: ref,
		Restaurants:       ranked,
		Total:             len(ranked),
	}
}

func (h *Handler) cachingEnabled() bool {
	return h.cache != nil && h.config.CacheTTL > 0
}

func (h *Handler) lookup(ctx context.Context, key string) (*Output, bool) {
	if !h.cachingEnabled() {
		return nil, false
	}

	var cached Output
	err := h.cache.GetJSON(ctx, key, &cached)
	if errors.Is(err, database.ErrCacheMiss) {
		return nil, false
	}
	if err != nil {
		metrics.CacheErrors.WithLabelValues("get").Inc()
		h.logger.Warn("ranking cache read failed, recomputing", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return nil, false
	}

	cached.Cached = true
	h.logger.Debug("ranking served from cache", map[string]interface{}{
		"key":      key,
		"resultId": cached.ResultID,
	})
	return &cached, true
}

func (h *Handler) store(ctx context.Context, key string, output *Output) {
	if err := h.cache.SetJSON(ctx, key, output, h.config.CacheTTL); err != nil {
		metrics.CacheErrors.WithLabelValues("set").Inc()
		h.logger.Warn("ranking cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

func countFilters(set filter.Set) {
	for _, f := range set {
		metrics.FiltersApplied.WithLabelValues(f.Action.String()).Inc()
	}
}
