// internal/workers/restaurants/parse-filter-criteria/handler.go
package parsefiltercriteria

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"restaurant-workers/internal/common/logger"
	"restaurant-workers/internal/common/validation"
	"restaurant-workers/internal/workers/restaurants"
	"restaurant-workers/pkg/registry"
)

const (
	TaskType = "parse-filter-criteria"
)

type Handler struct {
	config    *Config
	schema    *validation.Schema
	lifecycle *restaurants.Lifecycle
	logger    logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
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

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	criteria, err := restaurants.ParseCriteria(restaurants.CriteriaSpec{
		Tags:   input.Tags,
		Action: input.Action,
	})
	if err != nil {
		return nil, err
	}

	filters := criteria.Filters()
	h.logger.Debug("criteria expanded", map[string]interface{}{
		"action":  criteria.Action.String(),
		"tags":    len(input.Tags),
		"filters": len(filters),
	})

	return &Output{Filters: restaurants.FilterSpecs(filters)}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
