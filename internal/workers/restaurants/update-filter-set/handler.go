// internal/workers/restaurants/update-filter-set/handler.go
package updatefilterset

import (
	"context"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	commonerrors "restaurant-workers/internal/common/errors"
	"restaurant-workers/internal/common/logger"
	"restaurant-workers/internal/common/validation"
	"restaurant-workers/internal/filter"
	"restaurant-workers/internal/workers/restaurants"
	"restaurant-workers/pkg/registry"
)

const (
	TaskType = "update-filter-set"
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
	set, err := restaurants.ParseFilters(input.Filters)
	if err != nil {
		return nil, err
	}

	var (
		next    filter.Set
		removed bool
	)
	switch input.Operation {
	case OperationAdd:
		if input.Criteria == nil {
			return nil, commonerrors.NewInvalidFilterFormatError("operation add requires criteria")
		}
		criteria, err := restaurants.ParseCriteria(*input.Criteria)
		if err != nil {
			return nil, err
		}
		next = set.Add(criteria)
	case OperationRemove:
		if input.Filter == nil {
			return nil, commonerrors.NewInvalidFilterFormatError("operation remove requires filter")
		}
		f, err := restaurants.ParseFilter(*input.Filter)
		if err != nil {
			return nil, err
		}
		next = set.Remove(f)
		removed = len(next) < len(set)
	default:
		return nil, commonerrors.NewInvalidFilterFormatError(fmt.Sprintf("unknown operation %q", input.Operation))
	}

	h.logger.Debug("filter set updated", map[string]interface{}{
		"operation": input.Operation,
		"before":    len(set),
		"after":     len(next),
	})

	return &Output{Filters: restaurants.FilterSpecs(next), Removed: removed}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
