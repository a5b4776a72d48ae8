// internal/workers/restaurants/list-tag-groups/handler.go
package listtaggroups

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"restaurant-workers/internal/catalog"
	"restaurant-workers/internal/common/logger"
	"restaurant-workers/internal/common/validation"
	"restaurant-workers/internal/workers/restaurants"
	"restaurant-workers/pkg/registry"
)

const (
	TaskType = "list-tag-groups"
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

func (h *Handler) execute(_ context.Context, _ *Input) (*Output, error) {
	groups := catalog.TagGroups()
	out := &Output{Groups: make([]Group, len(groups))}
	for i, g := range groups {
		tags := make([]Tag, len(g.Tags))
		for j, t := range g.Tags {
			tags[j] = Tag{Name: t.String(), Title: t.Title()}
		}
		out.Groups[i] = Group{Category: g.Category.String(), Title: g.Title, Tags: tags}
	}
	return out, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
