// internal/workers/restaurants/resolve-location/handler.go
package resolvelocation

import (
	"context"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	commonerrors "restaurant-workers/internal/common/errors"
	"restaurant-workers/internal/common/logger"
	"restaurant-workers/internal/common/metrics"
	"restaurant-workers/internal/common/validation"
	"restaurant-workers/internal/geo"
	"restaurant-workers/internal/location"
	"restaurant-workers/internal/workers/restaurants"
	"restaurant-workers/pkg/registry"
)

const (
	TaskType = "resolve-location"
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Fix != nil && input.FixError != "" {
		return nil, commonerrors.NewInputValidationError("fix and fixError are mutually exclusive")
	}

	status := location.NewStatus(h.config.Fallback, input.HasPermission)
	if input.Current != nil {
		status.Reference = *input.Current
	}

	// Without permission no lookup happens, so any reported fix is ignored.
	if !input.HasPermission {
		metrics.LocationOutcomes.WithLabelValues("no_permission").Inc()
		h.logger.Debug("location permission missing", map[string]interface{}{
			"reference": status.Reference,
		})
		return toOutput(status, ""), nil
	}

	coord, err := providerFor(input).LastKnown(ctx)
	if err != nil {
		status = location.Apply(status, location.Failure(err))
		code := commonerrors.NewLocationError(err).Code
		metrics.LocationOutcomes.WithLabelValues("failure").Inc()
		h.logger.Warn("location lookup failed, keeping reference", map[string]interface{}{
			"errorCode": code,
			"reference": status.Reference,
		})
		return toOutput(status, string(code)), nil
	}

	status = location.Apply(status, location.Success(coord))
	metrics.LocationOutcomes.WithLabelValues("success").Inc()
	h.logger.Info("reference location updated", map[string]interface{}{
		"latitude":  coord.Latitude,
		"longitude": coord.Longitude,
	})
	return toOutput(status, ""), nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// providerFor replays the device's reported outcome.
func providerFor(input *Input) location.Provider {
	if input.FixError == "" {
		return location.Static{Fix: input.Fix}
	}
	err := fixError(input.FixError)
	return location.ProviderFunc(func(context.Context) (geo.Coordinate, error) {
		return geo.Coordinate{}, err
	})
}

func fixError(code string) error {
	switch commonerrors.ErrorCode(code) {
	case commonerrors.ErrCodeLocationUnavailable:
		return location.ErrUnavailable
	case commonerrors.ErrCodeLocationPermissionDenied:
		return location.ErrPermissionDenied
	default:
		return fmt.Errorf("%w: %s", location.ErrProviderFailure, code)
	}
}

func toOutput(s location.Status, code string) *Output {
	return &Output{
		ReferenceLocation: s.Reference,
		ShowLocationError: s.Error,
		PermissionMissing: s.PermissionMissing,
		LocationErrorCode: code,
	}
}
