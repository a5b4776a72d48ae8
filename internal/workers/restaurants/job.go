package restaurants

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"restaurant-workers/internal/common/camunda"
	"restaurant-workers/internal/common/config"
	commonerrors "restaurant-workers/internal/common/errors"
	"restaurant-workers/internal/common/logger"
	"restaurant-workers/internal/common/metrics"
	"restaurant-workers/internal/common/validation"
)

// JobConfig is the part of every worker's config that comes from the
// workers section.
type JobConfig struct {
	Timeout time.Duration
	Retry   *camunda.RetryConfig
}

// LoadJobConfig maps a workers entry. MaxRetries bounds retries of the
// complete command against the gateway.
func LoadJobConfig(wc config.WorkerConfig) JobConfig {
	timeout := config.GetDuration(wc.Timeout)
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	retries := wc.MaxRetries
	if retries <= 0 {
		retries = camunda.DefaultRetryConfig.MaxRetries
	}
	return JobConfig{
		Timeout: timeout,
		Retry: &camunda.RetryConfig{
			MaxRetries: retries,
			BaseDelay:  200 * time.Millisecond,
			MaxDelay:   2 * time.Second,
		},
	}
}

// Lifecycle completes or fails jobs for one task type and counts outcomes.
type Lifecycle struct {
	taskType string
	retry    *camunda.RetryConfig
	errors   *commonerrors.ErrorHandler
	logger   logger.Logger
}

func NewLifecycle(taskType string, retry *camunda.RetryConfig, log logger.Logger) *Lifecycle {
	return &Lifecycle{
		taskType: taskType,
		retry:    retry,
		errors:   commonerrors.NewErrorHandler(log),
		logger:   log,
	}
}

// Complete sends output as the job result. A failed complete command is
// handed to Fail.
func (l *Lifecycle) Complete(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) {
	if err := camunda.CompleteJob(ctx, client, job, output, l.retry); err != nil {
		l.Fail(ctx, client, job, err)
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(l.taskType).Inc()
	l.logger.Info("Job completed", map[string]interface{}{"jobKey": job.Key})
}

// Fail reports err to the engine: retryable codes fail the job with
// retries, everything else throws a BPMN error.
func (l *Lifecycle) Fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := commonerrors.AsStandardError(err)
	metrics.WorkerJobsFailed.WithLabelValues(l.taskType, string(stdErr.Code)).Inc()
	l.errors.HandleJobError(ctx, client, job, stdErr)
}

// DecodeInput validates the job variables against schema and decodes them
// into dst. Empty variables decode as an empty object.
func DecodeInput(job entities.Job, schema *validation.Schema, dst interface{}) error {
	variables := job.Variables
	if strings.TrimSpace(variables) == "" {
		variables = "{}"
	}
	if err := schema.ValidateVariables(variables); err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(variables), dst); err != nil {
		return commonerrors.NewInputValidationError(fmt.Sprintf("parse input: %v", err))
	}
	return nil
}
