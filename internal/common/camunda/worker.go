// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"restaurant-workers/internal/common/logger"
	"restaurant-workers/internal/common/metrics"
	"restaurant-workers/internal/common/observability"
)

// JobHandler processes one activated job. It is responsible for completing,
// failing or throwing on the job itself.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// WorkerOptions configures one job worker.
type WorkerOptions struct {
	TaskType      string
	MaxJobsActive int
	Timeout       time.Duration
}

type CamundaWorker struct {
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

// NewWorker opens a job worker for opts.TaskType. obs may be nil.
func NewWorker(
	client zbc.Client,
	opts WorkerOptions,
	handler JobHandler,
	obs *observability.Observability,
	log logger.Logger,
) *CamundaWorker {
	log = log.WithFields(map[string]interface{}{"taskType": opts.TaskType})

	step := client.NewJobWorker().
		JobType(opts.TaskType).
		Handler(instrument(opts.TaskType, handler, obs)).
		MaxJobsActive(opts.MaxJobsActive)
	if opts.Timeout > 0 {
		step = step.Timeout(opts.Timeout)
	}

	return &CamundaWorker{
		worker:   step.Open(),
		logger:   log,
		taskType: opts.TaskType,
	}
}

// instrument wraps a handler with the active-job gauge, the duration
// histogram and a span per job.
func instrument(taskType string, handler JobHandler, obs *observability.Observability) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		metrics.WorkerJobsActive.WithLabelValues(taskType).Inc()
		defer metrics.WorkerJobsActive.WithLabelValues(taskType).Dec()

		start := time.Now()
		ctx := context.Background()
		if obs != nil {
			var span trace.Span
			ctx, span = obs.StartSpan(ctx, "job "+taskType, jobAttributes(taskType, job)...)
			defer span.End()
		}

		handler.Handle(client, job)

		elapsed := time.Since(start)
		metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())
		if obs != nil {
			obs.RecordJobProcessed(ctx, taskType, "handled")
			obs.RecordJobDuration(ctx, taskType, elapsed, "handled")
		}
	}
}

func (w *CamundaWorker) Start() {
	w.logger.Info("Worker started", nil)
}

// Stop closes the job worker and waits for in-flight jobs. The shared
// Zeebe client stays open.
func (w *CamundaWorker) Stop() {
	w.logger.Info("Stopping worker", nil)
	w.worker.Close()
	w.worker.AwaitClose()
}

// Job variables are not added to spans; they can carry user locations.
func jobAttributes(taskType string, job entities.Job) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("zeebe.task_type", taskType),
		attribute.Int64("zeebe.job_key", job.Key),
		attribute.Int64("zeebe.process_instance_key", job.ProcessInstanceKey),
		attribute.Int("zeebe.retries", int(job.Retries)),
	}
}
