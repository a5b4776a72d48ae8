package camunda

import (
	"context"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"restaurant-workers/internal/common/errors"
)

// CompleteJob sends the complete command for job with output as variables,
// retrying transient gateway failures.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}, retry *RetryConfig) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		return errors.NewInternalError(fmt.Errorf("encode job output: %w", err))
	}

	return Retry(ctx, retry, "complete-job", func(ctx context.Context) error {
		_, err := cmd.Send(ctx)
		return err
	})
}
