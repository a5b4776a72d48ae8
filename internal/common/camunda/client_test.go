package camunda

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"restaurant-workers/internal/common/errors"
)

var fastRetry = &RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

func TestRetry_SucceedsAfterTransientErrors(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry, "complete-job", func(context.Context) error {
		calls++
		if calls < 3 {
			return status.Error(codes.Unavailable, "gateway restarting")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_GivesUp(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry, "complete-job", func(context.Context) error {
		calls++
		return status.Error(codes.Unavailable, "gateway down")
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)

	var stdErr *errors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeEngineUnavailable, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestRetry_DoesNotRetryRejections(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry, "complete-job", func(context.Context) error {
		calls++
		return status.Error(codes.NotFound, "job not found")
	})

	assert.Equal(t, 1, calls)
	var stdErr *errors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeEngineRejected, stdErr.Code)
}

func TestRetry_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	slow := &RetryConfig{MaxRetries: 5, BaseDelay: time.Hour, MaxDelay: time.Hour}

	calls := 0
	err := Retry(ctx, slow, "complete-job", func(context.Context) error {
		calls++
		cancel()
		return stderrors.New("connection refused")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMapZeebeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errors.ErrorCode
	}{
		{"deadline status", status.Error(codes.DeadlineExceeded, "slow"), errors.ErrCodeEngineTimeout},
		{"timeout text", stderrors.New("i/o timeout"), errors.ErrCodeEngineTimeout},
		{"invalid argument", status.Error(codes.InvalidArgument, "bad variables"), errors.ErrCodeEngineRejected},
		{"unavailable", status.Error(codes.Unavailable, "down"), errors.ErrCodeEngineUnavailable},
		{"unknown", stderrors.New("weird"), errors.ErrCodeEngineUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mapZeebeError(tt.err, "op", 0).Code)
		})
	}
}

func TestIsRetryableZeebeError(t *testing.T) {
	assert.True(t, isRetryableZeebeError(status.Error(codes.ResourceExhausted, "backpressure")))
	assert.True(t, isRetryableZeebeError(stderrors.New("connection reset by peer")))
	assert.False(t, isRetryableZeebeError(status.Error(codes.FailedPrecondition, "job already completed")))
	assert.False(t, isRetryableZeebeError(stderrors.New("boom")))
}
