package updatefilterset

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "restaurant-workers/internal/common/errors"
	"restaurant-workers/internal/common/logger"
	"restaurant-workers/internal/workers/restaurants"
)

func newTestHandler(t *testing.T) *Handler {
	cfg := &Config{JobConfig: restaurants.JobConfig{Timeout: 5 * time.Second}}
	return NewHandler(cfg, logger.NewTestLogger(t))
}

func spec(action, tag string) restaurants.FilterSpec {
	return restaurants.FilterSpec{Action: action, Tag: tag}
}

func TestExecute_Add(t *testing.T) {
	h := newTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		Filters:   []restaurants.FilterSpec{spec("include", "Pizza")},
		Operation: OperationAdd,
		Criteria:  &restaurants.CriteriaSpec{Tags: []string{"Delivery", "Pizza"}, Action: "optional"},
	})
	require.NoError(t, err)
	assert.Equal(t, []restaurants.FilterSpec{
		spec("include", "Pizza"),
		spec("optional", "Delivery"),
		spec("optional", "Pizza"),
	}, out.Filters)
	assert.False(t, out.Removed)
}

func TestExecute_AddKeepsDuplicates(t *testing.T) {
	h := newTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		Filters:   []restaurants.FilterSpec{spec("exclude", "Burger")},
		Operation: OperationAdd,
		Criteria:  &restaurants.CriteriaSpec{Tags: []string{"Burger"}, Action: "exclude"},
	})
	require.NoError(t, err)
	assert.Equal(t, []restaurants.FilterSpec{spec("exclude", "Burger"), spec("exclude", "Burger")}, out.Filters)
}

func TestExecute_Remove(t *testing.T) {
	tests := []struct {
		name    string
		filters []restaurants.FilterSpec
		target  restaurants.FilterSpec
		want    []restaurants.FilterSpec
		removed bool
	}{
		{
			name:    "removes first equal entry",
			filters: []restaurants.FilterSpec{spec("include", "Pizza"), spec("exclude", "Bar"), spec("include", "Pizza")},
			target:  spec("include", "Pizza"),
			want:    []restaurants.FilterSpec{spec("exclude", "Bar"), spec("include", "Pizza")},
			removed: true,
		},
		{
			name:    "absent filter leaves set unchanged",
			filters: []restaurants.FilterSpec{spec("include", "Pizza")},
			target:  spec("exclude", "Pizza"),
			want:    []restaurants.FilterSpec{spec("include", "Pizza")},
		},
		{
			name:    "inputs are canonicalized",
			filters: []restaurants.FilterSpec{spec("Optional", "ice cream")},
			target:  spec("optional", "IceCream"),
			want:    []restaurants.FilterSpec{},
			removed: true,
		},
	}

	h := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := tt.target
			out, err := h.Execute(context.Background(), &Input{
				Filters:   tt.filters,
				Operation: OperationRemove,
				Filter:    &target,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Filters)
			assert.Equal(t, tt.removed, out.Removed)
		})
	}
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input Input
		want  commonerrors.ErrorCode
	}{
		{"add without criteria", Input{Operation: OperationAdd}, commonerrors.ErrCodeInvalidFilterFormat},
		{"remove without filter", Input{Operation: OperationRemove}, commonerrors.ErrCodeInvalidFilterFormat},
		{"unknown operation", Input{Operation: "replace"}, commonerrors.ErrCodeInvalidFilterFormat},
		{
			"unknown tag in current filters",
			Input{Filters: []restaurants.FilterSpec{spec("include", "Tacos")}, Operation: OperationRemove, Filter: &restaurants.FilterSpec{Action: "include", Tag: "Pizza"}},
			commonerrors.ErrCodeUnknownTag,
		},
		{
			"bad action in criteria",
			Input{Operation: OperationAdd, Criteria: &restaurants.CriteriaSpec{Tags: []string{"Pizza"}, Action: "maybe"}},
			commonerrors.ErrCodeInvalidFilterFormat,
		},
	}

	h := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Execute(context.Background(), &tt.input)
			var stdErr *commonerrors.StandardError
			require.ErrorAs(t, err, &stdErr)
			assert.Equal(t, tt.want, stdErr.Code)
		})
	}
}

func TestExecute_UnknownTagCarriesIndex(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{
		Filters:   []restaurants.FilterSpec{spec("include", "Pizza"), spec("include", "Tacos")},
		Operation: OperationAdd,
		Criteria:  &restaurants.CriteriaSpec{Tags: []string{"Bar"}},
	})
	var stdErr *commonerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, 1, stdErr.Metadata["filterIndex"])
}

func TestInputSchema(t *testing.T) {
	h := newTestHandler(t)

	assert.NoError(t, h.schema.ValidateVariables(`{"filters":[],"operation":"add","criteria":{"tags":["Pizza"]}}`))
	assert.Error(t, h.schema.ValidateVariables(`{"filters":[]}`))
	assert.Error(t, h.schema.ValidateVariables(`{"operation":"replace"}`))
	assert.Error(t, h.schema.ValidateVariables(`{"operation":"remove","filter":{"tag":"Pizza"}}`))
}
