package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-workers/internal/common/errors"
)

var criteriaSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"tags"},
	"properties": map[string]interface{}{
		"tags": map[string]interface{}{
			"type":     "array",
			"items":    map[string]interface{}{"type": "string"},
			"minItems": 1,
		},
		"action": map[string]interface{}{"type": "string"},
	},
}

func TestSchema_Validate(t *testing.T) {
	s := MustCompile(criteriaSchema)

	tests := []struct {
		name      string
		doc       string
		wantValid bool
		field     string
	}{
		{"valid", `{"tags":["Pizza"],"action":"include"}`, true, ""},
		{"missing tags", `{"action":"include"}`, false, "(root)"},
		{"empty tags", `{"tags":[]}`, false, "tags"},
		{"wrong item type", `{"tags":[3]}`, false, "tags.0"},
		{"not json", `{"tags":`, false, "(root)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := s.Validate(tt.doc)
			assert.Equal(t, tt.wantValid, result.Valid)
			if !tt.wantValid {
				assert.True(t, result.HasErrors(tt.field), "errors: %v", result.Errors)
			}
		})
	}
}

func TestSchema_ValidateVariables(t *testing.T) {
	s := MustCompile(criteriaSchema)

	assert.NoError(t, s.ValidateVariables(`{"tags":["Bar"]}`))

	err := s.ValidateVariables("")
	require.Error(t, err)

	var stdErr *errors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeInputValidationFailed, stdErr.Code)
	assert.Contains(t, stdErr.Details, "tags")
	assert.NotNil(t, stdErr.Metadata["validationErrors"])
}

func TestCompile_InvalidSchema(t *testing.T) {
	_, err := Compile(map[string]interface{}{"type": 12})
	assert.Error(t, err)
}
