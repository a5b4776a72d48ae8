// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"restaurant-workers/internal/location"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeLocationUnavailable      ErrorCode = "LOCATION_UNAVAILABLE"
	ErrCodeLocationPermissionDenied ErrorCode = "LOCATION_PERMISSION_DENIED"
	ErrCodeLocationProviderFailure  ErrorCode = "LOCATION_PROVIDER_FAILURE"

	ErrCodeInvalidFilterFormat   ErrorCode = "INVALID_FILTER_FORMAT"
	ErrCodeUnknownTag            ErrorCode = "UNKNOWN_TAG"
	ErrCodeInputValidationFailed ErrorCode = "INPUT_VALIDATION_FAILED"

	ErrCodeCatalogLoadFailed ErrorCode = "CATALOG_LOAD_FAILED"
	ErrCodeJobCompleteFailed ErrorCode = "JOB_COMPLETE_FAILED"
	ErrCodeInternal          ErrorCode = "INTERNAL_ERROR"

	ErrCodeEngineUnavailable ErrorCode = "ENGINE_UNAVAILABLE"
	ErrCodeEngineTimeout     ErrorCode = "ENGINE_TIMEOUT"
	ErrCodeEngineRejected    ErrorCode = "ENGINE_REJECTED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata returns e with key set in its metadata.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// NewLocationError classifies a location provider error. Unrecognized
// errors count as provider failures.
func NewLocationError(err error) *StandardError {
	var stdErr *StandardError
	switch {
	case stderrors.Is(err, location.ErrUnavailable):
		stdErr = newError(ErrCodeLocationUnavailable, "No last known location", err.Error(), false)
	case stderrors.Is(err, location.ErrPermissionDenied):
		stdErr = newError(ErrCodeLocationPermissionDenied, "Location permission denied", err.Error(), false)
	default:
		stdErr = newError(ErrCodeLocationProviderFailure, "Location provider error", err.Error(), false)
	}
	stdErr.cause = err
	return stdErr
}

// NewInvalidFilterFormatError creates a non-retryable filter format error.
func NewInvalidFilterFormatError(details string) *StandardError {
	return newError(ErrCodeInvalidFilterFormat, "Invalid filter format", details, false)
}

// NewUnknownTagError creates a non-retryable error for a tag outside the taxonomy.
func NewUnknownTagError(tag string) *StandardError {
	return newError(ErrCodeUnknownTag, "Unknown tag", fmt.Sprintf("tag: %s", tag), false).
		WithMetadata("tag", tag)
}

// NewInputValidationError wraps JSON schema violations.
func NewInputValidationError(details string) *StandardError {
	return newError(ErrCodeInputValidationFailed, "Input validation failed", details, false)
}

// NewCatalogLoadFailedError is raised at startup when the embedded catalog is unreadable.
func NewCatalogLoadFailedError(err error) *StandardError {
	stdErr := newError(ErrCodeCatalogLoadFailed, "Restaurant catalog could not be loaded", err.Error(), false)
	stdErr.cause = err
	return stdErr
}

// NewJobCompleteFailedError creates a retryable error for a rejected complete command.
func NewJobCompleteFailedError(err error) *StandardError {
	stdErr := newError(ErrCodeJobCompleteFailed, "Failed to complete job", err.Error(), true)
	stdErr.cause = err
	return stdErr
}

// NewEngineUnavailableError reports a Zeebe gateway that could not be reached.
func NewEngineUnavailableError(operation string, err error) *StandardError {
	stdErr := newError(ErrCodeEngineUnavailable, "Workflow engine unavailable", err.Error(), true).
		WithMetadata("operation", operation)
	stdErr.cause = err
	return stdErr
}

// NewEngineTimeoutError reports a Zeebe command that ran out of time.
func NewEngineTimeoutError(operation string, err error) *StandardError {
	stdErr := newError(ErrCodeEngineTimeout, "Workflow engine timeout", err.Error(), true).
		WithMetadata("operation", operation)
	stdErr.cause = err
	return stdErr
}

// NewEngineRejectedError reports a Zeebe command refused by the broker.
func NewEngineRejectedError(operation string, err error) *StandardError {
	stdErr := newError(ErrCodeEngineRejected, "Workflow engine rejected command", err.Error(), false).
		WithMetadata("operation", operation)
	stdErr.cause = err
	return stdErr
}

// NewInternalError wraps an unexpected error.
func NewInternalError(err error) *StandardError {
	stdErr := newError(ErrCodeInternal, "Unexpected error", err.Error(), false)
	stdErr.cause = err
	return stdErr
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeLocationUnavailable:      "LOCATION_UNAVAILABLE",
	ErrCodeLocationPermissionDenied: "LOCATION_PERMISSION_DENIED",
	ErrCodeLocationProviderFailure:  "LOCATION_PROVIDER_FAILURE",
	ErrCodeInvalidFilterFormat:      "INVALID_FILTER_FORMAT",
	ErrCodeUnknownTag:               "UNKNOWN_TAG",
	ErrCodeInputValidationFailed:    "INPUT_VALIDATION_FAILED",
	ErrCodeCatalogLoadFailed:        "CATALOG_LOAD_FAILED",
	ErrCodeJobCompleteFailed:        "JOB_COMPLETE_FAILED",
	ErrCodeInternal:                 "INTERNAL_ERROR",
	ErrCodeEngineUnavailable:        "ENGINE_UNAVAILABLE",
	ErrCodeEngineTimeout:            "ENGINE_TIMEOUT",
	ErrCodeEngineRejected:           "ENGINE_REJECTED",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeJobCompleteFailed, ErrCodeEngineUnavailable:
		return 3
	case ErrCodeEngineTimeout:
		return 2
	default:
		return 0 // business and input errors are not retried
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "LOCATION"):
		return "LOCATION"
	case strings.Contains(codeStr, "FILTER") || strings.Contains(codeStr, "TAG"):
		return "FILTER"
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "CATALOG"):
		return "CATALOG"
	case strings.HasPrefix(codeStr, "JOB") || strings.HasPrefix(codeStr, "ENGINE"):
		return "ENGINE"
	default:
		return "OTHER"
	}
}

// AsStandardError returns the StandardError in err's chain, wrapping err as
// an internal error when there is none.
func AsStandardError(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}
