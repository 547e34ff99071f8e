// Package errors defines stable error codes for kerncount failure modes.
package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ToolMissing indicates a required external binary is not on PATH
	ToolMissing ErrorCode = "TOOL_MISSING"
	// EnumerationFailed indicates the build-graph query for object files failed
	EnumerationFailed ErrorCode = "ENUMERATION_FAILED"
	// PipelineFailed indicates the introspection pipeline failed for one object
	PipelineFailed ErrorCode = "PIPELINE_FAILED"
	// ConfigInvalid indicates the configuration file is invalid
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// ExportFailed indicates the run could not be written to the database
	ExportFailed ErrorCode = "EXPORT_FAILED"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// KernError is the error type used across kerncount packages
type KernError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewKernError creates a new KernError
func NewKernError(code ErrorCode, message string, cause error) *KernError {
	return &KernError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithDetails attaches structured details and returns the error
func (e *KernError) WithDetails(details map[string]interface{}) *KernError {
	e.Details = details
	return e
}

// Error implements the error interface
func (e *KernError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *KernError) Unwrap() error {
	return e.Cause
}
