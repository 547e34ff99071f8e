package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestNewKernError(t *testing.T) {
	cause := errors.New("exit status 1")
	err := NewKernError(PipelineFailed, "introspection pipeline failed", cause)

	if err.Code != PipelineFailed {
		t.Errorf("Code = %v, want %v", err.Code, PipelineFailed)
	}
	if err.Message != "introspection pipeline failed" {
		t.Errorf("Message = %q, want %q", err.Message, "introspection pipeline failed")
	}
	if err.Cause != cause {
		t.Error("Cause not preserved")
	}
}

func TestKernError_Error(t *testing.T) {
	tests := []struct {
		name      string
		err       *KernError
		wantParts []string
	}{
		{
			name:      "with cause",
			err:       NewKernError(ToolMissing, "cuobjdump not found", errors.New("not in PATH")),
			wantParts: []string{"TOOL_MISSING", "cuobjdump not found", "not in PATH"},
		},
		{
			name:      "without cause",
			err:       NewKernError(ExportFailed, "could not write run", nil),
			wantParts: []string{"EXPORT_FAILED", "could not write run"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			for _, part := range tt.wantParts {
				if !strings.Contains(got, part) {
					t.Errorf("Error() = %q, want to contain %q", got, part)
				}
			}
		})
	}
}

func TestKernError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := NewKernError(InternalError, "wrapped", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause through Unwrap")
	}
}

func TestKernError_WithDetails(t *testing.T) {
	err := NewKernError(PipelineFailed, "failed", nil).WithDetails(map[string]interface{}{
		"object": "a.o",
	})

	if err.Details["object"] != "a.o" {
		t.Errorf("Details[object] = %v, want a.o", err.Details["object"])
	}
}
