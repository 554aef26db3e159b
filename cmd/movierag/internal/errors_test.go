package internal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/paulowiz/genai-fundamentals/internal/embedder"
	"github.com/paulowiz/genai-fundamentals/internal/graphrag/graph"
	"github.com/paulowiz/genai-fundamentals/internal/llm"
	"github.com/paulowiz/genai-fundamentals/internal/types"
)

func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Bool("verbose", false, "")
	var buf bytes.Buffer
	cmd.SetErr(&buf)
	return cmd, &buf
}

func TestCLIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *CLIError
		expected string
	}{
		{
			name:     "error without cause",
			err:      NewCLIError(ExitError, "something went wrong"),
			expected: "something went wrong",
		},
		{
			name:     "error with cause",
			err:      WrapError(ExitError, "operation failed", errors.New("underlying error")),
			expected: "operation failed: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestCLIError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := WrapError(ExitError, "wrapper", cause)

	assert.Same(t, cause, err.Unwrap())
	assert.Nil(t, NewCLIError(ExitError, "no cause").Unwrap())
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
		output   string
	}{
		{"nil", nil, ExitSuccess, ""},
		{"cancelled", fmt.Errorf("ask: %w", context.Canceled), ExitCancelled, "Operation cancelled"},
		{"bare deadline", context.DeadlineExceeded, ExitTimeout, "Operation timed out"},
		{"cli error", NewCLIError(ExitUsage, "bad flag"), ExitUsage, "bad flag"},
		{
			"configuration",
			types.NewError(types.CONFIG_VALIDATION_FAILED, "neo4j.uri is required"),
			ExitConfigError, "neo4j.uri is required",
		},
		{
			"connection",
			types.NewError(graph.ErrCodeGraphConnectionFailed, "unreachable"),
			ExitConnectionError, "unreachable",
		},
		{
			"external service",
			types.NewError(llm.ErrProviderRateLimited, "rate limited"),
			ExitExternalServiceError, "rate limited",
		},
		{
			"typed timeout",
			types.NewError(embedder.ErrCodeEmbeddingTimeout, "embedding slow"),
			ExitTimeout, "embedding slow",
		},
		{"generic", errors.New("boom"), ExitError, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, buf := newTestCommand()
			assert.Equal(t, tt.expected, HandleError(cmd, tt.err))
			assert.Contains(t, buf.String(), tt.output)
		})
	}
}

func TestHandleError_VerboseShowsCause(t *testing.T) {
	cmd, buf := newTestCommand()
	_ = cmd.Flags().Set("verbose", "true")

	code := HandleError(cmd, WrapError(ExitConnectionError, "cannot reach neo4j", errors.New("dial tcp: refused")))
	assert.Equal(t, ExitConnectionError, code)
	assert.Contains(t, buf.String(), "Cause: dial tcp: refused")
}

func TestExitCodeForKind(t *testing.T) {
	assert.Equal(t, ExitConfigError, ExitCodeForKind(types.KindConfiguration))
	assert.Equal(t, ExitConnectionError, ExitCodeForKind(types.KindConnection))
	assert.Equal(t, ExitExternalServiceError, ExitCodeForKind(types.KindExternalService))
	assert.Equal(t, ExitTimeout, ExitCodeForKind(types.KindTimeout))
	assert.Equal(t, ExitUsage, ExitCodeForKind(types.KindInvalidArgument))
	assert.Equal(t, ExitError, ExitCodeForKind(types.KindInternal))
}
