package types

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testConnCode    ErrorCode = "TEST_CONN_FAILED"
	testTimeoutCode ErrorCode = "TEST_TIMEOUT"
)

func init() {
	RegisterKind(KindConnection, testConnCode)
	RegisterKind(KindTimeout, testTimeoutCode)
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  NewError(CONFIG_NOT_FOUND, "missing file"),
			want: "[CONFIG_NOT_FOUND] missing file",
		},
		{
			name: "with cause",
			err:  WrapError(CONFIG_PARSE_FAILED, "bad yaml", errors.New("line 3")),
			want: "[CONFIG_PARSE_FAILED] bad yaml: line 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", WrapError(testConnCode, "dial", errors.New("refused")))

	assert.True(t, errors.Is(err, NewError(testConnCode, "")))
	assert.False(t, errors.Is(err, NewError(CONFIG_NOT_FOUND, "")))
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root")
	err := WrapError(testConnCode, "dial", cause)

	assert.Same(t, cause, errors.Unwrap(err))
	assert.ErrorIs(t, err, cause)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindConfiguration, KindOf(CONFIG_VALIDATION_FAILED))
	assert.Equal(t, KindConnection, KindOf(testConnCode))
	assert.Equal(t, KindInternal, KindOf("NEVER_REGISTERED"))
}

func TestKindOfError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, ""},
		{"typed", NewError(testTimeoutCode, "slow"), KindTimeout},
		{"wrapped typed", fmt.Errorf("ctx: %w", NewError(testConnCode, "x")), KindConnection},
		{"bare deadline", context.DeadlineExceeded, KindTimeout},
		{"plain", errors.New("boom"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOfError(tt.err))
		})
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(NewRetryableError(testConnCode, "busy")))
	assert.True(t, IsRetryable(fmt.Errorf("x: %w", WrapRetryableError(testConnCode, "busy", errors.New("429")))))
	assert.False(t, IsRetryable(NewError(testConnCode, "down")))
	assert.False(t, IsRetryable(errors.New("plain")))
}

func TestCodeOf(t *testing.T) {
	require.Equal(t, testConnCode, CodeOf(fmt.Errorf("x: %w", NewError(testConnCode, "y"))))
	require.Equal(t, ErrorCode(""), CodeOf(errors.New("plain")))
}
