package retriever

import "github.com/paulowiz/genai-fundamentals/internal/types"

// Retriever error codes
const (
	ErrCodeInvalidArgument types.ErrorCode = "RETRIEVER_INVALID_ARGUMENT"
	ErrCodeInvalidConfig   types.ErrorCode = "RETRIEVER_INVALID_CONFIG"
	ErrCodeDecodeFailed    types.ErrorCode = "RETRIEVER_DECODE_FAILED"
)

func init() {
	types.RegisterKind(types.KindInvalidArgument, ErrCodeInvalidArgument)
	types.RegisterKind(types.KindConfiguration, ErrCodeInvalidConfig)
	types.RegisterKind(types.KindInternal, ErrCodeDecodeFailed)
}
