package graphrag

import "github.com/paulowiz/genai-fundamentals/internal/types"

// GraphRAG error codes
const (
	ErrCodeInvalidQuery  types.ErrorCode = "RAG_INVALID_QUERY"
	ErrCodeInvalidConfig types.ErrorCode = "RAG_INVALID_CONFIG"
	ErrCodePromptFailed  types.ErrorCode = "RAG_PROMPT_FAILED"
	ErrCodeEmptyAnswer   types.ErrorCode = "RAG_EMPTY_ANSWER"
)

func init() {
	types.RegisterKind(types.KindInvalidArgument, ErrCodeInvalidQuery)
	types.RegisterKind(types.KindConfiguration, ErrCodeInvalidConfig)
	types.RegisterKind(types.KindInternal, ErrCodePromptFailed)
	types.RegisterKind(types.KindExternalService, ErrCodeEmptyAnswer)
}
