package providers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"

	"github.com/paulowiz/genai-fundamentals/internal/llm"
)

// complete runs one GenerateContent call against a langchaingo model,
// applying the configured per-call timeout and translating errors.
func complete(ctx context.Context, client llms.Model, provider string, cfg llm.ProviderConfig, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, llm.NewInvalidRequestError(err.Error())
	}

	if req.Model == "" {
		req.Model = cfg.Model
	}
	if req.Temperature == 0 {
		req.Temperature = cfg.Temperature
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = cfg.MaxTokens
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := client.GenerateContent(ctx, toSchemaMessages(req.Messages), buildCallOptions(req)...)
	if err != nil {
		return nil, llm.TranslateError(provider, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return nil, llm.NewInvalidResponseError(provider,
			"response contained no choices after "+time.Since(start).String())
	}

	return fromLangchainResponse(resp, req.Model), nil
}

// toSchemaMessages converts llm messages to langchaingo MessageContent
func toSchemaMessages(messages []llm.Message) []llms.MessageContent {
	result := make([]llms.MessageContent, 0, len(messages))

	for _, msg := range messages {
		role := schema.ChatMessageTypeHuman
		switch msg.Role {
		case llm.RoleSystem:
			role = schema.ChatMessageTypeSystem
		case llm.RoleAssistant:
			role = schema.ChatMessageTypeAI
		}

		result = append(result, llms.MessageContent{
			Role:  role,
			Parts: []llms.ContentPart{llms.TextPart(msg.Content)},
		})
	}

	return result
}

// fromLangchainResponse converts langchaingo response to an llm response
func fromLangchainResponse(resp *llms.ContentResponse, model string) *llm.CompletionResponse {
	choice := resp.Choices[0]

	finishReason := llm.FinishReasonStop
	switch choice.StopReason {
	case "length", "max_tokens":
		finishReason = llm.FinishReasonLength
	case "content_filter":
		finishReason = llm.FinishReasonContentFilter
	}

	return &llm.CompletionResponse{
		ID:    uuid.New().String(),
		Model: model,
		Message: llm.Message{
			Role:    llm.RoleAssistant,
			Content: choice.Content,
		},
		FinishReason: finishReason,
		Usage:        usageFromGenerationInfo(choice.GenerationInfo),
	}
}

// usageFromGenerationInfo reads token counts; OpenAI and Ollama report
// Prompt/Completion tokens, Anthropic reports Input/Output tokens.
func usageFromGenerationInfo(info map[string]any) llm.CompletionTokenUsage {
	usage := llm.CompletionTokenUsage{
		PromptTokens:     firstInt(info, "PromptTokens", "InputTokens"),
		CompletionTokens: firstInt(info, "CompletionTokens", "OutputTokens"),
		TotalTokens:      firstInt(info, "TotalTokens"),
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens
	}
	return usage
}

func firstInt(info map[string]any, keys ...string) int {
	for _, key := range keys {
		switch v := info[key].(type) {
		case int:
			return v
		case int32:
			return int(v)
		case int64:
			return int(v)
		case float64:
			return int(v)
		}
	}
	return 0
}

// buildCallOptions converts an llm request to langchaingo call options
func buildCallOptions(req llm.CompletionRequest) []llms.CallOption {
	callOpts := make([]llms.CallOption, 0, 5)

	if req.Model != "" {
		callOpts = append(callOpts, llms.WithModel(req.Model))
	}

	callOpts = append(callOpts, llms.WithTemperature(req.Temperature))

	if req.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(req.MaxTokens))
	}

	if req.TopP > 0 {
		callOpts = append(callOpts, llms.WithTopP(req.TopP))
	}

	if len(req.StopSequences) > 0 {
		callOpts = append(callOpts, llms.WithStopWords(req.StopSequences))
	}

	return callOpts
}

// healthProbe sends a one-token completion.
func healthProbe(ctx context.Context, p llm.LLMProvider, model string) error {
	_, err := p.Complete(ctx, llm.CompletionRequest{
		Model:     model,
		Messages:  []llm.Message{llm.NewUserMessage("ping")},
		MaxTokens: 1,
	})
	return err
}
