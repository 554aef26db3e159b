package llm

// CompletionOption is a functional option for configuring completion requests.
type CompletionOption func(*CompletionRequest)

// WithTemperature sets the sampling temperature.
// Lower values (e.g., 0.2) make output more focused and deterministic.
func WithTemperature(temperature float64) CompletionOption {
	return func(req *CompletionRequest) {
		req.Temperature = temperature
	}
}

// WithMaxTokens sets the maximum number of tokens to generate.
func WithMaxTokens(maxTokens int) CompletionOption {
	return func(req *CompletionRequest) {
		req.MaxTokens = maxTokens
	}
}

// WithTopP sets the nucleus sampling parameter (0.0 - 1.0).
func WithTopP(topP float64) CompletionOption {
	return func(req *CompletionRequest) {
		req.TopP = topP
	}
}

// WithStopSequences sets sequences that will stop generation when encountered.
func WithStopSequences(sequences ...string) CompletionOption {
	return func(req *CompletionRequest) {
		req.StopSequences = sequences
	}
}

// NewCompletionRequest creates a new completion request with the given model and messages.
//
// Example:
//
//	req := NewCompletionRequest("gpt-4o",
//	    []Message{NewUserMessage("Which movies did Ridley Scott direct?")},
//	    WithTemperature(0),
//	    WithMaxTokens(512),
//	)
func NewCompletionRequest(model string, messages []Message, opts ...CompletionOption) CompletionRequest {
	req := CompletionRequest{
		Model:    model,
		Messages: messages,
	}

	for _, opt := range opts {
		opt(&req)
	}
	return req
}
