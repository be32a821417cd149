package llm

type CompletionRequest struct {
	SystemPrompt string
	UserContent  string
	MaxTokens    int
	Temperature  float64
	TopK         int
}

type CompletionResponse struct {
	Content    string
	StopReason string
}
