package llm

import (
	"context"
)

// LLMClient is an interface for invoking the completion service.
// This allows mocking in tests without making real API calls.
//
// Implementations must perform exactly one network call per invocation; the
// pipeline guarantees at most one completion call per record and does not
// retry.
type LLMClient interface {
	InvokeModel(ctx context.Context, request CompletionRequest) (*CompletionResponse, error)
}
