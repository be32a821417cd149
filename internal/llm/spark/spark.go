package spark

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"feedback-analysis/internal/llm"
)

func (c *Client) InvokeModel(ctx context.Context, request llm.CompletionRequest) (*llm.CompletionResponse, error) {

	message := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(request.SystemPrompt),
			openai.UserMessage(request.UserContent),
		},
		// Spark only understands max_tokens, not max_completion_tokens.
		MaxTokens:   openai.Int(int64(request.MaxTokens)),
		Temperature: openai.Float(request.Temperature),
		Model:       openai.ChatModel(c.ModelID),
	}

	var opts []option.RequestOption
	if request.TopK > 0 {
		// top_k is a Spark extension field outside the OpenAI schema.
		opts = append(opts, option.WithJSONSet("top_k", request.TopK))
	}

	output, err := c.Client.Chat.Completions.New(ctx, message, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to invoke spark model. Error: %w", err)
	}

	if len(output.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	response := output.Choices[0]
	return &llm.CompletionResponse{
		Content:    response.Message.Content,
		StopReason: fmt.Sprint(response.FinishReason),
	}, nil
}
