package spark

import (
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Client talks to the Spark chat-completions endpoint, which is
// OpenAI-compatible. Any other OpenAI-compatible endpoint works by changing
// the base URL.
type Client struct {
	Client  openai.Client
	ModelID string
}

func NewClient(apiKey string, baseURL string, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Spark API key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("Spark model ID is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		// One attempt per record; the pipeline never retries.
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Client{
		Client:  openai.NewClient(opts...),
		ModelID: model,
	}, nil
}
