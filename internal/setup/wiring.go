package setup

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"feedback-analysis/internal/classifier"
	"feedback-analysis/internal/config"
	"feedback-analysis/internal/llm"
	"feedback-analysis/internal/llm/bedrock"
	"feedback-analysis/internal/llm/spark"
	"feedback-analysis/internal/rules"
)

type Dependencies struct {
	Classifier *classifier.Classifier
	Matcher    *rules.Matcher
	Logger     *zerolog.Logger
}

func Wire(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*Dependencies, error) {
	llmClient, err := createLLMClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}

	matcher := rules.NewMatcher(cfg.Rules)

	logger.Info().
		Int("rules", len(cfg.Rules)).
		Str("provider", cfg.API.Provider).
		Str("model", cfg.API.Model).
		Msg("classifier wired")

	return &Dependencies{
		Classifier: classifier.New(matcher, llmClient, cfg, logger),
		Matcher:    matcher,
		Logger:     logger,
	}, nil
}

func createLLMClient(ctx context.Context, cfg *config.Config) (llm.LLMClient, error) {
	switch cfg.API.Provider {
	case config.ProviderSpark:
		return spark.NewClient(cfg.API.APIKey, cfg.API.BaseURL, cfg.API.Model)
	case config.ProviderBedrock:
		return bedrock.NewClient(ctx, cfg.API.AWSRegion, cfg.API.Model)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.API.Provider)
	}
}
