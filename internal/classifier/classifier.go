package classifier

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"feedback-analysis/internal/config"
	"feedback-analysis/internal/llm"
	"feedback-analysis/internal/models"
	"feedback-analysis/internal/rules"
)

// Classifier produces the final label for one piece of feedback: keyword
// rules first, one completion call as fallback.
type Classifier struct {
	matcher      *rules.Matcher
	llmClient    llm.LLMClient
	api          config.APIConfig
	failureLabel string
	logger       *zerolog.Logger
}

func New(matcher *rules.Matcher, llmClient llm.LLMClient, cfg *config.Config, logger *zerolog.Logger) *Classifier {
	return &Classifier{
		matcher:      matcher,
		llmClient:    llmClient,
		api:          cfg.API,
		failureLabel: cfg.Classifier.FailureLabel,
		logger:       logger,
	}
}

// Classify runs the rule stage and, when nothing matches, the completion
// fallback. It never returns an empty label for non-empty content: a failed
// or empty completion yields the sentinel failure label.
func (c *Classifier) Classify(ctx context.Context, content string, strategy models.Strategy) models.Classification {
	now := time.Now()

	if strings.TrimSpace(content) == "" {
		return models.Classification{Outcome: models.OutcomeSkipped, Duration: time.Since(now)}
	}

	if label, ok := c.matchRules(content, strategy); ok {
		return models.Classification{
			Label:    label,
			Outcome:  models.OutcomeRule,
			Duration: time.Since(now),
		}
	}

	label, outcome := c.complete(ctx, content)
	return models.Classification{
		Label:    label,
		Outcome:  outcome,
		Duration: time.Since(now),
	}
}

func (c *Classifier) matchRules(content string, strategy models.Strategy) (string, bool) {
	if strategy == models.StrategyFirst {
		return c.matcher.First(content)
	}

	hits := c.matcher.Match(content)
	if len(hits) == 0 {
		return "", false
	}

	// Rules sharing a label contribute it once, first occurrence wins.
	seen := make(map[string]bool, len(hits))
	unique := hits[:0]
	for _, label := range hits {
		if !seen[label] {
			seen[label] = true
			unique = append(unique, label)
		}
	}

	return strings.Join(unique, ","), true
}

func (c *Classifier) complete(ctx context.Context, content string) (string, models.Outcome) {
	resp, err := c.llmClient.InvokeModel(ctx, llm.CompletionRequest{
		SystemPrompt: c.api.SystemPrompt,
		UserContent:  content,
		MaxTokens:    c.api.MaxTokens,
		Temperature:  c.api.Temperature,
		TopK:         c.api.TopK,
	})
	if err != nil {
		c.logger.Error().Err(err).Msg("completion call failed")
		return c.failureLabel, models.OutcomeFailed
	}

	if strings.TrimSpace(resp.Content) == "" {
		c.logger.Error().Str("stop_reason", resp.StopReason).Msg("completion returned empty answer")
		return c.failureLabel, models.OutcomeFailed
	}

	label, outcome := PostprocessAnswer(resp.Content)
	if outcome == models.OutcomeUnparsed {
		c.logger.Warn().Str("answer", resp.Content).Msg("no bracket pair in model answer, passing raw answer through")
	}

	return label, outcome
}
