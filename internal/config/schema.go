package config

import (
	"feedback-analysis/internal/models"
)

// Config is the complete classifier configuration, loaded once per run and
// immutable thereafter.
type Config struct {
	API        APIConfig        `yaml:"api"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Rules      []models.Rule    `yaml:"rules"`
}

// APIConfig describes the completion service used for records no rule
// matches.
type APIConfig struct {
	Provider     string  `yaml:"provider"`
	APIKey       string  `yaml:"api_key"`
	BaseURL      string  `yaml:"base_url"`
	Model        string  `yaml:"model"`
	MaxTokens    int     `yaml:"max_tokens"`
	Temperature  float64 `yaml:"temperature"`
	TopK         int     `yaml:"top_k"`
	SystemPrompt string  `yaml:"system_prompt"`
	AWSRegion    string  `yaml:"aws_region"`
}

// ClassifierConfig tunes label consolidation and failure handling.
type ClassifierConfig struct {
	// FailureLabel is written when the completion call fails for a record.
	FailureLabel string `yaml:"failure_label"`
	// AppendSeparator joins the prior module value and the new label in
	// append mode.
	AppendSeparator string `yaml:"append_separator"`
}
