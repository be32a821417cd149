package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	ProviderSpark   = "spark"
	ProviderBedrock = "bedrock"
)

// defaultSystemPrompt mirrors the prompt the classifier was originally tuned
// with: one 【label】 per matching category of the learning-app feedback.
const defaultSystemPrompt = "作为学习App用户反馈分类员，任务是用户反馈，将其准确归类至以下标签中的一个如果包含多个就要选择多个回复。请注意，将仅返回与用户反馈内容匹配的标签，思考内容不要展示，不做任何额外回复。标签包含：\n" +
	"【学伴】涉及成长陪伴、元气值、升级石等相关反馈\n" +
	"【卡顿】针对使用过程中出现卡顿、延迟等体验问题\n" +
	"【抽卡】涵盖SSR、SR、卡包等游戏化激励模块的反馈\n" +
	"【VIP】任何与充值、会员服务相关的意见或问题\n" +
	"【奖学金】与学习奖励获取、兑换资格等相关的内容\n" +
	"【排行榜】包括学力值日榜、省份月榜等排名相关反馈\n" +
	"【兑换商店】涉及奖学金兑换、周边商品、发货延迟等事务\n" +
	"【我的】中心功能、个人信息管理等相关反馈\n" +
	"【欧粉说】社区发帖、互动、内容相关的建议或问题\n" +
	"【签到】每周打卡功能、奖励领取异常等反馈\n" +
	"【教材】一些新科目的缺少，现已有教材的版本问题\n"

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.API.Provider == "" {
		cfg.API.Provider = ProviderSpark
	}
	if cfg.API.BaseURL == "" && cfg.API.Provider == ProviderSpark {
		cfg.API.BaseURL = "https://spark-api-open.xf-yun.com/v2"
	}
	if cfg.API.Model == "" {
		cfg.API.Model = "x1"
	}
	if cfg.API.MaxTokens == 0 {
		cfg.API.MaxTokens = 100
	}
	if cfg.API.Temperature == 0 {
		cfg.API.Temperature = 0.7
	}
	if cfg.API.TopK == 0 {
		cfg.API.TopK = 2
	}
	if cfg.API.SystemPrompt == "" {
		cfg.API.SystemPrompt = defaultSystemPrompt
	}
	if cfg.API.AWSRegion == "" {
		cfg.API.AWSRegion = "us-east-1"
	}
	if cfg.Classifier.FailureLabel == "" {
		cfg.Classifier.FailureLabel = "分类失败"
	}
	if cfg.Classifier.AppendSeparator == "" {
		cfg.Classifier.AppendSeparator = ","
	}
}

// applyEnvOverrides lets the API key come from the environment instead of
// the config file. The env var wins when both are set.
func applyEnvOverrides(cfg *Config) {
	if key := os.Getenv("SPARK_API_KEY"); key != "" {
		cfg.API.APIKey = key
	}
}

func (c *Config) Validate() error {
	switch c.API.Provider {
	case ProviderSpark, ProviderBedrock:
	default:
		return fmt.Errorf("unknown api provider %q (expected %q or %q)", c.API.Provider, ProviderSpark, ProviderBedrock)
	}

	for i, rule := range c.Rules {
		if rule.Label == "" {
			return fmt.Errorf("rule %d has an empty label", i+1)
		}
	}

	return nil
}
