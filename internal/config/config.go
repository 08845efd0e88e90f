package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"LinkBrief/internal/domain"
)

const (
	configPathEnv     = "LINKBRIEF_CONFIG"
	aiProviderEnv     = "LINKBRIEF_AI_PROVIDER"
	aiAPIKeyEnv       = "LINKBRIEF_AI_API_KEY"
	aiModelEnv        = "LINKBRIEF_AI_MODEL"
	aiLanguageEnv     = "LINKBRIEF_AI_LANGUAGE"
	dbPathEnv         = "LINKBRIEF_DB_PATH"
	logLevelEnv       = "LINKBRIEF_LOG_LEVEL"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	AI            AIConfig           `yaml:"ai"`
	Fetch         FetchConfig        `yaml:"fetch"`
	Pipeline      PipelineConfig     `yaml:"pipeline"`
	Storage       StorageConfig      `yaml:"storage"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Notifications NotificationConfig `yaml:"notifications"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// AIConfig picks the reasoning backend. Base URLs are for proxies and tests.
type AIConfig struct {
	Provider         string `yaml:"provider"`
	APIKey           string `yaml:"apiKey"`
	Model            string `yaml:"model"`
	Language         string `yaml:"language"`
	AnthropicBaseURL string `yaml:"anthropicBaseUrl"`
	OpenAIBaseURL    string `yaml:"openaiBaseUrl"`
	GeminiBaseURL    string `yaml:"geminiBaseUrl"`
}

// Domain converts the settings into the value passed to classify/summarize.
func (a AIConfig) Domain() domain.AIConfig {
	return domain.AIConfig{
		Provider: domain.Provider(a.Provider),
		APIKey:   a.APIKey,
		Model:    a.Model,
		Language: a.Language,
	}
}

// FetchConfig tunes the page fetcher.
type FetchConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"userAgent"`
}

// PipelineConfig bounds ingestion concurrency.
type PipelineConfig struct {
	Workers int `yaml:"workers"`
}

// StorageConfig points at the SQLite database file.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// SchedulerConfig defines how often watch mode re-runs ingestion.
type SchedulerConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	overrides := []struct {
		env    string
		target *string
	}{
		{aiProviderEnv, &c.AI.Provider},
		{aiAPIKeyEnv, &c.AI.APIKey},
		{aiModelEnv, &c.AI.Model},
		{aiLanguageEnv, &c.AI.Language},
		{dbPathEnv, &c.Storage.Path},
		{logLevelEnv, &c.Logging.Level},
		{telegramTokenEnv, &c.Notifications.Telegram.BotToken},
		{telegramChatIDEnv, &c.Notifications.Telegram.ChatID},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.target = v
		}
	}
}

func mergeConfig(base, override Config) Config {
	mergeString(&base.Logging.Level, override.Logging.Level)

	mergeString(&base.AI.Provider, override.AI.Provider)
	mergeString(&base.AI.APIKey, override.AI.APIKey)
	mergeString(&base.AI.Model, override.AI.Model)
	mergeString(&base.AI.Language, override.AI.Language)
	mergeString(&base.AI.AnthropicBaseURL, override.AI.AnthropicBaseURL)
	mergeString(&base.AI.OpenAIBaseURL, override.AI.OpenAIBaseURL)
	mergeString(&base.AI.GeminiBaseURL, override.AI.GeminiBaseURL)

	if override.Fetch.Timeout > 0 {
		base.Fetch.Timeout = override.Fetch.Timeout
	}
	mergeString(&base.Fetch.UserAgent, override.Fetch.UserAgent)

	if override.Pipeline.Workers > 0 {
		base.Pipeline.Workers = override.Pipeline.Workers
	}

	mergeString(&base.Storage.Path, override.Storage.Path)

	if override.Scheduler.Interval > 0 {
		base.Scheduler.Interval = override.Scheduler.Interval
	}

	mergeString(&base.Notifications.Telegram.BotToken, override.Notifications.Telegram.BotToken)
	mergeString(&base.Notifications.Telegram.ChatID, override.Notifications.Telegram.ChatID)

	return base
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		AI: AIConfig{
			Provider: string(domain.ProviderAnthropic),
			Model:    "claude-haiku-4-5-20251001",
			Language: "English",
		},
		Fetch:     FetchConfig{Timeout: 15 * time.Second},
		Pipeline:  PipelineConfig{Workers: 4},
		Storage:   StorageConfig{Path: "linkbrief.db"},
		Scheduler: SchedulerConfig{Interval: 15 * time.Minute},
	}
}
