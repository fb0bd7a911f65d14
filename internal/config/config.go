package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const DefaultSystemPrompt = "You are a helpful AI that explains research in business-friendly language."

type Config struct {
	Addr               string
	LLMProvider        string
	Model              string
	GroqAPIKey         string
	GroqBaseURL        string
	OllamaURL          string
	SystemPrompt       string
	ChunkWords         int
	SummaryConcurrency int
	MaxUploadMB        int
	UploadDir          string
	PostgresURL        string
	LogLevel           string
}

// Load reads the environment, an optional paper2startup.yaml in the working
// directory, and the defaults below, in that order of precedence.
func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("addr", ":7860")
	v.SetDefault("llm_provider", "groq")
	v.SetDefault("model", "llama-3.1-8b-instant")
	v.SetDefault("groq_base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("ollama_url", "http://localhost:11434")
	v.SetDefault("system_prompt", DefaultSystemPrompt)
	v.SetDefault("chunk_words", 1000)
	v.SetDefault("summary_concurrency", 1)
	v.SetDefault("max_upload_mb", 64)
	v.SetDefault("upload_dir", "")
	v.SetDefault("postgres_url", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("groq_api_key", "")

	v.SetEnvPrefix("PAPER2STARTUP")
	v.AutomaticEnv()
	// The credential keeps the provider's conventional name.
	if err := v.BindEnv("groq_api_key", "GROQ_API_KEY"); err != nil {
		return Config{}, fmt.Errorf("bind GROQ_API_KEY: %w", err)
	}

	v.SetConfigName("paper2startup")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		Addr:               v.GetString("addr"),
		LLMProvider:        strings.TrimSpace(v.GetString("llm_provider")),
		Model:              strings.TrimSpace(v.GetString("model")),
		GroqAPIKey:         strings.TrimSpace(v.GetString("groq_api_key")),
		GroqBaseURL:        strings.TrimRight(v.GetString("groq_base_url"), "/"),
		OllamaURL:          strings.TrimRight(v.GetString("ollama_url"), "/"),
		SystemPrompt:       v.GetString("system_prompt"),
		ChunkWords:         v.GetInt("chunk_words"),
		SummaryConcurrency: v.GetInt("summary_concurrency"),
		MaxUploadMB:        v.GetInt("max_upload_mb"),
		UploadDir:          v.GetString("upload_dir"),
		PostgresURL:        v.GetString("postgres_url"),
		LogLevel:           v.GetString("log_level"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.ChunkWords <= 0 {
		return fmt.Errorf("chunk words must be positive, got %d", c.ChunkWords)
	}
	if c.SummaryConcurrency <= 0 {
		return fmt.Errorf("summary concurrency must be positive, got %d", c.SummaryConcurrency)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("max upload size must be positive, got %d", c.MaxUploadMB)
	}
	if strings.TrimSpace(c.SystemPrompt) == "" {
		return fmt.Errorf("system prompt is required")
	}
	return nil
}

// HasGroqKey reports whether a Groq credential was found. A missing key is not a
// startup error; every Groq call fails instead.
func (c Config) HasGroqKey() bool {
	return c.GroqAPIKey != ""
}

// AuditEnabled reports whether completion calls are recorded in Postgres.
func (c Config) AuditEnabled() bool {
	return strings.TrimSpace(c.PostgresURL) != ""
}

func (c Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}
